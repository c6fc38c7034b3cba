package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// chdirWithConfig writes a config.yaml plus a migrations dir into a temp
// directory and makes it the working directory for the test.
func chdirWithConfig(t *testing.T, yamlContent string) {
	t.Helper()
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	if err := os.Mkdir(filepath.Join(tmpDir, "migrations"), 0755); err != nil {
		t.Fatalf("failed to create migrations dir: %v", err)
	}

	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	t.Cleanup(func() {
		os.Chdir(originalDir)
	})
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	chdirWithConfig(t, `
port: "3443"
env: "test"
database:
  host: "db.example.com"
  port: 5432
  user: "testuser"
  database: "testdb"
catalog:
  anchor_part_id: "6b1ec4e9-01b0-4736-a533-bd630ac3e4e3"
  default_category: "Fallback Category"
`)

	// Clear env vars that might interfere with test
	os.Unsetenv("PGHOST")
	os.Unsetenv("BASE_URL")

	// Set env vars to override YAML values
	t.Setenv("PORT", "4443")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := Load("test-version")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Verify env vars override YAML
	if cfg.Port != "4443" {
		t.Errorf("expected Port=4443 (from env), got %s", cfg.Port)
	}
	if cfg.Env != "production" {
		t.Errorf("expected Env=production (from env), got %s", cfg.Env)
	}

	// Verify version was set
	if cfg.Version != "test-version" {
		t.Errorf("expected Version=test-version, got %s", cfg.Version)
	}

	// Verify BaseURL was auto-derived from PORT
	if cfg.BaseURL != "http://localhost:4443" {
		t.Errorf("expected BaseURL=http://localhost:4443 (auto-derived from PORT), got %s", cfg.BaseURL)
	}

	// Verify YAML value used for database host (proves YAML was read)
	if cfg.Database.Host != "db.example.com" {
		t.Errorf("expected Database.Host=db.example.com (from yaml), got %s", cfg.Database.Host)
	}

	// Verify catalog section was read
	if cfg.Catalog.AnchorPartID != "6b1ec4e9-01b0-4736-a533-bd630ac3e4e3" {
		t.Errorf("unexpected Catalog.AnchorPartID: %s", cfg.Catalog.AnchorPartID)
	}
}

func TestLoad_CatalogDefaults(t *testing.T) {
	chdirWithConfig(t, `
env: "test"
`)
	os.Unsetenv("CATALOG_DEFAULT_CATEGORY")
	os.Unsetenv("CATALOG_USE_DEFAULT_CATEGORY")
	os.Unsetenv("CATALOG_AUTO_ASSIGN_BARCODE")

	cfg, err := Load("test-version")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Catalog.DefaultCategory != "Fallback Category" {
		t.Errorf("expected default category fallback, got %q", cfg.Catalog.DefaultCategory)
	}
	if cfg.Catalog.UseDefaultCategory {
		t.Error("expected UseDefaultCategory=false by default")
	}
	if cfg.Catalog.AutoAssignBarcode {
		t.Error("expected AutoAssignBarcode=false by default")
	}
	if cfg.Enrichment.TimeoutSeconds != 10 {
		t.Errorf("expected enrichment timeout 10s, got %d", cfg.Enrichment.TimeoutSeconds)
	}
}

func TestLoad_RejectsEmptyDefaultCategory(t *testing.T) {
	chdirWithConfig(t, `
env: "test"
catalog:
  default_category: ""
`)
	t.Setenv("CATALOG_DEFAULT_CATEGORY", "")

	_, err := Load("test-version")
	if err == nil {
		t.Fatal("expected Load() to fail for empty default category")
	}
	if !strings.Contains(err.Error(), "default_category") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoad_RejectsMissingMigrationsPath(t *testing.T) {
	chdirWithConfig(t, `
env: "test"
database:
  migrations_path: "does-not-exist"
`)
	os.Unsetenv("PGMIGRATIONS_PATH")

	_, err := Load("test-version")
	if err == nil {
		t.Fatal("expected Load() to fail for missing migrations path")
	}
}

func TestConnectionString(t *testing.T) {
	db := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "catalog",
		Password: "secret",
		Database: "catalog_engine",
		SSLMode:  "disable",
	}

	got := db.ConnectionString()
	want := "host=localhost port=5432 user=catalog password=secret dbname=catalog_engine sslmode=disable"
	if got != want {
		t.Errorf("ConnectionString() = %q, want %q", got, want)
	}
}
