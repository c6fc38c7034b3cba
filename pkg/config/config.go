package config

import (
	"fmt"
	"net/url"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for catalog-engine.
// Configuration can come from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values for fields that support both.
// Secrets (passwords) must only come from environment variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8340"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	BaseURL  string `yaml:"base_url" env:"BASE_URL" env-default:""` // Auto-derived from Port if empty
	Version  string `yaml:"-"`                                      // Set at load time, not from config

	// Database configuration (PostgreSQL)
	Database DatabaseConfig `yaml:"database"`

	// Catalog ingestion configuration
	Catalog CatalogConfig `yaml:"catalog"`

	// Enrichment lookup configuration
	Enrichment EnrichmentConfig `yaml:"enrichment"`
}

// DatabaseConfig holds PostgreSQL database configuration.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"catalog"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"catalog_engine"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"25"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
	MigrationsPath string `yaml:"migrations_path" env:"PGMIGRATIONS_PATH" env-default:"migrations"`
}

// CatalogConfig holds the scan pipeline settings.
type CatalogConfig struct {
	// AnchorPartID is the product holding the DATANORM files as attachments.
	// The comments for all files of the same supplier have to be the same.
	AnchorPartID string `yaml:"anchor_part_id" env:"CATALOG_ANCHOR_PART_ID" env-default:""`

	// DefaultCategory is assigned to new products when no other category can
	// be found.
	DefaultCategory string `yaml:"default_category" env:"CATALOG_DEFAULT_CATEGORY" env-default:"Fallback Category"`

	// UseDefaultCategory assigns all new products to the default category,
	// ignoring the categories in the DATANORM files.
	UseDefaultCategory bool `yaml:"use_default_category" env:"CATALOG_USE_DEFAULT_CATEGORY" env-default:"false"`

	// AutoAssignBarcode attaches the scanned barcode to an existing product
	// found via its keywords, speeding up the next scan.
	AutoAssignBarcode bool `yaml:"auto_assign_barcode" env:"CATALOG_AUTO_ASSIGN_BARCODE" env-default:"false"`

	// MediaDir is where fetched product images are stored.
	MediaDir string `yaml:"media_dir" env:"CATALOG_MEDIA_DIR" env-default:"media"`
}

// EnrichmentConfig bounds the best-effort supplier website lookups.
type EnrichmentConfig struct {
	TimeoutSeconds int `yaml:"timeout_seconds" env:"ENRICHMENT_TIMEOUT_SECONDS" env-default:"10"`
}

// Load reads configuration from config.yaml with environment variable overrides.
// The version parameter is injected at build time and set on the returned Config.
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	// Load config from YAML file with environment variable overrides
	if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
		return nil, fmt.Errorf("failed to read config.yaml: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Auto-derive BaseURL from Port if not explicitly set
	if cfg.BaseURL == "" {
		cfg.BaseURL = (&url.URL{
			Scheme: "http",
			Host:   "localhost:" + cfg.Port,
		}).String()
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Catalog.DefaultCategory == "" {
		return fmt.Errorf("catalog.default_category must not be empty")
	}
	if c.Database.MigrationsPath != "" {
		if _, err := os.Stat(c.Database.MigrationsPath); err != nil {
			return fmt.Errorf("migrations path does not exist: %w", err)
		}
	}
	return nil
}

// ConnectionString returns a PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}
