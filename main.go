package main

import (
	"context"
	"database/sql"
	"log"
	"net"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver for database/sql (migrations)
	"go.uber.org/zap"

	"github.com/voltbridge/catalog-engine/pkg/config"
	"github.com/voltbridge/catalog-engine/pkg/database"
	"github.com/voltbridge/catalog-engine/pkg/datanorm"
	"github.com/voltbridge/catalog-engine/pkg/enrichment"
	"github.com/voltbridge/catalog-engine/pkg/handlers"
	"github.com/voltbridge/catalog-engine/pkg/logging"
	"github.com/voltbridge/catalog-engine/pkg/middleware"
	"github.com/voltbridge/catalog-engine/pkg/repositories"
	"github.com/voltbridge/catalog-engine/pkg/retry"
	"github.com/voltbridge/catalog-engine/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("base_url", cfg.BaseURL),
		zap.String("database", cfg.Database.Host),
		zap.String("default_category", cfg.Catalog.DefaultCategory),
		zap.Bool("use_default_category", cfg.Catalog.UseDefaultCategory))

	ctx := context.Background()

	db, err := retry.DoWithResult(ctx, retry.DefaultConfig(), func() (*database.DB, error) {
		return database.NewConnection(ctx, &database.Config{
			URL:            cfg.Database.ConnectionString(),
			MaxConnections: cfg.Database.MaxConnections,
		})
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := runMigrations(cfg, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Repositories
	productRepo := repositories.NewProductRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	companyRepo := repositories.NewCompanyRepository(db)
	manufacturerPartRepo := repositories.NewManufacturerPartRepository(db)
	supplierPartRepo := repositories.NewSupplierPartRepository(db)
	attachmentRepo := repositories.NewAttachmentRepository(db)

	// Enrichment
	httpClient := &http.Client{Timeout: time.Duration(cfg.Enrichment.TimeoutSeconds) * time.Second}
	gateway := enrichment.NewGateway(httpClient, logger)
	images := enrichment.NewImageFetcher(httpClient, logger)

	// Services
	taxonomy := services.NewTaxonomyService(categoryRepo, logger)
	counterparties := services.NewCounterpartyService(companyRepo, logger)
	correlator := services.NewCorrelationService(attachmentRepo, datanorm.NewFileParser(), cfg.Catalog, logger)
	builder := services.NewGraphBuilder(
		productRepo, manufacturerPartRepo, supplierPartRepo,
		taxonomy, counterparties, gateway, images,
		services.GraphConfig{
			DefaultCategory: cfg.Catalog.DefaultCategory,
			MediaDir:        cfg.Catalog.MediaDir,
		},
		logger)
	scans := services.NewScanService(productRepo, correlator, builder, cfg.Catalog, logger)

	// HTTP surface
	mux := http.NewServeMux()
	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewScanHandler(scans, logger).RegisterRoutes(mux)

	handler := middleware.RequestLogger(logger)(mux)

	addr := net.JoinHostPort(cfg.BindAddr, cfg.Port)
	logger.Info("Starting catalog-engine",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

// runMigrations applies pending schema migrations over a database/sql
// connection, which the migrate driver requires.
func runMigrations(cfg *config.Config, logger *zap.Logger) error {
	sqlDB, err := sql.Open("pgx", cfg.Database.ConnectionString())
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return database.RunMigrations(sqlDB, cfg.Database.MigrationsPath, logger)
}
