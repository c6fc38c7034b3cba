package services

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/voltbridge/catalog-engine/pkg/apperrors"
	"github.com/voltbridge/catalog-engine/pkg/config"
	"github.com/voltbridge/catalog-engine/pkg/models"
	"github.com/voltbridge/catalog-engine/pkg/repositories"
)

// ScanService runs the full pipeline for one scanned barcode. A scan either
// yields a usable product reference or nothing; it never returns a
// half-built reference.
type ScanService interface {
	// Scan returns (nil, nil) for a malformed identifier.
	Scan(ctx context.Context, barcode string) (*models.ScanResult, error)
}

type scanService struct {
	products   repositories.ProductRepository
	correlator CorrelationService
	builder    GraphBuilder
	cfg        config.CatalogConfig
	logger     *zap.Logger
}

// NewScanService creates a new ScanService.
func NewScanService(
	products repositories.ProductRepository,
	correlator CorrelationService,
	builder GraphBuilder,
	cfg config.CatalogConfig,
	logger *zap.Logger,
) ScanService {
	return &scanService{
		products:   products,
		correlator: correlator,
		builder:    builder,
		cfg:        cfg,
		logger:     logger.Named("scan"),
	}
}

var _ ScanService = (*scanService)(nil)

func (s *scanService) Scan(ctx context.Context, barcode string) (*models.ScanResult, error) {
	barcode = strings.TrimSpace(barcode)
	if !IsValidEAN(barcode) {
		s.logger.Debug("Rejected malformed identifier", zap.String("barcode", barcode))
		return nil, nil
	}

	// A product scanned before carries the identifier in its keyword set;
	// hitting it skips the file search entirely.
	product, err := s.products.FindFirstWithKeyword(ctx, barcode)
	if err != nil {
		return nil, err
	}

	switch {
	case product == nil:
		product, err = s.createFromCatalog(ctx, barcode)
		if err != nil {
			return nil, err
		}
	case s.cfg.AutoAssignBarcode && product.BarcodeHash == "":
		product.AssignBarcode(HashBarcode(barcode), barcode)
		if err := s.products.Update(ctx, product); err != nil {
			return nil, err
		}
		s.logger.Info("Re-assigned barcode to existing product",
			zap.String("product_id", product.ID.String()))
	}

	if product == nil {
		return nil, nil
	}
	return models.NewProductMatch(product), nil
}

func (s *scanService) createFromCatalog(ctx context.Context, barcode string) (*models.Product, error) {
	records, err := s.correlator.Correlate(ctx, barcode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoAnchorPart) {
			// No catalog files are provided; the scan still yields a
			// placeholder the operator can complete manually.
			s.logger.Error("No catalog files are provided")
			records = nil
		} else {
			return nil, err
		}
	}

	if len(records) == 0 {
		return s.builder.BuildPlaceholder(ctx, barcode, s.cfg.DefaultCategory)
	}

	product, err := s.builder.BuildFromRecords(ctx, records)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Created product graph from catalog records",
		zap.String("product_id", product.ID.String()),
		zap.Int("suppliers", len(records)))
	return product, nil
}
