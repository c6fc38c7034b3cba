package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/voltbridge/catalog-engine/pkg/enrichment"
	"github.com/voltbridge/catalog-engine/pkg/models"
	"github.com/voltbridge/catalog-engine/pkg/repositories"
)

// GraphConfig is the explicit configuration the builder consumes, passed in
// rather than read from ambient state so the builder stays testable without
// a host runtime.
type GraphConfig struct {
	// DefaultCategory is used when a record carries no category at all.
	DefaultCategory string
	// MediaDir is where fetched product images are stored.
	MediaDir string
}

// GraphBuilder assembles the persisted product graph for a scan: the
// product, at most one manufacturer part, and one supplier part per
// correlated record.
//
// The writes are not wrapped in a transaction; a failure mid-build can leave
// a product without its supplier parts. That mirrors the host persistence
// model this pipeline was built against and is accepted here.
type GraphBuilder interface {
	// BuildPlaceholder creates a minimal product for an identifier that no
	// catalog file knows, filed under categoryName.
	BuildPlaceholder(ctx context.Context, identifier, categoryName string) (*models.Product, error)
	// BuildFromRecords builds the full graph from a non-empty correlated
	// record list.
	BuildFromRecords(ctx context.Context, records []*models.CatalogRecord) (*models.Product, error)
}

type graphBuilder struct {
	products          repositories.ProductRepository
	manufacturerParts repositories.ManufacturerPartRepository
	supplierParts     repositories.SupplierPartRepository
	taxonomy          TaxonomyService
	counterparties    CounterpartyService
	gateway           enrichment.Gateway
	images            enrichment.ImageFetcher
	cfg               GraphConfig
	logger            *zap.Logger
}

// NewGraphBuilder creates a new GraphBuilder.
func NewGraphBuilder(
	products repositories.ProductRepository,
	manufacturerParts repositories.ManufacturerPartRepository,
	supplierParts repositories.SupplierPartRepository,
	taxonomy TaxonomyService,
	counterparties CounterpartyService,
	gateway enrichment.Gateway,
	images enrichment.ImageFetcher,
	cfg GraphConfig,
	logger *zap.Logger,
) GraphBuilder {
	return &graphBuilder{
		products:          products,
		manufacturerParts: manufacturerParts,
		supplierParts:     supplierParts,
		taxonomy:          taxonomy,
		counterparties:    counterparties,
		gateway:           gateway,
		images:            images,
		cfg:               cfg,
		logger:            logger.Named("graph-builder"),
	}
}

var _ GraphBuilder = (*graphBuilder)(nil)

func (b *graphBuilder) BuildPlaceholder(ctx context.Context, identifier, categoryName string) (*models.Product, error) {
	category, err := b.taxonomy.Resolve(ctx, categoryName, "")
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:         fmt.Sprintf("Unknown part (EAN:%s)", identifier),
		CategoryID:   category.ID,
		Description:  fmt.Sprintf("Please complete this part manually! EAN: %s", identifier),
		Keywords:     identifier,
		Purchaseable: true,
		Active:       true,
	}
	product.AssignBarcode(HashBarcode(identifier), identifier)

	if err := b.products.Create(ctx, product); err != nil {
		return nil, err
	}
	b.logger.Info("Created placeholder product",
		zap.String("identifier", identifier),
		zap.String("product_id", product.ID.String()))
	return product, nil
}

func (b *graphBuilder) BuildFromRecords(ctx context.Context, records []*models.CatalogRecord) (*models.Product, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("no catalog records to build from")
	}
	first := records[0]

	product, err := b.resolveProduct(ctx, first)
	if err != nil {
		return nil, err
	}

	// Phase one: create the supplier parts, and lazily at most one
	// manufacturer part the first time a record names a manufacturer. Later
	// records' manufacturer names are ignored even when they differ.
	var manufacturerPart *models.ManufacturerPart
	var created []*models.SupplierPart
	for _, record := range records {
		if manufacturerPart == nil && record.ManufacturerName != "" {
			manufacturerPart, err = b.createManufacturerPart(ctx, product, record)
			if err != nil {
				return nil, err
			}
		}

		supplierPart, err := b.createSupplierPart(ctx, product, record)
		if err != nil {
			return nil, err
		}
		created = append(created, supplierPart)
	}

	// Phase two: backfill the manufacturer reference. Supplier parts created
	// before the manufacturer was discovered are patched retroactively so
	// all of them end up pointing at the same single manufacturer part.
	if manufacturerPart != nil {
		for _, supplierPart := range created {
			if err := b.supplierParts.SetManufacturerPart(ctx, supplierPart.ID, manufacturerPart.ID); err != nil {
				return nil, err
			}
			supplierPart.ManufacturerPartID = &manufacturerPart.ID
		}
	}

	return product, nil
}

// resolveProduct returns the product the records describe: the existing
// product with the same name (its keyword set extended by the scanned
// identifier), or a freshly created one.
func (b *graphBuilder) resolveProduct(ctx context.Context, first *models.CatalogRecord) (*models.Product, error) {
	product, err := b.products.FindByName(ctx, first.ItemName)
	if err != nil {
		return nil, err
	}
	if product != nil {
		product.AppendKeyword(first.EAN)
		if err := b.products.Update(ctx, product); err != nil {
			return nil, err
		}
		b.logger.Info("Extended existing product",
			zap.String("product_id", product.ID.String()),
			zap.String("identifier", first.EAN))
		return product, nil
	}

	category, err := b.resolveCategory(ctx, first)
	if err != nil {
		return nil, err
	}

	keywords := []string{strings.TrimSpace(first.Matchcode), first.EAN}
	product = &models.Product{
		Name:         first.ItemName,
		CategoryID:   category.ID,
		Description:  first.Description,
		Keywords:     strings.Join(nonEmpty(keywords), ","),
		Units:        FormatSIUnits(first.UnitOfMeasure),
		Purchaseable: true,
		Active:       true,
	}
	product.AssignBarcode(HashBarcode(first.EAN), first.EAN)

	if err := b.products.Create(ctx, product); err != nil {
		return nil, err
	}
	b.logger.Info("Created product",
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name))
	return product, nil
}

// resolveCategory applies the category precedence of the first record: both
// names empty falls back to the default category; an empty child promotes
// the parent to root level; otherwise the pair resolves hierarchically.
func (b *graphBuilder) resolveCategory(ctx context.Context, record *models.CatalogRecord) (*models.Category, error) {
	switch {
	case record.ProductGroup == "" && record.MainProductGroup == "":
		return b.taxonomy.Resolve(ctx, b.cfg.DefaultCategory, "")
	case record.ProductGroup == "":
		return b.taxonomy.Resolve(ctx, record.MainProductGroup, "")
	default:
		return b.taxonomy.Resolve(ctx, record.ProductGroup, record.MainProductGroup)
	}
}

func (b *graphBuilder) createManufacturerPart(ctx context.Context, product *models.Product, record *models.CatalogRecord) (*models.ManufacturerPart, error) {
	manufacturer, err := b.counterparties.Resolve(ctx, record.ManufacturerName, false, true)
	if err != nil {
		return nil, err
	}

	part := &models.ManufacturerPart{
		ProductID: product.ID,
		CompanyID: manufacturer.ID,
		MPN:       record.AlternateArticleID,
	}
	if err := b.manufacturerParts.Create(ctx, part); err != nil {
		return nil, err
	}
	return part, nil
}

func (b *graphBuilder) createSupplierPart(ctx context.Context, product *models.Product, record *models.CatalogRecord) (*models.SupplierPart, error) {
	// The record's tag names the supplier, not the file's own header, since
	// not every supplier fills that in consistently.
	supplier, err := b.counterparties.Resolve(ctx, record.Tag, true, false)
	if err != nil {
		return nil, err
	}

	link := ""
	if site := b.gateway.Resolve(ctx, record.Tag, record.ArticleID); site != nil {
		link = site.PartURL("")
		if product.Image == "" {
			b.fetchImage(ctx, product, site)
		}
	}

	part := &models.SupplierPart{
		ProductID:    product.ID,
		CompanyID:    supplier.ID,
		SKU:          record.ArticleID,
		Link:         link,
		PackQuantity: record.MinimumPackagingQuantity,
		UpdatedAt:    record.Date,
	}
	if err := b.supplierParts.Create(ctx, part); err != nil {
		return nil, err
	}

	if err := b.supplierParts.AddPriceBreak(ctx, part.ID, decimal.NewFromInt(1), record.UnitPrice, record.Currency); err != nil {
		return nil, err
	}
	return part, nil
}

// fetchImage attaches the supplier's product image, if any, to a product
// that has none yet. The first success across the build wins; failures only
// get logged.
func (b *graphBuilder) fetchImage(ctx context.Context, product *models.Product, site enrichment.Website) {
	imageURL := site.ImageURL(ctx)
	if imageURL == "" {
		return
	}

	name, data, err := b.images.Fetch(ctx, imageURL)
	if err != nil {
		b.logger.Warn("Image fetch failed",
			zap.String("url", imageURL),
			zap.Error(err))
		return
	}

	if b.cfg.MediaDir != "" {
		if err := os.MkdirAll(b.cfg.MediaDir, 0o755); err != nil {
			b.logger.Warn("Failed to create media dir", zap.Error(err))
			return
		}
		if err := os.WriteFile(filepath.Join(b.cfg.MediaDir, name), data, 0o644); err != nil {
			b.logger.Warn("Failed to store image", zap.Error(err))
			return
		}
	}

	product.Image = name
	if err := b.products.Update(ctx, product); err != nil {
		b.logger.Warn("Failed to record image on product", zap.Error(err))
		product.Image = ""
	}
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
