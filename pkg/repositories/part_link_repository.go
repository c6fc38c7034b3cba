package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/voltbridge/catalog-engine/pkg/database"
	"github.com/voltbridge/catalog-engine/pkg/models"
)

// ManufacturerPartRepository provides data access for manufacturer parts.
type ManufacturerPartRepository interface {
	Create(ctx context.Context, part *models.ManufacturerPart) error
}

// SupplierPartRepository provides data access for supplier parts and their
// price breaks.
type SupplierPartRepository interface {
	Create(ctx context.Context, part *models.SupplierPart) error
	AddPriceBreak(ctx context.Context, supplierPartID uuid.UUID, quantity, price decimal.Decimal, currency string) error
	// SetManufacturerPart backfills the manufacturer reference on an already
	// created supplier part.
	SetManufacturerPart(ctx context.Context, supplierPartID, manufacturerPartID uuid.UUID) error
}

type manufacturerPartRepository struct {
	db *database.DB
}

// NewManufacturerPartRepository creates a new ManufacturerPartRepository.
func NewManufacturerPartRepository(db *database.DB) ManufacturerPartRepository {
	return &manufacturerPartRepository{db: db}
}

var _ ManufacturerPartRepository = (*manufacturerPartRepository)(nil)

func (r *manufacturerPartRepository) Create(ctx context.Context, part *models.ManufacturerPart) error {
	if part.ID == uuid.Nil {
		part.ID = uuid.New()
	}
	part.CreatedAt = time.Now()

	query := `
		INSERT INTO manufacturer_parts (id, product_id, company_id, mpn, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, query, part.ID, part.ProductID, part.CompanyID, part.MPN, part.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create manufacturer part: %w", err)
	}
	return nil
}

type supplierPartRepository struct {
	db *database.DB
}

// NewSupplierPartRepository creates a new SupplierPartRepository.
func NewSupplierPartRepository(db *database.DB) SupplierPartRepository {
	return &supplierPartRepository{db: db}
}

var _ SupplierPartRepository = (*supplierPartRepository)(nil)

func (r *supplierPartRepository) Create(ctx context.Context, part *models.SupplierPart) error {
	if part.ID == uuid.Nil {
		part.ID = uuid.New()
	}
	if part.UpdatedAt.IsZero() {
		part.UpdatedAt = time.Now()
	}

	query := `
		INSERT INTO supplier_parts (id, product_id, company_id, sku, link,
			pack_quantity, manufacturer_part_id, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, query,
		part.ID, part.ProductID, part.CompanyID, part.SKU, part.Link,
		part.PackQuantity, part.ManufacturerPartID, part.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create supplier part: %w", err)
	}
	return nil
}

func (r *supplierPartRepository) AddPriceBreak(ctx context.Context, supplierPartID uuid.UUID, quantity, price decimal.Decimal, currency string) error {
	query := `
		INSERT INTO supplier_price_breaks (id, supplier_part_id, quantity, price, currency)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, query, uuid.New(), supplierPartID, quantity, price, currency)
	if err != nil {
		return fmt.Errorf("failed to add price break: %w", err)
	}
	return nil
}

func (r *supplierPartRepository) SetManufacturerPart(ctx context.Context, supplierPartID, manufacturerPartID uuid.UUID) error {
	query := `
		UPDATE supplier_parts
		SET manufacturer_part_id = $2, updated_at = now()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, supplierPartID, manufacturerPartID)
	if err != nil {
		return fmt.Errorf("failed to set manufacturer part: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("supplier part %s not found", supplierPartID)
	}
	return nil
}
