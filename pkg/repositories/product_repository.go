package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/voltbridge/catalog-engine/pkg/apperrors"
	"github.com/voltbridge/catalog-engine/pkg/database"
	"github.com/voltbridge/catalog-engine/pkg/models"
)

// ProductRepository provides data access for products.
// Find methods return (nil, nil) when no row matches.
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	// FindByName returns the product with the exact given name, if any.
	FindByName(ctx context.Context, name string) (*models.Product, error)
	// FindFirstWithKeyword returns the oldest product whose keyword set
	// contains the given keyword.
	FindFirstWithKeyword(ctx context.Context, keyword string) (*models.Product, error)
}

type productRepository struct {
	db *database.DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *database.DB) ProductRepository {
	return &productRepository{db: db}
}

var _ ProductRepository = (*productRepository)(nil)

const productColumns = `id, name, category_id, description, keywords, units,
	purchaseable, active, barcode_hash, barcode_data, image, created_at, updated_at`

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.Exec(ctx, query,
		product.ID, product.Name, product.CategoryID, product.Description,
		product.Keywords, product.Units, product.Purchaseable, product.Active,
		product.BarcodeHash, product.BarcodeData, product.Image,
		product.CreatedAt, product.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *productRepository) Update(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products
		SET name = $2, category_id = $3, description = $4, keywords = $5,
		    units = $6, purchaseable = $7, active = $8, barcode_hash = $9,
		    barcode_data = $10, image = $11, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, query,
		product.ID, product.Name, product.CategoryID, product.Description,
		product.Keywords, product.Units, product.Purchaseable, product.Active,
		product.BarcodeHash, product.BarcodeData, product.Image).Scan(&product.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

func (r *productRepository) FindByName(ctx context.Context, name string) (*models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE name = $1
		ORDER BY created_at
		LIMIT 1`

	return r.scanOne(ctx, query, name)
}

func (r *productRepository) FindFirstWithKeyword(ctx context.Context, keyword string) (*models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE strpos(keywords, $1) > 0
		ORDER BY created_at
		LIMIT 1`

	return r.scanOne(ctx, query, keyword)
}

func (r *productRepository) scanOne(ctx context.Context, query string, args ...any) (*models.Product, error) {
	var p models.Product
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&p.ID, &p.Name, &p.CategoryID, &p.Description, &p.Keywords, &p.Units,
		&p.Purchaseable, &p.Active, &p.BarcodeHash, &p.BarcodeData, &p.Image,
		&p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query product: %w", err)
	}
	return &p, nil
}
