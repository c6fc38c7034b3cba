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

// CompanyRepository provides data access for counterparties.
// Find methods return (nil, nil) when no row matches.
type CompanyRepository interface {
	// FindFirstNameContains returns the oldest company whose stored name
	// contains the given substring (case-sensitive).
	FindFirstNameContains(ctx context.Context, substring string) (*models.Company, error)
	// FindByNameInsensitive returns the oldest company whose name equals the
	// given name ignoring case.
	FindByNameInsensitive(ctx context.Context, name string) (*models.Company, error)
	Create(ctx context.Context, company *models.Company) error
	Update(ctx context.Context, company *models.Company) error
}

type companyRepository struct {
	db *database.DB
}

// NewCompanyRepository creates a new CompanyRepository.
func NewCompanyRepository(db *database.DB) CompanyRepository {
	return &companyRepository{db: db}
}

var _ CompanyRepository = (*companyRepository)(nil)

func (r *companyRepository) FindFirstNameContains(ctx context.Context, substring string) (*models.Company, error) {
	query := `
		SELECT id, name, is_supplier, is_manufacturer, created_at, updated_at
		FROM companies
		WHERE strpos(name, $1) > 0
		ORDER BY created_at
		LIMIT 1`

	return r.scanOne(ctx, query, substring)
}

func (r *companyRepository) FindByNameInsensitive(ctx context.Context, name string) (*models.Company, error) {
	query := `
		SELECT id, name, is_supplier, is_manufacturer, created_at, updated_at
		FROM companies
		WHERE lower(name) = lower($1)
		ORDER BY created_at
		LIMIT 1`

	return r.scanOne(ctx, query, name)
}

func (r *companyRepository) Create(ctx context.Context, company *models.Company) error {
	if company.ID == uuid.Nil {
		company.ID = uuid.New()
	}
	now := time.Now()
	company.CreatedAt = now
	company.UpdatedAt = now

	query := `
		INSERT INTO companies (id, name, is_supplier, is_manufacturer, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		company.ID, company.Name, company.IsSupplier, company.IsManufacturer,
		company.CreatedAt, company.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}
	return nil
}

func (r *companyRepository) Update(ctx context.Context, company *models.Company) error {
	query := `
		UPDATE companies
		SET name = $2, is_supplier = $3, is_manufacturer = $4, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, query,
		company.ID, company.Name, company.IsSupplier, company.IsManufacturer).Scan(&company.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}
	return nil
}

func (r *companyRepository) scanOne(ctx context.Context, query string, args ...any) (*models.Company, error) {
	var c models.Company
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&c.ID, &c.Name, &c.IsSupplier, &c.IsManufacturer, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query company: %w", err)
	}
	return &c, nil
}
