// Package repositories contains the PostgreSQL data access layer.
package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/voltbridge/catalog-engine/pkg/database"
	"github.com/voltbridge/catalog-engine/pkg/models"
)

// CategoryRepository provides data access for the category tree.
// Find methods return (nil, nil) when no row matches.
type CategoryRepository interface {
	FindByName(ctx context.Context, name string) (*models.Category, error)
	FindByNameAndParent(ctx context.Context, name string, parentID uuid.UUID) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
}

type categoryRepository struct {
	db *database.DB
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db *database.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

var _ CategoryRepository = (*categoryRepository)(nil)

// FindByName returns the first category with the given name, regardless of
// its parent.
func (r *categoryRepository) FindByName(ctx context.Context, name string) (*models.Category, error) {
	query := `
		SELECT id, name, parent_id, created_at
		FROM categories
		WHERE name = $1
		ORDER BY created_at
		LIMIT 1`

	return r.scanOne(ctx, query, name)
}

// FindByNameAndParent returns the category with the given name scoped to the
// exact parent.
func (r *categoryRepository) FindByNameAndParent(ctx context.Context, name string, parentID uuid.UUID) (*models.Category, error) {
	query := `
		SELECT id, name, parent_id, created_at
		FROM categories
		WHERE name = $1 AND parent_id = $2
		ORDER BY created_at
		LIMIT 1`

	return r.scanOne(ctx, query, name, parentID)
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	category.CreatedAt = time.Now()

	query := `
		INSERT INTO categories (id, name, parent_id, created_at)
		VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(ctx, query, category.ID, category.Name, category.ParentID, category.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *categoryRepository) scanOne(ctx context.Context, query string, args ...any) (*models.Category, error) {
	var c models.Category
	err := r.db.QueryRow(ctx, query, args...).Scan(&c.ID, &c.Name, &c.ParentID, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}
	return &c, nil
}
