package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/voltbridge/catalog-engine/pkg/models"
	"github.com/voltbridge/catalog-engine/pkg/repositories"
)

// TaxonomyService resolves category names to category rows, creating them on
// first use. Resolution is idempotent under sequential calls; the read-then-
// write is not guarded by a transaction, so concurrent identical calls rely
// on the database's uniqueness constraint.
type TaxonomyService interface {
	// Resolve finds or creates the category named name. With an empty
	// parentName the lookup matches any existing category with that name,
	// regardless of its own parent. With a parentName the parent is found or
	// created at root level first and the child is scoped to that exact
	// parent.
	Resolve(ctx context.Context, name, parentName string) (*models.Category, error)
}

type taxonomyService struct {
	categories repositories.CategoryRepository
	logger     *zap.Logger
}

// NewTaxonomyService creates a new TaxonomyService.
func NewTaxonomyService(categories repositories.CategoryRepository, logger *zap.Logger) TaxonomyService {
	return &taxonomyService{
		categories: categories,
		logger:     logger.Named("taxonomy"),
	}
}

var _ TaxonomyService = (*taxonomyService)(nil)

func (s *taxonomyService) Resolve(ctx context.Context, name, parentName string) (*models.Category, error) {
	if name == "" {
		return nil, fmt.Errorf("category name must not be empty")
	}

	if parentName == "" {
		return s.findOrCreateRoot(ctx, name)
	}

	parent, err := s.findOrCreateRoot(ctx, parentName)
	if err != nil {
		return nil, err
	}

	category, err := s.categories.FindByNameAndParent(ctx, name, parent.ID)
	if err != nil {
		return nil, err
	}
	if category != nil {
		return category, nil
	}

	category = &models.Category{Name: name, ParentID: &parent.ID}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	s.logger.Info("Created category",
		zap.String("name", name),
		zap.String("parent", parentName))
	return category, nil
}

// findOrCreateRoot resolves a root-level category. The lookup deliberately
// ignores the parent of existing categories, so a hierarchical child can
// shadow a same-named root request.
func (s *taxonomyService) findOrCreateRoot(ctx context.Context, name string) (*models.Category, error) {
	category, err := s.categories.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if category != nil {
		return category, nil
	}

	category = &models.Category{Name: name}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	s.logger.Info("Created category", zap.String("name", name))
	return category, nil
}
