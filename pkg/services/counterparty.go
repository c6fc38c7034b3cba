package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/voltbridge/catalog-engine/pkg/models"
	"github.com/voltbridge/catalog-engine/pkg/repositories"
)

// CounterpartyService resolves company names to company rows. Matching is
// deliberately fuzzy to absorb the inconsistent self-identification in
// supplier exports: a stored name containing the requested one (or equal to
// it ignoring case) counts as the same counterparty. This is the single
// place role flags change, and a role once granted is never retracted.
type CounterpartyService interface {
	Resolve(ctx context.Context, name string, isSupplier, isManufacturer bool) (*models.Company, error)
}

type counterpartyService struct {
	companies repositories.CompanyRepository
	logger    *zap.Logger
}

// NewCounterpartyService creates a new CounterpartyService.
func NewCounterpartyService(companies repositories.CompanyRepository, logger *zap.Logger) CounterpartyService {
	return &counterpartyService{
		companies: companies,
		logger:    logger.Named("counterparty"),
	}
}

var _ CounterpartyService = (*counterpartyService)(nil)

func (s *counterpartyService) Resolve(ctx context.Context, name string, isSupplier, isManufacturer bool) (*models.Company, error) {
	if name == "" {
		return nil, fmt.Errorf("company name must not be empty")
	}

	company, err := s.companies.FindFirstNameContains(ctx, name)
	if err != nil {
		return nil, err
	}
	if company == nil {
		company, err = s.companies.FindByNameInsensitive(ctx, name)
		if err != nil {
			return nil, err
		}
	}

	if company == nil {
		company = &models.Company{
			Name:           name,
			IsSupplier:     isSupplier,
			IsManufacturer: isManufacturer,
		}
		if err := s.companies.Create(ctx, company); err != nil {
			return nil, err
		}
		s.logger.Info("Created company",
			zap.String("name", name),
			zap.Bool("is_supplier", isSupplier),
			zap.Bool("is_manufacturer", isManufacturer))
		return company, nil
	}

	// Monotonic OR-merge of the requested roles.
	company.IsSupplier = company.IsSupplier || isSupplier
	company.IsManufacturer = company.IsManufacturer || isManufacturer
	if err := s.companies.Update(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}
