package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/voltbridge/catalog-engine/pkg/enrichment"
	"github.com/voltbridge/catalog-engine/pkg/models"
)

// In-memory repository fakes shared by the service tests. They mirror the
// lookup predicates of the PostgreSQL implementations.

type memCategoryRepo struct {
	categories []*models.Category
	createErr  error
}

func (m *memCategoryRepo) FindByName(_ context.Context, name string) (*models.Category, error) {
	for _, c := range m.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, nil
}

func (m *memCategoryRepo) FindByNameAndParent(_ context.Context, name string, parentID uuid.UUID) (*models.Category, error) {
	for _, c := range m.categories {
		if c.Name == name && c.ParentID != nil && *c.ParentID == parentID {
			return c, nil
		}
	}
	return nil, nil
}

func (m *memCategoryRepo) Create(_ context.Context, category *models.Category) error {
	if m.createErr != nil {
		return m.createErr
	}
	category.ID = uuid.New()
	m.categories = append(m.categories, category)
	return nil
}

type memCompanyRepo struct {
	companies []*models.Company
}

func (m *memCompanyRepo) FindFirstNameContains(_ context.Context, substring string) (*models.Company, error) {
	for _, c := range m.companies {
		if strings.Contains(c.Name, substring) {
			return c, nil
		}
	}
	return nil, nil
}

func (m *memCompanyRepo) FindByNameInsensitive(_ context.Context, name string) (*models.Company, error) {
	for _, c := range m.companies {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return nil, nil
}

func (m *memCompanyRepo) Create(_ context.Context, company *models.Company) error {
	company.ID = uuid.New()
	m.companies = append(m.companies, company)
	return nil
}

func (m *memCompanyRepo) Update(_ context.Context, company *models.Company) error {
	for i, c := range m.companies {
		if c.ID == company.ID {
			m.companies[i] = company
			return nil
		}
	}
	return nil
}

type memProductRepo struct {
	products  []*models.Product
	createErr error
	updateErr error
}

func (m *memProductRepo) Create(_ context.Context, product *models.Product) error {
	if m.createErr != nil {
		return m.createErr
	}
	product.ID = uuid.New()
	m.products = append(m.products, product)
	return nil
}

func (m *memProductRepo) Update(_ context.Context, product *models.Product) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	for i, p := range m.products {
		if p.ID == product.ID {
			m.products[i] = product
			return nil
		}
	}
	return nil
}

func (m *memProductRepo) FindByName(_ context.Context, name string) (*models.Product, error) {
	for _, p := range m.products {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, nil
}

func (m *memProductRepo) FindFirstWithKeyword(_ context.Context, keyword string) (*models.Product, error) {
	for _, p := range m.products {
		if strings.Contains(p.Keywords, keyword) {
			return p, nil
		}
	}
	return nil, nil
}

type memManufacturerPartRepo struct {
	parts []*models.ManufacturerPart
}

func (m *memManufacturerPartRepo) Create(_ context.Context, part *models.ManufacturerPart) error {
	part.ID = uuid.New()
	m.parts = append(m.parts, part)
	return nil
}

type memSupplierPartRepo struct {
	parts       []*models.SupplierPart
	priceBreaks []*models.PriceBreak
}

func (m *memSupplierPartRepo) Create(_ context.Context, part *models.SupplierPart) error {
	part.ID = uuid.New()
	m.parts = append(m.parts, part)
	return nil
}

func (m *memSupplierPartRepo) AddPriceBreak(_ context.Context, supplierPartID uuid.UUID, quantity, price decimal.Decimal, currency string) error {
	m.priceBreaks = append(m.priceBreaks, &models.PriceBreak{
		ID:             uuid.New(),
		SupplierPartID: supplierPartID,
		Quantity:       quantity,
		Price:          price,
		Currency:       currency,
	})
	return nil
}

func (m *memSupplierPartRepo) SetManufacturerPart(_ context.Context, supplierPartID, manufacturerPartID uuid.UUID) error {
	for _, p := range m.parts {
		if p.ID == supplierPartID {
			id := manufacturerPartID
			p.ManufacturerPartID = &id
			return nil
		}
	}
	return nil
}

type memAttachmentRepo struct {
	attachments []*models.Attachment
}

func (m *memAttachmentRepo) ListByProduct(_ context.Context, productID uuid.UUID) ([]*models.Attachment, error) {
	var out []*models.Attachment
	for _, a := range m.attachments {
		if a.ProductID == productID {
			out = append(out, a)
		}
	}
	return out, nil
}

// fakeParser serves canned records keyed by file path.
type fakeParser struct {
	// base path -> record template; copied into the target when the
	// template's EAN equals the requested identifier.
	base map[string]models.CatalogRecord
	// group path -> (product group, main product group)
	groups map[string][2]string
	// price path -> (unit price, wholesale price)
	prices map[string][2]string
}

func (f *fakeParser) ParseBase(path, identifier string, rec *models.CatalogRecord) error {
	template, ok := f.base[path]
	if !ok || template.EAN != identifier {
		return nil
	}
	tag := rec.Tag
	*rec = template
	rec.Tag = tag
	rec.Valid = true
	return nil
}

func (f *fakeParser) ParseProductGroups(path string, rec *models.CatalogRecord) error {
	if names, ok := f.groups[path]; ok {
		rec.ProductGroup = names[0]
		rec.MainProductGroup = names[1]
	}
	return nil
}

func (f *fakeParser) ParsePrices(path string, rec *models.CatalogRecord) error {
	if prices, ok := f.prices[path]; ok {
		rec.UnitPrice = decimal.RequireFromString(prices[0])
		rec.WholesalePrice = decimal.RequireFromString(prices[1])
	}
	return nil
}

// stubWebsite is a fixed enrichment capability.
type stubWebsite struct {
	imageURL string
	partURL  string
}

func (s *stubWebsite) ImageURL(context.Context) string { return s.imageURL }
func (s *stubWebsite) PartURL(string) string           { return s.partURL }

// stubGateway resolves every supplier to the same site (or none).
type stubGateway struct {
	site enrichment.Website
}

func (s *stubGateway) Resolve(context.Context, string, string) enrichment.Website {
	return s.site
}

// stubImageFetcher returns fixed bytes.
type stubImageFetcher struct {
	name string
	data []byte
	err  error
}

func (s *stubImageFetcher) Fetch(context.Context, string) (string, []byte, error) {
	return s.name, s.data, s.err
}

// stubCorrelator returns fixed records.
type stubCorrelator struct {
	records []*models.CatalogRecord
	err     error
}

func (s *stubCorrelator) Correlate(context.Context, string) ([]*models.CatalogRecord, error) {
	return s.records, s.err
}
