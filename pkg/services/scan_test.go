package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/voltbridge/catalog-engine/pkg/apperrors"
	"github.com/voltbridge/catalog-engine/pkg/config"
	"github.com/voltbridge/catalog-engine/pkg/models"
)

func newScanFixture(t *testing.T, correlator CorrelationService, cfg config.CatalogConfig) (*builderFixture, ScanService) {
	t.Helper()
	f := newBuilderFixture(t, &stubGateway{})
	return f, NewScanService(f.products, correlator, f.builder, cfg, zap.NewNop())
}

func TestScanService_Scan_RejectsMalformedIdentifier(t *testing.T) {
	_, svc := newScanFixture(t, &stubCorrelator{}, config.CatalogConfig{})

	for _, barcode := range []string{"", "12323", "1234567890123", "not-a-barcode"} {
		result, err := svc.Scan(context.Background(), barcode)
		require.NoError(t, err, "barcode %q", barcode)
		assert.Nil(t, result, "barcode %q", barcode)
	}
}

func TestScanService_Scan_BuildsGraphFromCatalog(t *testing.T) {
	correlator := &stubCorrelator{records: []*models.CatalogRecord{catalogRecord("wuerth", "05051234")}}
	f, svc := newScanFixture(t, correlator, config.CatalogConfig{DefaultCategory: "Fallback Category"})

	result, err := svc.Scan(context.Background(), testEAN)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "product", result.Kind)
	require.Len(t, f.products.products, 1)
	product := f.products.products[0]
	assert.Equal(t, product.ID, result.PK)
	assert.Equal(t, "/api/part/"+product.ID.String()+"/", result.APIURL)
	assert.Equal(t, "/part/"+product.ID.String()+"/", result.WebURL)
}

func TestScanService_Scan_IsIdempotent(t *testing.T) {
	correlator := &stubCorrelator{records: []*models.CatalogRecord{catalogRecord("wuerth", "05051234")}}
	f, svc := newScanFixture(t, correlator, config.CatalogConfig{DefaultCategory: "Fallback Category"})
	ctx := context.Background()

	first, err := svc.Scan(ctx, testEAN)
	require.NoError(t, err)

	// The created product carries the identifier as a keyword, so the second
	// scan hits it directly without touching the catalog files again.
	correlator.err = assert.AnError
	second, err := svc.Scan(ctx, testEAN)
	require.NoError(t, err)

	assert.Equal(t, first.PK, second.PK)
	assert.Len(t, f.products.products, 1)
	assert.Len(t, f.supplierParts.parts, 1)
}

func TestScanService_Scan_PlaceholderWhenNothingCorrelates(t *testing.T) {
	f, svc := newScanFixture(t, &stubCorrelator{}, config.CatalogConfig{DefaultCategory: "Fallback Category"})

	result, err := svc.Scan(context.Background(), testEAN)
	require.NoError(t, err)
	require.NotNil(t, result)

	require.Len(t, f.products.products, 1)
	assert.Equal(t, "Unknown part (EAN:"+testEAN+")", f.products.products[0].Name)
	assert.Empty(t, f.supplierParts.parts)
}

func TestScanService_Scan_PlaceholderWhenNoFilesProvided(t *testing.T) {
	correlator := &stubCorrelator{err: apperrors.ErrNoAnchorPart}
	f, svc := newScanFixture(t, correlator, config.CatalogConfig{DefaultCategory: "Fallback Category"})

	result, err := svc.Scan(context.Background(), testEAN)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "Unknown part (EAN:"+testEAN+")", f.products.products[0].Name)
}

func TestScanService_Scan_CorrelationFailure(t *testing.T) {
	correlator := &stubCorrelator{err: assert.AnError}
	_, svc := newScanFixture(t, correlator, config.CatalogConfig{})

	_, err := svc.Scan(context.Background(), testEAN)
	assert.Error(t, err)
}

func TestScanService_Scan_AutoAssignBarcode(t *testing.T) {
	ctx := context.Background()

	t.Run("enabled", func(t *testing.T) {
		f, svc := newScanFixture(t, &stubCorrelator{}, config.CatalogConfig{AutoAssignBarcode: true})
		existing := &models.Product{Name: "Known part", Keywords: testEAN}
		require.NoError(t, f.products.Create(ctx, existing))

		result, err := svc.Scan(ctx, testEAN)
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, existing.ID, result.PK)
		assert.Equal(t, HashBarcode(testEAN), existing.BarcodeHash)
		assert.Equal(t, testEAN, existing.BarcodeData)
	})

	t.Run("disabled", func(t *testing.T) {
		f, svc := newScanFixture(t, &stubCorrelator{}, config.CatalogConfig{})
		existing := &models.Product{Name: "Known part", Keywords: testEAN}
		require.NoError(t, f.products.Create(ctx, existing))

		result, err := svc.Scan(ctx, testEAN)
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Empty(t, existing.BarcodeHash)
	})

	t.Run("never overwrites an existing barcode", func(t *testing.T) {
		f, svc := newScanFixture(t, &stubCorrelator{}, config.CatalogConfig{AutoAssignBarcode: true})
		existing := &models.Product{Name: "Known part", Keywords: testEAN}
		existing.AssignBarcode("deadbeef", "96385074")
		require.NoError(t, f.products.Create(ctx, existing))

		_, err := svc.Scan(ctx, testEAN)
		require.NoError(t, err)
		assert.Equal(t, "deadbeef", existing.BarcodeHash)
		assert.Equal(t, "96385074", existing.BarcodeData)
	})
}

func TestScanService_Scan_TrimsWhitespace(t *testing.T) {
	f, svc := newScanFixture(t, &stubCorrelator{}, config.CatalogConfig{DefaultCategory: "Fallback Category"})

	result, err := svc.Scan(context.Background(), "  "+testEAN+"\n")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, testEAN, f.products.products[0].BarcodeData)
}
