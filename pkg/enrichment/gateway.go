// Package enrichment provides best-effort supplier website lookups for
// product images and canonical product URLs. Nothing in this package
// propagates network or parse errors to its callers: a failed lookup
// degrades to an empty URL.
package enrichment

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/voltbridge/catalog-engine/pkg/retry"
)

// Website is the capability a known supplier website offers for one SKU.
type Website interface {
	// ImageURL returns the product image URL, or "" when the supplier does
	// not expose one or the lookup failed.
	ImageURL(ctx context.Context) string
	// PartURL returns the canonical product URL for the given SKU. An empty
	// sku means the SKU the capability was resolved with.
	PartURL(sku string) string
}

// Gateway resolves a supplier name to its website capability.
type Gateway interface {
	// Resolve returns nil when the supplier name matches no known website.
	Resolve(ctx context.Context, supplierName, sku string) Website
}

type gateway struct {
	client *http.Client
	logger *zap.Logger
}

// NewGateway creates a Gateway using the given HTTP client. A nil client
// falls back to a 10s-timeout default.
func NewGateway(client *http.Client, logger *zap.Logger) Gateway {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &gateway{
		client: client,
		logger: logger.Named("enrichment"),
	}
}

var _ Gateway = (*gateway)(nil)

// Resolve matches the supplier name case-insensitively against the known
// website fragments. The capability fetches its parameters eagerly; fetch
// failures are logged and leave the capability degraded to empty URLs.
func (g *gateway) Resolve(ctx context.Context, supplierName, sku string) Website {
	upper := strings.ToUpper(supplierName)

	var site Website
	switch {
	case strings.Contains(upper, "WÜRTH") || strings.Contains(upper, "WUERTH"):
		site = newWuerthWebsite(g, sku)
	case strings.Contains(upper, "ZANDER"):
		site = newZanderWebsite(g, sku)
	case strings.Contains(upper, "BÜRKLE") || strings.Contains(upper, "BUERKLE"):
		site = newBuerkleWebsite(g, sku)
	case strings.Contains(upper, "SONEPAR"):
		site = newSoneparWebsite(sku)
	default:
		return nil
	}

	if f, ok := site.(interface{ fetchParameters(context.Context) error }); ok {
		if err := f.fetchParameters(ctx); err != nil {
			g.logger.Debug("Supplier parameter fetch failed",
				zap.String("supplier", supplierName),
				zap.String("sku", sku),
				zap.Error(err))
		}
	}
	return site
}

// enrichmentRetry keeps the lookups short: best-effort calls should not
// stall a scan for long.
var enrichmentRetry = &retry.Config{
	MaxRetries:   2,
	InitialDelay: 200 * time.Millisecond,
	MaxDelay:     2 * time.Second,
	Multiplier:   2.0,
	JitterFactor: 0.1,
}

// get performs a GET with retry on transient failures and returns the body.
func (g *gateway) get(ctx context.Context, url string) ([]byte, error) {
	return retry.DoWithResult(ctx, enrichmentRetry, func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		resp, err := g.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
		}
		return io.ReadAll(resp.Body)
	})
}

// post performs a POST with retry on transient failures and returns the body.
func (g *gateway) post(ctx context.Context, url, contentType string, payload []byte) ([]byte, error) {
	return retry.DoWithResult(ctx, enrichmentRetry, func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(string(payload)))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", contentType)
		resp, err := g.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
		}
		return io.ReadAll(resp.Body)
	})
}
