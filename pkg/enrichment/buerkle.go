package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
)

const (
	buerkleGraphQLURL = "https://api-prod.alexander-buerkle.com/graphql"
	buerkleShopBase   = "https://alexander-buerkle.com/de-de/produkt"
)

// buerkleQuery asks for the fields the lookup consumes; the shop exposes its
// catalog over GraphQL.
const buerkleQuery = `query ProductPage($sku: String!) { getProductBySku(sku: $sku) { sku productName ean image { url label } } }`

// buerkleWebsite talks to the Alexander Bürkle GraphQL API.
type buerkleWebsite struct {
	gateway *gateway
	sku     string

	apiURL   string
	shopBase string

	product *buerkleProduct
}

type buerkleProduct struct {
	SKU   string `json:"sku"`
	Image []struct {
		URL string `json:"url"`
	} `json:"image"`
}

func newBuerkleWebsite(g *gateway, sku string) *buerkleWebsite {
	return &buerkleWebsite{
		gateway:  g,
		sku:      sku,
		apiURL:   buerkleGraphQLURL,
		shopBase: buerkleShopBase,
	}
}

func (b *buerkleWebsite) fetchParameters(ctx context.Context) error {
	payload, err := json.Marshal(map[string]any{
		"variables": map[string]string{"sku": b.sku},
		"query":     buerkleQuery,
	})
	if err != nil {
		return fmt.Errorf("buerkle query marshal failed: %w", err)
	}

	body, err := b.gateway.post(ctx, b.apiURL, "application/json", payload)
	if err != nil {
		return fmt.Errorf("buerkle lookup failed: %w", err)
	}

	var response struct {
		Data struct {
			GetProductBySku *buerkleProduct `json:"getProductBySku"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return fmt.Errorf("buerkle response malformed: %w", err)
	}
	if response.Data.GetProductBySku == nil {
		return fmt.Errorf("buerkle product %s not found", b.sku)
	}
	b.product = response.Data.GetProductBySku
	return nil
}

func (b *buerkleWebsite) ImageURL(ctx context.Context) string {
	if b.product == nil {
		if err := b.fetchParameters(ctx); err != nil {
			return ""
		}
	}
	if len(b.product.Image) == 0 {
		return ""
	}
	return b.product.Image[0].URL
}

func (b *buerkleWebsite) PartURL(sku string) string {
	if sku == "" {
		sku = b.sku
	}
	return fmt.Sprintf("%s/%s/", b.shopBase, sku)
}

var _ Website = (*buerkleWebsite)(nil)
