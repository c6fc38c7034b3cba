package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	zanderAPIBase   = "https://zander.online/api/v1.0/shop"
	zanderMediaBase = "https://media.zander.online/v1/media"
	zanderShopBase  = "https://zander.online/artikel"

	zanderImageSize = 600
)

// zanderArticle is the subset of the article details the image URL is built
// from.
type zanderArticle struct {
	Prefix    string `json:"artikel_prefix"`
	Name      string `json:"artikel_name"`
	ArticleNr string `json:"artikel_nr"`
}

// zanderWebsite talks to the Zander shop API. The details endpoint only
// answers within a session, so the lookup warms one up first.
type zanderWebsite struct {
	gateway *gateway
	sku     string

	apiBase   string
	mediaBase string
	shopBase  string

	article *zanderArticle
}

func newZanderWebsite(g *gateway, sku string) *zanderWebsite {
	return &zanderWebsite{
		gateway:   g,
		sku:       sku,
		apiBase:   zanderAPIBase,
		mediaBase: zanderMediaBase,
		shopBase:  zanderShopBase,
	}
}

func (z *zanderWebsite) fetchParameters(ctx context.Context) error {
	now := time.Now().UnixMilli()

	// Session warm-up; the response content does not matter.
	loginURL := fmt.Sprintf("%s/user/open/login?device=&launch=&version=3.119.0&t=%d", z.apiBase, now)
	if _, err := z.gateway.get(ctx, loginURL); err != nil {
		return fmt.Errorf("zander login failed: %w", err)
	}

	detailsURL := fmt.Sprintf("%s/article/%s/details?menge=1&misc=&t=%d", z.apiBase, z.sku, now)
	body, err := z.gateway.get(ctx, detailsURL)
	if err != nil {
		return fmt.Errorf("zander details failed: %w", err)
	}

	var payload struct {
		Result struct {
			Artikel zanderArticle `json:"artikel"`
		} `json:"result"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Errorf("zander details malformed: %w", err)
	}
	z.article = &payload.Result.Artikel
	return nil
}

func (z *zanderWebsite) ImageURL(ctx context.Context) string {
	if z.article == nil {
		if err := z.fetchParameters(ctx); err != nil {
			return ""
		}
	}

	imageName := fmt.Sprintf("%s-%s",
		strings.Join(strings.Fields(z.article.Prefix), "-"),
		strings.Join(strings.Fields(z.article.Name), "-"))
	return fmt.Sprintf("%s/%s/0/%d/%s.jpg", z.mediaBase, z.article.ArticleNr, zanderImageSize, imageName)
}

func (z *zanderWebsite) PartURL(sku string) string {
	if sku == "" {
		sku = z.sku
	}
	return fmt.Sprintf("%s/%s", z.shopBase, sku)
}

var _ Website = (*zanderWebsite)(nil)
