package enrichment

import (
	"context"
	"fmt"
)

const soneparShopBase = "https://www.sonepar.de/dp"

// soneparWebsite only knows the deterministic product URL template; Sonepar
// exposes no image lookup, so ImageURL is always empty.
type soneparWebsite struct {
	sku string
}

func newSoneparWebsite(sku string) *soneparWebsite {
	return &soneparWebsite{sku: sku}
}

func (s *soneparWebsite) ImageURL(ctx context.Context) string {
	return ""
}

func (s *soneparWebsite) PartURL(sku string) string {
	if sku == "" {
		sku = s.sku
	}
	return fmt.Sprintf("%s/%s", soneparShopBase, sku)
}

var _ Website = (*soneparWebsite)(nil)
