package enrichment

import (
	"context"
	"regexp"
	"strings"
)

const wuerthSearchURL = "https://www.wuerth.de/web/media/system/search_redirector.php" +
	"?SearchResultType=all&EffectiveSearchTerm=&ApiLocale=de_DE&VisibleSearchTerm="

// wuerthImagePattern extracts the product image from the search result page.
var wuerthImagePattern = regexp.MustCompile(
	`<img class="img-fluid js-socialshare-media".*?(?:src|data-lazy)="(\S+?)"`)

// wuerthWebsite scrapes the Würth web shop. There is no stable product API;
// the part URL goes through the shop's search redirector and the image is
// pulled out of the result page HTML.
type wuerthWebsite struct {
	gateway   *gateway
	sku       string
	searchURL string
}

func newWuerthWebsite(g *gateway, sku string) *wuerthWebsite {
	return &wuerthWebsite{gateway: g, sku: sku, searchURL: wuerthSearchURL}
}

func (w *wuerthWebsite) ImageURL(ctx context.Context) string {
	body, err := w.gateway.get(ctx, w.PartURL(""))
	if err != nil {
		return ""
	}
	match := wuerthImagePattern.FindSubmatch(body)
	if match == nil {
		return ""
	}
	return string(match[1])
}

func (w *wuerthWebsite) PartURL(sku string) string {
	if sku == "" {
		sku = w.sku
	}
	// Würth SKUs end in a 5-character package quantity that the search does
	// not accept.
	if len(sku) > 5 {
		sku = sku[:len(sku)-5]
	} else {
		sku = ""
	}
	escaped := strings.ReplaceAll(strings.TrimSpace(sku), " ", "%20")
	return w.searchURL + escaped
}

var _ Website = (*wuerthWebsite)(nil)
