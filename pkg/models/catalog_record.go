// Package models contains domain types for catalog-engine.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CatalogRecord holds the fields extracted from one supplier's DATANORM file
// group for a single scanned identifier. A record is built fresh per
// correlation attempt and is never persisted directly; it is consumed to
// build the product graph.
type CatalogRecord struct {
	// Tag is the supplier tag taken from the attachment comment. It is used
	// as the supplier company name because not every supplier fills in the
	// file's own header consistently.
	Tag string

	ItemName    string
	Description string
	Matchcode   string
	EAN         string

	UnitOfMeasure string

	// ProductGroupID and MainProductGroupID are captured from the base file
	// and resolved to names by the product group file.
	ProductGroupID     string
	MainProductGroupID string

	// ProductGroup and MainProductGroup carry the category and parent
	// category names resolved from the product group file.
	ProductGroup     string
	MainProductGroup string

	ManufacturerName string
	// AlternateArticleID is the manufacturer part number.
	AlternateArticleID string
	// ArticleID is the supplier's own SKU.
	ArticleID string

	MinimumPackagingQuantity string

	UnitPrice      decimal.Decimal
	WholesalePrice decimal.Decimal
	Currency       string

	Date time.Time

	// Valid is set once the base file contained a line matching the scanned
	// identifier. Invalid records are dropped by the correlator.
	Valid bool
}
