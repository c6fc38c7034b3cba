package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ManufacturerPart links a product to its manufacturer. A graph build creates
// at most one per product, named after the first correlated record that
// carries a manufacturer.
type ManufacturerPart struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	CompanyID uuid.UUID `json:"company_id"`
	MPN       string    `json:"mpn"`
	CreatedAt time.Time `json:"created_at"`
}

// SupplierPart links a product to one supplier's listing of it. One is
// created per correlated catalog record.
type SupplierPart struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	CompanyID uuid.UUID `json:"company_id"`
	SKU       string    `json:"sku"`
	Link      string    `json:"link"`

	PackQuantity string `json:"pack_quantity"`

	// ManufacturerPartID is backfilled after all supplier parts of a graph
	// build exist, since manufacturer discovery order is not guaranteed to
	// precede supplier creation order.
	ManufacturerPartID *uuid.UUID `json:"manufacturer_part_id,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`

	PriceBreaks []PriceBreak `json:"price_breaks,omitempty"`
}

// PriceBreak is a price valid from a minimum order quantity upwards.
type PriceBreak struct {
	ID             uuid.UUID       `json:"id"`
	SupplierPartID uuid.UUID       `json:"supplier_part_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	Price          decimal.Decimal `json:"price"`
	Currency       string          `json:"currency"`
}
