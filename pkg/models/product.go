package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Product represents a catalog product.
type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	CategoryID  uuid.UUID `json:"category_id"`
	Description string    `json:"description"`

	// Keywords is a comma-joined keyword set. It always contains the scanned
	// identifier and accumulates additional identifiers when later scans
	// resolve to the same product name.
	Keywords string `json:"keywords"`

	// Units is the SI-normalized unit symbol ("" means a dimensionless count).
	Units string `json:"units"`

	Purchaseable bool `json:"purchaseable"`
	Active       bool `json:"active"`

	// BarcodeHash and BarcodeData hold the one attached raw identifier.
	BarcodeHash string `json:"barcode_hash"`
	BarcodeData string `json:"barcode_data"`

	// Image is the stored image filename, empty until an enrichment lookup
	// succeeds.
	Image string `json:"image"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AssignBarcode attaches a raw identifier and its stable hash to the product.
func (p *Product) AssignBarcode(hash, payload string) {
	p.BarcodeHash = hash
	p.BarcodeData = payload
}

// AppendKeyword adds a keyword to the comma-joined keyword set. Empty
// keywords and duplicates are ignored.
func (p *Product) AppendKeyword(keyword string) {
	if keyword == "" {
		return
	}
	if p.Keywords == "" {
		p.Keywords = keyword
		return
	}
	for _, existing := range strings.Split(p.Keywords, ",") {
		if existing == keyword {
			return
		}
	}
	p.Keywords = p.Keywords + "," + keyword
}

// APIURL returns the REST path of the product.
func (p *Product) APIURL() string {
	return fmt.Sprintf("/api/part/%s/", p.ID)
}

// WebURL returns the UI path of the product.
func (p *Product) WebURL() string {
	return fmt.Sprintf("/part/%s/", p.ID)
}
