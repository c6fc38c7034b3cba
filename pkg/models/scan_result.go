package models

import "github.com/google/uuid"

// ScanResult is the reference returned for a matched scan.
type ScanResult struct {
	Kind   string    `json:"kind"`
	PK     uuid.UUID `json:"pk"`
	APIURL string    `json:"api_url"`
	WebURL string    `json:"web_url"`
}

// NewProductMatch builds the scan response reference for a product.
func NewProductMatch(p *Product) *ScanResult {
	return &ScanResult{
		Kind:   "product",
		PK:     p.ID,
		APIURL: p.APIURL(),
		WebURL: p.WebURL(),
	}
}
