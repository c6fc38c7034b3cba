package models

import (
	"time"

	"github.com/google/uuid"
)

// Company is a counterparty that can hold supplier and/or manufacturer roles.
// Role flags are OR-merged across repeated resolutions and never cleared.
type Company struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	IsSupplier     bool      `json:"is_supplier"`
	IsManufacturer bool      `json:"is_manufacturer"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
