package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is a node in the two-level category tree. A (name, parent) pair is
// unique; lookup-or-create never produces two categories with the same name
// under the same parent.
type Category struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
