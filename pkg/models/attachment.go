package models

import (
	"time"

	"github.com/google/uuid"
)

// Attachment is a file attached to the configured anchor product. The
// DATANORM export files live as attachments there; the comment associates all
// files of the same supplier.
type Attachment struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	Basename  string    `json:"basename"`
	Comment   string    `json:"comment"`
	FilePath  string    `json:"file_path"`
	CreatedAt time.Time `json:"created_at"`
}
