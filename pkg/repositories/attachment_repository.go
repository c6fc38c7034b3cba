package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/voltbridge/catalog-engine/pkg/database"
	"github.com/voltbridge/catalog-engine/pkg/models"
)

// AttachmentRepository provides data access for the catalog file attachments
// of the anchor product.
type AttachmentRepository interface {
	// ListByProduct returns the attachments of a product in upload order.
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]*models.Attachment, error)
}

type attachmentRepository struct {
	db *database.DB
}

// NewAttachmentRepository creates a new AttachmentRepository.
func NewAttachmentRepository(db *database.DB) AttachmentRepository {
	return &attachmentRepository{db: db}
}

var _ AttachmentRepository = (*attachmentRepository)(nil)

func (r *attachmentRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*models.Attachment, error) {
	query := `
		SELECT id, product_id, basename, comment, file_path, created_at
		FROM attachments
		WHERE product_id = $1
		ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}
	defer rows.Close()

	var attachments []*models.Attachment
	for rows.Next() {
		var a models.Attachment
		if err := rows.Scan(&a.ID, &a.ProductID, &a.Basename, &a.Comment, &a.FilePath, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan attachment: %w", err)
		}
		attachments = append(attachments, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attachments: %w", err)
	}
	return attachments, nil
}
