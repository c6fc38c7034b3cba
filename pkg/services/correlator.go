package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/voltbridge/catalog-engine/pkg/apperrors"
	"github.com/voltbridge/catalog-engine/pkg/config"
	"github.com/voltbridge/catalog-engine/pkg/datanorm"
	"github.com/voltbridge/catalog-engine/pkg/models"
	"github.com/voltbridge/catalog-engine/pkg/repositories"
)

// CorrelationService searches the configured catalog exports for a validated
// identifier and returns one record per supplier file group that matched, in
// enumeration order.
type CorrelationService interface {
	Correlate(ctx context.Context, identifier string) ([]*models.CatalogRecord, error)
}

type correlationService struct {
	attachments repositories.AttachmentRepository
	parser      datanorm.Parser
	cfg         config.CatalogConfig
	logger      *zap.Logger
}

// NewCorrelationService creates a new CorrelationService.
func NewCorrelationService(
	attachments repositories.AttachmentRepository,
	parser datanorm.Parser,
	cfg config.CatalogConfig,
	logger *zap.Logger,
) CorrelationService {
	return &correlationService{
		attachments: attachments,
		parser:      parser,
		cfg:         cfg,
		logger:      logger.Named("correlator"),
	}
}

var _ CorrelationService = (*correlationService)(nil)

func (s *correlationService) Correlate(ctx context.Context, identifier string) ([]*models.CatalogRecord, error) {
	if s.cfg.AnchorPartID == "" {
		return nil, apperrors.ErrNoAnchorPart
	}
	anchorID, err := uuid.Parse(s.cfg.AnchorPartID)
	if err != nil {
		return nil, fmt.Errorf("invalid anchor part id %q: %w", s.cfg.AnchorPartID, err)
	}

	files, err := s.attachments.ListByProduct(ctx, anchorID)
	if err != nil {
		return nil, err
	}

	var records []*models.CatalogRecord
	for _, file := range files {
		if datanorm.DetectKind(file.Basename) != datanorm.KindBase {
			continue
		}

		record := &models.CatalogRecord{Tag: file.Comment}
		if err := s.parser.ParseBase(file.FilePath, identifier, record); err != nil {
			return nil, err
		}
		if !record.Valid {
			s.logger.Debug("Identifier not found in catalog file",
				zap.String("file", file.Basename),
				zap.String("tag", file.Comment))
			continue
		}

		// The group-name and price files of the same supplier are located by
		// tag equality among the same enumeration. Duplicate tags across
		// groups are undefined; the operator has to keep them distinct.
		groupPath, pricePath := companionFiles(files, file.Comment)
		if err := s.parser.ParseProductGroups(groupPath, record); err != nil {
			return nil, err
		}
		if err := s.parser.ParsePrices(pricePath, record); err != nil {
			return nil, err
		}

		s.logger.Info("Identifier found in catalog file",
			zap.String("file", file.Basename),
			zap.String("tag", file.Comment))
		records = append(records, record)
	}

	// The operator can pin all new products to one category, bypassing the
	// category fields of every file uniformly.
	if s.cfg.UseDefaultCategory {
		for _, record := range records {
			record.ProductGroup = s.cfg.DefaultCategory
			record.MainProductGroup = ""
		}
	}

	return records, nil
}

// companionFiles scans the enumeration for the product group and price files
// carrying the given tag.
func companionFiles(files []*models.Attachment, tag string) (groupPath, pricePath string) {
	for _, file := range files {
		if file.Comment != tag {
			continue
		}
		switch datanorm.DetectKind(file.Basename) {
		case datanorm.KindProductGroup:
			groupPath = file.FilePath
		case datanorm.KindPrice:
			pricePath = file.FilePath
		}
	}
	return groupPath, pricePath
}
