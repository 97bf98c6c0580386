package usecase

import (
	"github.com/diillson/bedrock-profiles-go/internal/domain/entity"
	"github.com/diillson/bedrock-profiles-go/internal/shared/types"
)

// CreateItems converts bedrock-profiles entries into create requests, in file order.
func CreateItems(cfg *types.BatchConfig) []BatchItem {
	items := make([]BatchItem, 0, len(cfg.Profiles))
	for _, spec := range cfg.Profiles {
		req := entity.ProfileRequest{
			Name:      spec.Name,
			SourceRef: spec.ModelID,
			Tags:      cfg.Tags,
		}
		kind, err := entity.ParseModelType(spec.ModelType)
		if err != nil {
			items = append(items, BatchItem{Request: req, Err: types.ConfigError("%s", err)})
			continue
		}
		req.SourceKind = kind
		items = append(items, BatchItem{Request: req})
	}
	return items
}

// TagItems converts existing-profiles-to-tag entries into tag requests. ARN wins over name.
func TagItems(cfg *types.BatchConfig) []BatchItem {
	items := make([]BatchItem, 0, len(cfg.ExistingProfiles))
	for _, existing := range cfg.ExistingProfiles {
		req := entity.ProfileRequest{
			SourceKind: entity.SourceExistingByName,
			SourceRef:  existing.Name,
			Tags:       cfg.Tags,
		}
		if existing.Arn != "" {
			req.SourceKind = entity.SourceExistingByArn
			req.SourceRef = existing.Arn
		}
		items = append(items, BatchItem{Request: req})
	}
	return items
}
