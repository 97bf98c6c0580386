package repository

import (
	"github.com/diillson/bedrock-profiles-go/internal/shared/types"
)

// ConfigRepository defines the interface for loading batch files.
type ConfigRepository interface {
	LoadBatchFile(filePath string) (*types.BatchConfig, error)
}
