package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/diillson/bedrock-profiles-go/internal/domain/repository"
	"github.com/diillson/bedrock-profiles-go/internal/shared/types"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// ConfigRepositoryImpl implementa o ConfigRepository.
type ConfigRepositoryImpl struct{}

// NewConfigRepository cria uma nova implementação do ConfigRepository.
func NewConfigRepository() repository.ConfigRepository {
	return &ConfigRepositoryImpl{}
}

// LoadBatchFile carrega um arquivo de lote YAML, TOML ou JSON.
// Every failure wraps types.ErrConfig so callers can abort the whole invocation.
func (r *ConfigRepositoryImpl) LoadBatchFile(filePath string) (*types.BatchConfig, error) {
	fileExtension := strings.ToLower(filepath.Ext(filePath))

	// Formato é verificado antes de tocar no disco
	switch fileExtension {
	case ".yaml", ".yml", ".toml", ".json":
	default:
		return nil, types.ConfigError("unsupported file format: %s", filePath)
	}

	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: error accessing batch file: %w", types.ErrConfig, err)
	}
	if fileInfo.IsDir() {
		return nil, types.ConfigError("%s is a directory, not a file", filePath)
	}

	fileData, err := os.ReadFile(filePath) // #nosec G304 -- path is intentional user input
	if err != nil {
		return nil, fmt.Errorf("%w: error reading batch file: %w", types.ErrConfig, err)
	}

	var cfg types.BatchConfig

	switch fileExtension {
	case ".toml":
		if err := toml.Unmarshal(fileData, &cfg); err != nil {
			return nil, fmt.Errorf("%w: error parsing TOML file: %w", types.ErrConfig, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(fileData, &cfg); err != nil {
			return nil, fmt.Errorf("%w: error parsing YAML file: %w", types.ErrConfig, err)
		}
	case ".json":
		if err := json.Unmarshal(fileData, &cfg); err != nil {
			return nil, fmt.Errorf("%w: error parsing JSON file: %w", types.ErrConfig, err)
		}
	}

	cfg.Region = strings.TrimSpace(cfg.Region)
	return &cfg, nil
}
