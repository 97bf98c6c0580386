package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/diillson/bedrock-profiles-go/internal/domain/entity"
	"github.com/diillson/bedrock-profiles-go/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadBatchFileYAML(t *testing.T) {
	path := writeFile(t, "bedrock-profiles.yaml", `
region: us-west-2
tags:
  - key: team
    value: ml
  - key: env
    value: prod
bedrock-profiles:
  - name: p1
    model_type: foundation
    model_id: m1
  - name: p2
    model_type: inference
    model_id: arn:aws:bedrock:us-west-2:123456789012:inference-profile/us.m2
existing-profiles-to-tag:
  - name: old-profile
  - arn: arn:aws:bedrock:us-west-2:123456789012:application-inference-profile/abc
`)

	cfg, err := NewConfigRepository().LoadBatchFile(path)
	require.NoError(t, err)

	assert.Equal(t, "us-west-2", cfg.Region)
	assert.Equal(t, entity.Tags{{Key: "team", Value: "ml"}, {Key: "env", Value: "prod"}}, cfg.Tags)
	require.Len(t, cfg.Profiles, 2)
	assert.Equal(t, types.ProfileSpec{Name: "p1", ModelType: "foundation", ModelID: "m1"}, cfg.Profiles[0])
	assert.Equal(t, "inference", cfg.Profiles[1].ModelType)
	require.Len(t, cfg.ExistingProfiles, 2)
	assert.Equal(t, "old-profile", cfg.ExistingProfiles[0].Name)
	assert.Empty(t, cfg.ExistingProfiles[0].Arn)
	assert.Equal(t, "arn:aws:bedrock:us-west-2:123456789012:application-inference-profile/abc", cfg.ExistingProfiles[1].Arn)
}

func TestLoadBatchFileTOMLAndJSON(t *testing.T) {
	tomlPath := writeFile(t, "batch.toml", `
region = "eu-west-1"

[[tags]]
key = "team"
value = "ml"

[[bedrock-profiles]]
name = "p1"
model_type = "foundation"
model_id = "m1"
`)
	jsonPath := writeFile(t, "batch.json", `{
  "region": "eu-west-1",
  "tags": [{"key": "team", "value": "ml"}],
  "bedrock-profiles": [{"name": "p1", "model_type": "foundation", "model_id": "m1"}]
}`)

	repo := NewConfigRepository()
	for _, path := range []string{tomlPath, jsonPath} {
		cfg, err := repo.LoadBatchFile(path)
		require.NoError(t, err, path)
		assert.Equal(t, "eu-west-1", cfg.Region)
		assert.Equal(t, entity.Tags{{Key: "team", Value: "ml"}}, cfg.Tags)
		require.Len(t, cfg.Profiles, 1)
		assert.Equal(t, "m1", cfg.Profiles[0].ModelID)
	}
}

func TestLoadBatchFileErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{
			name: "unsupported extension",
			path: func(t *testing.T) string { return writeFile(t, "batch.txt", "region: us-east-1") },
		},
		{
			name: "missing file",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.yaml") },
		},
		{
			name: "directory",
			path: func(t *testing.T) string {
				dir := filepath.Join(t.TempDir(), "dir.yaml")
				require.NoError(t, os.Mkdir(dir, 0o755))
				return dir
			},
		},
		{
			name: "malformed yaml",
			path: func(t *testing.T) string { return writeFile(t, "bad.yml", "tags: [unclosed") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewConfigRepository().LoadBatchFile(tt.path(t))
			assert.Nil(t, cfg)
			assert.ErrorIs(t, err, types.ErrConfig)
		})
	}
}
