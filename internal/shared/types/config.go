package types

import "github.com/diillson/bedrock-profiles-go/internal/domain/entity"

// BatchConfig represents a batch file for creating or tagging inference profiles.
type BatchConfig struct {
	Region           string            `json:"region" yaml:"region" toml:"region"`
	Tags             entity.Tags       `json:"tags" yaml:"tags" toml:"tags"`
	Profiles         []ProfileSpec     `json:"bedrock-profiles" yaml:"bedrock-profiles" toml:"bedrock-profiles"`
	ExistingProfiles []ExistingProfile `json:"existing-profiles-to-tag" yaml:"existing-profiles-to-tag" toml:"existing-profiles-to-tag"`
}

// ProfileSpec is one entry of bedrock-profiles.
type ProfileSpec struct {
	Name      string `json:"name" yaml:"name" toml:"name"`
	ModelType string `json:"model_type" yaml:"model_type" toml:"model_type"`
	ModelID   string `json:"model_id" yaml:"model_id" toml:"model_id"`
}

// ExistingProfile is one entry of existing-profiles-to-tag; either Name or Arn is set.
type ExistingProfile struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Arn  string `json:"arn,omitempty" yaml:"arn,omitempty" toml:"arn,omitempty"`
}
