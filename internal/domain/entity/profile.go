package entity

import (
	"errors"
	"fmt"
	"strings"
)

// SourceKind identifica de onde vem a origem de um ProfileRequest.
type SourceKind int

const (
	// SourceFoundation creates a profile copying from a foundation model ID.
	SourceFoundation SourceKind = iota
	// SourceInferenceProfile creates a profile copying from an existing inference profile ARN.
	SourceInferenceProfile
	// SourceExistingByArn tags an existing application profile addressed by ARN.
	SourceExistingByArn
	// SourceExistingByName tags an existing application profile addressed by name.
	SourceExistingByName
)

// String returns a human readable name for the kind.
func (k SourceKind) String() string {
	switch k {
	case SourceFoundation:
		return "foundation"
	case SourceInferenceProfile:
		return "inference"
	case SourceExistingByArn:
		return "existing-arn"
	case SourceExistingByName:
		return "existing-name"
	default:
		return fmt.Sprintf("SourceKind(%d)", int(k))
	}
}

// IsCreate reports whether requests of this kind create a new profile.
func (k SourceKind) IsCreate() bool {
	switch k {
	case SourceFoundation, SourceInferenceProfile:
		return true
	default:
		return false
	}
}

// ParseModelType converte o model_type do arquivo de lote em SourceKind.
func ParseModelType(modelType string) (SourceKind, error) {
	switch strings.ToLower(strings.TrimSpace(modelType)) {
	case "foundation":
		return SourceFoundation, nil
	case "inference":
		return SourceInferenceProfile, nil
	default:
		return 0, fmt.Errorf("unknown model_type %q (expected \"foundation\" or \"inference\")", modelType)
	}
}

// ProfileRequest is one desired profile operation, from a batch file or the interactive session.
type ProfileRequest struct {
	Name       string     `json:"name"`
	SourceKind SourceKind `json:"source_kind"`
	SourceRef  string     `json:"source_ref"`
	Tags       Tags       `json:"tags"`
}

// Label returns the best identifier to show for the request.
func (r ProfileRequest) Label() string {
	if r.Name != "" {
		return r.Name
	}
	return r.SourceRef
}

// Validate checks the request is complete enough to be processed.
func (r ProfileRequest) Validate() error {
	if r.SourceKind.IsCreate() && strings.TrimSpace(r.Name) == "" {
		return errors.New("profile name is required")
	}
	if strings.TrimSpace(r.SourceRef) == "" {
		switch r.SourceKind {
		case SourceFoundation:
			return errors.New("model_id is required")
		case SourceInferenceProfile:
			return errors.New("inference profile ARN is required")
		default:
			return errors.New("profile must have either 'name' or 'arn' specified")
		}
	}
	return nil
}

// ProfileType is the remote inference profile type filter.
type ProfileType string

const (
	ProfileTypeSystemDefined ProfileType = "SYSTEM_DEFINED"
	ProfileTypeApplication   ProfileType = "APPLICATION"
)

// ProfileStatus is the remote status of an inference profile.
type ProfileStatus string

const (
	StatusCreating ProfileStatus = "CREATING"
	StatusActive   ProfileStatus = "ACTIVE"
	StatusFailed   ProfileStatus = "FAILED"
	StatusDeleting ProfileStatus = "DELETING"
	StatusUnknown  ProfileStatus = "UNKNOWN"
)

// ParseProfileStatus normaliza o status remoto; valores desconhecidos viram StatusUnknown.
func ParseProfileStatus(s string) ProfileStatus {
	switch ProfileStatus(strings.ToUpper(s)) {
	case StatusCreating:
		return StatusCreating
	case StatusActive:
		return StatusActive
	case StatusFailed:
		return StatusFailed
	case StatusDeleting:
		return StatusDeleting
	default:
		return StatusUnknown
	}
}

// RemoteProfile is a read-only snapshot of an inference profile as returned by Bedrock.
type RemoteProfile struct {
	Name                string        `json:"name"`
	Region              string        `json:"region"`
	ModelArns           []string      `json:"model_arns"`
	InferenceProfileArn string        `json:"inference_profile_arn"`
	InferenceProfileID  string        `json:"inference_profile_id"`
	Status              ProfileStatus `json:"status"`
	Type                ProfileType   `json:"type"`
	Tags                Tags          `json:"tags"`
}

// ModelSummary describes a foundation model available for on-demand invocation.
type ModelSummary struct {
	ModelID      string `json:"model_id"`
	ModelName    string `json:"model_name"`
	ProviderName string `json:"provider_name"`
	ModelArn     string `json:"model_arn"`
}

// FoundationModelArn builds the ARN of a foundation model in the given region.
func FoundationModelArn(region, modelID string) string {
	return fmt.Sprintf("arn:aws:bedrock:%s::foundation-model/%s", region, modelID)
}

// RegionFromArn extracts the region field of an ARN, or "" when it is not an ARN.
func RegionFromArn(arn string) string {
	parts := strings.SplitN(arn, ":", 6)
	if len(parts) < 6 || parts[0] != "arn" {
		return ""
	}
	return parts[3]
}
