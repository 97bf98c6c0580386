package repository

import (
	"context"

	"github.com/diillson/bedrock-profiles-go/internal/domain/entity"
)

// BedrockRepository defines the interface for Amazon Bedrock inference profile operations.
// Every call is a single blocking request against the service.
type BedrockRepository interface {
	// Region returns the region the client was built for.
	Region() string

	// Model Operations
	ListModels(ctx context.Context, keyword string) ([]entity.ModelSummary, error)

	// Inference Profile Operations
	ListProfiles(ctx context.Context, profileType entity.ProfileType) ([]entity.RemoteProfile, error)
	GetProfileByArn(ctx context.Context, arn string) (entity.RemoteProfile, error)
	CreateProfile(ctx context.Context, name, sourceArn string, tags entity.Tags) (entity.RemoteProfile, error)
	TagResource(ctx context.Context, arn string, tags entity.Tags) error
	DeleteProfile(ctx context.Context, arn string) error
}

// SessionRepository resolves credentials and builds Bedrock clients for a Session.
type SessionRepository interface {
	GetAWSProfiles() []string
	HasDefaultCredentials(ctx context.Context) bool
	VerifySession(ctx context.Context, session entity.Session) (string, error)
	NewBedrockRepository(ctx context.Context, session entity.Session) (BedrockRepository, error)
}
