package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/diillson/bedrock-profiles-go/internal/domain/entity"
	"github.com/diillson/bedrock-profiles-go/internal/domain/repository"
	"github.com/diillson/bedrock-profiles-go/internal/shared/types"
	"github.com/rs/zerolog"
)

// ProfileResolver turns request sources into ARNs and checks remote state before writes.
type ProfileResolver struct {
	bedrockRepo repository.BedrockRepository
	log         zerolog.Logger
}

// NewProfileResolver creates a resolver bound to one Bedrock gateway.
func NewProfileResolver(bedrockRepo repository.BedrockRepository, log zerolog.Logger) *ProfileResolver {
	return &ProfileResolver{bedrockRepo: bedrockRepo, log: log}
}

// SourceArn returns the ARN a new profile copies from. No remote call is made.
func (r *ProfileResolver) SourceArn(req entity.ProfileRequest) (string, error) {
	switch req.SourceKind {
	case entity.SourceFoundation:
		return entity.FoundationModelArn(r.bedrockRepo.Region(), req.SourceRef), nil
	case entity.SourceInferenceProfile:
		return req.SourceRef, nil
	case entity.SourceExistingByArn, entity.SourceExistingByName:
		return "", types.InputError("%s requests do not create a profile", req.SourceKind)
	default:
		return "", types.InputError("unsupported source kind %s", req.SourceKind)
	}
}

// ResolveExisting fetches the current remote state of the profile a tag request points at.
func (r *ProfileResolver) ResolveExisting(ctx context.Context, req entity.ProfileRequest) (entity.RemoteProfile, error) {
	switch req.SourceKind {
	case entity.SourceExistingByArn:
		profile, err := r.bedrockRepo.GetProfileByArn(ctx, req.SourceRef)
		if err != nil {
			if errors.Is(err, types.ErrNotFound) {
				return entity.RemoteProfile{}, fmt.Errorf("%w: %s", types.ErrNotFound, req.SourceRef)
			}
			return entity.RemoteProfile{}, err
		}
		return profile, nil

	case entity.SourceExistingByName:
		profile, found, err := r.FindByName(ctx, req.SourceRef)
		if err != nil {
			return entity.RemoteProfile{}, err
		}
		if !found {
			return entity.RemoteProfile{}, fmt.Errorf("%w: %s", types.ErrNotFound, req.SourceRef)
		}
		return profile, nil

	case entity.SourceFoundation, entity.SourceInferenceProfile:
		return entity.RemoteProfile{}, types.InputError("%s requests do not reference an existing profile", req.SourceKind)
	default:
		return entity.RemoteProfile{}, types.InputError("unsupported source kind %s", req.SourceKind)
	}
}

// FindByName scans application profiles for an exact name match.
// With duplicate names the first one in listing order wins.
func (r *ProfileResolver) FindByName(ctx context.Context, name string) (entity.RemoteProfile, bool, error) {
	profiles, err := r.bedrockRepo.ListProfiles(ctx, entity.ProfileTypeApplication)
	if err != nil {
		return entity.RemoteProfile{}, false, err
	}

	var match entity.RemoteProfile
	matches := 0
	for _, p := range profiles {
		if p.Name != name {
			continue
		}
		if matches == 0 {
			match = p
		}
		matches++
	}

	if matches > 1 {
		r.log.Warn().Str("name", name).Int("matches", matches).Str("arn", match.InferenceProfileArn).
			Msg("multiple inference profiles share this name, using the first one")
	}
	return match, matches > 0, nil
}

// EnsureNameAvailable fails with types.ErrAlreadyExists when an application profile already uses name.
func (r *ProfileResolver) EnsureNameAvailable(ctx context.Context, name string) error {
	existing, found, err := r.FindByName(ctx, name)
	if err != nil {
		return err
	}
	if found {
		return fmt.Errorf("%w: %s (%s)", types.ErrAlreadyExists, name, existing.InferenceProfileArn)
	}
	return nil
}
