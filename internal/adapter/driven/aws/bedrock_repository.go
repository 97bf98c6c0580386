package aws

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrock"
	brTypes "github.com/aws/aws-sdk-go-v2/service/bedrock/types"
	"github.com/aws/smithy-go"
	"github.com/diillson/bedrock-profiles-go/internal/domain/entity"
	"github.com/diillson/bedrock-profiles-go/internal/shared/types"
	"github.com/rs/zerolog"
)

const listProfilesPageSize = 100

// bedrockAPI is the subset of the Bedrock client used by the repository.
type bedrockAPI interface {
	ListFoundationModels(ctx context.Context, params *bedrock.ListFoundationModelsInput, optFns ...func(*bedrock.Options)) (*bedrock.ListFoundationModelsOutput, error)
	ListInferenceProfiles(ctx context.Context, params *bedrock.ListInferenceProfilesInput, optFns ...func(*bedrock.Options)) (*bedrock.ListInferenceProfilesOutput, error)
	GetInferenceProfile(ctx context.Context, params *bedrock.GetInferenceProfileInput, optFns ...func(*bedrock.Options)) (*bedrock.GetInferenceProfileOutput, error)
	CreateInferenceProfile(ctx context.Context, params *bedrock.CreateInferenceProfileInput, optFns ...func(*bedrock.Options)) (*bedrock.CreateInferenceProfileOutput, error)
	DeleteInferenceProfile(ctx context.Context, params *bedrock.DeleteInferenceProfileInput, optFns ...func(*bedrock.Options)) (*bedrock.DeleteInferenceProfileOutput, error)
	TagResource(ctx context.Context, params *bedrock.TagResourceInput, optFns ...func(*bedrock.Options)) (*bedrock.TagResourceOutput, error)
	ListTagsForResource(ctx context.Context, params *bedrock.ListTagsForResourceInput, optFns ...func(*bedrock.Options)) (*bedrock.ListTagsForResourceOutput, error)
}

// BedrockRepositoryImpl implementa o BedrockRepository sobre o SDK v2.
type BedrockRepositoryImpl struct {
	client bedrockAPI
	region string
	log    zerolog.Logger
}

// NewBedrockRepositoryFromClient wraps an existing Bedrock client.
func NewBedrockRepositoryFromClient(client bedrockAPI, region string, log zerolog.Logger) *BedrockRepositoryImpl {
	return &BedrockRepositoryImpl{
		client: client,
		region: region,
		log:    log.With().Str("component", "bedrock").Str("region", region).Logger(),
	}
}

func (r *BedrockRepositoryImpl) Region() string {
	return r.region
}

// ListModels returns on-demand foundation models whose ID contains keyword (case-insensitive).
func (r *BedrockRepositoryImpl) ListModels(ctx context.Context, keyword string) ([]entity.ModelSummary, error) {
	output, err := r.client.ListFoundationModels(ctx, &bedrock.ListFoundationModelsInput{
		ByInferenceType: brTypes.InferenceTypeOnDemand,
	})
	if err != nil {
		return nil, remoteError("ListFoundationModels", err)
	}

	keyword = strings.ToLower(strings.TrimSpace(keyword))
	models := make([]entity.ModelSummary, 0, len(output.ModelSummaries))
	for _, m := range output.ModelSummaries {
		if !supportsOnDemand(m.InferenceTypesSupported) {
			continue
		}
		modelID := aws.ToString(m.ModelId)
		if keyword != "" && !strings.Contains(strings.ToLower(modelID), keyword) {
			continue
		}
		models = append(models, entity.ModelSummary{
			ModelID:      modelID,
			ModelName:    aws.ToString(m.ModelName),
			ProviderName: aws.ToString(m.ProviderName),
			ModelArn:     aws.ToString(m.ModelArn),
		})
	}

	r.log.Debug().Str("keyword", keyword).Int("count", len(models)).Msg("listed foundation models")
	return models, nil
}

func supportsOnDemand(supported []brTypes.InferenceType) bool {
	// Alguns modelos antigos não informam os tipos suportados; o filtro remoto já foi aplicado
	if len(supported) == 0 {
		return true
	}
	for _, t := range supported {
		if t == brTypes.InferenceTypeOnDemand {
			return true
		}
	}
	return false
}

// ListProfiles pages through every profile of the given type and fetches its tags.
// A tag lookup failure leaves that profile with no tags instead of failing the listing.
func (r *BedrockRepositoryImpl) ListProfiles(ctx context.Context, profileType entity.ProfileType) ([]entity.RemoteProfile, error) {
	var profiles []entity.RemoteProfile
	var nextToken *string

	for {
		output, err := r.client.ListInferenceProfiles(ctx, &bedrock.ListInferenceProfilesInput{
			MaxResults: aws.Int32(listProfilesPageSize),
			NextToken:  nextToken,
			TypeEquals: brTypes.InferenceProfileType(profileType),
		})
		if err != nil {
			return nil, remoteError("ListInferenceProfiles", err)
		}

		for _, summary := range output.InferenceProfileSummaries {
			profile := r.convertProfile(
				summary.InferenceProfileName,
				summary.InferenceProfileArn,
				summary.InferenceProfileId,
				summary.Models,
				summary.Status,
				summary.Type,
			)
			profile.Tags = r.profileTags(ctx, profile.InferenceProfileArn)
			profiles = append(profiles, profile)
		}

		nextToken = output.NextToken
		if aws.ToString(nextToken) == "" {
			break
		}
	}

	r.log.Debug().Str("type", string(profileType)).Int("count", len(profiles)).Msg("listed inference profiles")
	return profiles, nil
}

func (r *BedrockRepositoryImpl) profileTags(ctx context.Context, arn string) entity.Tags {
	output, err := r.client.ListTagsForResource(ctx, &bedrock.ListTagsForResourceInput{
		ResourceARN: aws.String(arn),
	})
	if err != nil {
		r.log.Warn().Err(err).Str("arn", arn).Msg("could not fetch tags for inference profile")
		return entity.Tags{}
	}
	return fromBedrockTags(output.Tags)
}

// GetProfileByArn returns types.ErrNotFound when the profile does not exist.
func (r *BedrockRepositoryImpl) GetProfileByArn(ctx context.Context, arn string) (entity.RemoteProfile, error) {
	output, err := r.client.GetInferenceProfile(ctx, &bedrock.GetInferenceProfileInput{
		InferenceProfileIdentifier: aws.String(arn),
	})
	if err != nil {
		return entity.RemoteProfile{}, remoteError("GetInferenceProfile", err)
	}

	return r.convertProfile(
		output.InferenceProfileName,
		output.InferenceProfileArn,
		output.InferenceProfileId,
		output.Models,
		output.Status,
		output.Type,
	), nil
}

// CreateProfile creates an application inference profile copying from sourceArn.
func (r *BedrockRepositoryImpl) CreateProfile(ctx context.Context, name, sourceArn string, tags entity.Tags) (entity.RemoteProfile, error) {
	r.log.Debug().Str("name", name).Str("source", sourceArn).Msg("creating inference profile")

	output, err := r.client.CreateInferenceProfile(ctx, &bedrock.CreateInferenceProfileInput{
		InferenceProfileName: aws.String(name),
		ModelSource:          &brTypes.InferenceProfileModelSourceMemberCopyFrom{Value: sourceArn},
		Tags:                 toBedrockTags(tags),
	})
	if err != nil {
		return entity.RemoteProfile{}, remoteError("CreateInferenceProfile", err)
	}

	arn := aws.ToString(output.InferenceProfileArn)
	return entity.RemoteProfile{
		Name:                name,
		Region:              r.regionOf(arn),
		ModelArns:           []string{sourceArn},
		InferenceProfileArn: arn,
		InferenceProfileID:  profileIDFromArn(arn),
		Status:              entity.ParseProfileStatus(string(output.Status)),
		Type:                entity.ProfileTypeApplication,
		Tags:                tags,
	}, nil
}

// TagResource applies tags as given; duplicate keys follow the service's semantics.
func (r *BedrockRepositoryImpl) TagResource(ctx context.Context, arn string, tags entity.Tags) error {
	_, err := r.client.TagResource(ctx, &bedrock.TagResourceInput{
		ResourceARN: aws.String(arn),
		Tags:        toBedrockTags(tags),
	})
	if err != nil {
		return remoteError("TagResource", err)
	}
	r.log.Debug().Str("arn", arn).Int("tags", len(tags)).Msg("tagged inference profile")
	return nil
}

func (r *BedrockRepositoryImpl) DeleteProfile(ctx context.Context, arn string) error {
	_, err := r.client.DeleteInferenceProfile(ctx, &bedrock.DeleteInferenceProfileInput{
		InferenceProfileIdentifier: aws.String(arn),
	})
	if err != nil {
		return remoteError("DeleteInferenceProfile", err)
	}
	r.log.Debug().Str("arn", arn).Msg("deleted inference profile")
	return nil
}

// --- Funções Auxiliares ---

func (r *BedrockRepositoryImpl) convertProfile(
	name, arn, id *string,
	models []brTypes.InferenceProfileModel,
	status brTypes.InferenceProfileStatus,
	profileType brTypes.InferenceProfileType,
) entity.RemoteProfile {
	modelArns := make([]string, 0, len(models))
	for _, m := range models {
		modelArns = append(modelArns, aws.ToString(m.ModelArn))
	}
	profileArn := aws.ToString(arn)
	return entity.RemoteProfile{
		Name:                aws.ToString(name),
		Region:              r.regionOf(profileArn),
		ModelArns:           modelArns,
		InferenceProfileArn: profileArn,
		InferenceProfileID:  aws.ToString(id),
		Status:              entity.ParseProfileStatus(string(status)),
		Type:                entity.ProfileType(profileType),
		Tags:                entity.Tags{},
	}
}

func (r *BedrockRepositoryImpl) regionOf(arn string) string {
	if region := entity.RegionFromArn(arn); region != "" {
		return region
	}
	return r.region
}

func profileIDFromArn(arn string) string {
	if i := strings.LastIndex(arn, "/"); i >= 0 {
		return arn[i+1:]
	}
	return ""
}

func toBedrockTags(tags entity.Tags) []brTypes.Tag {
	if len(tags) == 0 {
		return nil
	}
	result := make([]brTypes.Tag, 0, len(tags))
	for _, t := range tags {
		result = append(result, brTypes.Tag{Key: aws.String(t.Key), Value: aws.String(t.Value)})
	}
	return result
}

func fromBedrockTags(tags []brTypes.Tag) entity.Tags {
	result := make(entity.Tags, 0, len(tags))
	for _, t := range tags {
		result = append(result, entity.Tag{Key: aws.ToString(t.Key), Value: aws.ToString(t.Value)})
	}
	return result
}

// remoteError traduz erros do SDK para a taxonomia do domínio.
// Only a conflict on create is a name collision and only a missing profile on get is ErrNotFound;
// every other failure stays a RemoteError with the service message.
func remoteError(op string, err error) error {
	var conflict *brTypes.ConflictException
	if op == "CreateInferenceProfile" && errors.As(err, &conflict) {
		return fmt.Errorf("%w: %s", types.ErrAlreadyExists, conflict.ErrorMessage())
	}

	var notFound *brTypes.ResourceNotFoundException
	if op == "GetInferenceProfile" && errors.As(err, &notFound) {
		return fmt.Errorf("%w: %s", types.ErrNotFound, notFound.ErrorMessage())
	}

	message := err.Error()
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		message = apiErr.ErrorMessage()
	}
	return &types.RemoteError{Op: op, Message: message, Err: err}
}
