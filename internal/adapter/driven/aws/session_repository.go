package aws

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/bedrock"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/diillson/bedrock-profiles-go/internal/domain/entity"
	"github.com/diillson/bedrock-profiles-go/internal/domain/repository"
	"github.com/rs/zerolog"
)

// SessionRepositoryImpl implementa o SessionRepository.
type SessionRepositoryImpl struct {
	homeDir func() (string, error)
	log     zerolog.Logger
}

// NewSessionRepository cria uma nova implementação do SessionRepository.
func NewSessionRepository(log zerolog.Logger) repository.SessionRepository {
	return &SessionRepositoryImpl{homeDir: os.UserHomeDir, log: log}
}

// loadConfig monta a aws.Config a partir da Session, sem ler estado global além da cadeia padrão do SDK.
func (r *SessionRepositoryImpl) loadConfig(ctx context.Context, session entity.Session) (aws.Config, error) {
	var opts []func(*config.LoadOptions) error
	if session.Region != "" {
		opts = append(opts, config.WithRegion(session.Region))
	}
	if session.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(session.Profile))
	}
	if session.HasStaticCredentials() {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(session.AccessKeyID, session.SecretAccessKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		if session.Profile != "" {
			return aws.Config{}, fmt.Errorf("failed to load AWS config for profile %s: %w", session.Profile, err)
		}
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return cfg, nil
}

// GetAWSProfiles lists the profiles found in the shared credentials and config files.
func (r *SessionRepositoryImpl) GetAWSProfiles() []string {
	homeDir, err := r.homeDir()
	if err != nil {
		return nil
	}

	credentialsPath := filepath.Join(homeDir, ".aws", "credentials")
	configPath := filepath.Join(homeDir, ".aws", "config")

	profiles := make(map[string]bool)
	profileRegex := regexp.MustCompile(`\[([^]]+)\]`)

	parseFile := func(path string, isConfig bool) {
		content, err := os.ReadFile(path)
		if err != nil {
			return
		}
		matches := profileRegex.FindAllStringSubmatch(string(content), -1)
		for _, match := range matches {
			profileName := match[1]
			if isConfig {
				// sso-session e services não são perfis
				if strings.HasPrefix(profileName, "sso-session ") || strings.HasPrefix(profileName, "services ") {
					continue
				}
				profileName = strings.TrimPrefix(profileName, "profile ")
			}
			profiles[profileName] = true
		}
	}

	parseFile(credentialsPath, false)
	parseFile(configPath, true)

	result := make([]string, 0, len(profiles))
	for profile := range profiles {
		result = append(result, profile)
	}
	sort.Strings(result)
	return result
}

// HasDefaultCredentials reports whether the default chain (env, role, IMDS) yields credentials.
func (r *SessionRepositoryImpl) HasDefaultCredentials(ctx context.Context) bool {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return false
	}
	if _, err := cfg.Credentials.Retrieve(ctx); err != nil {
		r.log.Debug().Err(err).Msg("no default credentials available")
		return false
	}
	return true
}

// VerifySession calls sts:GetCallerIdentity and returns the account ID.
func (r *SessionRepositoryImpl) VerifySession(ctx context.Context, session entity.Session) (string, error) {
	cfg, err := r.loadConfig(ctx, session)
	if err != nil {
		return "", err
	}

	result, err := sts.NewFromConfig(cfg).GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("error verifying AWS credentials: %w", err)
	}
	return aws.ToString(result.Account), nil
}

// NewBedrockRepository builds the Bedrock gateway bound to the session's region and credentials.
func (r *SessionRepositoryImpl) NewBedrockRepository(ctx context.Context, session entity.Session) (repository.BedrockRepository, error) {
	cfg, err := r.loadConfig(ctx, session)
	if err != nil {
		return nil, err
	}
	if cfg.Region == "" {
		return nil, fmt.Errorf("no region configured for Bedrock client")
	}
	return NewBedrockRepositoryFromClient(bedrock.NewFromConfig(cfg), cfg.Region, r.log), nil
}
