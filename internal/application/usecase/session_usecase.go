package usecase

import (
	"context"
	"fmt"

	"github.com/diillson/bedrock-profiles-go/internal/domain/entity"
	"github.com/diillson/bedrock-profiles-go/internal/domain/repository"
	"github.com/diillson/bedrock-profiles-go/internal/shared/types"
)

// DefaultRegion is proposed when neither the flag nor the batch file sets a region.
const DefaultRegion = "ap-northeast-1"

// SessionUseCase escolhe credenciais e região e valida a sessão antes de qualquer operação.
type SessionUseCase struct {
	sessionRepo repository.SessionRepository
	console     types.ConsoleInterface
}

// NewSessionUseCase creates a new session use case.
func NewSessionUseCase(sessionRepo repository.SessionRepository, console types.ConsoleInterface) *SessionUseCase {
	return &SessionUseCase{sessionRepo: sessionRepo, console: console}
}

// Establish builds a verified Session. An explicit profile skips the credential prompt and an
// explicit region skips the region prompt.
func (uc *SessionUseCase) Establish(ctx context.Context, profile, region string) (entity.Session, error) {
	session := entity.Session{Profile: profile}

	if session.Profile == "" {
		if err := uc.chooseCredentials(ctx, &session); err != nil {
			return entity.Session{}, err
		}
	}

	session.Region = region
	if session.Region == "" {
		r, err := ask(uc.console, "Enter Region", DefaultRegion)
		if err != nil {
			return entity.Session{}, err
		}
		session.Region = r
	}

	status := uc.console.Status("Verifying AWS credentials...")
	accountID, err := uc.sessionRepo.VerifySession(ctx, session)
	status.Stop()
	if err != nil {
		return entity.Session{}, err
	}
	session.AccountID = accountID
	uc.console.LogInfo("Using account %s in region %s", accountID, session.Region)

	return session, nil
}

func (uc *SessionUseCase) chooseCredentials(ctx context.Context, session *entity.Session) error {
	profiles := uc.sessionRepo.GetAWSProfiles()
	if len(profiles) > 0 {
		uc.console.Section("Choose AWS Credential Profile")
		for i, p := range profiles {
			uc.console.Printf("%d. %s\n", i, p)
		}
		idx, err := selectIndex(uc.console, "Select profile", "0", len(profiles))
		if err != nil {
			return err
		}
		session.Profile = profiles[idx]
		return nil
	}

	if uc.sessionRepo.HasDefaultCredentials(ctx) {
		uc.console.Section("Will use AWS Credential from the Role")
		return nil
	}

	uc.console.Section("Input AWS Credential Information")
	ak, err := uc.console.PromptSecret("Enter AWS Access Key ID (hidden)")
	if err != nil {
		return fmt.Errorf("%w: %w", errPrompt, err)
	}
	sk, err := uc.console.PromptSecret("Enter AWS Secret Access Key (hidden)")
	if err != nil {
		return fmt.Errorf("%w: %w", errPrompt, err)
	}
	session.AccessKeyID = ak
	session.SecretAccessKey = sk
	return nil
}
