package usecase

import (
	"context"
	"fmt"

	"github.com/diillson/bedrock-profiles-go/internal/domain/entity"
	"github.com/diillson/bedrock-profiles-go/internal/domain/repository"
	"github.com/diillson/bedrock-profiles-go/internal/shared/types"
)

// ListUseCase lists application inference profiles and optionally deletes some of them.
type ListUseCase struct {
	bedrockRepo repository.BedrockRepository
	console     types.ConsoleInterface
}

// NewListUseCase creates a new list-and-delete use case.
func NewListUseCase(bedrockRepo repository.BedrockRepository, console types.ConsoleInterface) *ListUseCase {
	return &ListUseCase{bedrockRepo: bedrockRepo, console: console}
}

func (uc *ListUseCase) fetch(ctx context.Context) ([]entity.RemoteProfile, error) {
	status := uc.console.Status("Listing Application inference profiles...")
	profiles, err := uc.bedrockRepo.ListProfiles(ctx, entity.ProfileTypeApplication)
	status.Stop()
	if err != nil {
		return nil, err
	}
	displayProfiles(uc.console, profiles)
	return profiles, nil
}

// Run lists profiles and runs the delete loop. Failed deletions are reported and the loop goes on.
func (uc *ListUseCase) Run(ctx context.Context) error {
	profiles, err := uc.fetch(ctx)
	if err != nil {
		return err
	}
	if len(profiles) == 0 {
		return nil
	}

	wantsDelete, err := confirm(uc.console, "Would you like to delete any profile?", false)
	if err != nil || !wantsDelete {
		return err
	}

	for {
		idx, err := selectIndex(uc.console, "Select profile index to delete", "", len(profiles))
		if err != nil {
			return err
		}
		profile := profiles[idx]

		ok, err := confirm(uc.console, fmt.Sprintf("Confirm deletion of profile '%s'?", profile.Name), false)
		if err != nil {
			return err
		}
		if ok {
			if err := uc.bedrockRepo.DeleteProfile(ctx, profile.InferenceProfileArn); err != nil {
				uc.console.LogError("Failed to delete profile %s: %s", profile.Name, err)
			} else {
				uc.console.LogSuccess("Deleted profile %s (%s)", profile.Name, profile.InferenceProfileArn)
				// Estado remoto é sempre relido após uma alteração
				if profiles, err = uc.fetch(ctx); err != nil {
					return err
				}
				if len(profiles) == 0 {
					return nil
				}
			}
		}

		again, err := confirm(uc.console, "Delete another profile?", false)
		if err != nil {
			return err
		}
		if !again {
			uc.console.Println("\nThanks for using!")
			return nil
		}
	}
}
