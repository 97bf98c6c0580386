package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/diillson/bedrock-profiles-go/internal/domain/entity"
	"github.com/diillson/bedrock-profiles-go/internal/domain/repository"
	"github.com/diillson/bedrock-profiles-go/internal/shared/types"
)

const (
	modelTypeFoundation = "1"
	modelTypeInference  = "2"
)

// InteractiveUseCase collects one ProfileRequest at a time from the user and hands it to the
// reconciliation engine.
type InteractiveUseCase struct {
	bedrockRepo repository.BedrockRepository
	engine      *ReconcileUseCase
	console     types.ConsoleInterface
}

// NewInteractiveUseCase creates a new interactive create use case.
func NewInteractiveUseCase(bedrockRepo repository.BedrockRepository, engine *ReconcileUseCase, console types.ConsoleInterface) *InteractiveUseCase {
	return &InteractiveUseCase{bedrockRepo: bedrockRepo, engine: engine, console: console}
}

// Run loops until the user stops. Every created profile is recorded to sinkPath immediately.
func (uc *InteractiveUseCase) Run(ctx context.Context, tags entity.Tags, sinkPath string) (entity.BatchSummary, error) {
	var summary entity.BatchSummary

	for {
		outcome, err := uc.createOnce(ctx, tags, sinkPath)
		if err != nil {
			return summary, err
		}
		summary.Add(outcome)

		var again bool
		if outcome.Result.Succeeded() {
			again, err = confirm(uc.console, "Continue to create another Inference Profile?", false)
		} else {
			again, err = confirm(uc.console, "Retry?", true)
		}
		if err != nil {
			return summary, err
		}
		if !again {
			uc.console.Println("\nThanks for using!")
			return summary, nil
		}
	}
}

// createOnce só retorna erro quando a leitura da entrada falha.
func (uc *InteractiveUseCase) createOnce(ctx context.Context, tags entity.Tags, sinkPath string) (entity.OperationOutcome, error) {
	uc.console.Section("Create Application Inference Profile")

	name, err := ask(uc.console, "Enter Inference Profile Name", "")
	if err != nil {
		return entity.OperationOutcome{}, err
	}
	modelType, err := uc.chooseModelType()
	if err != nil {
		return entity.OperationOutcome{}, err
	}

	req := entity.ProfileRequest{Name: name, Tags: tags}

	switch modelType {
	case modelTypeFoundation:
		req.SourceKind = entity.SourceFoundation
		model, err := uc.chooseModel(ctx)
		if err != nil {
			return uc.selectionFailed(req, err)
		}
		req.SourceRef = model.ModelID
		uc.console.LogInfo("Selected model ARN: %s", entity.FoundationModelArn(uc.bedrockRepo.Region(), model.ModelID))

	case modelTypeInference:
		req.SourceKind = entity.SourceInferenceProfile
		profile, err := uc.chooseSystemProfile(ctx)
		if err != nil {
			return uc.selectionFailed(req, err)
		}
		req.SourceRef = profile.InferenceProfileArn
		uc.console.LogInfo("Selected profile ARN: %s", profile.InferenceProfileArn)
	}

	uc.console.LogInfo("Creating Inference Profile...")
	return uc.engine.ProcessOne(ctx, req, sinkPath), nil
}

// chooseModelType pergunta até receber "1" ou "2", sem descartar o nome já informado.
func (uc *InteractiveUseCase) chooseModelType() (string, error) {
	for {
		answer, err := ask(uc.console, "Select Model Type: Foundation Model<1> or Inference Profile<2>", modelTypeFoundation)
		if err != nil {
			return "", err
		}
		switch answer = strings.TrimSpace(answer); answer {
		case modelTypeFoundation, modelTypeInference:
			return answer, nil
		}
		uc.console.LogWarning("Please enter %s or %s", modelTypeFoundation, modelTypeInference)
	}
}

// selectionFailed converts a failure before the create call into a Failed outcome,
// except for input read errors which end the session.
func (uc *InteractiveUseCase) selectionFailed(req entity.ProfileRequest, err error) (entity.OperationOutcome, error) {
	if errors.Is(err, errPrompt) {
		return entity.OperationOutcome{}, err
	}
	uc.console.LogError("ERROR: %s", err)
	return failed(req, err), nil
}

// chooseModel pede palavras-chave até encontrar modelos e então um índice válido.
func (uc *InteractiveUseCase) chooseModel(ctx context.Context) (entity.ModelSummary, error) {
	uc.console.Section("List Available Models")
	for {
		keyword, err := ask(uc.console, "Enter keyword to filter models", "")
		if err != nil {
			return entity.ModelSummary{}, err
		}
		if keyword == "" {
			uc.console.LogWarning("Please enter a valid keyword.")
			continue
		}

		models, err := uc.bedrockRepo.ListModels(ctx, keyword)
		if err != nil {
			return entity.ModelSummary{}, err
		}
		if len(models) == 0 {
			uc.console.LogWarning("No models found with the given keyword. Please try again.")
			continue
		}

		displayModels(uc.console, models)
		idx, err := selectIndex(uc.console, "Select model index", "", len(models))
		if err != nil {
			return entity.ModelSummary{}, err
		}
		return models[idx], nil
	}
}

func (uc *InteractiveUseCase) chooseSystemProfile(ctx context.Context) (entity.RemoteProfile, error) {
	uc.console.Section("List Inference Profiles")
	profiles, err := uc.bedrockRepo.ListProfiles(ctx, entity.ProfileTypeSystemDefined)
	if err != nil {
		return entity.RemoteProfile{}, err
	}
	if len(profiles) == 0 {
		return entity.RemoteProfile{}, types.ErrNoProfiles
	}

	displayProfiles(uc.console, profiles)
	idx, err := selectIndex(uc.console, "Select profile index", "", len(profiles))
	if err != nil {
		return entity.RemoteProfile{}, err
	}
	return profiles[idx], nil
}
