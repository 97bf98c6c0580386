package usecase

import (
	"context"
	"fmt"

	"github.com/diillson/bedrock-profiles-go/internal/domain/entity"
	"github.com/diillson/bedrock-profiles-go/internal/domain/repository"
	"github.com/diillson/bedrock-profiles-go/internal/shared/types"
	"github.com/rs/zerolog"
)

// Order controls the processing order of a batch.
type Order int

const (
	// OrderInput processes items strictly in input order (create workflow).
	OrderInput Order = iota
	// OrderTagFirst tags existing profiles first, then creates new ones (tag workflow).
	OrderTagFirst
)

// BatchItem is one entry of a batch. Err marks an entry rejected while reading the
// batch file; it is reported as Failed without touching Bedrock.
type BatchItem struct {
	Request entity.ProfileRequest
	Err     error
}

// Batch is an ordered set of requests plus the audit sink they are recorded to.
type Batch struct {
	Items    []BatchItem
	Order    Order
	SinkPath string
}

// ReconcileUseCase decides create vs tag per request, calls Bedrock and records successes.
type ReconcileUseCase struct {
	bedrockRepo repository.BedrockRepository
	exportRepo  repository.ExportRepository
	resolver    *ProfileResolver
	console     types.ConsoleInterface
	log         zerolog.Logger

	recorded int
}

// NewReconcileUseCase creates a new reconciliation use case.
func NewReconcileUseCase(
	bedrockRepo repository.BedrockRepository,
	exportRepo repository.ExportRepository,
	console types.ConsoleInterface,
	log zerolog.Logger,
) *ReconcileUseCase {
	return &ReconcileUseCase{
		bedrockRepo: bedrockRepo,
		exportRepo:  exportRepo,
		resolver:    NewProfileResolver(bedrockRepo, log),
		console:     console,
		log:         log,
	}
}

// Reconcile processes every item of the batch sequentially. A failing item never stops the batch.
func (uc *ReconcileUseCase) Reconcile(ctx context.Context, batch Batch) entity.BatchSummary {
	var summary entity.BatchSummary
	recordedBefore := uc.recorded

	process := func(items []BatchItem) {
		for _, item := range items {
			summary.Add(uc.processItem(ctx, item, batch.SinkPath))
		}
	}

	switch batch.Order {
	case OrderTagFirst:
		toTag, toCreate := partition(batch.Items)
		if len(toTag) > 0 {
			uc.console.Section(fmt.Sprintf("Tagging %d existing profiles", len(toTag)))
			process(toTag)
		}
		if len(toCreate) > 0 {
			uc.console.Section(fmt.Sprintf("Creating and tagging %d new profiles", len(toCreate)))
			process(toCreate)
		}
	default:
		process(batch.Items)
	}

	uc.printSummary(summary, uc.recorded-recordedBefore, batch.SinkPath)
	return summary
}

// Recorded returns how many audit rows this engine has appended so far.
func (uc *ReconcileUseCase) Recorded() int {
	return uc.recorded
}

// partition separa os itens mantendo a ordem relativa de cada grupo.
func partition(items []BatchItem) (toTag, toCreate []BatchItem) {
	for _, item := range items {
		if item.Request.SourceKind.IsCreate() {
			toCreate = append(toCreate, item)
		} else {
			toTag = append(toTag, item)
		}
	}
	return toTag, toCreate
}

func (uc *ReconcileUseCase) processItem(ctx context.Context, item BatchItem, sinkPath string) entity.OperationOutcome {
	if item.Err != nil {
		outcome := failed(item.Request, item.Err)
		uc.report(outcome)
		return outcome
	}
	return uc.ProcessOne(ctx, item.Request, sinkPath)
}

// ProcessOne handles a single request and appends the audit row right away on success.
// An empty sinkPath disables recording.
func (uc *ReconcileUseCase) ProcessOne(ctx context.Context, req entity.ProfileRequest, sinkPath string) entity.OperationOutcome {
	var outcome entity.OperationOutcome
	if err := req.Validate(); err != nil {
		outcome = failed(req, err)
	} else if req.SourceKind.IsCreate() {
		outcome = uc.create(ctx, req)
	} else {
		outcome = uc.tag(ctx, req)
	}

	uc.report(outcome)
	if outcome.Result.Succeeded() && sinkPath != "" {
		uc.record(outcome, sinkPath)
	}
	return outcome
}

func (uc *ReconcileUseCase) create(ctx context.Context, req entity.ProfileRequest) entity.OperationOutcome {
	sourceArn, err := uc.resolver.SourceArn(req)
	if err != nil {
		return failed(req, err)
	}

	uc.console.LogInfo("Creating profile %s with model ARN: %s", req.Name, sourceArn)

	if err := uc.resolver.EnsureNameAvailable(ctx, req.Name); err != nil {
		return failed(req, err)
	}

	profile, err := uc.bedrockRepo.CreateProfile(ctx, req.Name, sourceArn, req.Tags)
	if err != nil {
		return failed(req, err)
	}

	return entity.OperationOutcome{
		Request:     req,
		Result:      entity.ResultCreated,
		ProfileName: req.Name,
		Arn:         profile.InferenceProfileArn,
	}
}

func (uc *ReconcileUseCase) tag(ctx context.Context, req entity.ProfileRequest) entity.OperationOutcome {
	if req.SourceKind == entity.SourceExistingByName {
		uc.console.LogInfo("Finding profile by name: %s", req.SourceRef)
	}

	profile, err := uc.resolver.ResolveExisting(ctx, req)
	if err != nil {
		return failed(req, err)
	}

	uc.console.LogInfo("Tagging profile: %s (%s)", profile.Name, profile.InferenceProfileArn)

	if err := uc.bedrockRepo.TagResource(ctx, profile.InferenceProfileArn, req.Tags); err != nil {
		return entity.OperationOutcome{
			Request:     req,
			Result:      entity.ResultFailed,
			ProfileName: profile.Name,
			Arn:         profile.InferenceProfileArn,
			Err:         err,
		}
	}

	return entity.OperationOutcome{
		Request:     req,
		Result:      entity.ResultTagged,
		ProfileName: profile.Name,
		Arn:         profile.InferenceProfileArn,
	}
}

// record nunca propaga falhas: o recurso remoto já existe, só o registro local está em risco.
func (uc *ReconcileUseCase) record(outcome entity.OperationOutcome, sinkPath string) {
	written, err := uc.exportRepo.AppendAuditRecords([]entity.OperationOutcome{outcome}, sinkPath)
	if err != nil {
		uc.console.LogError("Error saving to CSV: %s", err)
		uc.log.Error().Err(err).Str("sink", sinkPath).Str("arn", outcome.Arn).Msg("audit append failed")
		return
	}
	uc.recorded += written
	uc.log.Debug().Str("sink", sinkPath).Str("arn", outcome.Arn).Msg("audit record appended")
}

func (uc *ReconcileUseCase) report(outcome entity.OperationOutcome) {
	switch outcome.Result {
	case entity.ResultCreated:
		uc.console.LogSuccess("Inference Profile created: %s", outcome.Arn)
	case entity.ResultTagged:
		uc.console.LogSuccess("Successfully tagged profile: %s", outcome.Name())
	case entity.ResultSkipped:
		uc.console.LogWarning("Skipped profile %s", outcome.Name())
	case entity.ResultFailed:
		uc.console.LogError("Error processing profile %s: %s", outcome.Name(), outcome.ErrorDetail())
	}
}

func (uc *ReconcileUseCase) printSummary(summary entity.BatchSummary, recorded int, sinkPath string) {
	table := uc.console.CreateTable()
	table.AddColumn("Created")
	table.AddColumn("Tagged")
	table.AddColumn("Failed")
	table.AddRow(summary.Created, summary.Tagged, summary.Failed)
	uc.console.Println()
	uc.console.Print(table.Render())

	if summary.Succeeded() == 0 {
		uc.console.LogWarning("No profiles were created or tagged")
		return
	}
	if recorded == 0 {
		uc.console.LogWarning("Processed %d profiles successfully, but no audit rows were written to %s", summary.Succeeded(), sinkPath)
		return
	}
	uc.console.LogSuccess("Processed %d profiles successfully, %d rows appended to %s", summary.Succeeded(), recorded, sinkPath)
}

func failed(req entity.ProfileRequest, err error) entity.OperationOutcome {
	return entity.OperationOutcome{Request: req, Result: entity.ResultFailed, Err: err}
}
