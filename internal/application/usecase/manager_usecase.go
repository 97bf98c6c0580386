package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/diillson/bedrock-profiles-go/internal/domain/entity"
	"github.com/diillson/bedrock-profiles-go/internal/domain/repository"
	"github.com/diillson/bedrock-profiles-go/internal/shared/types"
	"github.com/rs/zerolog"
)

const (
	createSinkPrefix = "inference_profiles"
	tagSinkPrefix    = "tagged_profiles"
)

// ProfileManagerUseCase handles the main CLI workflows.
type ProfileManagerUseCase struct {
	sessionRepo repository.SessionRepository
	configRepo  repository.ConfigRepository
	exportRepo  repository.ExportRepository
	console     types.ConsoleInterface
	log         zerolog.Logger
}

// NewProfileManagerUseCase creates a new profile manager use case.
func NewProfileManagerUseCase(
	sessionRepo repository.SessionRepository,
	configRepo repository.ConfigRepository,
	exportRepo repository.ExportRepository,
	console types.ConsoleInterface,
	log zerolog.Logger,
) *ProfileManagerUseCase {
	return &ProfileManagerUseCase{
		sessionRepo: sessionRepo,
		configRepo:  configRepo,
		exportRepo:  exportRepo,
		console:     console,
		log:         log,
	}
}

// Run executa o workflow selecionado pelos argumentos da CLI.
func (uc *ProfileManagerUseCase) Run(ctx context.Context, args *types.CLIArgs) error {
	switch args.Mode {
	case types.ModeBatchCreate:
		return uc.RunBatchCreate(ctx, args)
	case types.ModeBatchTag:
		return uc.RunBatchTag(ctx, args)
	case types.ModeList:
		return uc.RunList(ctx, args)
	case types.ModeInteractiveCreate:
		return uc.RunInteractiveCreate(ctx, args)
	default:
		return fmt.Errorf("unknown mode %d", args.Mode)
	}
}

// connect establishes the session and builds the Bedrock gateway for it.
func (uc *ProfileManagerUseCase) connect(ctx context.Context, args *types.CLIArgs, configRegion string) (repository.BedrockRepository, error) {
	region := args.Region
	if region == "" {
		region = configRegion
	}

	session, err := NewSessionUseCase(uc.sessionRepo, uc.console).Establish(ctx, args.Profile, region)
	if err != nil {
		return nil, err
	}
	return uc.sessionRepo.NewBedrockRepository(ctx, session)
}

// RunBatchCreate creates every profile listed under bedrock-profiles, in file order.
func (uc *ProfileManagerUseCase) RunBatchCreate(ctx context.Context, args *types.CLIArgs) error {
	cfg, err := uc.configRepo.LoadBatchFile(args.File)
	if err != nil {
		return err
	}
	if len(cfg.ExistingProfiles) > 0 {
		uc.console.LogWarning("existing-profiles-to-tag is ignored when creating; use --tag to tag existing profiles")
	}

	bedrockRepo, err := uc.connect(ctx, args, cfg.Region)
	if err != nil {
		return err
	}

	sinkPath, err := uc.exportRepo.GenerateSinkPath(createSinkPrefix, args.Dir, args.ReportName)
	if err != nil {
		return err
	}

	engine := NewReconcileUseCase(bedrockRepo, uc.exportRepo, uc.console, uc.log)
	summary := engine.Reconcile(ctx, Batch{Items: CreateItems(cfg), Order: OrderInput, SinkPath: sinkPath})
	uc.exportReports(summary, args, createSinkPrefix)
	return nil
}

// RunBatchTag tags existing profiles first, then creates and tags the new ones.
func (uc *ProfileManagerUseCase) RunBatchTag(ctx context.Context, args *types.CLIArgs) error {
	cfg, err := uc.configRepo.LoadBatchFile(args.File)
	if err != nil {
		return err
	}
	if len(cfg.Tags) == 0 {
		return fmt.Errorf("%w: %w", types.ErrConfig, types.ErrNoTags)
	}

	bedrockRepo, err := uc.connect(ctx, args, cfg.Region)
	if err != nil {
		return err
	}

	sinkPath, err := uc.exportRepo.GenerateSinkPath(tagSinkPrefix, args.Dir, args.ReportName)
	if err != nil {
		return err
	}

	items := append(TagItems(cfg), CreateItems(cfg)...)
	engine := NewReconcileUseCase(bedrockRepo, uc.exportRepo, uc.console, uc.log)
	summary := engine.Reconcile(ctx, Batch{Items: items, Order: OrderTagFirst, SinkPath: sinkPath})
	uc.exportReports(summary, args, tagSinkPrefix)
	return nil
}

// RunInteractiveCreate drives the human-in-the-loop create workflow.
func (uc *ProfileManagerUseCase) RunInteractiveCreate(ctx context.Context, args *types.CLIArgs) error {
	bedrockRepo, err := uc.connect(ctx, args, "")
	if err != nil {
		return err
	}

	uc.console.Section("Tag Configuration")
	tags, err := collectTags(uc.console)
	if err != nil {
		return err
	}

	sinkPath, err := uc.exportRepo.GenerateSinkPath(createSinkPrefix, args.Dir, args.ReportName)
	if err != nil {
		return err
	}

	engine := NewReconcileUseCase(bedrockRepo, uc.exportRepo, uc.console, uc.log)
	summary, err := NewInteractiveUseCase(bedrockRepo, engine, uc.console).Run(ctx, tags, sinkPath)
	if engine.Recorded() > 0 {
		uc.console.LogSuccess("Results saved to %s", sinkPath)
	}
	uc.exportReports(summary, args, createSinkPrefix)
	return err
}

// RunList lists application profiles with the option to delete them.
func (uc *ProfileManagerUseCase) RunList(ctx context.Context, args *types.CLIArgs) error {
	bedrockRepo, err := uc.connect(ctx, args, "")
	if err != nil {
		return err
	}
	return NewListUseCase(bedrockRepo, uc.console).Run(ctx)
}

// exportReports writes the optional run report; failures are only logged.
func (uc *ProfileManagerUseCase) exportReports(summary entity.BatchSummary, args *types.CLIArgs, prefix string) {
	if len(summary.Outcomes) == 0 {
		return
	}

	name := args.ReportName
	if name == "" {
		name = prefix + "_report"
	} else {
		name = strings.TrimSuffix(name, ".csv") + "_report"
	}

	for _, reportType := range args.ReportTypes {
		switch strings.ToLower(strings.TrimSpace(reportType)) {
		case "":
		case "json":
			path, err := uc.exportRepo.ExportSummaryToJSON(summary, name, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export run report to JSON: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported run report to JSON: %s", path)
			}
		case "pdf":
			path, err := uc.exportRepo.ExportSummaryToPDF(summary, name, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export run report to PDF: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported run report to PDF: %s", path)
			}
		default:
			uc.console.LogWarning("Unsupported report type: %s", reportType)
		}
	}
}
