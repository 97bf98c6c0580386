package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/diillson/bedrock-profiles-go/internal/application/usecase"
	"github.com/diillson/bedrock-profiles-go/internal/shared/types"
	"github.com/diillson/bedrock-profiles-go/pkg/logger"
	"github.com/diillson/bedrock-profiles-go/pkg/version"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// ManagerBuilder wires the use case once the log level is known from the flags.
type ManagerBuilder func(log zerolog.Logger) *usecase.ProfileManagerUseCase

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd *cobra.Command
	build   ManagerBuilder
	version string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:   "bedrock-profiles",
		Short: "Manage Amazon Bedrock application inference profiles",
		Long: `Create, tag, list and delete Amazon Bedrock application inference profiles.

Without flags an interactive session creates profiles one at a time.
Every created or tagged profile is appended to a CSV audit file.`,
		Version: formattedVersion,
		RunE:    app.runCommand,
	}

	rootCmd.SetVersionTemplate(`{{printf "Bedrock Inference Profile Manager version: %s\n" .Version}}`)

	// Modos
	rootCmd.PersistentFlags().BoolP("list", "l", false, "List application inference profiles and optionally delete them")
	rootCmd.PersistentFlags().StringP("file", "f", "", "Create the profiles listed in a YAML, TOML or JSON batch file")
	rootCmd.PersistentFlags().StringP("tag", "t", "", "Tag existing profiles (and create new ones) from a YAML, TOML or JSON batch file")
	rootCmd.MarkFlagsMutuallyExclusive("list", "file", "tag")

	// Sessão
	rootCmd.PersistentFlags().StringP("region", "r", "", "AWS region (overrides the batch file region)")
	rootCmd.PersistentFlags().StringP("profile", "p", "", "AWS shared config profile to use")

	// Saída
	rootCmd.PersistentFlags().StringP("dir", "d", "", "Directory to save the audit and report files (default: current directory)")
	rootCmd.PersistentFlags().StringP("report-name", "n", "", "Base name of the audit CSV; an existing file is appended to")
	rootCmd.PersistentFlags().StringSliceP("report-type", "y", nil, "Additional run report types: json, pdf")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging on stderr")

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// parseArgs parses command-line arguments into a CLIArgs struct.
func (app *CLIApp) parseArgs() (*types.CLIArgs, error) {
	list, _ := app.rootCmd.Flags().GetBool("list")
	file, _ := app.rootCmd.Flags().GetString("file")
	tagFile, _ := app.rootCmd.Flags().GetString("tag")
	region, _ := app.rootCmd.Flags().GetString("region")
	profile, _ := app.rootCmd.Flags().GetString("profile")
	dir, _ := app.rootCmd.Flags().GetString("dir")
	reportName, _ := app.rootCmd.Flags().GetString("report-name")
	reportTypes, _ := app.rootCmd.Flags().GetStringSlice("report-type")
	verbose, _ := app.rootCmd.Flags().GetBool("verbose")

	// Set default directory to current working directory if not specified
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = cwd
	} else {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		dir = absDir
	}

	args := &types.CLIArgs{
		Mode:        types.ModeInteractiveCreate,
		Region:      strings.TrimSpace(region),
		Profile:     strings.TrimSpace(profile),
		Dir:         dir,
		ReportName:  reportName,
		ReportTypes: reportTypes,
		Verbose:     verbose,
	}

	switch {
	case list:
		args.Mode = types.ModeList
	case file != "":
		args.Mode = types.ModeBatchCreate
		args.File = file
	case tagFile != "":
		args.Mode = types.ModeBatchTag
		args.File = tagFile
	}

	return args, nil
}

// runCommand é o ponto de entrada principal para o comando CLI.
func (app *CLIApp) runCommand(cmd *cobra.Command, args []string) error {
	if app.build == nil {
		return fmt.Errorf("profile manager use case not configured")
	}

	displayWelcomeBanner()

	// Verifica a versão mais recente disponível
	go version.CheckLatestVersion(app.version)

	cliArgs, err := app.parseArgs()
	if err != nil {
		return err
	}

	log := logger.New(cliArgs.Verbose)
	log.Debug().Int("mode", int(cliArgs.Mode)).Str("file", cliArgs.File).Str("dir", cliArgs.Dir).Msg("starting")

	return app.build(log).Run(context.Background(), cliArgs)
}

// SetManagerBuilder sets the function that builds the use case for a run.
func (app *CLIApp) SetManagerBuilder(build ManagerBuilder) {
	app.build = build
}
