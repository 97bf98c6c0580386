package main

import (
	"fmt"
	"os"

	"github.com/diillson/bedrock-profiles-go/internal/adapter/driven/aws"
	"github.com/diillson/bedrock-profiles-go/internal/adapter/driven/config"
	"github.com/diillson/bedrock-profiles-go/internal/adapter/driven/export"
	"github.com/diillson/bedrock-profiles-go/internal/adapter/driving/cli"
	"github.com/diillson/bedrock-profiles-go/internal/application/usecase"
	"github.com/diillson/bedrock-profiles-go/pkg/console"
	"github.com/diillson/bedrock-profiles-go/pkg/version"
	"github.com/rs/zerolog"
)

func main() {
	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version)

	// Repositórios que não dependem do nível de log
	exportRepo := export.NewExportRepository()
	configRepo := config.NewConfigRepository()
	consoleImpl := console.NewConsole()

	app.SetManagerBuilder(func(log zerolog.Logger) *usecase.ProfileManagerUseCase {
		return usecase.NewProfileManagerUseCase(
			aws.NewSessionRepository(log),
			configRepo,
			exportRepo,
			consoleImpl,
			log,
		)
	})

	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
