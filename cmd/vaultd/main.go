package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/awnumar/memguard"

	"github.com/claudia-app/claudia-vault/internal/app"
	"github.com/claudia-app/claudia-vault/internal/config"
	"github.com/claudia-app/claudia-vault/internal/logger"
	"github.com/claudia-app/claudia-vault/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		logger.NewLogger("vaultd", "info").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewLogger("vaultd", cfg.Log.Level)
	log.Debug().
		Str("workspace", cfg.Vault.WorkspacePath).
		Str("address", cfg.Server.HTTPAddress).
		Str("journal", cfg.Storage.Journal.DSN).
		Msg("received configs")

	if err = run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("vault daemon failed")
	}
}

func run(cfg *config.StructuredConfig, log *logger.Logger) error {
	defer memguard.Purge()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	daemon, err := app.NewApp(ctx, cfg, buildInfo, log)
	if err != nil {
		return err
	}

	runErr := daemon.Run(ctx)
	if err = daemon.Close(); err != nil {
		log.Err(err).Msg("error closing vault daemon")
	}
	return runErr
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
