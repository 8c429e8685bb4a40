// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/claudia-app/claudia-vault/internal/adapter"
	"github.com/claudia-app/claudia-vault/internal/config"
	"github.com/claudia-app/claudia-vault/internal/logger"
	"github.com/claudia-app/claudia-vault/models"
)

// AdapterFactory builds the daemon client once configuration is known.
type AdapterFactory func(cfg config.Adapter, logger *logger.Logger) (adapter.VaultAdapter, error)

// Options are the injectable dependencies of the command tree.
type Options struct {
	// NewAdapter defaults to adapter.NewHTTPVaultAdapter.
	NewAdapter AdapterFactory
	// Prompter defaults to a terminal prompter on the command's stdin.
	Prompter Prompter
	// BuildInfo is printed by the version command.
	BuildInfo models.AppBuildInfo
}

// cliApp carries state resolved in PersistentPreRunE to the subcommands.
type cliApp struct {
	opts Options

	address    string
	timeout    time.Duration
	configPath string
	logLevel   string

	cfg      *config.ClientConfig
	logger   *logger.Logger
	vault    adapter.VaultAdapter
	prompter Prompter
}

// NewRootCommand assembles vaultctl.
func NewRootCommand(opts Options) *cobra.Command {
	if opts.NewAdapter == nil {
		opts.NewAdapter = adapter.NewHTTPVaultAdapter
	}
	app := &cliApp{opts: opts}

	root := &cobra.Command{
		Use:           "vaultctl",
		Short:         "Control the Claudia vault daemon",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&app.address, "address", "a", "", "daemon address in host:port format")
	flags.DurationVar(&app.timeout, "timeout", 0, "maximum duration of one daemon call, password rotation excluded")
	flags.StringVarP(&app.configPath, "config", "c", "", "path to a JSON configuration file")
	flags.StringVar(&app.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		app.initCommand(),
		app.statusCommand(),
		app.unlockCommand(),
		app.lockCommand(),
		app.changePasswordCommand(),
		app.resumeRotationCommand(),
		app.rotationCommand(),
		app.decryptCommand(),
		app.migrateCommand(),
		detectCommand(),
		app.versionCommand(),
	)
	return root
}

// connect resolves configuration and builds the daemon client. Commands
// that need the daemon use it as their PreRunE.
func (a *cliApp) connect(cmd *cobra.Command, _ []string) error {
	cfg, err := config.GetClientConfig(&config.StructuredConfig{
		Adapter:      config.Adapter{HTTPAddress: a.address, RequestTimeout: a.timeout},
		Log:          config.Log{Level: a.logLevel},
		JSONFilePath: a.configPath,
	})
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger.NewConsoleLogger("vaultctl", cfg.Log.Level)

	a.vault, err = a.opts.NewAdapter(cfg.Adapter, a.logger)
	if err != nil {
		return err
	}

	a.prompter = a.opts.Prompter
	if a.prompter == nil {
		a.prompter = NewPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
	}
	return nil
}
