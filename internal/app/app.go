// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app assembles the vault daemon from its configuration and owns
// its lifecycle: journal storage, the vault session, background workers and
// the loopback API server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/claudia-app/claudia-vault/internal/config"
	"github.com/claudia-app/claudia-vault/internal/crypto"
	"github.com/claudia-app/claudia-vault/internal/handler"
	"github.com/claudia-app/claudia-vault/internal/logger"
	"github.com/claudia-app/claudia-vault/internal/record"
	"github.com/claudia-app/claudia-vault/internal/rotation"
	"github.com/claudia-app/claudia-vault/internal/server"
	"github.com/claudia-app/claudia-vault/internal/service"
	"github.com/claudia-app/claudia-vault/internal/store"
	"github.com/claudia-app/claudia-vault/internal/vault"
	"github.com/claudia-app/claudia-vault/internal/workers"
	"github.com/claudia-app/claudia-vault/models"
)

// App is a wired vault daemon.
type App struct {
	storages  *store.Storages
	session   *vault.Session
	passwords *vault.PasswordsGate
	rotator   *rotation.Rotator
	workers   *workers.Workers
	server    server.Server

	logger *logger.Logger
}

// NewApp opens the journal and wires every component for cfg. The caller
// must Close the returned App.
func NewApp(ctx context.Context, cfg *config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*App, error) {
	storages, err := store.NewStorages(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("create storages: %w", err)
	}

	params := cfg.Vault.CipherParams()
	hasher := crypto.NewCredentialHasher(params)
	codec := record.NewCodec(crypto.NewCipher(params, crypto.WithMaxConcurrentDerivations(cfg.Vault.MaxConcurrentDerivations)))

	session := vault.NewSession(
		vault.NewFileCredentialStore(cfg.Vault.WorkspacePath),
		hasher,
		vault.SessionConfig{IdleTimeout: cfg.Vault.IdleTimeout},
		logger,
	)
	passwords := vault.NewPasswordsGate(session, cfg.Vault.PasswordsTimeout)
	rotator := rotation.NewRotator(codec, hasher, session, storages.RotationJournal, cfg.Vault.WorkspacePath, logger)

	a := &App{
		storages:  storages,
		session:   session,
		passwords: passwords,
		rotator:   rotator,
		workers:   workers.NewWorkers(cfg.Workers, session, passwords, logger),
		logger:    logger,
	}

	services, err := service.NewServices(service.Dependencies{
		Session:   session,
		Passwords: passwords,
		Codec:     codec,
		Rotator:   rotator,
	}, cfg.Vault, buildInfo, logger)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("create services: %w", err), a.Close())
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, logger)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("create handlers: %w", err), a.Close())
	}

	a.server, err = server.NewServer(handlers, cfg.Server, logger)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("create server: %w", err), a.Close())
	}

	return a, nil
}

// Run serves on the configured address until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	return a.run(ctx, a.server.Run)
}

// Serve is Run on an already bound listener.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	return a.run(ctx, func(ctx context.Context) error {
		return a.server.Serve(ctx, ln)
	})
}

func (a *App) run(ctx context.Context, serve func(context.Context) error) error {
	a.reportPendingRotation(ctx)

	a.workers.Start(ctx)
	defer a.workers.Stop()

	a.logger.Info().Msg("vault daemon started")
	err := serve(ctx)
	a.logger.Info().Msg("vault daemon stopped")
	return err
}

func (a *App) reportPendingRotation(ctx context.Context) {
	run, err := a.rotator.Pending(ctx)
	if err != nil {
		a.logger.Err(err).Msg("failed to read rotation journal")
		return
	}
	if run != nil {
		a.logger.Warn().
			Str("run_id", run.ID).
			Int("total", run.Total).
			Time("started_at", run.StartedAt).
			Msg("master password change was interrupted; resume it before using the vault")
	}
}

// Close locks the vault, wiping the resident password, and releases the
// journal database.
func (a *App) Close() error {
	a.passwords.Lock()
	a.session.Lock()
	return a.storages.Close()
}
