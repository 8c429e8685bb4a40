// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/claudia-app/claudia-vault/internal/config"
	"github.com/claudia-app/claudia-vault/internal/crypto"
	"github.com/claudia-app/claudia-vault/internal/logger"
	"github.com/claudia-app/claudia-vault/internal/record"
	"github.com/claudia-app/claudia-vault/internal/rotation"
	"github.com/claudia-app/claudia-vault/internal/vault"
	"github.com/claudia-app/claudia-vault/models"
)

const defaultBatchConcurrency = 4

// vaultService is the concrete implementation of VaultService.
//
// Record and password operations hold rotationLock for reading; a master
// password rotation holds it for writing, so no record is read or written
// while files are being rewritten.
type vaultService struct {
	session   *vault.Session
	passwords *vault.PasswordsGate
	codec     *record.Codec
	rotator   *rotation.Rotator
	appInfo   AppInfoService

	// batchConcurrency bounds DecryptPasswords fan-out.
	batchConcurrency int

	rotationLock sync.RWMutex

	logger *logger.Logger
}

// NewVaultService wires the vault engine components into a VaultService.
func NewVaultService(deps Dependencies, cfg config.Vault, appInfo AppInfoService, logger *logger.Logger) (VaultService, error) {
	if deps.Session == nil || deps.Passwords == nil || deps.Codec == nil || deps.Rotator == nil {
		return nil, ErrMissingDependency
	}

	concurrency := cfg.MaxConcurrentDerivations
	if concurrency <= 0 {
		concurrency = defaultBatchConcurrency
	}

	return &vaultService{
		session:          deps.Session,
		passwords:        deps.Passwords,
		codec:            deps.Codec,
		rotator:          deps.Rotator,
		appInfo:          appInfo,
		batchConcurrency: concurrency,
		logger:           logger.WithComponent("vault-service"),
	}, nil
}

func (s *vaultService) Status(ctx context.Context) (models.VaultStatus, error) {
	state, err := s.session.State()
	if err != nil {
		return models.VaultStatus{}, fmt.Errorf("read vault state: %w", err)
	}

	pending, err := s.rotator.Pending(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("failed to check for unfinished rotation")
	}

	status := models.VaultStatus{
		State:              state.String(),
		SetUp:              state != vault.StateUninitialized,
		Unlocked:           state == vault.StateUnlocked,
		PasswordsUnlocked:  s.passwords.IsUnlocked(),
		IdleTimeout:        s.session.IdleTimeout(),
		PasswordsRemaining: s.passwords.Remaining(),
		LastActivity:       s.session.LastActivity(),
		PendingRotation:    pending,
	}
	if s.appInfo != nil {
		status.Version = s.appInfo.GetAppVersion(ctx)
	}
	return status, nil
}

func (s *vaultService) Setup(ctx context.Context, password []byte) error {
	log := logger.FromContext(ctx)

	if err := s.session.Setup(password); err != nil {
		log.Err(err).Msg("vault setup failed")
		return err
	}

	log.Info().Msg("vault set up")
	return nil
}

// Unlock reports (false, nil) for a wrong password.
func (s *vaultService) Unlock(ctx context.Context, password []byte) (bool, error) {
	log := logger.FromContext(ctx)

	ok, err := s.session.Unlock(password)
	if err != nil {
		log.Err(err).Msg("vault unlock failed")
		return false, err
	}
	if !ok {
		log.Warn().Msg("vault unlock rejected: incorrect password")
		return false, nil
	}

	log.Info().Msg("vault unlocked")
	return true, nil
}

// Lock closes the passwords sub-session and the vault session.
func (s *vaultService) Lock(ctx context.Context) {
	s.passwords.Lock()
	s.session.Lock()
	logger.FromContext(ctx).Info().Msg("vault locked")
}

func (s *vaultService) IsUnlocked() bool {
	return s.session.IsUnlocked()
}

func (s *vaultService) TouchActivity(ctx context.Context) error {
	return s.session.TouchActivity()
}

func (s *vaultService) CurrentPassword() (*crypto.Secret, error) {
	return s.session.CurrentPassword()
}

func (s *vaultService) IsEncryptedFormat(raw string) bool {
	return record.IsEncryptedFormat(raw)
}
