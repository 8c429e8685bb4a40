package service

import (
	"fmt"

	"github.com/claudia-app/claudia-vault/internal/config"
	"github.com/claudia-app/claudia-vault/internal/logger"
	"github.com/claudia-app/claudia-vault/internal/record"
	"github.com/claudia-app/claudia-vault/internal/rotation"
	"github.com/claudia-app/claudia-vault/internal/vault"
	"github.com/claudia-app/claudia-vault/models"
)

type Services struct {
	VaultService   VaultService
	AppInfoService AppInfoService
}

// Dependencies are the vault engine components the services are built on.
type Dependencies struct {
	Session   *vault.Session
	Passwords *vault.PasswordsGate
	Codec     *record.Codec
	Rotator   *rotation.Rotator
}

func NewServices(deps Dependencies, cfg config.Vault, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(buildInfo, logger)
	if err != nil {
		return nil, fmt.Errorf("app info service: %w", err)
	}

	vaultService, err := NewVaultService(deps, cfg, appInfo, logger)
	if err != nil {
		return nil, fmt.Errorf("vault service: %w", err)
	}

	return &Services{
		VaultService:   vaultService,
		AppInfoService: appInfo,
	}, nil
}
