package service

import (
	"context"

	"github.com/claudia-app/claudia-vault/internal/crypto"
	"github.com/claudia-app/claudia-vault/models"
)

// VaultService is the single entry point collaborators use to ask whether
// the vault is unlocked and to seal or open records under the session
// password. Passwords are passed as byte slices owned by the caller; the
// service copies what it keeps and never wipes them.
type VaultService interface {
	Status(ctx context.Context) (models.VaultStatus, error)
	Setup(ctx context.Context, password []byte) error
	Unlock(ctx context.Context, password []byte) (bool, error)
	Lock(ctx context.Context)
	IsUnlocked() bool
	TouchActivity(ctx context.Context) error
	// CurrentPassword returns a copy of the session password. The caller
	// must Destroy it.
	CurrentPassword() (*crypto.Secret, error)

	EncryptRecord(ctx context.Context, metadata, body string) (string, error)
	DecryptRecord(ctx context.Context, raw string) (models.Record, error)
	IsEncryptedFormat(raw string) bool
	MigrateLegacy(ctx context.Context, raw string) (string, error)

	UnlockPasswords(ctx context.Context, password []byte) (bool, error)
	LockPasswords(ctx context.Context)
	TouchPasswords(ctx context.Context) error
	PasswordsStatus(ctx context.Context) models.PasswordsStatus
	EncryptPassword(ctx context.Context, metadata models.PasswordMetadata, content models.PasswordContent) (string, error)
	DecryptPassword(ctx context.Context, raw string) (models.PasswordRecord, error)
	DecryptPasswords(ctx context.Context, records map[string]string) (models.DecryptPasswordsResponse, error)

	ChangePassword(ctx context.Context, oldPassword, newPassword []byte) (models.RotationResult, error)
	ResumeRotation(ctx context.Context, oldPassword, newPassword []byte) (models.RotationResult, error)
	RotationProgress(ctx context.Context) models.RotationProgress
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
