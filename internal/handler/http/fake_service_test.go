package http

import (
	"context"

	"github.com/claudia-app/claudia-vault/internal/crypto"
	"github.com/claudia-app/claudia-vault/models"
)

// fakeVaultService implements service.VaultService. Every method delegates
// to the matching func field when set and returns zero values otherwise.
type fakeVaultService struct {
	status            func(ctx context.Context) (models.VaultStatus, error)
	setup             func(ctx context.Context, password []byte) error
	unlock            func(ctx context.Context, password []byte) (bool, error)
	lock              func(ctx context.Context)
	touchActivity     func(ctx context.Context) error
	encryptRecord     func(ctx context.Context, metadata, body string) (string, error)
	decryptRecord     func(ctx context.Context, raw string) (models.Record, error)
	isEncrypted       func(raw string) bool
	migrateLegacy     func(ctx context.Context, raw string) (string, error)
	unlockPasswords   func(ctx context.Context, password []byte) (bool, error)
	lockPasswords     func(ctx context.Context)
	touchPasswords    func(ctx context.Context) error
	passwordsStatus   func(ctx context.Context) models.PasswordsStatus
	encryptPassword   func(ctx context.Context, metadata models.PasswordMetadata, content models.PasswordContent) (string, error)
	decryptPassword   func(ctx context.Context, raw string) (models.PasswordRecord, error)
	decryptPasswords  func(ctx context.Context, records map[string]string) (models.DecryptPasswordsResponse, error)
	changePassword    func(ctx context.Context, oldPassword, newPassword []byte) (models.RotationResult, error)
	resumeRotation    func(ctx context.Context, oldPassword, newPassword []byte) (models.RotationResult, error)
	rotationProgress  func(ctx context.Context) models.RotationProgress
	currentPassword   func() (*crypto.Secret, error)
	isUnlockedOutcome bool
}

func (f *fakeVaultService) Status(ctx context.Context) (models.VaultStatus, error) {
	if f.status == nil {
		return models.VaultStatus{}, nil
	}
	return f.status(ctx)
}

func (f *fakeVaultService) Setup(ctx context.Context, password []byte) error {
	if f.setup == nil {
		return nil
	}
	return f.setup(ctx, password)
}

func (f *fakeVaultService) Unlock(ctx context.Context, password []byte) (bool, error) {
	if f.unlock == nil {
		return false, nil
	}
	return f.unlock(ctx, password)
}

func (f *fakeVaultService) Lock(ctx context.Context) {
	if f.lock != nil {
		f.lock(ctx)
	}
}

func (f *fakeVaultService) IsUnlocked() bool { return f.isUnlockedOutcome }

func (f *fakeVaultService) TouchActivity(ctx context.Context) error {
	if f.touchActivity == nil {
		return nil
	}
	return f.touchActivity(ctx)
}

func (f *fakeVaultService) CurrentPassword() (*crypto.Secret, error) {
	if f.currentPassword == nil {
		return nil, nil
	}
	return f.currentPassword()
}

func (f *fakeVaultService) EncryptRecord(ctx context.Context, metadata, body string) (string, error) {
	if f.encryptRecord == nil {
		return "", nil
	}
	return f.encryptRecord(ctx, metadata, body)
}

func (f *fakeVaultService) DecryptRecord(ctx context.Context, raw string) (models.Record, error) {
	if f.decryptRecord == nil {
		return models.Record{}, nil
	}
	return f.decryptRecord(ctx, raw)
}

func (f *fakeVaultService) IsEncryptedFormat(raw string) bool {
	return f.isEncrypted != nil && f.isEncrypted(raw)
}

func (f *fakeVaultService) MigrateLegacy(ctx context.Context, raw string) (string, error) {
	if f.migrateLegacy == nil {
		return "", nil
	}
	return f.migrateLegacy(ctx, raw)
}

func (f *fakeVaultService) UnlockPasswords(ctx context.Context, password []byte) (bool, error) {
	if f.unlockPasswords == nil {
		return false, nil
	}
	return f.unlockPasswords(ctx, password)
}

func (f *fakeVaultService) LockPasswords(ctx context.Context) {
	if f.lockPasswords != nil {
		f.lockPasswords(ctx)
	}
}

func (f *fakeVaultService) TouchPasswords(ctx context.Context) error {
	if f.touchPasswords == nil {
		return nil
	}
	return f.touchPasswords(ctx)
}

func (f *fakeVaultService) PasswordsStatus(ctx context.Context) models.PasswordsStatus {
	if f.passwordsStatus == nil {
		return models.PasswordsStatus{}
	}
	return f.passwordsStatus(ctx)
}

func (f *fakeVaultService) EncryptPassword(ctx context.Context, metadata models.PasswordMetadata, content models.PasswordContent) (string, error) {
	if f.encryptPassword == nil {
		return "", nil
	}
	return f.encryptPassword(ctx, metadata, content)
}

func (f *fakeVaultService) DecryptPassword(ctx context.Context, raw string) (models.PasswordRecord, error) {
	if f.decryptPassword == nil {
		return models.PasswordRecord{}, nil
	}
	return f.decryptPassword(ctx, raw)
}

func (f *fakeVaultService) DecryptPasswords(ctx context.Context, records map[string]string) (models.DecryptPasswordsResponse, error) {
	if f.decryptPasswords == nil {
		return models.DecryptPasswordsResponse{}, nil
	}
	return f.decryptPasswords(ctx, records)
}

func (f *fakeVaultService) ChangePassword(ctx context.Context, oldPassword, newPassword []byte) (models.RotationResult, error) {
	if f.changePassword == nil {
		return models.RotationResult{}, nil
	}
	return f.changePassword(ctx, oldPassword, newPassword)
}

func (f *fakeVaultService) ResumeRotation(ctx context.Context, oldPassword, newPassword []byte) (models.RotationResult, error) {
	if f.resumeRotation == nil {
		return models.RotationResult{}, nil
	}
	return f.resumeRotation(ctx, oldPassword, newPassword)
}

func (f *fakeVaultService) RotationProgress(ctx context.Context) models.RotationProgress {
	if f.rotationProgress == nil {
		return models.RotationProgress{}
	}
	return f.rotationProgress(ctx)
}

// mockAppInfoService implements service.AppInfoService for testing.
type mockAppInfoService struct {
	version string
}

func (m *mockAppInfoService) GetAppVersion(_ context.Context) string {
	return m.version
}
