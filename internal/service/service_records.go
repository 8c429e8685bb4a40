package service

import (
	"context"
	"fmt"

	"github.com/claudia-app/claudia-vault/internal/logger"
	"github.com/claudia-app/claudia-vault/internal/record"
	"github.com/claudia-app/claudia-vault/models"
)

// EncryptRecord seals metadata and body under the session password.
func (s *vaultService) EncryptRecord(ctx context.Context, metadata, body string) (string, error) {
	s.rotationLock.RLock()
	defer s.rotationLock.RUnlock()

	password, err := s.session.Acquire()
	if err != nil {
		return "", err
	}
	defer password.Destroy()

	raw, err := s.codec.CreateEncryptedFile(ctx, metadata, body, password.Bytes())
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("failed to encrypt record")
		return "", fmt.Errorf("encrypt record: %w", err)
	}
	return raw, nil
}

// DecryptRecord opens raw under the session password. Legacy plaintext
// records are returned with Encrypted set to false.
func (s *vaultService) DecryptRecord(ctx context.Context, raw string) (models.Record, error) {
	s.rotationLock.RLock()
	defer s.rotationLock.RUnlock()

	password, err := s.session.Acquire()
	if err != nil {
		return models.Record{}, err
	}
	defer password.Destroy()

	plain, err := s.codec.Decrypt(ctx, raw, password.Bytes())
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("failed to decrypt record")
		return models.Record{}, fmt.Errorf("decrypt record: %w", err)
	}
	return models.Record{Metadata: plain.Metadata, Body: plain.Body, Encrypted: plain.Encrypted}, nil
}

// MigrateLegacy rewrites a legacy record in the encrypted format. Sealed
// password records are opened first so their body is not sealed twice.
// Records already in the encrypted format are returned unchanged.
func (s *vaultService) MigrateLegacy(ctx context.Context, raw string) (string, error) {
	s.rotationLock.RLock()
	defer s.rotationLock.RUnlock()

	password, err := s.session.Acquire()
	if err != nil {
		return "", err
	}
	defer password.Destroy()

	if record.IsSealedRecord(raw) {
		plain, err := s.codec.OpenSealedBody(ctx, raw, password.Bytes())
		if err != nil {
			return "", fmt.Errorf("open legacy password record: %w", err)
		}
		return s.codec.CreateEncryptedFile(ctx, plain.Metadata, plain.Body, password.Bytes())
	}

	upgraded, err := s.codec.Upgrade(ctx, raw, password.Bytes())
	if err != nil {
		return "", fmt.Errorf("upgrade legacy record: %w", err)
	}
	return upgraded, nil
}
