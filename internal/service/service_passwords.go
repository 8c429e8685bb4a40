package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/claudia-app/claudia-vault/internal/crypto"
	"github.com/claudia-app/claudia-vault/internal/logger"
	"github.com/claudia-app/claudia-vault/internal/record"
	"github.com/claudia-app/claudia-vault/models"
)

func (s *vaultService) UnlockPasswords(ctx context.Context, password []byte) (bool, error) {
	log := logger.FromContext(ctx)

	ok, err := s.passwords.Unlock(password)
	if err != nil {
		log.Err(err).Msg("passwords unlock failed")
		return false, err
	}
	if !ok {
		log.Warn().Msg("passwords unlock rejected: incorrect password")
		return false, nil
	}

	log.Info().Dur("ttl", s.passwords.TTL()).Msg("passwords unlocked")
	return true, nil
}

func (s *vaultService) LockPasswords(ctx context.Context) {
	s.passwords.Lock()
	logger.FromContext(ctx).Info().Msg("passwords locked")
}

func (s *vaultService) TouchPasswords(ctx context.Context) error {
	return s.passwords.Touch()
}

func (s *vaultService) PasswordsStatus(ctx context.Context) models.PasswordsStatus {
	return models.PasswordsStatus{
		Unlocked:         s.passwords.IsUnlocked(),
		RemainingSeconds: int64(s.passwords.Remaining().Seconds()),
	}
}

// EncryptPassword seals a password record. Metadata is stored as YAML and
// content as JSON, both under the session password.
func (s *vaultService) EncryptPassword(ctx context.Context, metadata models.PasswordMetadata, content models.PasswordContent) (string, error) {
	s.rotationLock.RLock()
	defer s.rotationLock.RUnlock()

	password, err := s.acquirePasswords()
	if err != nil {
		return "", err
	}
	defer password.Destroy()

	yamlText, err := record.EncodeMetadata(metadata)
	if err != nil {
		return "", fmt.Errorf("encode password metadata: %w", err)
	}
	body, err := json.Marshal(content)
	if err != nil {
		return "", fmt.Errorf("encode password content: %w", err)
	}
	defer crypto.Wipe(body)

	raw, err := s.codec.CreateEncryptedFile(ctx, yamlText, string(body), password.Bytes())
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("id", metadata.ID).Msg("failed to encrypt password record")
		return "", fmt.Errorf("encrypt password record: %w", err)
	}
	return raw, nil
}

// DecryptPassword opens a password record in the encrypted format or in
// the legacy sealed-body format.
func (s *vaultService) DecryptPassword(ctx context.Context, raw string) (models.PasswordRecord, error) {
	s.rotationLock.RLock()
	defer s.rotationLock.RUnlock()

	password, err := s.acquirePasswords()
	if err != nil {
		return models.PasswordRecord{}, err
	}
	defer password.Destroy()

	return s.decryptPassword(ctx, raw, password.Bytes())
}

// DecryptPasswords opens a batch of password records keyed by ID. A record
// that fails is reported in Errors and does not fail the batch; only a
// locked vault or passwords sub-session does.
func (s *vaultService) DecryptPasswords(ctx context.Context, records map[string]string) (models.DecryptPasswordsResponse, error) {
	s.rotationLock.RLock()
	defer s.rotationLock.RUnlock()

	password, err := s.acquirePasswords()
	if err != nil {
		return models.DecryptPasswordsResponse{}, err
	}
	defer password.Destroy()

	resp := models.DecryptPasswordsResponse{
		Contents: make(map[string]models.PasswordRecord, len(records)),
	}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchConcurrency)
	for id, raw := range records {
		g.Go(func() error {
			rec, err := s.decryptPassword(gctx, raw, password.Bytes())

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if resp.Errors == nil {
					resp.Errors = make(map[string]string)
				}
				resp.Errors[id] = err.Error()
				return nil
			}
			resp.Contents[id] = rec
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return models.DecryptPasswordsResponse{}, err
	}

	logger.FromContext(ctx).Debug().
		Int("requested", len(records)).
		Int("failed", len(resp.Errors)).
		Msg("password batch decrypted")
	return resp, nil
}

// acquirePasswords passes both gates and returns a copy of the session
// password that the caller must Destroy.
func (s *vaultService) acquirePasswords() (*crypto.Secret, error) {
	password, err := s.session.Acquire()
	if err != nil {
		return nil, err
	}
	if err := s.passwords.Touch(); err != nil {
		password.Destroy()
		return nil, err
	}
	return password, nil
}

func (s *vaultService) decryptPassword(ctx context.Context, raw string, password []byte) (models.PasswordRecord, error) {
	var (
		plain  record.Plain
		err    error
		legacy bool
	)
	switch {
	case record.IsEncryptedFormat(raw):
		plain, err = s.codec.Decrypt(ctx, raw, password)
	case record.IsSealedRecord(raw):
		plain, err = s.codec.OpenSealedBody(ctx, raw, password)
		legacy = true
	default:
		return models.PasswordRecord{}, ErrNotPasswordRecord
	}
	if err != nil {
		return models.PasswordRecord{}, fmt.Errorf("decrypt password record: %w", err)
	}

	rec := models.PasswordRecord{Legacy: legacy}
	if err := record.DecodeMetadata(plain.Metadata, &rec.Metadata); err != nil {
		return models.PasswordRecord{}, fmt.Errorf("decode password metadata: %w", err)
	}
	if body := strings.TrimSpace(plain.Body); body != "" {
		if err := json.Unmarshal([]byte(body), &rec.Content); err != nil {
			return models.PasswordRecord{}, fmt.Errorf("%w: content is not valid JSON", ErrNotPasswordRecord)
		}
	}
	return rec, nil
}
