// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package rotation re-encrypts every record of a workspace when the master
// password changes. Each run is journaled before the first file is touched
// and the new verifier is only installed after the last file is rewritten,
// so a failed run can be rolled back and a crashed run resumed.
package rotation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/claudia-app/claudia-vault/internal/crypto"
	"github.com/claudia-app/claudia-vault/internal/logger"
	"github.com/claudia-app/claudia-vault/internal/record"
	"github.com/claudia-app/claudia-vault/internal/store"
	"github.com/claudia-app/claudia-vault/internal/utils"
	"github.com/claudia-app/claudia-vault/internal/vault"
	"github.com/claudia-app/claudia-vault/models"
)

// Rotator runs master password rotations for one workspace. At most one
// run executes at a time.
type Rotator struct {
	codec   *record.Codec
	hasher  crypto.CredentialHasher
	session Session
	journal store.RotationJournal
	root    string
	ids     *utils.UUIDGenerator
	log     *logger.Logger
	now     func() time.Time

	running sync.Mutex

	mu       sync.RWMutex
	progress models.RotationProgress
}

// NewRotator constructs a Rotator for the workspace at root.
func NewRotator(
	codec *record.Codec,
	hasher crypto.CredentialHasher,
	session Session,
	journal store.RotationJournal,
	root string,
	log *logger.Logger,
) *Rotator {
	return &Rotator{
		codec:   codec,
		hasher:  hasher,
		session: session,
		journal: journal,
		root:    root,
		ids:     utils.NewUUIDGenerator(),
		log:     log.WithComponent("rotation"),
		now:     time.Now,
	}
}

// ChangePassword verifies oldPassword and re-encrypts every record under
// newPassword. On failure or cancellation the files already rewritten are
// restored and the stored verifier is left untouched.
func (r *Rotator) ChangePassword(ctx context.Context, oldPassword, newPassword []byte) (models.RotationResult, error) {
	if len(newPassword) == 0 {
		return models.RotationResult{}, vault.ErrEmptyPassword
	}
	if !r.running.TryLock() {
		return models.RotationResult{}, ErrRotationInProgress
	}
	defer r.running.Unlock()

	epoch := r.session.Epoch()
	ok, err := r.session.Verify(oldPassword)
	if err != nil {
		return models.RotationResult{}, err
	}
	if !ok {
		return models.RotationResult{}, vault.ErrIncorrectPassword
	}

	pending, _, err := r.journal.Unfinished(ctx)
	if err != nil {
		return models.RotationResult{}, fmt.Errorf("check journal: %w", err)
	}
	if pending != nil {
		return models.RotationResult{}, ErrRotationInProgress
	}

	stagedHash, err := r.hasher.Hash(newPassword)
	if err != nil {
		return models.RotationResult{}, fmt.Errorf("hash new password: %w", err)
	}

	paths, err := collect(r.root)
	if err != nil {
		return models.RotationResult{}, err
	}

	started := r.now()
	run := models.RotationRun{
		ID:         r.ids.Generate(),
		StagedHash: stagedHash,
		Status:     models.RotationInProgress,
		Total:      len(paths),
		StartedAt:  started,
	}
	if err := r.journal.Begin(ctx, run, paths); err != nil {
		return models.RotationResult{}, fmt.Errorf("journal rotation: %w", err)
	}

	log := r.log.With().Str("run_id", run.ID).Int("total", run.Total).Logger()
	log.Info().Msg("master password rotation started")

	r.startProgress(run)
	defer r.stopProgress()

	done, err := r.rotateAll(ctx, run.ID, paths, oldPassword, newPassword)
	if err != nil {
		log.Warn().Err(err).Int("rotated", len(done)).Msg("rotation failed, rolling back")
		return models.RotationResult{}, r.rollback(ctx, run.ID, done, oldPassword, newPassword, err)
	}

	if err := r.session.Commit(stagedHash, newPassword, epoch); err != nil {
		log.Error().Err(err).Msg("failed to install new verifier, rolling back")
		return models.RotationResult{}, r.rollback(ctx, run.ID, done, oldPassword, newPassword, err)
	}
	r.finish(ctx, run.ID)

	log.Info().Msg("master password rotation completed")
	return models.RotationResult{
		RunID:    run.ID,
		Rotated:  len(done),
		Duration: r.now().Sub(started),
	}, nil
}

// Resume completes a run interrupted by a crash. oldPassword must match the
// stored verifier and newPassword the verifier staged by the run. Files
// already sealed under newPassword are left as they are. A failed resume
// keeps the run in progress so it can be retried.
func (r *Rotator) Resume(ctx context.Context, oldPassword, newPassword []byte) (models.RotationResult, error) {
	if !r.running.TryLock() {
		return models.RotationResult{}, ErrRotationInProgress
	}
	defer r.running.Unlock()

	epoch := r.session.Epoch()
	run, entries, err := r.journal.Unfinished(ctx)
	if err != nil {
		return models.RotationResult{}, fmt.Errorf("check journal: %w", err)
	}
	if run == nil {
		return models.RotationResult{}, ErrNoPendingRotation
	}
	if !r.hasher.Verify(newPassword, run.StagedHash) {
		return models.RotationResult{}, vault.ErrIncorrectPassword
	}

	log := r.log.With().Str("run_id", run.ID).Int("total", run.Total).Logger()
	started := r.now()

	// The verifier was installed but the run was never closed.
	committed, err := r.session.Verify(newPassword)
	if err != nil {
		return models.RotationResult{}, err
	}
	if committed {
		r.finish(ctx, run.ID)
		log.Info().Msg("closed already committed rotation")
		return models.RotationResult{RunID: run.ID, Skipped: len(entries), Duration: r.now().Sub(started)}, nil
	}

	ok, err := r.session.Verify(oldPassword)
	if err != nil {
		return models.RotationResult{}, err
	}
	if !ok {
		return models.RotationResult{}, vault.ErrIncorrectPassword
	}

	log.Info().Int("entries", len(entries)).Msg("resuming master password rotation")

	r.startProgress(*run)
	defer r.stopProgress()

	result := models.RotationResult{RunID: run.ID}
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return models.RotationResult{}, fmt.Errorf("%w: %w", ErrRotationCancelled, err)
		}
		r.setCurrent(e.Path)

		rotated, err := r.resumeFile(ctx, e.Path, oldPassword, newPassword)
		if err != nil {
			log.Warn().Err(err).Str("path", e.Path).Msg("resume stopped")
			return models.RotationResult{}, cancelled(ctx, fmt.Errorf("rotate %s: %w", e.Path, err))
		}
		if rotated {
			result.Rotated++
		} else {
			result.Skipped++
		}
		if e.Status != models.EntryDone {
			if err := r.journal.MarkEntry(ctx, run.ID, e.Path, models.EntryDone); err != nil {
				return models.RotationResult{}, fmt.Errorf("journal entry: %w", err)
			}
		}
		r.advance()
	}

	if err := r.session.Commit(run.StagedHash, newPassword, epoch); err != nil {
		return models.RotationResult{}, fmt.Errorf("install new verifier: %w", err)
	}
	r.finish(ctx, run.ID)

	result.Duration = r.now().Sub(started)
	log.Info().Int("rotated", result.Rotated).Int("skipped", result.Skipped).Msg("master password rotation resumed and completed")
	return result, nil
}

// Pending returns the unfinished run, if any.
func (r *Rotator) Pending(ctx context.Context) (*models.RotationRun, error) {
	run, _, err := r.journal.Unfinished(ctx)
	if err != nil {
		return nil, fmt.Errorf("check journal: %w", err)
	}
	return run, nil
}

// Progress returns a snapshot of the running rotation.
func (r *Rotator) Progress() models.RotationProgress {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.progress
}

func (r *Rotator) rotateAll(ctx context.Context, runID string, paths []string, oldPassword, newPassword []byte) ([]string, error) {
	done := make([]string, 0, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return done, fmt.Errorf("%w: %w", ErrRotationCancelled, err)
		}
		r.setCurrent(p)

		if err := r.rotateFile(ctx, p, oldPassword, newPassword); err != nil {
			return done, cancelled(ctx, fmt.Errorf("rotate %s: %w", p, err))
		}
		// Recorded before the journal write so a journal failure still
		// restores this file.
		done = append(done, p)

		if err := r.journal.MarkEntry(ctx, runID, p, models.EntryDone); err != nil {
			return done, cancelled(ctx, fmt.Errorf("journal entry: %w", err))
		}
		r.advance()
	}
	return done, nil
}

// rollback restores done to oldPassword in reverse order and closes the
// run. It returns cause, or ErrRotationIncomplete when a file or the
// journal could not be restored.
func (r *Rotator) rollback(ctx context.Context, runID string, done []string, oldPassword, newPassword []byte, cause error) error {
	ctx = context.WithoutCancel(ctx)

	var failed error
	for i := len(done) - 1; i >= 0; i-- {
		p := done[i]
		if err := r.rotateFile(ctx, p, newPassword, oldPassword); err != nil {
			failed = errors.Join(failed, fmt.Errorf("restore %s: %w", p, err))
			continue
		}
		if err := r.journal.MarkEntry(ctx, runID, p, models.EntryRolledBack); err != nil {
			failed = errors.Join(failed, fmt.Errorf("journal entry %s: %w", p, err))
		}
	}
	if failed == nil {
		if err := r.journal.Finish(ctx, runID, models.RotationRolledBack); err != nil {
			failed = fmt.Errorf("close run: %w", err)
		}
	}

	if failed != nil {
		r.log.Error().Err(failed).Str("run_id", runID).Msg("rotation rollback incomplete")
		return fmt.Errorf("%w: %w", ErrRotationIncomplete, errors.Join(cause, failed))
	}

	r.log.Info().Str("run_id", runID).Int("restored", len(done)).Msg("rotation rolled back")
	return cause
}

// finish closes a committed run. The verifier is already installed, so a
// journal failure is only logged; Resume closes the run later.
func (r *Rotator) finish(ctx context.Context, runID string) {
	if err := r.journal.Finish(context.WithoutCancel(ctx), runID, models.RotationCompleted); err != nil {
		r.log.Error().Err(err).Str("run_id", runID).Msg("failed to close committed rotation run")
	}
}

func (r *Rotator) rotateFile(ctx context.Context, rel string, from, to []byte) error {
	path := r.abs(rel)

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %w", vault.ErrIOFailure, err)
	}

	var out string
	if record.IsEncryptedFormat(string(raw)) {
		out, err = r.codec.Reencrypt(ctx, string(raw), from, to)
	} else {
		out, err = r.codec.ReencryptSealedBody(ctx, string(raw), from, to)
	}
	if err != nil {
		return err
	}

	if err := utils.WriteFileAtomic(path, []byte(out), utils.FileMode(path, 0o600)); err != nil {
		return fmt.Errorf("%w: %w", vault.ErrIOFailure, err)
	}
	return nil
}

// resumeFile rotates rel unless it already opens with newPassword. Files
// removed since the run started count as skipped.
func (r *Rotator) resumeFile(ctx context.Context, rel string, oldPassword, newPassword []byte) (bool, error) {
	raw, err := os.ReadFile(r.abs(rel))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %w", vault.ErrIOFailure, err)
	}

	rotated, err := r.opensWith(ctx, string(raw), newPassword)
	if err != nil || rotated {
		return false, err
	}
	return true, r.rotateFile(ctx, rel, oldPassword, newPassword)
}

func (r *Rotator) opensWith(ctx context.Context, raw string, password []byte) (bool, error) {
	var err error
	if record.IsEncryptedFormat(raw) {
		var file record.EncryptedFile
		if file, err = record.Parse(raw); err != nil {
			return false, err
		}
		_, err = r.codec.DecryptMetadata(ctx, file, password)
	} else {
		_, err = r.codec.OpenSealedBody(ctx, raw, password)
	}

	if errors.Is(err, crypto.ErrDecryptionFailed) {
		return false, nil
	}
	return err == nil, err
}

func (r *Rotator) abs(rel string) string {
	return filepath.Join(r.root, filepath.FromSlash(rel))
}

func (r *Rotator) startProgress(run models.RotationRun) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress = models.RotationProgress{RunID: run.ID, Running: true, Total: run.Total}
}

func (r *Rotator) setCurrent(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress.Current = path
}

func (r *Rotator) advance() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress.Done++
}

func (r *Rotator) stopProgress() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress.Running = false
	r.progress.Current = ""
}

// cancelled tags err with ErrRotationCancelled when ctx is done.
func cancelled(ctx context.Context, err error) error {
	if ctx.Err() != nil && !errors.Is(err, ErrRotationCancelled) {
		return fmt.Errorf("%w: %w", ErrRotationCancelled, err)
	}
	return err
}
