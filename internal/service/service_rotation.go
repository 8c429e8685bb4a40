package service

import (
	"context"

	"github.com/claudia-app/claudia-vault/internal/logger"
	"github.com/claudia-app/claudia-vault/models"
)

// ChangePassword re-encrypts every record under newPassword. Record
// operations wait until the rotation has finished or rolled back.
func (s *vaultService) ChangePassword(ctx context.Context, oldPassword, newPassword []byte) (models.RotationResult, error) {
	s.rotationLock.Lock()
	defer s.rotationLock.Unlock()

	log := logger.FromContext(ctx)

	result, err := s.rotator.ChangePassword(ctx, oldPassword, newPassword)
	if err != nil {
		log.Err(err).Msg("master password change failed")
		return models.RotationResult{}, err
	}

	log.Info().
		Str("run_id", result.RunID).
		Int("rotated", result.Rotated).
		Dur("duration", result.Duration).
		Msg("master password changed")
	return result, nil
}

// ResumeRotation completes a rotation interrupted by a crash.
func (s *vaultService) ResumeRotation(ctx context.Context, oldPassword, newPassword []byte) (models.RotationResult, error) {
	s.rotationLock.Lock()
	defer s.rotationLock.Unlock()

	log := logger.FromContext(ctx)

	result, err := s.rotator.Resume(ctx, oldPassword, newPassword)
	if err != nil {
		log.Err(err).Msg("resuming master password change failed")
		return models.RotationResult{}, err
	}

	log.Info().
		Str("run_id", result.RunID).
		Int("rotated", result.Rotated).
		Int("skipped", result.Skipped).
		Msg("interrupted master password change completed")
	return result, nil
}

// RotationProgress does not take the rotation lock so it can be polled
// while a rotation runs.
func (s *vaultService) RotationProgress(ctx context.Context) models.RotationProgress {
	return s.rotator.Progress()
}
