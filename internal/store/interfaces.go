package store

import (
	"context"

	"github.com/claudia-app/claudia-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/rotation_journal_mock.go -package=mock

// RotationJournal durably records which record files a master password
// rotation has already rewritten, so an interrupted run can be resumed or
// rolled back.
type RotationJournal interface {
	// Begin stores run and one pending entry per path atomically.
	Begin(ctx context.Context, run models.RotationRun, paths []string) error
	// MarkEntry sets the status of one file in run.
	MarkEntry(ctx context.Context, runID, path string, status models.EntryStatus) error
	// Unfinished returns the most recent in-progress run with its entries,
	// or a nil run when there is none.
	Unfinished(ctx context.Context) (*models.RotationRun, []models.RotationEntry, error)
	// Finish closes run with status.
	Finish(ctx context.Context, runID string, status models.RotationStatus) error
}
