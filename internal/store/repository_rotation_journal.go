// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/claudia-app/claudia-vault/internal/logger"
	"github.com/claudia-app/claudia-vault/models"
)

// entriesBatchSize bounds the number of rows per INSERT so large vaults
// stay under SQLite's host parameter limit.
const entriesBatchSize = 200

// rotationJournalRepository is the SQLite-backed implementation of
// [RotationJournal].
type rotationJournalRepository struct {
	*DB
	logger *logger.Logger
	now    func() time.Time
}

// NewRotationJournalRepository constructs a [RotationJournal] over db.
func NewRotationJournalRepository(db *DB, logger *logger.Logger) RotationJournal {
	logger.Debug().Msg("creating rotation journal repository")
	return &rotationJournalRepository{
		DB:     db,
		logger: logger,
		now:    time.Now,
	}
}

// Begin implements [RotationJournal]. The run header and all entries are
// written in one transaction.
func (r *rotationJournalRepository) Begin(ctx context.Context, run models.RotationRun, paths []string) (err error) {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "rotationJournalRepository.Begin").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	query, args, err := buildInsertRunQuery(run)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "rotationJournalRepository.Begin").Str("run_id", run.ID).Msg("failed to insert rotation run")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	now := r.now()
	for start := 0; start < len(paths); start += entriesBatchSize {
		end := min(start+entriesBatchSize, len(paths))

		query, args, err = buildInsertEntriesQuery(run.ID, paths[start:end], now)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			log.Err(err).Str("func", "rotationJournalRepository.Begin").Str("run_id", run.ID).Msg("failed to insert rotation entries")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "rotationJournalRepository.Begin").Str("run_id", run.ID).Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	log.Debug().Str("run_id", run.ID).Int("entries", len(paths)).Msg("rotation run journaled")
	return nil
}

// MarkEntry implements [RotationJournal].
func (r *rotationJournalRepository) MarkEntry(ctx context.Context, runID, path string, status models.EntryStatus) error {
	query, args, err := buildMarkEntryQuery(runID, path, status, r.now())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.execSingle(ctx, "rotationJournalRepository.MarkEntry", ErrEntryNotFound, query, args...)
}

// Finish implements [RotationJournal].
func (r *rotationJournalRepository) Finish(ctx context.Context, runID string, status models.RotationStatus) error {
	query, args, err := buildFinishRunQuery(runID, status, r.now())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.execSingle(ctx, "rotationJournalRepository.Finish", ErrRunNotFound, query, args...)
}

// Unfinished implements [RotationJournal].
func (r *rotationJournalRepository) Unfinished(ctx context.Context) (*models.RotationRun, []models.RotationEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectUnfinishedRunQuery()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		run        models.RotationRun
		status     string
		finishedAt sql.NullTime
	)
	err = r.DB.QueryRowContext(ctx, query, args...).
		Scan(&run.ID, &run.StagedHash, &status, &run.Total, &run.StartedAt, &finishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, nil
	}
	if err != nil {
		log.Err(err).Str("func", "rotationJournalRepository.Unfinished").Msg("failed to query unfinished run")
		return nil, nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	run.Status = models.RotationStatus(status)
	if finishedAt.Valid {
		run.FinishedAt = &finishedAt.Time
	}

	entries, err := r.entries(ctx, run.ID)
	if err != nil {
		return nil, nil, err
	}
	return &run, entries, nil
}

func (r *rotationJournalRepository) entries(ctx context.Context, runID string) ([]models.RotationEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectEntriesQuery(runID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "rotationJournalRepository.entries").Str("run_id", runID).Msg("failed to query entries")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.RotationEntry, 0, 64)
	for rows.Next() {
		var (
			e      models.RotationEntry
			status string
		)
		if err := rows.Scan(&e.RunID, &e.Path, &status, &e.UpdatedAt); err != nil {
			log.Err(err).Str("func", "rotationJournalRepository.entries").Str("run_id", runID).Msg("failed to scan entry")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		e.Status = models.EntryStatus(status)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return entries, nil
}

func (r *rotationJournalRepository) execSingle(ctx context.Context, fn string, notFound error, query string, args ...any) error {
	log := logger.FromContext(ctx)

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("failed to execute statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
