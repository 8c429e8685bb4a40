package store

import (
	"context"
	"fmt"

	"github.com/claudia-app/claudia-vault/internal/config"
	"github.com/claudia-app/claudia-vault/internal/logger"
)

// Storages owns the journal database and the repositories built on it.
type Storages struct {
	RotationJournal RotationJournal

	db *DB
}

// NewStorages opens the journal database, applies migrations and wires the
// repositories.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	db, err := NewConnectSQLite(ctx, cfg.Journal, logger)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate journal: %w", err)
	}

	return &Storages{
		RotationJournal: NewRotationJournalRepository(db, logger),
		db:              db,
	}, nil
}

// Close releases the database handle.
func (s *Storages) Close() error {
	return s.db.Close()
}
