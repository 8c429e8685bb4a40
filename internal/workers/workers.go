package workers

import (
	"context"

	"github.com/claudia-app/claudia-vault/internal/config"
	"github.com/claudia-app/claudia-vault/internal/logger"
	"github.com/claudia-app/claudia-vault/internal/vault"
)

type Workers struct {
	workers []Worker
}

// NewWorkers builds the daemon's workers: currently the auto-lock sweeper
// over the main session and the passwords sub-session.
func NewWorkers(cfg config.Workers, session *vault.Session, passwords *vault.PasswordsGate, logger *logger.Logger) *Workers {
	sweepers := make([]vault.IdleSweeper, 0, 2)
	// passwords first: locking the session also closes the sub-session
	if passwords != nil {
		sweepers = append(sweepers, passwords)
	}
	if session != nil {
		sweepers = append(sweepers, session)
	}

	return &Workers{workers: []Worker{
		vault.NewAutoLocker(cfg.AutoLockInterval, logger, sweepers...),
	}}
}

func (w *Workers) Start(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Start(ctx)
	}
}

func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}
