package models

import "time"

// RotationStatus is the lifecycle state of a master password rotation run.
type RotationStatus string

const (
	// RotationInProgress marks a run that has not finished. After a crash
	// it must be resumed.
	RotationInProgress RotationStatus = "in_progress"
	// RotationCompleted marks a run whose new verifier has been written.
	RotationCompleted RotationStatus = "completed"
	// RotationRolledBack marks a run whose rotated files were restored to
	// the old password.
	RotationRolledBack RotationStatus = "rolled_back"
)

// EntryStatus is the state of one file within a rotation run.
type EntryStatus string

const (
	EntryPending    EntryStatus = "pending"
	EntryDone       EntryStatus = "done"
	EntryRolledBack EntryStatus = "rolled_back"
)

// RotationRun is the durable header of a master password rotation.
type RotationRun struct {
	ID string `json:"id" yaml:"id"`
	// StagedHash is the verifier of the new password. It becomes the
	// stored verifier only after every file has been rotated.
	StagedHash string         `json:"-" yaml:"-"`
	Status     RotationStatus `json:"status" yaml:"status"`
	Total      int            `json:"total" yaml:"total"`
	StartedAt  time.Time      `json:"started_at" yaml:"started_at"`
	FinishedAt *time.Time     `json:"finished_at,omitempty" yaml:"finished_at,omitempty"`
}

// RotationEntry tracks one record file of a run.
type RotationEntry struct {
	RunID     string      `json:"run_id"`
	Path      string      `json:"path"`
	Status    EntryStatus `json:"status"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// RotationProgress is a live snapshot of the running rotation.
type RotationProgress struct {
	RunID   string `json:"run_id,omitempty"`
	Running bool   `json:"running"`
	Total   int    `json:"total"`
	Done    int    `json:"done"`
	Current string `json:"current,omitempty"`
}

// RotationResult summarises a finished rotation.
type RotationResult struct {
	RunID    string        `json:"run_id"`
	Rotated  int           `json:"rotated"`
	Skipped  int           `json:"skipped"`
	Duration time.Duration `json:"duration"`
}
