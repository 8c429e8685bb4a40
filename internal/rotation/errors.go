package rotation

import "errors"

var (
	ErrRotationInProgress = errors.New("a master password rotation is already in progress")
	ErrNoPendingRotation  = errors.New("no unfinished master password rotation")
	// ErrRotationIncomplete means a failed run could not be rolled back.
	// The journal keeps it in progress so it can be resumed.
	ErrRotationIncomplete = errors.New("master password rotation could not be rolled back")
	ErrRotationCancelled  = errors.New("master password rotation cancelled")
)
