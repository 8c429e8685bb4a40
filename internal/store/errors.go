package store

import "errors"

// Sentinel errors returned by the journal repository. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrOpeningDatabase is returned when the SQLite file cannot be
	// created, opened or pinged.
	ErrOpeningDatabase = errors.New("failed to open journal database")

	// ErrRunNotFound is returned when an update targets a rotation run
	// that does not exist.
	ErrRunNotFound = errors.New("rotation run was not found")

	// ErrEntryNotFound is returned when an update targets a file that is
	// not part of the given run.
	ErrEntryNotFound = errors.New("rotation entry was not found")
)

// Low-level database operation errors.
var (
	// ErrBuildingSQLQuery is returned when squirrel fails to render a query.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the driver cannot start a
	// transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing fails. The
	// transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when an INSERT or UPDATE fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a result row fails.
	ErrScanningRow = errors.New("failed to scan row")
)
