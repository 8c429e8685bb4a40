package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/claudia-app/claudia-vault/models"
)

const (
	tableRotationRuns    = "rotation_runs"
	tableRotationEntries = "rotation_entries"
)

// psql renders "?" placeholders for SQLite.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

func buildInsertRunQuery(run models.RotationRun) (string, []any, error) {
	return psql.Insert(tableRotationRuns).
		Columns("id", "staged_hash", "status", "total", "started_at").
		Values(run.ID, run.StagedHash, string(run.Status), run.Total, run.StartedAt.UTC()).
		ToSql()
}

func buildInsertEntriesQuery(runID string, paths []string, at time.Time) (string, []any, error) {
	q := psql.Insert(tableRotationEntries).
		Columns("run_id", "path", "status", "updated_at")
	for _, p := range paths {
		q = q.Values(runID, p, string(models.EntryPending), at.UTC())
	}
	return q.ToSql()
}

func buildMarkEntryQuery(runID, path string, status models.EntryStatus, at time.Time) (string, []any, error) {
	return psql.Update(tableRotationEntries).
		Set("status", string(status)).
		Set("updated_at", at.UTC()).
		Where(sq.Eq{"run_id": runID, "path": path}).
		ToSql()
}

func buildSelectUnfinishedRunQuery() (string, []any, error) {
	return psql.Select("id", "staged_hash", "status", "total", "started_at", "finished_at").
		From(tableRotationRuns).
		Where(sq.Eq{"status": string(models.RotationInProgress)}).
		OrderBy("started_at DESC").
		Limit(1).
		ToSql()
}

func buildSelectEntriesQuery(runID string) (string, []any, error) {
	return psql.Select("run_id", "path", "status", "updated_at").
		From(tableRotationEntries).
		Where(sq.Eq{"run_id": runID}).
		OrderBy("path").
		ToSql()
}

func buildFinishRunQuery(runID string, status models.RotationStatus, at time.Time) (string, []any, error) {
	return psql.Update(tableRotationRuns).
		Set("status", string(status)).
		Set("finished_at", at.UTC()).
		Where(sq.Eq{"id": runID}).
		ToSql()
}
