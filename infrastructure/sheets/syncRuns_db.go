package sheets

import (
	"context"

	"github.com/uptrace/bun"

	"logidash/infrastructure/sqlite"
	"logidash/models"
)

// RecordSyncRun stores poll metadata.
func RecordSyncRun(ctx context.Context, db *sqlite.DB, run models.SyncRun) error {
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(&run).Exec(ctx)
		return err
	})
}

// ListRecentSyncRuns returns the newest runs first.
func ListRecentSyncRuns(ctx context.Context, db *sqlite.DB, limit int) ([]models.SyncRun, error) {
	if limit <= 0 {
		limit = 10
	}
	runs := make([]models.SyncRun, 0, limit)
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().
			Model(&runs).
			OrderExpr("sr.started_at DESC, sr.id DESC").
			Limit(limit).
			Scan(ctx)
	})
	return runs, err
}

// PruneSyncRuns keeps the newest keep rows.
func PruneSyncRuns(ctx context.Context, db *sqlite.DB, keep int) error {
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.ExecContext(ctx, `
DELETE FROM sync_runs
WHERE id NOT IN (SELECT id FROM sync_runs ORDER BY started_at DESC, id DESC LIMIT ?)`, keep)
		return err
	})
}
