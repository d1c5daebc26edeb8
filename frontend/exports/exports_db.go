package exports

import (
	"context"

	"github.com/uptrace/bun"

	"logidash/infrastructure/sqlite"
	"logidash/models"
)

func recordExportRun(ctx context.Context, db *sqlite.DB, userID *int64, exportType, format string, rows int) error {
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		run := &models.ExportRun{
			UserID:     userID,
			ExportType: exportType,
			Format:     format,
			RowCount:   rows,
		}
		_, err := tx.NewInsert().Model(run).Exec(ctx)
		return err
	})
}

// ListRecentExportRuns returns the newest downloads first.
func ListRecentExportRuns(ctx context.Context, db *sqlite.DB, limit int) ([]models.ExportRun, error) {
	if limit <= 0 {
		limit = 20
	}
	runs := make([]models.ExportRun, 0, limit)
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().
			Model(&runs).
			OrderExpr("er.created_at DESC, er.id DESC").
			Limit(limit).
			Scan(ctx)
	})
	return runs, err
}
