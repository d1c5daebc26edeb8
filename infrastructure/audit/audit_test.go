package audit

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/uptrace/bun"

	"logidash/infrastructure/sqlite"
	"logidash/models"
)

func TestRecordStoresJSONSnapshots(t *testing.T) {
	db, err := sqlite.OpenDB(filepath.Join(t.TempDir(), "audit.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := sqlite.ApplyEmbeddedMigrations(context.Background(), db); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	svc := NewService()
	err = svc.Record(context.Background(), db, 3, ActionRoleChange, "user", "9",
		map[string]string{"role": "viewer"}, map[string]string{"role": "admin"})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := svc.Record(context.Background(), db, 3, ActionSyncNow, "sheets", "manual", nil, nil); err != nil {
		t.Fatalf("record without payload: %v", err)
	}

	var logs []models.AuditLog
	err = db.WithReadTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().Model(&logs).OrderExpr("al.id ASC").Scan(ctx)
	})
	if err != nil {
		t.Fatalf("load logs: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 audit rows, got %d", len(logs))
	}
	if logs[0].BeforeJSON != `{"role":"viewer"}` || logs[0].AfterJSON != `{"role":"admin"}` {
		t.Fatalf("unexpected json: before=%s after=%s", logs[0].BeforeJSON, logs[0].AfterJSON)
	}
	if logs[1].BeforeJSON != "" || logs[1].Action != ActionSyncNow {
		t.Fatalf("unexpected second row: %+v", logs[1])
	}
}
