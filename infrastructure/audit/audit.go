package audit

import (
	"context"
	"encoding/json"

	"github.com/uptrace/bun"

	"logidash/infrastructure/sqlite"
	"logidash/models"
)

// Actions recorded by the dashboard.
const (
	ActionLogin       = "login"
	ActionLoginDenied = "login_denied"
	ActionRoleChange  = "role_change"
	ActionExport      = "export"
	ActionSyncNow     = "sync_now"
)

// Service writes audit records inside the caller transaction.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

func (s *Service) Write(ctx context.Context, tx bun.Tx, userID int64, action, entityType, entityID string, before, after any) error {
	beforeJSON, err := marshal(before)
	if err != nil {
		return err
	}
	afterJSON, err := marshal(after)
	if err != nil {
		return err
	}
	log := &models.AuditLog{
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		BeforeJSON: beforeJSON,
		AfterJSON:  afterJSON,
	}
	_, err = tx.NewInsert().Model(log).Exec(ctx)
	return err
}

// Record writes one audit entry in its own write transaction.
func (s *Service) Record(ctx context.Context, db *sqlite.DB, userID int64, action, entityType, entityID string, before, after any) error {
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return s.Write(ctx, tx, userID, action, entityType, entityID, before, after)
	})
}

func marshal(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
