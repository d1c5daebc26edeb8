package adminusers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"logidash/infrastructure/audit"
	"logidash/infrastructure/rbac"
	"logidash/infrastructure/sqlite"
	"logidash/models"
)

// ListUsers returns every account that has signed in, most recent login first.
func ListUsers(ctx context.Context, db *sqlite.DB) ([]models.User, error) {
	users := make([]models.User, 0)
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().
			Model(&users).
			OrderExpr("u.last_login_at IS NULL, u.last_login_at DESC, u.id ASC").
			Scan(ctx)
	})
	return users, err
}

// ChangeRole updates a user's role and writes the audit entry in the same
// transaction. A no-op change returns the user unchanged. Users for whom
// configured reports true must stay admin.
func ChangeRole(ctx context.Context, db *sqlite.DB, auditSvc *audit.Service, actorID, userID int64, role string, configured func(email string) bool) (models.User, error) {
	if !rbac.ValidRole(role) {
		return models.User{}, ErrInvalidRole
	}
	if actorID == userID && role != rbac.RoleAdmin {
		return models.User{}, ErrSelfDemotion
	}

	var user models.User
	err := db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if err := tx.NewSelect().Model(&user).Where("u.id = ?", userID).Scan(ctx); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrUserNotFound
			}
			return fmt.Errorf("load user: %w", err)
		}
		if configured != nil && configured(user.Email) && role != rbac.RoleAdmin {
			return ErrConfiguredRole
		}
		if user.Role == role {
			return nil
		}
		before := user.Role
		user.Role = role
		user.UpdatedAt = time.Now()
		if _, err := tx.NewUpdate().
			Model(&user).
			Column("role", "updated_at").
			WherePK().
			Exec(ctx); err != nil {
			return fmt.Errorf("update role: %w", err)
		}
		return auditSvc.Write(ctx, tx, actorID, audit.ActionRoleChange, "user", fmt.Sprint(user.ID),
			map[string]string{"role": before}, map[string]string{"role": role})
	})
	return user, err
}
