package login

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"logidash/infrastructure/sqlite"
	"logidash/models"
)

// UpsertUser records a successful sign-in. An admin role from config always
// wins; otherwise an existing user keeps the role an admin gave them.
func UpsertUser(ctx context.Context, db *sqlite.DB, id Identity, provider, role string) (models.User, error) {
	email := strings.ToLower(strings.TrimSpace(id.Email))
	if email == "" {
		return models.User{}, errors.New("email is required")
	}

	now := time.Now()
	var user models.User
	err := db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.ExecContext(ctx, `
INSERT INTO users (email, name, picture, google_subject, provider, role, last_login_at, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(email) DO UPDATE SET
  name = CASE WHEN excluded.name <> '' THEN excluded.name ELSE users.name END,
  picture = CASE WHEN excluded.picture <> '' THEN excluded.picture ELSE users.picture END,
  google_subject = CASE WHEN excluded.google_subject <> '' THEN excluded.google_subject ELSE users.google_subject END,
  provider = excluded.provider,
  role = CASE WHEN excluded.role = 'admin' THEN 'admin' ELSE users.role END,
  last_login_at = excluded.last_login_at,
  updated_at = excluded.updated_at`,
			email, strings.TrimSpace(id.Name), strings.TrimSpace(id.Picture), id.Subject, provider, role, now, now, now)
		if err != nil {
			return err
		}
		return tx.NewSelect().Model(&user).Where("u.email = ?", email).Limit(1).Scan(ctx)
	})
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func persistSession(ctx context.Context, db *sqlite.DB, session models.Session) error {
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(&models.Session{
			ID:             session.ID,
			UserID:         session.UserID,
			WelcomePending: session.WelcomePending,
			ExpiresAt:      session.ExpiresAt,
		}).Exec(ctx)
		return err
	})
}

func DeleteSessionByToken(ctx context.Context, db *sqlite.DB, token string) error {
	if strings.TrimSpace(token) == "" {
		return nil
	}
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewDelete().Model((*models.Session)(nil)).Where("id = ?", token).Exec(ctx)
		return err
	})
}

// DeleteExpiredSessions removes sessions past their expiry and reports how many went.
func DeleteExpiredSessions(ctx context.Context, db *sqlite.DB, now time.Time) (int64, error) {
	var n int64
	err := db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewDelete().Model((*models.Session)(nil)).Where("expires_at < ?", now).Exec(ctx)
		if err != nil {
			return err
		}
		n, err = res.RowsAffected()
		return err
	})
	return n, err
}

func LoadSessionByToken(ctx context.Context, db *sqlite.DB, token string) (models.Session, error) {
	var session models.Session
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if err := tx.NewSelect().
			Model(&session).
			Relation("User").
			Where("s.id = ?", token).
			Limit(1).
			Scan(ctx); err != nil {
			return err
		}
		session.UserRoles = []string{session.User.Role}
		return nil
	})
	if err != nil {
		return models.Session{}, err
	}
	if session.Expired() {
		_ = DeleteSessionByToken(ctx, db, token)
		return models.Session{}, sql.ErrNoRows
	}
	return session, nil
}

// MarkWelcomeSeen clears the one-shot welcome flag.
func MarkWelcomeSeen(ctx context.Context, db *sqlite.DB, token string) error {
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewUpdate().
			Model((*models.Session)(nil)).
			Set("welcome_pending = ?", false).
			Set("updated_at = ?", time.Now()).
			Where("id = ?", token).
			Exec(ctx)
		return err
	})
}

// EnsureAdmin creates or promotes an admin account ahead of its first sign-in.
func EnsureAdmin(ctx context.Context, db *sqlite.DB, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return errors.New("email is required")
	}
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.ExecContext(ctx, `
INSERT INTO users (email, provider, role, created_at, updated_at)
VALUES (?, 'google', 'admin', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
ON CONFLICT(email) DO UPDATE SET
  role = 'admin',
  updated_at = CURRENT_TIMESTAMP`, email)
		return err
	})
}
