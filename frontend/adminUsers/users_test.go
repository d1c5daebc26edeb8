package adminusers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"

	sessioncontext "logidash/frontend/shared/context"
	"logidash/infrastructure/audit"
	"logidash/infrastructure/cache"
	"logidash/infrastructure/config"
	"logidash/infrastructure/sqlite"
	"logidash/models"
)

func openAdminUsersTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.OpenDB(filepath.Join(t.TempDir(), "admin-users-test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller unavailable")
	}
	migrationsDir := filepath.Join(filepath.Dir(file), "..", "..", "infrastructure", "sqlite", "migrations")
	if err := sqlite.ApplyMigrations(context.Background(), db, migrationsDir); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return db
}

func insertUser(t *testing.T, db *sqlite.DB, email, role string, loggedIn bool) int64 {
	t.Helper()
	var id int64
	err := db.WithWriteTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
		if loggedIn {
			return tx.NewRaw(`INSERT INTO users (email, provider, role, last_login_at) VALUES (?, 'google', ?, CURRENT_TIMESTAMP) RETURNING id`, email, role).Scan(ctx, &id)
		}
		return tx.NewRaw(`INSERT INTO users (email, provider, role) VALUES (?, 'google', ?) RETURNING id`, email, role).Scan(ctx, &id)
	})
	if err != nil {
		t.Fatalf("insert user %s: %v", email, err)
	}
	return id
}

func countAudits(t *testing.T, db *sqlite.DB, entityID string) int {
	t.Helper()
	var n int
	err := db.WithReadTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`SELECT COUNT(*) FROM audit_logs WHERE action = ? AND entity_id = ?`, audit.ActionRoleChange, entityID).Scan(ctx, &n)
	})
	if err != nil {
		t.Fatalf("count audits: %v", err)
	}
	return n
}

func TestListUsersOrdersByLastLogin(t *testing.T) {
	db := openAdminUsersTestDB(t)
	insertUser(t, db, "never@crystalgroup.in", "viewer", false)
	insertUser(t, db, "ops@crystalgroup.in", "viewer", true)

	users, err := ListUsers(context.Background(), db)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[0].Email != "ops@crystalgroup.in" {
		t.Fatalf("expected signed-in user first, got %s", users[0].Email)
	}
}

func TestChangeRolePromotesAndAudits(t *testing.T) {
	db := openAdminUsersTestDB(t)
	adminID := insertUser(t, db, "boss@crystalgroup.in", "admin", true)
	userID := insertUser(t, db, "ops@crystalgroup.in", "viewer", true)

	user, err := ChangeRole(context.Background(), db, audit.NewService(), adminID, userID, "admin", nil)
	if err != nil {
		t.Fatalf("change role: %v", err)
	}
	if user.Role != "admin" {
		t.Fatalf("expected admin role, got %s", user.Role)
	}
	if n := countAudits(t, db, strconv.FormatInt(userID, 10)); n != 1 {
		t.Fatalf("expected 1 audit entry, got %d", n)
	}

	// Applying the same role again is a no-op.
	if _, err := ChangeRole(context.Background(), db, audit.NewService(), adminID, userID, "admin", nil); err != nil {
		t.Fatalf("repeat change role: %v", err)
	}
	if n := countAudits(t, db, strconv.FormatInt(userID, 10)); n != 1 {
		t.Fatalf("expected no extra audit entry, got %d", n)
	}
}

func TestChangeRoleRejections(t *testing.T) {
	db := openAdminUsersTestDB(t)
	adminID := insertUser(t, db, "boss@crystalgroup.in", "admin", true)
	lockedID := insertUser(t, db, "owner@crystalgroup.in", "admin", true)
	configured := func(email string) bool { return email == "owner@crystalgroup.in" }

	cases := []struct {
		name   string
		userID int64
		role   string
		want   error
	}{
		{name: "invalid role", userID: lockedID, role: "superuser", want: ErrInvalidRole},
		{name: "self demotion", userID: adminID, role: "viewer", want: ErrSelfDemotion},
		{name: "missing user", userID: 9999, role: "viewer", want: ErrUserNotFound},
		{name: "configured admin", userID: lockedID, role: "viewer", want: ErrConfiguredRole},
	}
	for _, tc := range cases {
		_, err := ChangeRole(context.Background(), db, audit.NewService(), adminID, tc.userID, tc.role, configured)
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestChangeRoleHandlerRefreshesSessions(t *testing.T) {
	db := openAdminUsersTestDB(t)
	adminID := insertUser(t, db, "boss@crystalgroup.in", "admin", true)
	userID := insertUser(t, db, "ops@crystalgroup.in", "viewer", true)

	sessions := cache.NewUserSessionCache()
	sessions.AddSession(models.Session{
		ID:        "viewer-token",
		UserID:    userID,
		User:      models.User{ID: userID, Email: "ops@crystalgroup.in", Role: "viewer"},
		UserRoles: []string{"viewer"},
	})
	users := cache.NewUserCache()

	form := url.Values{"role": {"admin"}}
	req := httptest.NewRequest(http.MethodPost, "/tasker/admin/users/"+strconv.FormatInt(userID, 10)+"/role", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", strconv.FormatInt(userID, 10))
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	ctx = sessioncontext.NewContextWithSession(ctx, models.Session{ID: "admin-token", UserID: adminID})
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	ChangeRoleCommandHandler(db, sessions, users, config.AuthConfig{}, audit.NewService()).ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); !strings.Contains(loc, "status=") {
		t.Fatalf("expected status redirect, got %s", loc)
	}
	s, ok := sessions.FindSessionBySessionToken("viewer-token")
	if !ok || s.User.Role != "admin" {
		t.Fatalf("expected cached session to carry new role, got %+v", s)
	}
	if cached, ok := users.Get("ops@crystalgroup.in"); !ok || cached.Role != "admin" {
		t.Fatalf("expected user cache to be updated")
	}
}

func TestChangeRoleHandlerKeepsConfiguredAdmin(t *testing.T) {
	db := openAdminUsersTestDB(t)
	adminID := insertUser(t, db, "boss@crystalgroup.in", "admin", true)
	ownerID := insertUser(t, db, "owner@crystalgroup.in", "admin", true)

	form := url.Values{"role": {"viewer"}}
	req := httptest.NewRequest(http.MethodPost, "/tasker/admin/users/x/role", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", strconv.FormatInt(ownerID, 10))
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	ctx = sessioncontext.NewContextWithSession(ctx, models.Session{ID: "admin-token", UserID: adminID})
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	auth := config.AuthConfig{AdminEmails: []string{"Owner@CrystalGroup.in"}}
	ChangeRoleCommandHandler(db, cache.NewUserSessionCache(), cache.NewUserCache(), auth, audit.NewService()).ServeHTTP(rec, req)

	loc := rec.Header().Get("Location")
	if !strings.Contains(loc, "error=") {
		t.Fatalf("expected error redirect, got %s", loc)
	}
	if n := countAudits(t, db, strconv.FormatInt(ownerID, 10)); n != 0 {
		t.Fatalf("expected no audit entry, got %d", n)
	}
}
