package login

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/uptrace/bun"

	sessioncontext "logidash/frontend/shared/context"
	"logidash/infrastructure/argon"
	"logidash/infrastructure/audit"
	"logidash/infrastructure/cache"
	"logidash/infrastructure/config"
	sessioncookie "logidash/infrastructure/session"
	"logidash/infrastructure/sqlite"
	"logidash/models"
)

type stubVerifier struct {
	identity Identity
	err      error
}

func (s stubVerifier) Verify(_ context.Context, credential string) (Identity, error) {
	if credential == "" {
		return Identity{}, ErrTokenRequired
	}
	return s.identity, s.err
}

func openLoginTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "login-test.db")
	db, err := sqlite.OpenDB(dbPath)
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

func testAuth() config.AuthConfig {
	return config.AuthConfig{
		GoogleClientID:      "client-123",
		AllowedEmailDomain:  "@crystalgroup.in",
		AdminEmails:         []string{"lead@crystalgroup.in"},
		ServiceAccountEmail: "apps@crystalgroup.in",
	}
}

func postForm(h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func sessionCookieFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessioncookie.CookieName {
			return c
		}
	}
	return nil
}

func TestGoogleLoginAllowedDomainStartsSession(t *testing.T) {
	db := openLoginTestDB(t)
	sessions := cache.NewUserSessionCache()
	users := cache.NewUserCache()
	verifier := stubVerifier{identity: Identity{Email: "Ravi@CrystalGroup.in", EmailVerified: true, Name: "Ravi", Subject: "sub-1"}}

	h := GoogleLoginCommandHandler(db, sessions, users, verifier, testAuth(), audit.NewService())
	rec := postForm(h, "/login/google", url.Values{"credential": {"token"}})

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/tasker/welcome" {
		t.Fatalf("expected redirect to welcome, got %d %s", rec.Code, rec.Header().Get("Location"))
	}
	cookie := sessionCookieFrom(t, rec)
	if cookie == nil || cookie.Value == "" {
		t.Fatalf("expected session cookie")
	}
	if cookie.MaxAge != 12*60*60 {
		t.Fatalf("expected 12h cookie, got %d", cookie.MaxAge)
	}

	session, ok := sessions.FindSessionBySessionToken(cookie.Value)
	if !ok {
		t.Fatalf("expected session in cache")
	}
	if session.User.Email != "ravi@crystalgroup.in" || session.User.Role != "viewer" || !session.WelcomePending {
		t.Fatalf("unexpected session: %+v", session)
	}
	if _, ok := users.Get("ravi@crystalgroup.in"); !ok {
		t.Fatalf("expected user cached")
	}

	stored, err := LoadSessionByToken(context.Background(), db, cookie.Value)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if stored.User.GoogleSubject != "sub-1" || stored.User.LastLoginAt == nil {
		t.Fatalf("unexpected stored user: %+v", stored.User)
	}
}

func TestGoogleLoginRejectsForeignDomain(t *testing.T) {
	db := openLoginTestDB(t)
	verifier := stubVerifier{identity: Identity{Email: "someone@gmail.com", EmailVerified: true}}

	h := GoogleLoginCommandHandler(db, cache.NewUserSessionCache(), cache.NewUserCache(), verifier, testAuth(), audit.NewService())
	rec := postForm(h, "/login/google", url.Values{"credential": {"token"}})

	loc, _ := url.Parse(rec.Header().Get("Location"))
	if loc.Path != "/login" {
		t.Fatalf("expected redirect to login, got %s", loc)
	}
	if got := loc.Query().Get("error"); got != "Access Denied: Only @crystalgroup.in emails are authorized." {
		t.Fatalf("unexpected error message %q", got)
	}
	if sessionCookieFrom(t, rec) != nil {
		t.Fatalf("expected no session cookie")
	}

	var users, denied int
	err := db.WithReadTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
		if err := tx.NewRaw(`SELECT COUNT(*) FROM users`).Scan(ctx, &users); err != nil {
			return err
		}
		return tx.NewRaw(`SELECT COUNT(*) FROM audit_logs WHERE action = ?`, audit.ActionLoginDenied).Scan(ctx, &denied)
	})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if users != 0 || denied != 1 {
		t.Fatalf("expected no user and one denied audit row, got users=%d denied=%d", users, denied)
	}
}

func TestGoogleLoginVerifierFailure(t *testing.T) {
	db := openLoginTestDB(t)
	h := GoogleLoginCommandHandler(db, cache.NewUserSessionCache(), cache.NewUserCache(), stubVerifier{err: errors.New("bad signature")}, testAuth(), nil)

	rec := postForm(h, "/login/google", url.Values{"credential": {"token"}})
	loc, _ := url.Parse(rec.Header().Get("Location"))
	if loc.Path != "/login" || loc.Query().Get("error") == "" {
		t.Fatalf("expected login error redirect, got %s", loc)
	}
}

func TestGoogleVerifierRequiresClientID(t *testing.T) {
	for _, clientID := range []string{"", "   "} {
		_, err := GoogleVerifier{ClientID: clientID}.Verify(context.Background(), "eyJhbGciOiJSUzI1NiJ9.e30.sig")
		if !errors.Is(err, ErrClientIDRequired) {
			t.Fatalf("client id %q: expected ErrClientIDRequired, got %v", clientID, err)
		}
	}
}

func TestGoogleLoginWithoutClientIDNeverVerifies(t *testing.T) {
	db := openLoginTestDB(t)
	sessions := cache.NewUserSessionCache()
	auth := testAuth()
	auth.GoogleClientID = ""
	verifier := stubVerifier{identity: Identity{Email: "ravi@crystalgroup.in", EmailVerified: true}}

	h := GoogleLoginCommandHandler(db, sessions, cache.NewUserCache(), verifier, auth, nil)
	rec := postForm(h, "/login/google", url.Values{"credential": {"token"}})

	loc, _ := url.Parse(rec.Header().Get("Location"))
	if loc.Path != "/login" || loc.Query().Get("error") == "" {
		t.Fatalf("expected login error redirect, got %s", loc)
	}
	if sessionCookieFrom(t, rec) != nil {
		t.Fatalf("expected no session cookie")
	}
}

func TestNewSessionTokens(t *testing.T) {
	user := models.User{ID: 3, Email: "apps@crystalgroup.in", Role: "admin"}
	a, b := newSession(user), newSession(user)
	if len(a.ID) != 2*sessionTokenBytes || a.ID == b.ID {
		t.Fatalf("expected distinct hex tokens, got %q and %q", a.ID, b.ID)
	}
	if !a.WelcomePending || a.UserID != 3 || len(a.UserRoles) != 1 || a.UserRoles[0] != "admin" {
		t.Fatalf("unexpected session %+v", a)
	}
	if a.Expired() {
		t.Fatalf("expected a fresh session to be live")
	}
}

func TestUpsertUserKeepsGrantedRole(t *testing.T) {
	db := openLoginTestDB(t)
	ctx := context.Background()

	u, err := UpsertUser(ctx, db, Identity{Email: "ops@crystalgroup.in", Name: "Ops"}, ProviderGoogle, "viewer")
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	err = db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewUpdate().Model((*models.User)(nil)).Set("role = ?", "admin").Where("id = ?", u.ID).Exec(ctx)
		return err
	})
	if err != nil {
		t.Fatalf("promote: %v", err)
	}

	again, err := UpsertUser(ctx, db, Identity{Email: "OPS@crystalgroup.in"}, ProviderGoogle, "viewer")
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if again.ID != u.ID {
		t.Fatalf("expected same user row")
	}
	if again.Role != "admin" {
		t.Fatalf("expected granted admin role to survive login, got %s", again.Role)
	}
	if again.Name != "Ops" {
		t.Fatalf("expected blank name not to overwrite, got %q", again.Name)
	}
}

func TestEnsureAdminPromotesWithoutLogin(t *testing.T) {
	db := openLoginTestDB(t)
	ctx := context.Background()

	if _, err := UpsertUser(ctx, db, Identity{Email: "lead@crystalgroup.in"}, ProviderGoogle, "viewer"); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := EnsureAdmin(ctx, db, " Lead@CrystalGroup.in "); err != nil {
		t.Fatalf("ensure existing admin: %v", err)
	}
	if err := EnsureAdmin(ctx, db, "new@crystalgroup.in"); err != nil {
		t.Fatalf("ensure new admin: %v", err)
	}

	var users []models.User
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().Model(&users).OrderExpr("u.email ASC").Scan(ctx)
	})
	if err != nil {
		t.Fatalf("load users: %v", err)
	}
	if len(users) != 2 || users[0].Role != "admin" || users[1].Role != "admin" {
		t.Fatalf("expected two admins, got %+v", users)
	}
	if users[1].Email != "new@crystalgroup.in" || users[1].LastLoginAt != nil {
		t.Fatalf("expected seeded admin without a login time, got %+v", users[1])
	}
	if err := EnsureAdmin(ctx, db, "  "); err == nil {
		t.Fatalf("expected blank email to fail")
	}
}

func TestServiceLogin(t *testing.T) {
	db := openLoginTestDB(t)
	hash, err := argon.CreateHash("Crystal-Apps-2026", argon.DefaultParams)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	auth := testAuth()
	auth.ServiceAccountHash = hash
	sessions := cache.NewUserSessionCache()
	h := ServiceLoginCommandHandler(db, sessions, cache.NewUserCache(), auth, nil)

	rec := postForm(h, "/login", url.Values{"email": {"apps@crystalgroup.in"}, "password": {"wrong"}})
	if loc, _ := url.Parse(rec.Header().Get("Location")); loc.Query().Get("error") != "invalid email or password" {
		t.Fatalf("expected wrong password to fail, got %s", loc)
	}

	rec = postForm(h, "/login", url.Values{"email": {"APPS@crystalgroup.in"}, "password": {"Crystal-Apps-2026"}})
	if rec.Header().Get("Location") != "/tasker/welcome" {
		t.Fatalf("expected welcome redirect, got %s", rec.Header().Get("Location"))
	}
	cookie := sessionCookieFrom(t, rec)
	if cookie == nil {
		t.Fatalf("expected session cookie")
	}
	s, ok := sessions.FindSessionBySessionToken(cookie.Value)
	if !ok || s.User.Provider != ProviderService {
		t.Fatalf("expected service session, got %+v", s)
	}
}

func TestServiceLoginDisabledWithoutHash(t *testing.T) {
	db := openLoginTestDB(t)
	h := ServiceLoginCommandHandler(db, cache.NewUserSessionCache(), cache.NewUserCache(), testAuth(), nil)
	rec := postForm(h, "/login", url.Values{"email": {"apps@crystalgroup.in"}, "password": {"x"}})
	if loc, _ := url.Parse(rec.Header().Get("Location")); loc.Query().Get("error") != "service account login is disabled" {
		t.Fatalf("expected disabled message, got %s", loc)
	}
}

func TestWelcomeShownOnce(t *testing.T) {
	db := openLoginTestDB(t)
	ctx := context.Background()
	user, err := UpsertUser(ctx, db, Identity{Email: "ops@crystalgroup.in", Name: "Ops"}, ProviderGoogle, "viewer")
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	session := newSession(user)
	if err := persistSession(ctx, db, session); err != nil {
		t.Fatalf("persist: %v", err)
	}
	sessions := cache.NewUserSessionCache()
	sessions.AddSession(session)

	h := WelcomePageQueryHandler(db, sessions)
	req := httptest.NewRequest(http.MethodGet, "/tasker/welcome", nil)
	req = req.WithContext(sessioncontext.NewContextWithSession(req.Context(), session))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected welcome page, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Welcome, Ops") || !strings.Contains(body, "4500") {
		t.Fatalf("unexpected welcome body:\n%s", body)
	}

	cached, _ := sessions.FindSessionBySessionToken(session.ID)
	if cached.WelcomePending {
		t.Fatalf("expected cached welcome flag cleared")
	}
	stored, err := LoadSessionByToken(ctx, db, session.ID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if stored.WelcomePending {
		t.Fatalf("expected stored welcome flag cleared")
	}

	req = httptest.NewRequest(http.MethodGet, "/tasker/welcome", nil)
	req = req.WithContext(sessioncontext.NewContextWithSession(req.Context(), cached))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/tasker/inbound" {
		t.Fatalf("expected redirect to dashboard on second visit, got %d %s", rec.Code, rec.Header().Get("Location"))
	}
}

func TestLoginScreenRendersClientID(t *testing.T) {
	h := LoginScreenQueryHandler(testAuth())
	req := httptest.NewRequest(http.MethodGet, "/login?error=nope", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	body := rec.Body.String()
	for _, want := range []string{`data-client_id="client-123"`, "nope", "@crystalgroup.in"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in login screen", want)
		}
	}
	if strings.Contains(body, `action="/login"`) {
		t.Fatalf("service login form should be hidden without a hash")
	}
}
