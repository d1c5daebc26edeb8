package login

import (
	"log/slog"
	"net/http"
	"strings"

	"logidash/infrastructure/argon"
	"logidash/infrastructure/audit"
	"logidash/infrastructure/cache"
	"logidash/infrastructure/config"
	"logidash/infrastructure/rbac"
	"logidash/infrastructure/sqlite"
)

// ServiceLoginCommandHandler signs in the shared apps account with the
// password whose argon2id hash is configured. Disabled when no hash is set.
func ServiceLoginCommandHandler(db *sqlite.DB, sessionCache *cache.UserSessionCache, userCache *cache.UserCache, auth config.AuthConfig, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			redirectLoginError(w, r, "invalid form data")
			return
		}
		if strings.TrimSpace(auth.ServiceAccountHash) == "" {
			redirectLoginError(w, r, "service account login is disabled")
			return
		}

		email := strings.TrimSpace(r.FormValue("email"))
		password := r.FormValue("password")
		if email == "" || password == "" {
			redirectLoginError(w, r, "email and password are required")
			return
		}
		if !strings.EqualFold(email, auth.ServiceAccountEmail) {
			slog.Warn("service login with unknown account", slog.String("email", email))
			redirectLoginError(w, r, "invalid email or password")
			return
		}

		ok, err := argon.ComparePasswordAndHash(password, auth.ServiceAccountHash)
		if err != nil {
			slog.Error("service account hash unusable", slog.Any("err", err))
			redirectLoginError(w, r, "authentication failed")
			return
		}
		if !ok {
			slog.Warn("service login with wrong password", slog.String("email", email))
			redirectLoginError(w, r, "invalid email or password")
			return
		}

		role := rbac.RoleViewer
		if auth.IsAdminEmail(email) {
			role = rbac.RoleAdmin
		}
		user, err := UpsertUser(r.Context(), db, Identity{Email: email, Name: "Crystal Apps"}, ProviderService, role)
		if err != nil {
			slog.Error("upsert service user failed", slog.Any("err", err))
			redirectLoginError(w, r, "failed to record sign-in")
			return
		}
		if err := startSession(w, r, db, sessionCache, userCache, auditSvc, user); err != nil {
			redirectLoginError(w, r, "failed to create session")
			return
		}
		http.Redirect(w, r, "/tasker/welcome", http.StatusSeeOther)
	}
}
