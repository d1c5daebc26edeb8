package login

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"logidash/infrastructure/audit"
	"logidash/infrastructure/cache"
	"logidash/infrastructure/config"
	"logidash/infrastructure/rbac"
	sessioncookie "logidash/infrastructure/session"
	"logidash/infrastructure/sqlite"
	"logidash/models"
)

// GoogleLoginCommandHandler accepts the credential returned by Google Identity
// Services, applies the e-mail domain gate and starts a session.
func GoogleLoginCommandHandler(db *sqlite.DB, sessionCache *cache.UserSessionCache, userCache *cache.UserCache, verifier Verifier, auth config.AuthConfig, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			redirectLoginError(w, r, "invalid form data")
			return
		}
		if strings.TrimSpace(auth.GoogleClientID) == "" {
			slog.Warn("google sign-in attempted without a configured client id")
			redirectLoginError(w, r, "Google sign-in is not configured.")
			return
		}

		identity, err := verifier.Verify(r.Context(), r.FormValue("credential"))
		if err != nil {
			slog.Warn("google credential rejected", slog.Any("err", err))
			redirectLoginError(w, r, "Google sign-in failed. Please try again.")
			return
		}
		if !identity.EmailVerified {
			slog.Warn("google account e-mail not verified", slog.String("email", identity.Email))
			redirectLoginError(w, r, ErrEmailNotVerified.Error())
			return
		}

		if !auth.DomainAllowed(identity.Email) {
			slog.Warn("unauthorized login attempt", slog.String("email", identity.Email))
			if auditSvc != nil {
				if err := auditSvc.Record(r.Context(), db, 0, audit.ActionLoginDenied, "email", strings.ToLower(identity.Email), nil, nil); err != nil {
					slog.Error("audit denied login failed", slog.Any("err", err))
				}
			}
			redirectLoginError(w, r, AccessDeniedMessage(auth.AllowedEmailDomain))
			return
		}

		role := rbac.RoleViewer
		if auth.IsAdminEmail(identity.Email) {
			role = rbac.RoleAdmin
		}
		user, err := UpsertUser(r.Context(), db, identity, ProviderGoogle, role)
		if err != nil {
			slog.Error("upsert google user failed", slog.String("email", identity.Email), slog.Any("err", err))
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

func startSession(w http.ResponseWriter, r *http.Request, db *sqlite.DB, sessionCache *cache.UserSessionCache, userCache *cache.UserCache, auditSvc *audit.Service, user models.User) error {
	session := newSession(user)
	if err := persistSession(r.Context(), db, session); err != nil {
		slog.Error("persist session failed", slog.String("email", user.Email), slog.Any("err", err))
		return err
	}
	sessionCache.AddSession(session)
	userCache.Add(user)

	if auditSvc != nil {
		if err := auditSvc.Record(r.Context(), db, user.ID, audit.ActionLogin, "user", user.Email, nil, map[string]string{"provider": user.Provider, "role": user.Role}); err != nil {
			slog.Error("audit login failed", slog.Any("err", err))
		}
	}

	http.SetCookie(w, sessioncookie.SessionCookie(session.ID, sessioncookie.MaxAge()))
	return nil
}

func redirectLoginError(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, "/login?error="+url.QueryEscape(msg), http.StatusSeeOther)
}
