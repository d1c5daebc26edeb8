package login

import (
	"log/slog"
	"net/http"

	sessioncontext "logidash/frontend/shared/context"
	"logidash/infrastructure/cache"
	"logidash/infrastructure/sqlite"
)

const (
	welcomeDelayMillis = 4500
	dashboardHome      = "/tasker/inbound"
)

// WelcomePageQueryHandler greets the user once per login, then hands over to
// the dashboard after a short delay.
func WelcomePageQueryHandler(db *sqlite.DB, sessionCache *cache.UserSessionCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if !session.WelcomePending {
			http.Redirect(w, r, dashboardHome, http.StatusSeeOther)
			return
		}

		if err := MarkWelcomeSeen(r.Context(), db, session.ID); err != nil {
			slog.Error("mark welcome seen failed", slog.String("session_id", session.ID), slog.Any("err", err))
		}
		sessionCache.MarkWelcomeSeen(session.ID)

		data := WelcomeData{
			Name:        session.User.DisplayName(),
			Email:       session.User.Email,
			Picture:     session.User.Picture,
			RedirectURL: dashboardHome,
			DelayMillis: welcomeDelayMillis,
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := WelcomeScreen(data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render welcome screen", http.StatusInternalServerError)
			return
		}
	}
}
