package adminusers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"logidash/frontend/shared/context"
	"logidash/frontend/shared/html"
	"logidash/frontend/shared/nav"
	"logidash/infrastructure/audit"
	"logidash/infrastructure/cache"
	"logidash/infrastructure/config"
	"logidash/infrastructure/rbac"
	"logidash/infrastructure/sheets"
	"logidash/infrastructure/sqlite"
)

// UsersPageQueryHandler renders the admin users list page.
func UsersPageQueryHandler(db *sqlite.DB, store *sheets.Store, auth config.AuthConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := ListUsers(r.Context(), db)
		if err != nil {
			slog.Error("admin users: failed to load data", slog.Any("err", err))
			http.Error(w, "failed to load users", http.StatusInternalServerError)
			return
		}

		data := PageData{
			Layout: html.NewLayout(r, "Users", nav.TabAdminUsers, store),
			Roles:  []string{rbac.RoleAdmin, rbac.RoleViewer},
			Users:  make([]UserView, 0, len(users)),
		}
		for _, u := range users {
			data.Users = append(data.Users, UserView{
				ID:          u.ID,
				Email:       u.Email,
				Name:        u.DisplayName(),
				Provider:    u.Provider,
				Role:        u.Role,
				LastLoginAt: u.LastLoginAt,
				Locked:      auth.IsAdminEmail(u.Email),
			})
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := UsersListPage(data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render users page", http.StatusInternalServerError)
			return
		}
	}
}

// ChangeRoleCommandHandler applies a role change and pushes it into live sessions.
func ChangeRoleCommandHandler(db *sqlite.DB, sessionCache *cache.UserSessionCache, userCache *cache.UserCache, auth config.AuthConfig, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := context.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if err := r.ParseForm(); err != nil {
			redirectUsers(w, r, "error", "invalid form data")
			return
		}
		userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil || userID <= 0 {
			redirectUsers(w, r, "error", "invalid user id")
			return
		}
		role := strings.TrimSpace(r.FormValue("role"))

		user, err := ChangeRole(r.Context(), db, auditSvc, session.UserID, userID, role, auth.IsAdminEmail)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidRole),
				errors.Is(err, ErrUserNotFound),
				errors.Is(err, ErrSelfDemotion),
				errors.Is(err, ErrConfiguredRole):
				redirectUsers(w, r, "error", err.Error())
			default:
				slog.Error("admin users: change role failed", slog.Int64("user_id", userID), slog.Any("err", err))
				redirectUsers(w, r, "error", "failed to change role")
			}
			return
		}
		userCache.Add(user)
		n := sessionCache.RefreshUser(user)
		slog.Info("role changed", slog.String("email", user.Email), slog.String("role", user.Role), slog.Int("sessions", n))
		redirectUsers(w, r, "status", "role updated for "+user.Email)
	}
}

func redirectUsers(w http.ResponseWriter, r *http.Request, key, msg string) {
	http.Redirect(w, r, "/tasker/admin/users?"+key+"="+url.QueryEscape(msg), http.StatusSeeOther)
}
