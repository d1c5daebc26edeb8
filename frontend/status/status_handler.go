package status

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	sessioncontext "logidash/frontend/shared/context"
	"logidash/frontend/shared/html"
	"logidash/frontend/shared/nav"
	"logidash/infrastructure/audit"
	"logidash/infrastructure/rbac"
	"logidash/infrastructure/sheets"
	"logidash/infrastructure/sqlite"
	"logidash/models"
)

const recentRuns = 10

func loadReport(r *http.Request, db *sqlite.DB, store *sheets.Store) Report {
	var runs []models.SyncRun
	if db != nil {
		var err error
		runs, err = sheets.ListRecentSyncRuns(r.Context(), db, recentRuns)
		if err != nil {
			slog.Error("status: failed to load sync runs", slog.Any("err", err))
		}
	}
	return BuildReport(store.Snapshot(), store.State(), runs)
}

func StatusPageQueryHandler(db *sqlite.DB, store *sheets.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := sessioncontext.GetSessionFromContext(r.Context())
		data := PageData{
			Layout:  html.NewLayout(r, "Status", nav.TabStatus, store),
			Report:  loadReport(r, db, store),
			IsAdmin: session.User.Role == rbac.RoleAdmin,
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := StatusPage(data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render status page", http.StatusInternalServerError)
			return
		}
	}
}

func StatusJSONQueryHandler(db *sqlite.DB, store *sheets.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		if err := json.NewEncoder(w).Encode(loadReport(r, db, store)); err != nil {
			slog.Error("status: encode failed", slog.Any("err", err))
		}
	}
}

// SyncNowCommandHandler polls the spreadsheet immediately.
func SyncNowCommandHandler(db *sqlite.DB, poller Refresher, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		snap := poller.RefreshNow(r.Context())
		failed := snap.FailedSources()
		if db != nil && auditSvc != nil {
			if err := auditSvc.Record(r.Context(), db, session.UserID, audit.ActionSyncNow, "sheets", "manual",
				nil, map[string]int{"sources": len(snap.Sources), "failed": len(failed)}); err != nil {
				slog.Error("status: audit sync failed", slog.Any("err", err))
			}
		}

		msg := "Sync complete"
		if len(failed) > 0 {
			msg = "Sync complete, " + strconv.Itoa(len(failed)) + " source(s) failed"
		}
		http.Redirect(w, r, "/tasker/status?status="+url.QueryEscape(msg), http.StatusSeeOther)
	}
}
