package exports

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	sessioncontext "logidash/frontend/shared/context"
	"logidash/frontend/shared/html"
	"logidash/frontend/shared/nav"
	"logidash/frontend/stock"
	"logidash/infrastructure/audit"
	"logidash/infrastructure/sheets"
	"logidash/infrastructure/sqlite"
)

// ExportsPageQueryHandler lists the downloads and the latest export runs.
func ExportsPageQueryHandler(db *sqlite.DB, store *sheets.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recent, err := ListRecentExportRuns(r.Context(), db, 20)
		if err != nil {
			slog.Error("list export runs failed", slog.Any("err", err))
			http.Error(w, "failed to load export history", http.StatusInternalServerError)
			return
		}
		data := PageData{
			Layout: html.NewLayout(r, "Exports", nav.TabExports, store),
			Links: []Link{
				{Label: "Stock (CSV)", Href: "/tasker/exports/stock"},
				{Label: "Stock (XLSX)", Href: "/tasker/exports/stock?format=xlsx"},
				{Label: "Danger Stock (CSV)", Href: "/tasker/exports/danger"},
				{Label: "Danger Stock (XLSX)", Href: "/tasker/exports/danger?format=xlsx"},
				{Label: "Danger Pick Sheet (PDF)", Href: "/tasker/exports/danger/picksheet.pdf"},
				{Label: "Warehouse (CSV)", Href: "/tasker/exports/warehouse"},
				{Label: "Warehouse (XLSX)", Href: "/tasker/exports/warehouse?format=xlsx"},
			},
			Recent: recent,
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := ExportsPage(data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render exports page", http.StatusInternalServerError)
			return
		}
	}
}

func StockExportHandler(db *sqlite.DB, store *sheets.Store, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t := StockTable(store.Snapshot(), stock.ParseQuery(r.URL.Query()), time.Now())
		serveTable(w, r, db, auditSvc, t)
	}
}

func DangerExportHandler(db *sqlite.DB, store *sheets.Store, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		serveTable(w, r, db, auditSvc, DangerTable(store.Snapshot(), time.Now()))
	}
}

func WarehouseExportHandler(db *sqlite.DB, store *sheets.Store, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		serveTable(w, r, db, auditSvc, WarehouseTable(store.Snapshot(), time.Now()))
	}
}

// DangerPickSheetPDFHandler prints the expiring pallets with scannable ids.
func DangerPickSheetPDFHandler(db *sqlite.DB, store *sheets.Store, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := store.Snapshot()
		now := time.Now()
		rows := stock.DangerRows(snap, now)
		if len(rows) == 0 {
			http.Redirect(w, r, "/tasker/danger?status="+url.QueryEscape("No danger pallets to print"), http.StatusSeeOther)
			return
		}
		pdfBytes, err := renderPickSheetPDF(rows, snap.Tenant.Name, now)
		if err != nil {
			slog.Error("render pick sheet failed", slog.Any("err", err))
			http.Error(w, "failed to render pick sheet", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", "inline; filename="+filename("danger_pick_sheet_", now)+".pdf")
		if _, err := w.Write(pdfBytes); err != nil {
			slog.Warn("write pick sheet failed", slog.Any("err", err))
			return
		}
		logExport(r, db, auditSvc, TypePickSheet, FormatPDF, len(rows))
	}
}

func serveTable(w http.ResponseWriter, r *http.Request, db *sqlite.DB, auditSvc *audit.Service, t Table) {
	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = FormatCSV
	}

	var buf bytes.Buffer
	switch format {
	case FormatCSV:
		if err := writeCSV(&buf, t); err != nil {
			slog.Error("write csv export failed", slog.String("type", t.Type), slog.Any("err", err))
			http.Error(w, "failed to export csv", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
	case FormatXLSX:
		if err := writeXLSX(&buf, t); err != nil {
			slog.Error("write xlsx export failed", slog.String("type", t.Type), slog.Any("err", err))
			http.Error(w, "failed to export xlsx", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	default:
		http.Error(w, "unsupported format", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.%s", t.Filename, format))
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Warn("write export failed", slog.String("type", t.Type), slog.Any("err", err))
		return
	}
	logExport(r, db, auditSvc, t.Type, format, len(t.Rows))
}

// logExport records the download. Failures are logged and never reach the user.
func logExport(r *http.Request, db *sqlite.DB, auditSvc *audit.Service, exportType, format string, rows int) {
	if db == nil {
		return
	}
	userID := sessionUserIDFromContext(r)
	if err := recordExportRun(r.Context(), db, userID, exportType, format, rows); err != nil {
		slog.Error("record export run failed", slog.String("type", exportType), slog.Any("err", err))
	}
	if auditSvc == nil || userID == nil {
		return
	}
	after := map[string]any{"format": format, "rows": rows}
	if err := auditSvc.Record(r.Context(), db, *userID, audit.ActionExport, "export", exportType, nil, after); err != nil {
		slog.Error("audit export failed", slog.String("type", exportType), slog.Any("err", err))
	}
}

func sessionUserIDFromContext(r *http.Request) *int64 {
	session, ok := sessioncontext.GetSessionFromContext(r.Context())
	if !ok || session.UserID <= 0 {
		return nil
	}
	id := session.UserID
	return &id
}
