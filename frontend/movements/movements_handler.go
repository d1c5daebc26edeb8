package movements

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"logidash/frontend/shared/html"
	"logidash/frontend/shared/nav"
	"logidash/infrastructure/dashboard"
	"logidash/infrastructure/sheets"
)

// InboundPageQueryHandler renders the inbound vehicles tab.
func InboundPageQueryHandler(store *sheets.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		data := BuildInboundPage(store.Snapshot(), InboundQuery{
			Range:   dashboard.ParseDateRange(q.Get("start"), q.Get("end"), time.Now()),
			GRNID:   strings.TrimSpace(q.Get("grn")),
			Vehicle: strings.TrimSpace(q.Get("vehicle")),
		})
		data.Layout = html.NewLayout(r, "Inbound", nav.TabInbound, store)
		render(w, r, data)
	}
}

// OutboundPageQueryHandler renders the outbound dispatch tab.
func OutboundPageQueryHandler(store *sheets.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		data := BuildOutboundPage(store.Snapshot(), OutboundQuery{
			Range: dashboard.ParseDateRange(q.Get("start"), q.Get("end"), time.Now()),
			DNID:  strings.TrimSpace(q.Get("dn")),
		})
		data.Layout = html.NewLayout(r, "Outbound", nav.TabOutbound, store)
		render(w, r, data)
	}
}

func render(w http.ResponseWriter, r *http.Request, data PageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := MovementsPage(data).Render(r.Context(), w); err != nil {
		slog.Error("render movements page failed", slog.String("kind", data.Kind), slog.Any("err", err))
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
}
