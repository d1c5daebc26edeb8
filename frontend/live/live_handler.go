package live

import (
	"log/slog"
	"net/http"
	"time"

	"logidash/frontend/shared/html"
	"logidash/frontend/shared/nav"
	"logidash/infrastructure/dashboard"
	"logidash/infrastructure/sheets"
)

// InwardBoardQueryHandler renders the live inward control board.
func InwardBoardQueryHandler(store *sheets.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		rng := dashboard.ParseDateRange(q.Get("start"), q.Get("end"), time.Now())
		data := BuildInwardBoard(store.Snapshot(), rng, q.Get("q"))
		data.Layout = html.NewLayout(r, "Live Inward", nav.TabLiveInward, store)
		render(w, r, data)
	}
}

// OutboundBoardQueryHandler renders the live outbound control board.
func OutboundBoardQueryHandler(store *sheets.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		rng := dashboard.ParseDateRange(q.Get("start"), q.Get("end"), time.Now())
		data := BuildOutboundBoard(store.Snapshot(), rng, q.Get("q"))
		data.Layout = html.NewLayout(r, "Live Outbound", nav.TabLiveOutbound, store)
		render(w, r, data)
	}
}

func render(w http.ResponseWriter, r *http.Request, data PageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := BoardPage(data).Render(r.Context(), w); err != nil {
		slog.Error("render live board failed", slog.String("board", data.Board), slog.Any("err", err))
		http.Error(w, "failed to render page", http.StatusInternalServerError)
	}
}
