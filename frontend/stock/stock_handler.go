package stock

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"

	"logidash/frontend/shared/html"
	"logidash/frontend/shared/nav"
	"logidash/infrastructure/sheets"
)

// StockPageQueryHandler renders the aggregated stock tab.
func StockPageQueryHandler(store *sheets.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := BuildStockPage(store.Snapshot(), ParseQuery(r.URL.Query()))
		data.Layout = html.NewLayout(r, "Stock", nav.TabStock, store)
		render(w, r, "stock", StockPage(data))
	}
}

// DangerPageQueryHandler renders pallets nearing expiry.
func DangerPageQueryHandler(store *sheets.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := BuildDangerPage(store.Snapshot(), time.Now())
		data.Layout = html.NewLayout(r, "Danger Stock", nav.TabDanger, store)
		render(w, r, "danger", DangerPage(data))
	}
}

func render(w http.ResponseWriter, r *http.Request, page string, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		slog.Error("render stock page failed", slog.String("page", page), slog.Any("err", err))
		http.Error(w, "failed to render page", http.StatusInternalServerError)
	}
}
