package blueprint

import (
	"log/slog"
	"net/http"

	"logidash/frontend/shared/html"
	"logidash/frontend/shared/nav"
	"logidash/infrastructure/sheets"
)

// BlueprintPageQueryHandler renders the warehouse map. ?loc= opens the
// pallet list of one location.
func BlueprintPageQueryHandler(store *sheets.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		plan := Build(store.Snapshot())
		data := PageData{
			Layout: html.NewLayout(r, "Blueprint", nav.TabBlueprint, store),
			Plan:   plan,
			Empty:  len(plan.Aisles) == 0,
		}
		if slot, ok := plan.Find(r.URL.Query().Get("loc")); ok {
			data.Selected = &slot
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := BlueprintPage(data).Render(r.Context(), w); err != nil {
			slog.Error("render blueprint failed", slog.Any("err", err))
			http.Error(w, "failed to render page", http.StatusInternalServerError)
		}
	}
}
