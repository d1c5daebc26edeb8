package help

import (
	"fmt"
	"net/http"

	sessioncontext "logidash/frontend/shared/context"
	"logidash/frontend/shared/html"
	"logidash/frontend/shared/nav"
	"logidash/infrastructure/rbac"
	"logidash/infrastructure/sheets"
)

func HelpPageQueryHandler(store *sheets.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		tenant := store.Snapshot().Tenant
		if tenant.ExpiryDays <= 0 {
			tenant.ExpiryDays = 30
		}
		data := PageData{
			Layout:     html.NewLayout(r, "Help", nav.TabHelp, store),
			IsAdmin:    session.User.Role == rbac.RoleAdmin,
			Tenant:     tenant.Name,
			ExpiryDays: tenant.ExpiryDays,
			Topics:     topics(tenant.ExpiryDays),
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := HelpPage(data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render help page", http.StatusInternalServerError)
			return
		}
	}
}

func topics(expiryDays int) []Topic {
	return []Topic{
		{Title: "Inbound", Href: "/tasker/inbound", Body: "Vehicles received for the selected date range. Click a vehicle to see its GRNs and pallet builds."},
		{Title: "Outbound", Href: "/tasker/outbound", Body: "Dispatch notes for the selected date range. Click a DN to see its pick list."},
		{Title: "Live Inward / Live Outbound", Href: "/tasker/live/inward", Body: "Stage-by-stage progress of each GRN or DN. A stage lights up once the sheet marks it done."},
		{Title: "Stock", Href: "/tasker/stock", Body: "Current quantity per SKU. Search by SKU or description and sort by quantity."},
		{Title: "Danger Stock", Href: "/tasker/danger", Body: fmt.Sprintf("Occupied pallets expiring within %d days. The pick sheet PDF prints barcodes for each pallet.", expiryDays)},
		{Title: "Blueprint", Href: "/tasker/blueprint", Body: "Warehouse map by aisle, bay and level. Darker cells hold more pallets. Click a cell to see its contents."},
		{Title: "Exports", Href: "/tasker/exports", Body: "CSV and Excel downloads of stock, danger stock and the warehouse layout."},
		{Title: "Status", Href: "/tasker/status", Body: "Connection state, last sync time and row counts for every sheet tab."},
	}
}
