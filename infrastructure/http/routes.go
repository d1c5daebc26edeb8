package http

import (
	"net/http"

	adminusers "logidash/frontend/adminUsers"
	"logidash/frontend/blueprint"
	exportspage "logidash/frontend/exports"
	"logidash/frontend/help"
	"logidash/frontend/live"
	"logidash/frontend/login"
	"logidash/frontend/movements"
	"logidash/frontend/status"
	"logidash/frontend/stock"
	"logidash/infrastructure/rbac"
	"logidash/infrastructure/websocket"

	"github.com/go-chi/chi/v5"
)

// RegisterLoginRoutes registers login/logout routes.
func (s *Server) RegisterLoginRoutes() {
	s.router.Get("/login", login.LoginScreenQueryHandler(s.Config.Auth))
	s.router.Post("/login", login.ServiceLoginCommandHandler(s.DB, s.SessionCache, s.UserCache, s.Config.Auth, s.Audit))
	s.router.Post("/login/google", login.GoogleLoginCommandHandler(s.DB, s.SessionCache, s.UserCache, s.Verifier, s.Config.Auth, s.Audit))
	s.router.Post("/logout", login.LogoutHandler(s.DB, s.SessionCache))
}

// RegisterAdminRoutes registers admin-only routes.
func (s *Server) RegisterAdminRoutes(r chi.Router) chi.Router {
	s.Rbac.Add(rbac.RoleAdmin, "ADMIN_USERS_LIST_VIEW", http.MethodGet, "/tasker/admin/users")
	r.Get("/admin/users", adminusers.UsersPageQueryHandler(s.DB, s.Store, s.Config.Auth))
	s.Rbac.Add(rbac.RoleAdmin, "ADMIN_USERS_ROLE_EDIT", http.MethodPost, "/tasker/admin/users/*/role")
	r.Post("/admin/users/{id}/role", adminusers.ChangeRoleCommandHandler(s.DB, s.SessionCache, s.UserCache, s.Config.Auth, s.Audit))

	s.Rbac.Add(rbac.RoleAdmin, "SYNC_NOW", http.MethodPost, "/tasker/status/sync")
	if s.Poller != nil {
		r.Post("/status/sync", status.SyncNowCommandHandler(s.DB, s.Poller, s.Audit))
	}
	return r
}

// RegisterFrontendRoutes registers authenticated routes.
func (s *Server) RegisterFrontendRoutes(r chi.Router) chi.Router {
	s.Rbac.Add(rbac.RoleViewer, "WELCOME_VIEW", http.MethodGet, "/tasker/welcome")
	r.Get("/welcome", login.WelcomePageQueryHandler(s.DB, s.SessionCache))

	s.Rbac.Add(rbac.RoleViewer, "LIVE_UPDATES", http.MethodGet, "/tasker/ws")
	r.Get("/ws", websocket.Handler(s.Hub))

	s.RegisterMovementRoutes(r)
	s.RegisterStockRoutes(r)
	s.RegisterExportRoutes(r)

	s.Rbac.Add(rbac.RoleViewer, "STATUS_VIEW", http.MethodGet, "/tasker/status")
	r.Get("/status", status.StatusPageQueryHandler(s.DB, s.Store))
	s.Rbac.Add(rbac.RoleViewer, "STATUS_JSON", http.MethodGet, "/tasker/status.json")
	r.Get("/status.json", status.StatusJSONQueryHandler(s.DB, s.Store))

	s.Rbac.Add(rbac.RoleViewer, "HELP_VIEW", http.MethodGet, "/tasker/help")
	r.Get("/help", help.HelpPageQueryHandler(s.Store))

	return r
}

func (s *Server) RegisterMovementRoutes(r chi.Router) {
	s.Rbac.Add(rbac.RoleViewer, "INBOUND_VIEW", http.MethodGet, "/tasker/inbound")
	r.Get("/inbound", movements.InboundPageQueryHandler(s.Store))

	s.Rbac.Add(rbac.RoleViewer, "OUTBOUND_VIEW", http.MethodGet, "/tasker/outbound")
	r.Get("/outbound", movements.OutboundPageQueryHandler(s.Store))

	s.Rbac.Add(rbac.RoleViewer, "LIVE_INWARD_VIEW", http.MethodGet, "/tasker/live/inward")
	r.Get("/live/inward", live.InwardBoardQueryHandler(s.Store))

	s.Rbac.Add(rbac.RoleViewer, "LIVE_OUTBOUND_VIEW", http.MethodGet, "/tasker/live/outbound")
	r.Get("/live/outbound", live.OutboundBoardQueryHandler(s.Store))
}

func (s *Server) RegisterStockRoutes(r chi.Router) {
	s.Rbac.Add(rbac.RoleViewer, "STOCK_VIEW", http.MethodGet, "/tasker/stock")
	r.Get("/stock", stock.StockPageQueryHandler(s.Store))

	s.Rbac.Add(rbac.RoleViewer, "DANGER_VIEW", http.MethodGet, "/tasker/danger")
	r.Get("/danger", stock.DangerPageQueryHandler(s.Store))

	s.Rbac.Add(rbac.RoleViewer, "BLUEPRINT_VIEW", http.MethodGet, "/tasker/blueprint")
	r.Get("/blueprint", blueprint.BlueprintPageQueryHandler(s.Store))
}

func (s *Server) RegisterExportRoutes(r chi.Router) {
	s.Rbac.Add(rbac.RoleViewer, "EXPORTS_VIEW", http.MethodGet, "/tasker/exports")
	r.Get("/exports", exportspage.ExportsPageQueryHandler(s.DB, s.Store))

	s.Rbac.Add(rbac.RoleViewer, "EXPORT_STOCK", http.MethodGet, "/tasker/exports/stock")
	r.Get("/exports/stock", exportspage.StockExportHandler(s.DB, s.Store, s.Audit))

	s.Rbac.Add(rbac.RoleViewer, "EXPORT_DANGER", http.MethodGet, "/tasker/exports/danger")
	r.Get("/exports/danger", exportspage.DangerExportHandler(s.DB, s.Store, s.Audit))

	s.Rbac.Add(rbac.RoleViewer, "EXPORT_PICK_SHEET", http.MethodGet, "/tasker/exports/danger/picksheet.pdf")
	r.Get("/exports/danger/picksheet.pdf", exportspage.DangerPickSheetPDFHandler(s.DB, s.Store, s.Audit))

	s.Rbac.Add(rbac.RoleViewer, "EXPORT_WAREHOUSE", http.MethodGet, "/tasker/exports/warehouse")
	r.Get("/exports/warehouse", exportspage.WarehouseExportHandler(s.DB, s.Store, s.Audit))
}
