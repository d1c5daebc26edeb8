package nav

import (
	"time"

	"logidash/infrastructure/rbac"
	"logidash/infrastructure/sheets"
	"logidash/models"
)

// Tab is one entry of the dashboard tab bar.
type Tab struct {
	Key   string
	Label string
	Href  string
}

// Tab keys.
const (
	TabInbound      = "inbound"
	TabOutbound     = "outbound"
	TabLiveInward   = "live-inward"
	TabLiveOutbound = "live-outbound"
	TabStock        = "stock"
	TabDanger       = "danger"
	TabBlueprint    = "blueprint"
	TabExports      = "exports"
	TabStatus       = "status"
	TabHelp         = "help"
	TabAdminUsers   = "admin-users"
)

var viewerTabs = []Tab{
	{Key: TabInbound, Label: "Inbound", Href: "/tasker/inbound"},
	{Key: TabOutbound, Label: "Outbound", Href: "/tasker/outbound"},
	{Key: TabLiveInward, Label: "Live Inward", Href: "/tasker/live/inward"},
	{Key: TabLiveOutbound, Label: "Live Outbound", Href: "/tasker/live/outbound"},
	{Key: TabStock, Label: "Stock", Href: "/tasker/stock"},
	{Key: TabDanger, Label: "Danger Stock", Href: "/tasker/danger"},
	{Key: TabBlueprint, Label: "Blueprint", Href: "/tasker/blueprint"},
	{Key: TabExports, Label: "Exports", Href: "/tasker/exports"},
	{Key: TabStatus, Label: "Status", Href: "/tasker/status"},
	{Key: TabHelp, Label: "Help", Href: "/tasker/help"},
}

// TopNavData is shared with page renderers.
type TopNavData struct {
	Email      string
	Name       string
	Picture    string
	Role       string
	IsAdmin    bool
	Active     string
	Tabs       []Tab
	Tenant     string
	Connection string
	Healthy    bool
	SyncedAt   time.Time
}

func BuildTopNavData(session models.Session, active string) TopNavData {
	data := TopNavData{
		Email:   session.User.Email,
		Name:    session.User.DisplayName(),
		Picture: session.User.Picture,
		Role:    session.User.Role,
		IsAdmin: session.User.Role == rbac.RoleAdmin,
		Active:  active,
	}
	data.Tabs = append(data.Tabs, viewerTabs...)
	if data.IsAdmin {
		data.Tabs = append(data.Tabs, Tab{Key: TabAdminUsers, Label: "Users", Href: "/tasker/admin/users"})
	}
	return data
}

// WithState adds the connection indicator shown next to the tabs.
func (d TopNavData) WithState(tenant string, st sheets.State) TopNavData {
	d.Tenant = tenant
	d.Connection = st.Connection()
	d.Healthy = st.Err == "" && !st.Loading
	d.SyncedAt = st.SyncedAt
	return d
}
