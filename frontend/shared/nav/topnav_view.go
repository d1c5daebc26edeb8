package nav

import (
	"context"
	"html/template"
	"io"

	"github.com/a-h/templ"
)

var topNavTemplate = template.Must(template.New("topnav").Funcs(template.FuncMap{
	"clock": func(d TopNavData) string {
		if d.SyncedAt.IsZero() {
			return "--:--:--"
		}
		return d.SyncedAt.Format("15:04:05")
	},
}).Parse(`
<header class="topbar">
  <div class="brand">
    <span class="brand-name">{{if .Tenant}}{{.Tenant}} {{end}}Logistics Dashboard</span>
    <span class="conn {{if .Healthy}}conn-ok{{else}}conn-bad{{end}}" data-connection>{{.Connection}}</span>
    <span class="synced">Last sync <time data-synced>{{clock .}}</time></span>
  </div>
  <div class="user">
    {{if .Picture}}<img class="avatar" src="{{.Picture}}" alt="" referrerpolicy="no-referrer">{{end}}
    <span title="{{.Email}}">{{.Name}}</span>
    <span class="role">{{.Role}}</span>
    <form method="post" action="/logout"><button type="submit" class="link">Logout</button></form>
  </div>
</header>
<nav class="tabs">
  {{range .Tabs}}<a href="{{.Href}}" class="tab{{if eq .Key $.Active}} tab-active{{end}}">{{.Label}}</a>{{end}}
</nav>`))

// TopNav renders the header and tab bar.
func TopNav(data TopNavData) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return topNavTemplate.Execute(w, data)
	})
}
