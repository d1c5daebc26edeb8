package help

import (
	"github.com/a-h/templ"

	"logidash/frontend/shared/html"
)

var views = html.Parse("help", `
{{define "help"}}
<h2>How to use the dashboard</h2>
<p>Data for <strong>{{.Tenant}}</strong> is read from the warehouse spreadsheet and refreshed automatically. Pages reload on their own when new data arrives.</p>
<p>Date filters accept a start and end day. Leaving both empty shows today.</p>
<dl class="help">
{{range .Topics}}
  <dt><a href="{{.Href}}">{{.Title}}</a></dt>
  <dd>{{.Body}}</dd>
{{end}}
</dl>
{{if .IsAdmin}}
<h3>Administration</h3>
<p>The Users tab lists everyone who has signed in and lets you change their role. Admins listed in the configuration cannot be demoted. Use <em>Sync now</em> on the Status tab to poll the spreadsheet immediately.</p>
{{end}}
{{end}}`)

func HelpPage(data PageData) templ.Component {
	return html.Page(data.Layout, html.Component(views, "help", data))
}
