package exports

import (
	"github.com/a-h/templ"

	"logidash/frontend/shared/html"
)

var views = html.Parse("exports", `
{{define "body"}}
<h2>Downloads</h2>
<ul class="links">
  {{range .Links}}<li><a class="button" href="{{.Href}}">{{.Label}}</a></li>{{end}}
</ul>
<h2>Recent Exports</h2>
{{if .Recent}}
<table class="grid">
  <thead><tr><th>When</th><th>Export</th><th>Format</th><th>Rows</th></tr></thead>
  <tbody>
  {{range .Recent}}<tr><td>{{datetime .CreatedAt}}</td><td>{{.ExportType}}</td><td>{{.Format}}</td><td>{{.RowCount}}</td></tr>{{end}}
  </tbody>
</table>
{{else}}<p class="empty">Nothing exported yet.</p>{{end}}
{{end}}`)

func ExportsPage(data PageData) templ.Component {
	return html.Page(data.Layout, html.Component(views, "body", data))
}
