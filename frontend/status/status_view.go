package status

import (
	"github.com/a-h/templ"

	"logidash/frontend/shared/html"
)

var views = html.Parse("status", `
{{define "status"}}
{{with .Report}}
<section class="debug">
  <h2>Data Status</h2>
  <div class="debug-grid">
    <div>
      <strong>Connection:</strong> {{.Connection}}<br>
      <strong>{{.Tenant}} Inbound:</strong> {{.InboundCount}} | <strong>Outbound:</strong> {{.OutboundCount}}<br>
      <strong>Detail Sheets:</strong> Pallets: {{.PalletCount}}, GRNs: {{.GRNCount}}, Picks: {{.PickCount}}<br>
      <strong>Last Sync:</strong> {{datetime .SyncedAt}}
    </div>
    <div>
      <strong>Pallet Sample:</strong>
      <pre>{{.PalletSample}}</pre>
    </div>
  </div>
</section>
<h2>Sources</h2>
<table class="grid">
  <thead><tr><th>Tab</th><th>Sheet</th><th>Rows</th><th>Fetch Time</th><th>Error</th></tr></thead>
  <tbody>
  {{range .Sources}}
    <tr{{if .Err}} class="row-error"{{end}}><td>{{.Key}}</td><td>{{.Sheet}}</td><td>{{.Rows}}</td><td>{{.Duration}}</td><td>{{orDash .Err}}</td></tr>
  {{else}}
    <tr><td colspan="5" class="empty">No poll has completed yet.</td></tr>
  {{end}}
  </tbody>
</table>
<h2>Recent Syncs</h2>
<table class="grid">
  <thead><tr><th>Started</th><th>Trigger</th><th>Duration</th><th>OK</th><th>Failed</th><th>Rows</th><th>Error</th></tr></thead>
  <tbody>
  {{range .Runs}}
    <tr><td>{{datetime .StartedAt}}</td><td>{{.TriggeredBy}}</td><td>{{.Duration}}</td><td>{{.SourcesOK}}</td><td>{{.SourcesFailed}}</td><td>{{.TotalRows}}</td><td>{{orDash .ErrorText}}</td></tr>
  {{else}}
    <tr><td colspan="7" class="empty">No sync runs recorded.</td></tr>
  {{end}}
  </tbody>
</table>
{{end}}
<section class="toolbar">
  <a class="button" href="/tasker/status.json">View JSON</a>
  {{if .IsAdmin}}
  <form method="post" action="/tasker/status/sync">
    <button type="submit">Sync now</button>
  </form>
  {{end}}
</section>
{{end}}`)

func StatusPage(data PageData) templ.Component {
	return html.Page(data.Layout, html.Component(views, "status", data))
}
