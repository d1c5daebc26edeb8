package blueprint

import (
	"github.com/a-h/templ"

	"logidash/frontend/shared/html"
)

var views = html.Parse("blueprint", `
{{define "body"}}
<section class="toolbar">
  <a class="button" href="/tasker/exports/warehouse">Export Stock</a>
  <a class="button" href="/tasker/exports/warehouse?format=xlsx">Export XLSX</a>
</section>
{{if .Empty}}<p class="empty">No warehouse locations loaded.</p>{{else}}
<nav class="aisle-nav">
  <a href="#top">TOP</a>
  {{range .Plan.Aisles}}<a href="#aisle-{{.Name}}">{{.Name}}</a>{{end}}
</nav>
{{range .Plan.Aisles}}
<section class="aisle" id="aisle-{{.Name}}">
  <header class="aisle-head">
    <h3>AISLE {{.Name}}</h3>
    <span>Total {{.Total}}</span>
    <span class="ok">Occupied {{.Occupied}}</span>
    <span class="muted">Empty {{.Empty}}</span>
    <details class="aisle-skus">
      <summary>SKUS</summary>
      {{if .SKUs}}
      <ul>{{range .SKUs}}<li><strong>{{.SKUID}}</strong> {{.Description}} <span class="qty">{{.TotalQty}}</span></li>{{end}}</ul>
      {{else}}<p class="muted">No stock in this aisle.</p>{{end}}
    </details>
  </header>
  <div class="bays">
  {{range .Bays}}
    <div class="bay">
      <div class="bay-name">{{.Name}}</div>
      {{range .TopDown}}
      <div class="level">
        {{range .Locations}}
        <a class="slot{{if .Occupied}} slot-on density-{{.Density}}{{end}}" href="?loc={{.Code}}" title="{{.Code}}">{{.Level}}</a>
        {{end}}
      </div>
      {{end}}
    </div>
  {{end}}
  </div>
</section>
{{end}}
{{end}}
{{with .Selected}}
<div class="modal" role="dialog" aria-modal="true">
  <div class="modal-card">
    <header class="modal-head">
      <div><span class="label">Location</span> {{.Code}}</div>
      <div><span class="label">Pallets</span> {{len .Pallets}}</div>
      <a class="close" href="/tasker/blueprint">Close</a>
    </header>
    {{if .Pallets}}
    <table class="grid">
      <thead><tr><th>SKU</th><th>Qty</th><th>Pallet ID</th><th>Expiry</th></tr></thead>
      <tbody>
      {{range .Pallets}}<tr><td>{{.SKUID}}<br><span class="muted">{{orNA .Description}}</span></td><td>{{qty .CurrentQty}}</td><td>{{.PalletID}}</td><td>{{orNA .ExpiryDate}}</td></tr>{{end}}
      </tbody>
    </table>
    {{else}}<p class="empty">Location is empty.</p>{{end}}
  </div>
</div>
{{end}}
{{end}}`)

func BlueprintPage(data PageData) templ.Component {
	return html.Page(data.Layout, html.Component(views, "body", data))
}
