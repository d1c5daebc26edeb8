package stock

import (
	"github.com/a-h/templ"

	"logidash/frontend/shared/html"
)

var views = html.Parse("stock", `
{{define "stats"}}
<section class="stats">
  {{range .}}<div class="stat"><span class="stat-title">{{.Title}}</span><span class="stat-value">{{.Value}}</span></div>{{end}}
</section>
{{end}}

{{define "stock"}}
<section class="toolbar">
  <form method="get" class="search">
    <input type="search" name="q" value="{{.Search}}" placeholder="Search SKU ID or Description...">
    <input type="hidden" name="sort" value="{{.Sort}}">
    <button type="submit">Search</button>
  </form>
  <a class="button" href="?q={{.Search}}&amp;sort={{.NextSort}}">Qty {{if eq .Sort "asc"}}&uarr;{{else}}&darr;{{end}}</a>
  <a class="button" href="{{.CSVURL}}">Export CSV</a>
  <a class="button" href="{{.XLSXURL}}">Export XLSX</a>
</section>
{{template "stats" .Stats}}
<h2>Current Stock</h2>
{{if .Rows}}
<table class="grid">
  <thead><tr><th>SKU ID</th><th>Description</th><th>Total Current Qty</th></tr></thead>
  <tbody>
  {{range .Rows}}<tr><td>{{.SKUID}}</td><td>{{.Description}}</td><td>{{qty .TotalQty}}</td></tr>{{end}}
  </tbody>
  <tfoot><tr><td colspan="2">Total</td><td>{{qty .TotalQty}}</td></tr></tfoot>
</table>
{{else}}<p class="empty">No stock matches the current search.</p>{{end}}
{{end}}

{{define "danger"}}
<section class="toolbar">
  <a class="button" href="{{.CSVURL}}">Export CSV</a>
  <a class="button" href="{{.XLSXURL}}">Export XLSX</a>
  <a class="button" href="{{.PDFURL}}">Pick Sheet PDF</a>
</section>
{{template "stats" .Stats}}
<h2>Expiring Stock (&lt;{{.ExpiryDays}} Days)</h2>
{{if .Rows}}
<table class="grid danger">
  <thead><tr><th>Pallet ID</th><th>GRN ID</th><th>SKU</th><th>Mfg Date</th><th>Expiry Date</th><th>Days Left</th><th>Free Qty</th><th>Location</th></tr></thead>
  <tbody>
  {{range .Rows}}
    <tr>
      <td>{{.PalletID}}</td>
      <td>{{orNA .GRNID}}</td>
      <td>{{.SKUID}}<br><span class="muted">{{.Description}}</span></td>
      <td>{{orNA .MfgDate}}</td>
      <td>{{.ExpiryDate}}</td>
      <td><span class="badge badge-danger">{{.DaysLeft}} Days</span></td>
      <td>{{qty .FreeQty}}</td>
      <td>{{orNA .Location}}</td>
    </tr>
  {{end}}
  </tbody>
  <tfoot><tr><td colspan="6">Total</td><td>{{qty .TotalFree}}</td><td></td></tr></tfoot>
</table>
{{else}}<p class="empty">No pallets expire within {{.ExpiryDays}} days.</p>{{end}}
{{end}}`)

func StockPage(data StockPageData) templ.Component {
	return html.Page(data.Layout, html.Component(views, "stock", data))
}

func DangerPage(data DangerPageData) templ.Component {
	return html.Page(data.Layout, html.Component(views, "danger", data))
}
