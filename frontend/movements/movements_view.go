package movements

import (
	"github.com/a-h/templ"

	"logidash/frontend/shared/html"
)

var views = html.Parse("movements", `
{{define "body"}}
<section class="toolbar">
  <form method="get" class="range">
    <label>From <input type="date" name="start" value="{{.Start}}"></label>
    <label>To <input type="date" name="end" value="{{.End}}"></label>
    <button type="submit">Apply</button>
  </form>
</section>
<section class="stats">
  {{range .Stats}}<div class="stat"><span class="stat-title">{{.Title}}</span><span class="stat-value">{{.Value}}</span></div>{{end}}
</section>
{{if .EmptyMessage}}
<div class="empty">
  <p>{{.EmptyMessage}}</p>
  <p class="muted">All-time records for this tenant: {{.AllTimeCount}}</p>
</div>
{{else if eq .Kind "inbound"}}{{template "inbound" .}}{{else}}{{template "outbound" .}}{{end}}
{{with .InboundDetail}}{{template "inboundDetail" .}}{{end}}
{{with .OutboundDetail}}{{template "outboundDetail" .}}{{end}}
{{end}}

{{define "inbound"}}
<table class="grid">
  <thead><tr><th>Date</th><th>GRN ID</th><th>Vehicle No</th><th>Driver</th><th>Invoice</th><th>Pallets</th><th>Boxes</th><th>Action</th></tr></thead>
  <tbody>
  {{range .Inbound}}
    <tr><td>{{.Date}}</td><td>{{orDash .GRNID}}</td><td>{{.Vehicle}}</td><td>{{.Driver}}</td><td>{{.Invoice}}</td><td>{{.Pallets}}</td><td>{{.Boxes}}</td><td><a href="{{.DetailURL}}">View</a></td></tr>
  {{end}}
  </tbody>
</table>
{{end}}

{{define "outbound"}}
<table class="grid">
  <thead><tr><th>Actual Date</th><th>Order Date</th><th>Customer</th><th>DN</th><th>Status</th><th>Pallets</th><th>Boxes</th><th>Action</th></tr></thead>
  <tbody>
  {{range .Outbound}}
    <tr><td>{{.ActualDate}}</td><td>{{.OrderDate}}</td><td>{{.Customer}}</td><td>{{.DNID}}</td><td>{{.Status}}</td><td>{{.Pallets}}</td><td>{{.Boxes}}</td><td><a href="{{.DetailURL}}">View</a></td></tr>
  {{end}}
  </tbody>
</table>
{{end}}

{{define "inboundDetail"}}
<div class="modal" role="dialog" aria-modal="true">
  <div class="modal-card">
    <header class="modal-head">
      <div><span class="label">Vehicle</span> {{.Vehicle}}</div>
      <div><span class="label">GRN</span> {{.GRN}}</div>
      <div><span class="label">Driver</span> {{orNA .Driver}} / <span class="label">Invoice</span> {{orNA .Invoice}}</div>
      <div><span class="label">Date</span> {{.Date}}</div>
      <a class="close" href="{{.CloseURL}}">Close</a>
    </header>
    <h2>PALLET BUILD DETAILS</h2>
    {{if .Pallets}}
    <table class="grid">
      <thead><tr><th>Pallet ID</th><th>SKU Info</th><th>Batch/Expiry</th><th>Quantity</th><th>Photo</th></tr></thead>
      <tbody>
      {{range .Pallets}}
        <tr>
          <td>{{.PalletID}}</td>
          <td>{{.SKUID}}<br><span class="muted">{{.Description}}</span></td>
          <td>{{orNA .BatchNumber}}<br><span class="muted">{{orNA .ExpiryDate}}</span></td>
          <td>{{.QuantityBoxes}} Boxes</td>
          <td>{{if .HasPhoto}}<a href="{{.PhotosURL}}" target="_blank" rel="noopener">View Photo</a>{{else}}No Photo{{end}}</td>
        </tr>
      {{end}}
      </tbody>
    </table>
    {{else}}<p class="empty">No pallet build details found for this vehicle.</p>{{end}}
  </div>
</div>
{{end}}

{{define "outboundDetail"}}
<div class="modal" role="dialog" aria-modal="true">
  <div class="modal-card">
    <header class="modal-head">
      <div><span class="label">DN</span> {{.DNID}}</div>
      <div><span class="label">Customer</span> {{.Customer}}</div>
      <div><span class="label">Order Date</span> {{.OrderDate}} / <span class="label">Status</span> {{orNA .Status}}</div>
      <div><span class="label">Date</span> {{.Date}}</div>
      <a class="close" href="{{.CloseURL}}">Close</a>
    </header>
    <h2>PICK EXECUTION DETAILS</h2>
    {{if .Picks}}
    <table class="grid">
      <thead><tr><th>SKU Info</th><th>Batch/Expiry</th><th>Qty</th></tr></thead>
      <tbody>
      {{range .Picks}}
        <tr>
          <td>{{.SKUID}}<br><span class="muted">{{.Description}}</span></td>
          <td>{{orNA .BatchNumber}}<br><span class="muted">{{orNA .ExpiryDate}}</span></td>
          <td>{{.QuantityPicked}} / {{.PickQuantity}}</td>
        </tr>
      {{end}}
      </tbody>
    </table>
    {{else}}<p class="empty">No pick execution details found for this DN.</p>{{end}}
  </div>
</div>
{{end}}`)

// MovementsPage renders the inbound or outbound tab.
func MovementsPage(data PageData) templ.Component {
	return html.Page(data.Layout, html.Component(views, "body", data))
}
