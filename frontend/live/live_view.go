package live

import (
	"github.com/a-h/templ"

	"logidash/frontend/shared/html"
)

var views = html.Parse("live", `
{{define "body"}}
<section class="toolbar">
  <form method="get" class="range">
    <label>From <input type="date" name="start" value="{{.Start}}"></label>
    <label>To <input type="date" name="end" value="{{.End}}"></label>
    <input type="search" name="q" value="{{.Search}}" placeholder="Search ID or date">
    <button type="submit">Apply</button>
  </form>
</section>
<section class="board board-{{.Board}}">
  <h3>{{.Title}}</h3>
  <table class="grid rail">
    <thead><tr><th>{{.IDHeader}}</th>{{range .Stages}}<th class="stage-head">{{.}}</th>{{end}}</tr></thead>
    <tbody>
    {{range .Rows}}
      <tr>
        <td><strong>{{.ID}}</strong><br><span class="muted">{{.Sub}}</span></td>
        {{range .Stages}}<td class="stage{{if .Active}} stage-on{{end}}{{if .Linked}} stage-linked{{end}}" title="{{.Name}}"><span class="dot"></span></td>{{end}}
      </tr>
    {{else}}
      <tr><td colspan="7" class="empty">{{.EmptyMessage}}</td></tr>
    {{end}}
    </tbody>
  </table>
</section>
{{end}}`)

// BoardPage renders one live control board.
func BoardPage(data PageData) templ.Component {
	return html.Page(data.Layout, html.Component(views, "body", data))
}
