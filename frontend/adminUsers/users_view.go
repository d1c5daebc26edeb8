package adminusers

import (
	"github.com/a-h/templ"

	"logidash/frontend/shared/html"
)

var views = html.Parse("adminUsers", `
{{define "body"}}
<h2>Users</h2>
{{if .Users}}
<table class="grid">
  <thead><tr><th>E-mail</th><th>Name</th><th>Login</th><th>Last Login</th><th>Role</th></tr></thead>
  <tbody>
  {{range .Users}}
    <tr>
      <td>{{.Email}}</td>
      <td>{{.Name}}</td>
      <td>{{.Provider}}</td>
      <td>{{if .LastLoginAt}}{{datetime .LastLoginAt}}{{else}}Never{{end}}</td>
      <td>
        {{if .Locked}}<span class="role">{{.Role}}</span> <span class="muted">(configured)</span>{{else}}
        <form method="post" action="/tasker/admin/users/{{.ID}}/role" class="inline">
          <select name="role">
            {{$role := .Role}}{{range $.Roles}}<option value="{{.}}"{{if eq . $role}} selected{{end}}>{{.}}</option>{{end}}
          </select>
          <button type="submit">Save</button>
        </form>
        {{end}}
      </td>
    </tr>
  {{end}}
  </tbody>
</table>
{{else}}<p class="empty">No one has signed in yet.</p>{{end}}
{{end}}`)

func UsersListPage(data PageData) templ.Component {
	return html.Page(data.Layout, html.Component(views, "body", data))
}
