package html

import (
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"

	sessioncontext "logidash/frontend/shared/context"
	"logidash/frontend/shared/nav"
	"logidash/infrastructure/sheets"
)

type LayoutData struct {
	Title        string
	Nav          nav.TopNavData
	Status       string
	ErrorMessage string
}

var layout = Parse("layout", `
{{define "head"}}<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} | Logistics Dashboard</title>
<link rel="stylesheet" href="/assets/app.css">
</head>
<body>
{{end}}
{{define "flash"}}
<main class="page">
{{if .ErrorMessage}}<div class="flash flash-error" role="alert">{{.ErrorMessage}}</div>{{end}}
{{if .Status}}<div class="flash flash-ok" role="status">{{.Status}}</div>{{end}}
{{end}}
{{define "foot"}}
</main>
<script src="/assets/dashboard.js" defer></script>
{{end}}
{{define "close"}}
</body>
</html>
{{end}}`)

// Page wraps body in the shared shell: head, tab bar, flash messages and scripts.
func Page(data LayoutData, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := layout.ExecuteTemplate(w, "head", data); err != nil {
			return err
		}
		if err := nav.TopNav(data.Nav).Render(ctx, w); err != nil {
			return err
		}
		if err := layout.ExecuteTemplate(w, "flash", data); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		if err := layout.ExecuteTemplate(w, "foot", data); err != nil {
			return err
		}
		if _, err := io.WriteString(w, CSRFFormScript()); err != nil {
			return err
		}
		return layout.ExecuteTemplate(w, "close", data)
	})
}

// Bare renders a page without the tab bar (login and welcome screens).
func Bare(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		data := LayoutData{Title: title}
		if err := layout.ExecuteTemplate(w, "head", data); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, CSRFFormScript()); err != nil {
			return err
		}
		return layout.ExecuteTemplate(w, "close", data)
	})
}

// NewLayout fills the shell for an authenticated tab page.
func NewLayout(r *http.Request, title, tab string, store *sheets.Store) LayoutData {
	session, _ := sessioncontext.GetSessionFromContext(r.Context())
	data := LayoutData{
		Title:        title,
		Nav:          nav.BuildTopNavData(session, tab),
		Status:       r.URL.Query().Get("status"),
		ErrorMessage: r.URL.Query().Get("error"),
	}
	if store != nil {
		data.Nav = data.Nav.WithState(store.Snapshot().Tenant.Name, store.State())
	}
	return data
}
