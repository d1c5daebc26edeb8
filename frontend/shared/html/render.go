package html

import (
	"context"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/shopspring/decimal"

	"logidash/infrastructure/sheetrow"
)

// Funcs are the helpers every page template may use.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"qty": sheetrow.FormatQty,
		"orNA": func(s string) string {
			if strings.TrimSpace(s) == "" {
				return "N/A"
			}
			return s
		},
		"orDash": func(s string) string {
			if strings.TrimSpace(s) == "" {
				return "--"
			}
			return s
		},
		"datetime": func(t time.Time) string {
			if t.IsZero() {
				return "Never"
			}
			return t.Format("02/01/2006 15:04:05")
		},
		"isZero": func(d decimal.Decimal) bool { return d.IsZero() },
	}
}

// Parse compiles a page template with the shared helpers.
func Parse(name, src string) *template.Template {
	return template.Must(template.New(name).Funcs(Funcs()).Parse(src))
}

// Component renders a named template as a templ component.
func Component(t *template.Template, name string, data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return t.ExecuteTemplate(w, name, data)
	})
}
