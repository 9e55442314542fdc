package webui

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

type renderer struct {
	tmpl *template.Template
}

func newRenderer() *renderer {
	tmpl := template.New("").Funcs(template.FuncMap{
		"money": fmtMoney,
		"pct1":  fmtPct1,
	})
	return &renderer{tmpl: template.Must(tmpl.ParseFS(templateFS, "templates/*.gohtml"))}
}

func (r *renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.tmpl.ExecuteTemplate(w, name, data)
}
