package handler

import (
	"html/template"
	"io"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nesthome/nesthome-web/internal/api/middleware"
	"github.com/nesthome/nesthome-web/internal/api/templates"
)

// Renderer adapts html/template to echo.Renderer. All pages ship embedded;
// a missing template is a programming error surfaced at startup.
type Renderer struct {
	t *template.Template
}

// NewRenderer parses the embedded template set.
func NewRenderer() (*Renderer, error) {
	t, err := template.ParseFS(templates.FS, "*.gohtml")
	if err != nil {
		return nil, err
	}
	return &Renderer{t: t}, nil
}

// Render satisfies echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.t.ExecuteTemplate(w, name, data)
}

// page assembles the data every template expects: title, the current
// identity (nil when anonymous), and the footer year. Handlers add their
// page-specific keys on top.
func page(c echo.Context, title string) map[string]any {
	data := map[string]any{
		"Title": title,
		"Year":  time.Now().Year(),
	}
	if m := middleware.Manager(c); m != nil {
		data["Identity"] = m.Identity()
	}
	return data
}
