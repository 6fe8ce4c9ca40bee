package render

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/dkozyrev/sneakershop/internal/logger"
)

//go:embed templates/*.html
var templates embed.FS

// Renderer executes named HTML page templates embedded in the binary.
type Renderer struct {
	templates *template.Template
	logger    *logger.Logger
}

func New(logger *logger.Logger) (*Renderer, error) {
	funcs := template.FuncMap{
		"price": func(cents int64) string {
			sign := ""
			if cents < 0 {
				sign = "-"
				cents = -cents
			}
			return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
		},
	}

	t, err := template.New("").Funcs(funcs).ParseFS(templates, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Renderer{templates: t, logger: logger}, nil
}

// Page writes the named template with data as an HTML response.
func (r *Renderer) Page(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := r.templates.ExecuteTemplate(w, name, data); err != nil {
		r.logger.Error("failed to render template", "template", name, "error", err.Error())
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
