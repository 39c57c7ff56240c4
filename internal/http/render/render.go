// Package render отвечает за серверный рендеринг HTML-шаблонов.
// Шаблоны встроены в бинарник через embed.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Renderer хранит разобранный набор шаблонов.
type Renderer struct {
	tmpl *template.Template
}

// New разбирает встроенные шаблоны.
func New() (*Renderer, error) {
	const op = "render.New"

	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// HTML рендерит шаблон name с данными data в ответ.
func (r *Renderer) HTML(w http.ResponseWriter, name string, data any) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return r.tmpl.ExecuteTemplate(w, name, data)
}
