package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"path/filepath"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer turns a template name plus data context into an HTML response.
type Renderer struct {
	tmpl *template.Template
}

// New parses the embedded templates. TEMPLATES_DIR overrides with an
// on-disk directory for development.
func New() (*Renderer, error) {
	if dir := os.Getenv("TEMPLATES_DIR"); dir != "" {
		tmpl, err := template.ParseGlob(filepath.Join(dir, "*.html"))
		if err != nil {
			return nil, fmt.Errorf("parse templates from %s: %w", dir, err)
		}
		return &Renderer{tmpl: tmpl}, nil
	}

	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse embedded templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// HTML renders the named template into a buffer first, so a template error
// never leaves a half-written page behind.
func (r *Renderer) HTML(w http.ResponseWriter, status int, name string, data interface{}) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		log.Printf("❌ Template %s failed: %v", name, err)
		http.Error(w, "Something went wrong. Please try again.", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
