// Package templates renders the server-side dashboard pages
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/cordial-cms/cordial-cms/medication"
)

//go:embed pages/*.html
var pageFS embed.FS

var shared = []string{"pages/layout.html", "pages/partials.html"}

// Renderer holds one parsed template set per page
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every embedded page
func New() (*Renderer, error) {
	names, err := fs.Glob(pageFS, "pages/*.html")
	if err != nil {
		return nil, err
	}

	funcs := template.FuncMap{
		"doseLabel": medication.DoseLabel,
	}

	r := &Renderer{pages: map[string]*template.Template{}}
	for _, name := range names {
		if isShared(name) {
			continue
		}
		files := append(append([]string{}, shared...), name)
		t, err := template.New("layout").Funcs(funcs).ParseFS(pageFS, files...)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[strings.TrimSuffix(path.Base(name), ".html")] = t
	}
	return r, nil
}

func isShared(name string) bool {
	for _, s := range shared {
		if s == name {
			return true
		}
	}
	return false
}

// Render executes page into w with the given status. Nothing is written when the
// template fails.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data interface{}) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
