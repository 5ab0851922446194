package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/url"
	"strings"

	"github.com/custodia-labs/pew/internal/core/format"
	"github.com/custodia-labs/pew/internal/core/ports/driven"
)

//go:embed templates/*.html
var templateFS embed.FS

// Template names.
const (
	layoutTemplate   = "layout"
	indexTemplate    = "index"
	feastsTemplate   = "feasts"
	feastTemplate    = "feast"
	servicesTemplate = "services"
	serviceTemplate  = "service"
	hymnsTemplate    = "hymns"
)

var pageNames = []string{
	indexTemplate, feastsTemplate, feastTemplate,
	servicesTemplate, serviceTemplate, hymnsTemplate,
}

// DefaultTemplates returns the built-in page templates keyed by name.
func DefaultTemplates() map[string]string {
	entries, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		panic(err)
	}
	out := make(map[string]string, len(entries))
	for _, path := range entries {
		data, err := templateFS.ReadFile(path)
		if err != nil {
			panic(err)
		}
		name := strings.TrimSuffix(strings.TrimPrefix(path, "templates/"), ".html")
		out[name] = string(data)
	}
	return out
}

// embeddedStore serves the built-in templates when no store is configured.
type embeddedStore struct {
	templates map[string]string
}

var _ driven.TemplateStore = (*embeddedStore)(nil)

func (s *embeddedStore) Load(name string) (string, error) {
	if tmpl, ok := s.templates[name]; ok {
		return tmpl, nil
	}
	return "", fmt.Errorf("unknown template %q", name)
}

func (s *embeddedStore) Reload() {}

// funcs returns the helpers available to every page.
func funcs() template.FuncMap {
	m := template.FuncMap(format.Helpers())
	m["path"] = url.PathEscape
	m["iso_date"] = format.ISODate
	return m
}

// parsePages combines the layout with each page.
func parsePages(store driven.TemplateStore) (map[string]*template.Template, error) {
	layout, err := store.Load(layoutTemplate)
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		text, err := store.Load(name)
		if err != nil {
			return nil, err
		}
		t, err := template.New(layoutTemplate).Funcs(funcs()).Parse(layout)
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", layoutTemplate, err)
		}
		if _, err := t.New(name).Parse(text); err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		pages[name] = t
	}
	return pages, nil
}
