package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/pew/internal/core/ports/driven"
)

// Ensure TemplateStore implements the interface.
var _ driven.TemplateStore = (*TemplateStore)(nil)

// TemplateExt is the extension of template files on disk.
const TemplateExt = ".html"

// TemplateStore loads page templates from user-editable files on disk.
// Templates are loaded from a configurable directory with fallback to the
// built-in defaults supplied at construction.
//
// The store uses lazy initialisation - files are only created when first accessed,
// not in the constructor.
type TemplateStore struct {
	mu          sync.RWMutex
	templateDir string
	defaults    map[string]string
	cache       map[string]string
	initOnce    sync.Once
	initErr     error
}

// NewTemplateStore creates a new file-based template store.
// If templateDir is empty, defaults to ~/.pew/templates/.
//
// The constructor does not perform any I/O - directory creation and
// file writes happen lazily on first Load() call.
func NewTemplateStore(templateDir string, defaults map[string]string) (*TemplateStore, error) {
	if templateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		templateDir = filepath.Join(home, ".pew", "templates")
	}

	copied := make(map[string]string, len(defaults))
	for k, v := range defaults {
		copied[k] = v
	}

	return &TemplateStore{
		templateDir: templateDir,
		defaults:    copied,
		cache:       make(map[string]string),
	}, nil
}

// Load returns the template for the given name.
// On first call, initialises the template directory and writes the defaults.
// Falls back to the built-in default if the file cannot be read.
func (s *TemplateStore) Load(name string) (string, error) {
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		if tmpl, ok := s.defaults[name]; ok {
			return tmpl, nil
		}
		return "", fmt.Errorf("template store init failed: %w", s.initErr)
	}

	s.mu.RLock()
	if tmpl, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return tmpl, nil
	}
	s.mu.RUnlock()

	// Load from file (no lock held during I/O)
	tmpl, err := s.loadFromFile(name)
	if err != nil {
		if def, ok := s.defaults[name]; ok {
			return def, nil
		}
		return "", fmt.Errorf("load template %q: %w", name, err)
	}

	s.mu.Lock()
	if cached, ok := s.cache[name]; ok {
		tmpl = cached
	} else {
		s.cache[name] = tmpl
	}
	s.mu.Unlock()

	return tmpl, nil
}

// Reload clears the template cache, forcing fresh loads from disk.
func (s *TemplateStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the template directory path.
func (s *TemplateStore) Dir() string {
	return s.templateDir
}

// initialise creates the template directory and default files.
// Called once via sync.Once on first Load().
func (s *TemplateStore) initialise() {
	if err := os.MkdirAll(s.templateDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create template directory: %w", err)
		return
	}

	// Existing files are never overwritten
	for name, content := range s.defaults {
		path := filepath.Join(s.templateDir, name+TemplateExt)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.initErr = fmt.Errorf("create default template %q: %w", name, err)
				return
			}
		}
	}

	if err := s.createReadme(); err != nil {
		s.initErr = err
	}
}

// loadFromFile reads a template from disk.
func (s *TemplateStore) loadFromFile(name string) (string, error) {
	if strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid template name %q", name)
	}
	data, err := os.ReadFile(filepath.Join(s.templateDir, name+TemplateExt))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// createReadme writes a README file explaining the templates directory.
func (s *TemplateStore) createReadme() error {
	path := filepath.Join(s.templateDir, "README.md")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil
	}

	names := make([]string, 0, len(s.defaults))
	for name := range s.defaults {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("# pew page templates\n\n")
	b.WriteString("These Go html/template files render the pew web pages.\n\n## Files\n\n")
	for _, name := range names {
		fmt.Fprintf(&b, "- `%s%s`\n", name, TemplateExt)
	}
	b.WriteString(`
## Helpers

- ` + "`english_date`" + ` - "Saturday 25th December 2021"
- ` + "`service_summary`" + ` - "2021-12-25 Christmas Day, Fr Smith"
- ` + "`service_subtitle`" + ` - "Christmas Day, Fr Smith"

Delete a file to restore its default. pew serve reloads a page as soon as it is saved.
`)
	return os.WriteFile(path, []byte(b.String()), 0600)
}
