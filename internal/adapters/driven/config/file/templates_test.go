package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pew/internal/core/ports/driven"
)

var testTemplates = map[string]string{
	"index": `<h1>{{.Title}}</h1>`,
	"feast": `<h1>{{.Feast.Name}}</h1>`,
}

func newTestTemplateStore(t *testing.T) (*TemplateStore, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "templates")
	store, err := NewTemplateStore(dir, testTemplates)
	require.NoError(t, err)
	return store, dir
}

func TestTemplateStore_ImplementsInterface(t *testing.T) {
	var _ driven.TemplateStore = (*TemplateStore)(nil)
}

func TestNewTemplateStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewTemplateStore("", testTemplates)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".pew", "templates"), store.Dir())
	assert.NoDirExists(t, store.Dir(), "constructor must not touch the filesystem")
}

func TestTemplateStore_Load_CreatesDefaultFiles(t *testing.T) {
	store, dir := newTestTemplateStore(t)

	tmpl, err := store.Load("index")

	require.NoError(t, err)
	assert.Equal(t, testTemplates["index"], tmpl)
	assert.FileExists(t, filepath.Join(dir, "index.html"))
	assert.FileExists(t, filepath.Join(dir, "feast.html"))

	readme, err := os.ReadFile(filepath.Join(dir, "README.md"))
	require.NoError(t, err)
	assert.Contains(t, string(readme), "`feast.html`")
	assert.Contains(t, string(readme), "english_date")
}

func TestTemplateStore_Load_CustomContent(t *testing.T) {
	store, dir := newTestTemplateStore(t)
	require.NoError(t, os.MkdirAll(dir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "feast.html"), []byte("custom"), 0600))

	tmpl, err := store.Load("feast")

	require.NoError(t, err)
	assert.Equal(t, "custom", tmpl)
}

func TestTemplateStore_Load_FallsBackToDefault(t *testing.T) {
	store, dir := newTestTemplateStore(t)
	_, err := store.Load("index")
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(dir, "feast.html")))

	tmpl, err := store.Load("feast")
	require.NoError(t, err)
	assert.Equal(t, testTemplates["feast"], tmpl)
}

func TestTemplateStore_Load_Unknown(t *testing.T) {
	store, _ := newTestTemplateStore(t)

	_, err := store.Load("missing")
	assert.Error(t, err)

	_, err = store.Load("../config")
	assert.Error(t, err)
}

func TestTemplateStore_Reload_ClearsCache(t *testing.T) {
	store, dir := newTestTemplateStore(t)

	first, err := store.Load("index")
	require.NoError(t, err)
	assert.Equal(t, testTemplates["index"], first)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("edited"), 0600))

	cached, err := store.Load("index")
	require.NoError(t, err)
	assert.Equal(t, first, cached)

	store.Reload()
	reloaded, err := store.Load("index")
	require.NoError(t, err)
	assert.Equal(t, "edited", reloaded)
}

func TestTemplateStore_InitFailure_UsesDefaults(t *testing.T) {
	store, err := NewTemplateStore("/dev/null/templates", testTemplates)
	require.NoError(t, err)

	tmpl, err := store.Load("index")
	require.NoError(t, err)
	assert.Equal(t, testTemplates["index"], tmpl)

	_, err = store.Load("missing")
	assert.Error(t, err)
}

func TestTemplateStore_ConcurrentLoad(t *testing.T) {
	store, _ := newTestTemplateStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tmpl, err := store.Load("feast")
			assert.NoError(t, err)
			assert.Equal(t, testTemplates["feast"], tmpl)
		}()
	}
	wg.Wait()
}

func TestTemplateStore_DefaultsCopied(t *testing.T) {
	defaults := map[string]string{"index": "a"}
	store, err := NewTemplateStore(filepath.Join(t.TempDir(), "t"), defaults)
	require.NoError(t, err)

	defaults["index"] = "b"

	tmpl, err := store.Load("index")
	require.NoError(t, err)
	assert.Equal(t, "a", tmpl)
}
