package file

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, dir string, calls *atomic.Int32) *TemplateWatcher {
	t.Helper()
	w, err := NewTemplateWatcher(dir, func() { calls.Add(1) })
	require.NoError(t, err)
	w.SetDebounce(20 * time.Millisecond)
	require.NoError(t, w.Start(context.Background()))
	t.Cleanup(w.Stop)
	return w
}

func TestTemplateWatcher_ReportsChanges(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32
	startWatcher(t, dir, &calls)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "feast.html"), []byte("<h1>one</h1>"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "feast.html"), []byte("<h1>two</h1>"), 0o600))

	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestTemplateWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32
	startWatcher(t, dir, &calls)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))

	assert.Never(t, func() bool { return calls.Load() > 0 }, 200*time.Millisecond, 10*time.Millisecond)
}

func TestTemplateWatcher_MissingDir(t *testing.T) {
	w, err := NewTemplateWatcher(filepath.Join(t.TempDir(), "missing"), func() {})
	require.NoError(t, err)

	assert.Error(t, w.Start(context.Background()))
	w.Stop()
}

func TestTemplateWatcher_StopIsIdempotent(t *testing.T) {
	var calls atomic.Int32
	w := startWatcher(t, t.TempDir(), &calls)

	w.Stop()
	w.Stop()
}

func TestTemplateStore_ReloadPicksUpEdits(t *testing.T) {
	store, dir := newTestTemplateStore(t)
	_, err := store.Load("index")
	require.NoError(t, err)

	var calls atomic.Int32
	w, err := NewTemplateWatcher(dir, func() {
		store.Reload()
		calls.Add(1)
	})
	require.NoError(t, err)
	w.SetDebounce(20 * time.Millisecond)
	require.NoError(t, w.Start(context.Background()))
	t.Cleanup(w.Stop)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>edited</h1>"), 0o600))

	assert.Eventually(t, func() bool {
		if calls.Load() == 0 {
			return false
		}
		tmpl, err := store.Load("index")
		return err == nil && tmpl == "<h1>edited</h1>"
	}, 2*time.Second, 10*time.Millisecond)
}
