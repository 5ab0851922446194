package file

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/pew/internal/logger"
)

// DefaultDebounce is how long the watcher waits after the last change
// before reporting it. Editors often write a file several times per save.
const DefaultDebounce = 300 * time.Millisecond

// TemplateWatcher watches a template directory and calls onChange once a
// burst of edits to *.html files has settled.
type TemplateWatcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	dir      string
	onChange func()
	debounce time.Duration
	pending  bool
	lastSeen time.Time
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

// NewTemplateWatcher creates a watcher for dir. It does not start watching
// until Start is called.
func NewTemplateWatcher(dir string, onChange func()) (*TemplateWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &TemplateWatcher{
		watcher:  watcher,
		dir:      dir,
		onChange: onChange,
		debounce: DefaultDebounce,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// SetDebounce changes the settle time. It must be called before Start.
func (w *TemplateWatcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Start begins watching in the background. The directory must exist.
func (w *TemplateWatcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	if err := w.watcher.Add(w.dir); err != nil {
		_ = w.watcher.Close()
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.running = true
	logger.Debug("watching templates in %s", w.dir)

	go w.run(ctx)
	return nil
}

// Stop stops watching and waits for the event loop to exit.
func (w *TemplateWatcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		logger.Warn("closing template watcher: %v", err)
	}
}

func (w *TemplateWatcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("template watcher: %v", err)

		case <-ticker.C:
			w.flush()
		}
	}
}

func (w *TemplateWatcher) handleEvent(event fsnotify.Event) {
	if !strings.HasSuffix(event.Name, TemplateExt) {
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}

	logger.Debug("template %s: %s", event.Op, event.Name)
	w.mu.Lock()
	w.pending = true
	w.lastSeen = time.Now()
	w.mu.Unlock()
}

// flush fires onChange when changes are pending and quiet for the debounce period.
func (w *TemplateWatcher) flush() {
	w.mu.Lock()
	if !w.pending || time.Since(w.lastSeen) < w.debounce {
		w.mu.Unlock()
		return
	}
	w.pending = false
	w.mu.Unlock()

	w.onChange()
}
