package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/custodia-labs/pew/internal/core/ports/driven"
	"github.com/custodia-labs/pew/internal/logger"
)

// Server serves the HTML interface.
type Server struct {
	ports     *Ports
	templates driven.TemplateStore
	handler   http.Handler

	pagesMu sync.RWMutex
	pages   map[string]*template.Template

	mu       sync.Mutex
	server   *http.Server
	listener net.Listener
	errChan  chan error
}

// NewServer creates a web server. templates may be nil, in which case the
// built-in templates are used.
func NewServer(ports *Ports, templates driven.TemplateStore) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, err
	}
	if templates == nil {
		templates = &embeddedStore{templates: DefaultTemplates()}
	}

	pages, err := parsePages(templates)
	if err != nil {
		return nil, err
	}

	s := &Server{
		ports:     ports,
		templates: templates,
		pages:     pages,
		errChan:   make(chan error, 1),
	}
	s.handler = Chain(s.routes(), RequestID(), AccessLog(), RecoverPanic())
	return s, nil
}

// ReloadTemplates re-reads every page from the template store. On a parse
// error the pages already in use are kept.
func (s *Server) ReloadTemplates() error {
	s.templates.Reload()
	pages, err := parsePages(s.templates)
	if err != nil {
		return err
	}

	s.pagesMu.Lock()
	s.pages = pages
	s.pagesMu.Unlock()
	return nil
}

func (s *Server) page(name string) *template.Template {
	s.pagesMu.RLock()
	defer s.pagesMu.RUnlock()
	return s.pages[name]
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /feasts", s.handleFeasts)
	mux.HandleFunc("GET /feasts/{name}", s.handleFeast)
	mux.HandleFunc("GET /feasts/{name}/{format}", s.handleFeastDownload)
	mux.HandleFunc("GET /services", s.handleServices)
	mux.HandleFunc("GET /services/{name}", s.handleService)
	mux.HandleFunc("GET /services/{name}/{format}", s.handleServiceDownload)
	mux.HandleFunc("GET /hymns", s.handleHymns)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("/", s.handleUnknown)
	return mux
}

// Start listens on addr and serves in the background.
// Use ":0" or "127.0.0.1:0" to pick a free port; Addr reports the result.
func (s *Server) Start(addr string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		return ErrServerRunning
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = listener
	s.server = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Conversions can take a while before the first byte is written.
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  2 * time.Minute,
	}

	server := s.server
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			select {
			case s.errChan <- err:
			default:
			}
		}
	}()

	logger.Info("web server listening on http://%s", listener.Addr())
	return nil
}

// Addr returns the address the server is listening on, or "" before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop shuts down the server, waiting up to five seconds for requests in flight.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := s.server.Shutdown(ctx)
	s.server = nil
	s.listener = nil
	return err
}

// Run serves on addr until ctx is cancelled or the server fails.
func (s *Server) Run(ctx context.Context, addr string) error {
	if err := s.Start(addr); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return s.Stop()
	case err := <-s.errChan:
		_ = s.Stop()
		return fmt.Errorf("web server: %w", err)
	}
}
