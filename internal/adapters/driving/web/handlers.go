package web

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/custodia-labs/pew/internal/adapters/driving/web/flash"
	"github.com/custodia-labs/pew/internal/core/domain"
	"github.com/custodia-labs/pew/internal/core/ports/driving"
	"github.com/custodia-labs/pew/internal/logger"
)

// ConversionWarning is the notice shown when a PDF could not be produced.
const ConversionWarning = "Conversion from DOCX to PDF was unsuccessful. " +
	"Try downloading the .docx version instead. The server reported:"

// page is the data passed to every template.
type page struct {
	Title   string
	Notices []flash.Notice

	Feasts  []domain.Feast
	Feast   *domain.Feast
	Service *domain.Service
	Hymns   []domain.Music

	DocxURL template.URL
	PDFURL  template.URL
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderIndex(w, r, http.StatusOK)
}

func (s *Server) handleFeasts(w http.ResponseWriter, r *http.Request) {
	feasts, err := s.ports.Records.Feasts(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, feastsTemplate, &page{Title: "Feasts", Feasts: feasts})
}

func (s *Server) handleFeast(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	feast, err := s.ports.Records.Feast(r.Context(), name)
	if err != nil {
		s.lookupFailed(w, r, err, fmt.Sprintf("Feast %s not found.", name))
		return
	}
	s.render(w, r, http.StatusOK, feastTemplate, &page{Title: feast.Name, Feast: feast})
}

func (s *Server) handleFeastDownload(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	format, ok := s.parseFormat(w, r)
	if !ok {
		return
	}

	artifact, err := s.ports.Export.ExportFeast(r.Context(), name, format)
	if err != nil {
		s.exportFailed(w, r, err, feastPath(name), fmt.Sprintf("Feast %s not found.", name))
		return
	}
	s.send(w, r, artifact)
}

func (s *Server) handleServices(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if feast := strings.TrimSpace(q.Get("feast")); feast != "" {
		q.Del("feast")
		WriteRedirect(w, r, servicePath(feast, compactQuery(q)))
		return
	}

	feasts, err := s.ports.Records.Feasts(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	hymns, err := s.ports.Records.Hymns(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, servicesTemplate, &page{Title: "Service sheet", Feasts: feasts, Hymns: hymns})
}

func (s *Server) handleService(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	req, err := ParseServiceRequest(name, r.URL.Query())
	if err != nil {
		s.badRequest(w, r, err)
		return
	}

	svc, err := s.ports.Builder.Build(r.Context(), req)
	if err != nil {
		s.lookupFailed(w, r, err, notFoundMessage(err))
		return
	}

	base := servicePath(name, nil)
	query := r.URL.RawQuery
	s.render(w, r, http.StatusOK, serviceTemplate, &page{
		Title:   svc.Title,
		Service: svc,
		DocxURL: template.URL(withQuery(base+"/"+domain.FormatDOCX.Extension(), query)),
		PDFURL:  template.URL(withQuery(base+"/"+domain.FormatPDF.Extension(), query)),
	})
}

func (s *Server) handleServiceDownload(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	format, ok := s.parseFormat(w, r)
	if !ok {
		return
	}
	req, err := ParseServiceRequest(name, r.URL.Query())
	if err != nil {
		s.badRequest(w, r, err)
		return
	}

	artifact, err := s.ports.Export.ExportService(r.Context(), req, format)
	if err != nil {
		s.exportFailed(w, r, err, withQuery(servicePath(name, nil), r.URL.RawQuery), notFoundMessage(err))
		return
	}
	s.send(w, r, artifact)
}

func (s *Server) handleHymns(w http.ResponseWriter, r *http.Request) {
	hymns, err := s.ports.Records.Hymns(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, hymnsTemplate, &page{Title: "Hymns", Hymns: hymns})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	feasts, err := s.ports.Records.Feasts(r.Context())
	if err != nil {
		_ = WriteJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "unavailable", "error": err.Error()})
		return
	}
	_ = WriteJSON(w, http.StatusOK, map[string]any{"status": "ok", "feasts": len(feasts)})
}

func (s *Server) handleUnknown(w http.ResponseWriter, r *http.Request) {
	s.renderIndex(w, r, http.StatusNotFound, flash.Danger(fmt.Sprintf("Page %s not found.", r.URL.Path)))
}

// parseFormat reads the {format} path value; unknown formats get a 404.
func (s *Server) parseFormat(w http.ResponseWriter, r *http.Request) (domain.Format, bool) {
	raw := r.PathValue("format")
	format, err := domain.ParseFormat(raw)
	if err != nil {
		s.renderIndex(w, r, http.StatusNotFound, flash.Danger(fmt.Sprintf("Format %s not found.", raw)))
		return "", false
	}
	return format, true
}

// send streams an artifact as an attachment and releases it.
func (s *Server) send(w http.ResponseWriter, r *http.Request, artifact *driving.Artifact) {
	defer func() {
		if err := artifact.Close(); err != nil {
			logger.Warn("removing %s: %v", artifact.Path, err)
		}
	}()

	f, err := os.Open(artifact.Path)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", artifact.MIMEType())
	w.Header().Set("Content-Disposition", ContentDisposition(artifact.Filename))
	http.ServeContent(w, r, "", info.ModTime(), f)
}

// exportFailed maps export errors onto responses. A conversion failure
// redirects to detail with a warning and the raw cause.
func (s *Server) exportFailed(w http.ResponseWriter, r *http.Request, err error, detail, notFound string) {
	var convErr *domain.ConversionError
	switch {
	case errors.As(err, &convErr):
		logger.Error("request_id=%s converting %q: %v", r.Header.Get(RequestIDHeader), convErr.Name, err)
		cause := err.Error()
		if convErr.Err != nil {
			cause = convErr.Err.Error()
		}
		flash.Write(w, r, flash.Warning(ConversionWarning), flash.Danger(cause))
		WriteRedirect(w, r, detail)
	case errors.Is(err, domain.ErrNotFound):
		s.renderIndex(w, r, http.StatusNotFound, flash.Danger(notFound))
	case errors.Is(err, domain.ErrInvalidInput):
		s.badRequest(w, r, err)
	default:
		s.fail(w, r, err)
	}
}

// lookupFailed renders the index with a 404 for missing records and
// treats anything else as a server fault.
func (s *Server) lookupFailed(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		s.renderIndex(w, r, http.StatusNotFound, flash.Danger(notFound))
	case errors.Is(err, domain.ErrInvalidInput):
		s.badRequest(w, r, err)
	default:
		s.fail(w, r, err)
	}
}

func (s *Server) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	s.renderIndex(w, r, http.StatusBadRequest, flash.Danger(err.Error()))
}

// fail reports an unexpected error as a 500.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	logger.Error("request_id=%s %s %s: %v", r.Header.Get(RequestIDHeader), r.Method, r.URL.Path, err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (s *Server) renderIndex(w http.ResponseWriter, r *http.Request, status int, notices ...flash.Notice) {
	feasts, err := s.ports.Records.Feasts(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, r, status, indexTemplate, &page{Title: "Propers", Feasts: feasts, Notices: notices})
}

// render executes a page into a buffer so template errors become clean 500s.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data *page) {
	data.Notices = append(flash.ReadAndClear(w, r), data.Notices...)

	var buf bytes.Buffer
	if err := s.page(name).ExecuteTemplate(&buf, layoutTemplate, data); err != nil {
		s.fail(w, r, fmt.Errorf("render %s: %w", name, err))
		return
	}
	if err := WriteHTML(w, status, buf.Bytes()); err != nil {
		logger.Debug("writing %s: %v", name, err)
	}
}

// ParseServiceRequest builds a service request from a primary feast name
// and query parameters. Bare hymn numbers are read as NEH references.
func ParseServiceRequest(primary string, q url.Values) (driving.ServiceRequest, error) {
	req := driving.ServiceRequest{
		Title:           strings.TrimSpace(q.Get("title")),
		Celebrant:       strings.TrimSpace(q.Get("celebrant")),
		Preacher:        strings.TrimSpace(q.Get("preacher")),
		PrimaryFeast:    primary,
		SecondaryFeast:  strings.TrimSpace(q.Get("secondary")),
		IntroitHymn:     domain.ParseHymnRef(q.Get("introit")),
		OffertoryHymn:   domain.ParseHymnRef(q.Get("offertory")),
		RecessionalHymn: domain.ParseHymnRef(q.Get("recessional")),
		Anthem:          strings.TrimSpace(q.Get("anthem")),
		AnthemComposer:  strings.TrimSpace(q.Get("composer")),
	}

	if raw := strings.TrimSpace(q.Get("date")); raw != "" {
		date, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return driving.ServiceRequest{}, fmt.Errorf("date %q must be YYYY-MM-DD: %w", raw, domain.ErrInvalidInput)
		}
		req.Date = date
	}
	return req, nil
}

// notFoundMessage describes which record a failed lookup was looking for.
func notFoundMessage(err error) string {
	var lookup *domain.LookupError
	if errors.As(err, &lookup) {
		return fmt.Sprintf("No record matches %s.", lookup.Query)
	}
	return "Not found."
}

func feastPath(name string) string {
	return "/feasts/" + url.PathEscape(name)
}

func servicePath(name string, q url.Values) string {
	return withQuery("/services/"+url.PathEscape(name), q.Encode())
}

func withQuery(path, rawQuery string) string {
	if rawQuery == "" {
		return path
	}
	return path + "?" + rawQuery
}

// compactQuery drops empty parameters.
func compactQuery(q url.Values) url.Values {
	out := url.Values{}
	for k, vs := range q {
		for _, v := range vs {
			if strings.TrimSpace(v) != "" {
				out.Add(k, v)
			}
		}
	}
	return out
}
