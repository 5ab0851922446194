package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/custodia-labs/pew/internal/core/domain"
	"github.com/custodia-labs/pew/internal/core/ports/driven"
	"github.com/custodia-labs/pew/internal/core/ports/driving"
	"github.com/custodia-labs/pew/internal/logger"
)

// Ensure ExportService implements the interface.
var _ driving.ExportService = (*ExportService)(nil)

// ErrNoConverter is the cause reported when a fixed-layout document is
// requested but no converter is configured.
var ErrNoConverter = errors.New("no document converter configured")

// ExportService runs the resolve, generate, convert pipeline for one entity.
type ExportService struct {
	records   driving.RecordService
	builder   driving.ServiceBuilder
	renderer  driven.DocumentRenderer
	converter driven.DocumentConverter
	timeout   time.Duration

	// scratchRoot is where per-export directories are created; empty means os.TempDir.
	scratchRoot string
}

// NewExportService creates a new export service.
// converter may be nil, in which case fixed-layout exports always fail
// with a ConversionError. A timeout of zero leaves conversion unbounded.
func NewExportService(
	records driving.RecordService,
	builder driving.ServiceBuilder,
	renderer driven.DocumentRenderer,
	converter driven.DocumentConverter,
	timeout time.Duration,
) *ExportService {
	return &ExportService{
		records:   records,
		builder:   builder,
		renderer:  renderer,
		converter: converter,
		timeout:   timeout,
	}
}

// SetScratchRoot changes where per-export scratch directories are created.
func (s *ExportService) SetScratchRoot(dir string) {
	s.scratchRoot = dir
}

// ExportFeast generates a document for the named feast.
func (s *ExportService) ExportFeast(ctx context.Context, name string, format domain.Format) (*driving.Artifact, error) {
	if err := s.checkFormat(format); err != nil {
		return nil, err
	}

	feast, err := s.records.Feast(ctx, name)
	if err != nil {
		return nil, err
	}

	return s.export(ctx, feast.Name, format, func(path string) error {
		return s.renderer.RenderFeast(ctx, feast, path)
	})
}

// ExportService generates a document for the requested service.
func (s *ExportService) ExportService(
	ctx context.Context,
	req driving.ServiceRequest,
	format domain.Format,
) (*driving.Artifact, error) {
	if err := s.checkFormat(format); err != nil {
		return nil, err
	}

	svc, err := s.builder.Build(ctx, req)
	if err != nil {
		return nil, err
	}

	return s.export(ctx, svc.Title, format, func(path string) error {
		return s.renderer.RenderService(ctx, svc, path)
	})
}

// checkFormat accepts the renderer's own format and, for any other
// requested format, the fixed-layout PDF format.
func (s *ExportService) checkFormat(format domain.Format) error {
	if s.renderer == nil {
		return domain.ErrNotImplemented
	}
	if format == s.renderer.Format() {
		return nil
	}
	if s.converter != nil && format == s.converter.Format() {
		return nil
	}
	if format == domain.FormatPDF {
		return nil
	}
	return fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, format)
}

// export renders into a fresh scratch directory and converts if needed.
// On error the scratch directory is removed before returning.
func (s *ExportService) export(
	ctx context.Context,
	name string,
	format domain.Format,
	render func(path string) error,
) (*driving.Artifact, error) {
	dir, err := os.MkdirTemp(s.scratchRoot, "pew-export-*")
	if err != nil {
		return nil, fmt.Errorf("creating scratch directory: %w", err)
	}
	cleanup := func() error { return os.RemoveAll(dir) }

	editable := s.renderer.Format()
	src := filepath.Join(dir, "document."+editable.Extension())

	logger.Debug("export %q: rendering %s to %s", name, editable, src)
	if err := render(src); err != nil {
		_ = cleanup()
		return nil, fmt.Errorf("rendering %q: %w", name, err)
	}

	if format == editable {
		return driving.NewArtifact(src, filename(name, editable), editable, cleanup), nil
	}

	out, err := s.convert(ctx, src)
	if err != nil {
		_ = cleanup()
		convErr := &domain.ConversionError{Name: name, Err: err}
		logger.Error("export %q: %v", name, convErr)
		return nil, convErr
	}

	logger.Debug("export %q: converted to %s", name, out)
	return driving.NewArtifact(out, filename(name, format), format, cleanup), nil
}

// convert runs the converter under the configured timeout.
func (s *ExportService) convert(ctx context.Context, src string) (string, error) {
	if s.converter == nil {
		return "", ErrNoConverter
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	out, err := s.converter.Convert(ctx, src)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("timed out after %s: %w", s.timeout, err)
		}
		return "", err
	}
	return out, nil
}

// filename builds the download name for an entity, e.g. "Christmas Day.docx".
func filename(name string, format domain.Format) string {
	return name + "." + format.Extension()
}
