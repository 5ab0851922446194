package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pew/internal/core/domain"
	"github.com/custodia-labs/pew/internal/core/ports/driving"
)

func newTestExport(t *testing.T, renderer *fakeRenderer, converter *fakeConverter) (*ExportService, string) {
	t.Helper()

	records := newTestRecords()
	var svc *ExportService
	if converter == nil {
		svc = NewExportService(records, NewServiceBuilder(records), renderer, nil, time.Second)
	} else {
		svc = NewExportService(records, NewServiceBuilder(records), renderer, converter, time.Second)
	}

	scratch := t.TempDir()
	svc.SetScratchRoot(scratch)
	return svc, scratch
}

func scratchEntries(t *testing.T, dir string) []os.DirEntry {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	return entries
}

func TestExportService_ExportFeast_DOCX(t *testing.T) {
	renderer := &fakeRenderer{}
	svc, scratch := newTestExport(t, renderer, &fakeConverter{})

	artifact, err := svc.ExportFeast(context.Background(), "Christmas Day", domain.FormatDOCX)

	require.NoError(t, err)
	assert.Equal(t, "Christmas Day.docx", artifact.Filename)
	assert.Equal(t, domain.FormatDOCX, artifact.Format)
	assert.Equal(t, domain.FormatDOCX.MIMEType(), artifact.MIMEType())
	assert.FileExists(t, artifact.Path)
	assert.Equal(t, []string{"Christmas Day"}, renderer.rendered)

	require.NoError(t, artifact.Close())
	assert.NoFileExists(t, artifact.Path)
	assert.Empty(t, scratchEntries(t, scratch))

	// Close is idempotent.
	assert.NoError(t, artifact.Close())
}

func TestExportService_ExportFeast_PDF(t *testing.T) {
	converter := &fakeConverter{}
	svc, scratch := newTestExport(t, &fakeRenderer{}, converter)

	artifact, err := svc.ExportFeast(context.Background(), "Christmas Day", domain.FormatPDF)

	require.NoError(t, err)
	defer artifact.Close()

	assert.Equal(t, "Christmas Day.pdf", artifact.Filename)
	assert.Equal(t, "application/pdf", artifact.MIMEType())
	assert.Equal(t, ".pdf", filepath.Ext(artifact.Path))
	assert.Equal(t, 1, converter.calls)

	data, err := os.ReadFile(artifact.Path)
	require.NoError(t, err)
	assert.Equal(t, "Christmas Day", string(data))

	require.NoError(t, artifact.Close())
	assert.Empty(t, scratchEntries(t, scratch))
}

func TestExportService_ExportFeast_NotFound(t *testing.T) {
	renderer := &fakeRenderer{}
	converter := &fakeConverter{}
	svc, scratch := newTestExport(t, renderer, converter)

	artifact, err := svc.ExportFeast(context.Background(), "Michaelmas", domain.FormatPDF)

	assert.Nil(t, artifact)
	require.ErrorIs(t, err, domain.ErrNotFound)

	var convErr *domain.ConversionError
	assert.False(t, errors.As(err, &convErr))
	assert.Empty(t, renderer.rendered)
	assert.Zero(t, converter.calls)
	assert.Empty(t, scratchEntries(t, scratch))
}

func TestExportService_ExportFeast_ConversionFailed(t *testing.T) {
	cause := errors.New("source file could not be loaded")
	svc, scratch := newTestExport(t, &fakeRenderer{}, &fakeConverter{err: cause})

	artifact, err := svc.ExportFeast(context.Background(), "Christmas Day", domain.FormatPDF)

	assert.Nil(t, artifact)
	require.ErrorIs(t, err, domain.ErrConversionFailed)
	require.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, domain.ErrNotFound)

	var convErr *domain.ConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, "Christmas Day", convErr.Name)
	assert.Contains(t, err.Error(), "source file could not be loaded")
	assert.Empty(t, scratchEntries(t, scratch))
}

func TestExportService_ConversionFailure_DOCXStillAvailable(t *testing.T) {
	svc, _ := newTestExport(t, &fakeRenderer{}, &fakeConverter{err: errors.New("boom")})
	ctx := context.Background()

	_, err := svc.ExportFeast(ctx, "Christmas Day", domain.FormatPDF)
	require.ErrorIs(t, err, domain.ErrConversionFailed)

	artifact, err := svc.ExportFeast(ctx, "Christmas Day", domain.FormatDOCX)
	require.NoError(t, err)
	defer artifact.Close()
	assert.FileExists(t, artifact.Path)
}

func TestExportService_NoConverter(t *testing.T) {
	svc, scratch := newTestExport(t, &fakeRenderer{}, nil)

	_, err := svc.ExportFeast(context.Background(), "Christmas Day", domain.FormatPDF)

	require.ErrorIs(t, err, domain.ErrConversionFailed)
	assert.ErrorIs(t, err, ErrNoConverter)
	assert.Empty(t, scratchEntries(t, scratch))
}

func TestExportService_ConversionTimeout(t *testing.T) {
	records := newTestRecords()
	svc := NewExportService(records, NewServiceBuilder(records), &fakeRenderer{},
		&fakeConverter{block: true}, 20*time.Millisecond)
	scratch := t.TempDir()
	svc.SetScratchRoot(scratch)

	_, err := svc.ExportFeast(context.Background(), "Christmas Day", domain.FormatPDF)

	require.ErrorIs(t, err, domain.ErrConversionFailed)
	assert.Contains(t, err.Error(), "timed out after 20ms")
	assert.Empty(t, scratchEntries(t, scratch))
}

func TestExportService_RenderFailed(t *testing.T) {
	svc, scratch := newTestExport(t, &fakeRenderer{err: errors.New("disk full")}, &fakeConverter{})

	_, err := svc.ExportFeast(context.Background(), "Christmas Day", domain.FormatDOCX)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Empty(t, scratchEntries(t, scratch))
}

func TestExportService_UnsupportedFormat(t *testing.T) {
	renderer := &fakeRenderer{}
	svc, _ := newTestExport(t, renderer, &fakeConverter{})

	_, err := svc.ExportFeast(context.Background(), "Christmas Day", domain.Format("odt"))

	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	assert.Empty(t, renderer.rendered)
}

func TestExportService_NilRenderer(t *testing.T) {
	records := newTestRecords()
	svc := NewExportService(records, NewServiceBuilder(records), nil, nil, 0)

	_, err := svc.ExportFeast(context.Background(), "Christmas Day", domain.FormatDOCX)

	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}

func TestExportService_ExportService(t *testing.T) {
	renderer := &fakeRenderer{}
	svc, scratch := newTestExport(t, renderer, &fakeConverter{})

	artifact, err := svc.ExportService(context.Background(), driving.ServiceRequest{
		Title:        "Midnight Mass",
		PrimaryFeast: "Christmas Day",
	}, domain.FormatPDF)

	require.NoError(t, err)
	assert.Equal(t, "Midnight Mass.pdf", artifact.Filename)
	assert.Equal(t, []string{"Midnight Mass"}, renderer.rendered)

	require.NoError(t, artifact.Close())
	assert.Empty(t, scratchEntries(t, scratch))
}

func TestExportService_ExportService_NotFound(t *testing.T) {
	renderer := &fakeRenderer{}
	svc, scratch := newTestExport(t, renderer, &fakeConverter{})

	_, err := svc.ExportService(context.Background(), driving.ServiceRequest{
		PrimaryFeast: "Christmas Day",
		IntroitHymn:  "NEH: 999",
	}, domain.FormatDOCX)

	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, renderer.rendered)
	assert.Empty(t, scratchEntries(t, scratch))
}

func TestExportService_ConcurrentExports(t *testing.T) {
	svc, scratch := newTestExport(t, &fakeRenderer{}, &fakeConverter{})

	errs := make(chan error, 8)
	paths := make(chan string, 8)
	for i := 0; i < 8; i++ {
		go func() {
			artifact, err := svc.ExportFeast(context.Background(), "Christmas Day", domain.FormatDOCX)
			if err != nil {
				errs <- err
				return
			}
			paths <- artifact.Path
			errs <- artifact.Close()
		}()
	}

	seen := make(map[string]bool)
	for i := 0; i < 8; i++ {
		require.NoError(t, <-errs)
	}
	close(paths)
	for p := range paths {
		assert.False(t, seen[p], "scratch paths must be distinct")
		seen[p] = true
	}
	assert.Len(t, seen, 8)
	assert.Empty(t, scratchEntries(t, scratch))
}
