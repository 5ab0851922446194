package driving

import (
	"context"

	"github.com/custodia-labs/pew/internal/core/domain"
)

// Artifact is a generated file waiting to be sent.
// Close removes it together with its scratch directory; callers must
// call Close once the file has been delivered, on every path.
type Artifact struct {
	// Path is the file on disk.
	Path string

	// Filename is the suggested download name, e.g. "Christmas Day.docx".
	Filename string

	// Format is the file's format.
	Format domain.Format

	cleanup func() error
}

// NewArtifact returns an artifact whose Close runs cleanup.
func NewArtifact(path, filename string, format domain.Format, cleanup func() error) *Artifact {
	return &Artifact{Path: path, Filename: filename, Format: format, cleanup: cleanup}
}

// MIMEType returns the media type of the artifact.
func (a *Artifact) MIMEType() string {
	return a.Format.MIMEType()
}

// Close releases the artifact. It is safe to call more than once.
func (a *Artifact) Close() error {
	if a == nil || a.cleanup == nil {
		return nil
	}
	cleanup := a.cleanup
	a.cleanup = nil
	return cleanup()
}

// ExportService generates downloadable documents for named entities.
//
// Each export resolves the entity, renders the editable document into a
// fresh scratch directory and, for fixed-layout formats, converts it.
// Failure modes are distinct:
//
//   - domain.ErrNotFound: the entity does not exist; nothing was generated.
//   - *domain.ConversionError: the editable document was generated but could
//     not be converted; the scratch directory has already been removed.
type ExportService interface {
	// ExportFeast generates a document for the named feast.
	ExportFeast(ctx context.Context, name string, format domain.Format) (*Artifact, error)

	// ExportService generates a document for the requested service.
	ExportService(ctx context.Context, req ServiceRequest, format domain.Format) (*Artifact, error)
}
