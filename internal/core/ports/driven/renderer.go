package driven

import (
	"context"

	"github.com/custodia-labs/pew/internal/core/domain"
)

// DocumentRenderer writes editable documents to caller-supplied paths.
// It never creates or removes temporary files itself.
type DocumentRenderer interface {
	// RenderFeast writes a document headed by the feast's name.
	RenderFeast(ctx context.Context, feast *domain.Feast, path string) error

	// RenderService writes a document headed by the service title,
	// followed by the date in italics when the service is dated.
	RenderService(ctx context.Context, service *domain.Service, path string) error

	// Format returns the format of the files this renderer writes.
	Format() domain.Format
}

// DocumentConverter converts an editable document into a fixed-layout one.
// Conversion is best effort: it may fail outright, or report success while
// dropping content. It does not retry.
type DocumentConverter interface {
	// Convert converts the file at srcPath and returns the path of the result,
	// which is written next to the source.
	Convert(ctx context.Context, srcPath string) (string, error)

	// Format returns the format of the converted files.
	Format() domain.Format
}

// DocumentReader reads an editable document back into its text structure.
type DocumentReader interface {
	ReadFile(path string) (*domain.Document, error)
}
