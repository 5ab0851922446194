package driving

import (
	"context"

	"github.com/custodia-labs/pew/internal/core/domain"
)

// RecordService looks up reference records.
type RecordService interface {
	// Feasts returns all feasts in table order.
	Feasts(ctx context.Context) ([]domain.Feast, error)

	// Feast returns the feast with the given name.
	// Fails with domain.ErrNotFound or domain.ErrMultipleMatches.
	Feast(ctx context.Context, name string) (*domain.Feast, error)

	// FindFeast returns the single feast matching every attribute.
	FindFeast(ctx context.Context, attrs domain.Attributes) (*domain.Feast, error)

	// Hymns returns all hymns in table order.
	Hymns(ctx context.Context) ([]domain.Music, error)

	// Hymn returns the hymn with the given reference, e.g. "NEH: 30".
	Hymn(ctx context.Context, ref string) (*domain.Music, error)
}
