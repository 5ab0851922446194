package driven

import (
	"context"

	"github.com/custodia-labs/pew/internal/core/domain"
)

// RecordStore exposes the read-only reference tables.
// Implementations must be safe for concurrent use; the tables never change
// after construction.
type RecordStore interface {
	// Feasts returns every feast in table order.
	Feasts(ctx context.Context) ([]domain.Feast, error)

	// Hymns returns every hymn in table order. Music values are built on each call.
	Hymns(ctx context.Context) ([]domain.Music, error)
}

// TableLoader reads the reference tables from their backing storage and
// validates each table's columns. A schema mismatch is fatal at startup.
type TableLoader interface {
	LoadTables(ctx context.Context) (*domain.Tables, error)
}
