package memory

import (
	"context"
	"slices"

	"github.com/custodia-labs/pew/internal/core/domain"
	"github.com/custodia-labs/pew/internal/core/ports/driven"
)

// Ensure RecordStore implements the interface.
var _ driven.RecordStore = (*RecordStore)(nil)

// RecordStore is an immutable in-memory implementation of driven.RecordStore.
// The tables are copied on construction and never modified afterwards, so
// concurrent reads need no locking.
type RecordStore struct {
	feasts []domain.Feast
	hymns  []domain.HymnRow
}

// NewRecordStore creates a record store over a copy of tables.
// A nil tables value yields an empty store.
func NewRecordStore(tables *domain.Tables) *RecordStore {
	if tables == nil {
		return &RecordStore{}
	}
	return &RecordStore{
		feasts: slices.Clone(tables.Feasts),
		hymns:  slices.Clone(tables.Hymns),
	}
}

// Feasts returns every feast in table order.
// The returned slice is a copy; callers may modify it freely.
func (s *RecordStore) Feasts(_ context.Context) ([]domain.Feast, error) {
	return slices.Clone(s.feasts), nil
}

// Hymns builds a Music value for every row of the hymns table.
func (s *RecordStore) Hymns(_ context.Context) ([]domain.Music, error) {
	hymns := make([]domain.Music, len(s.hymns))
	for i, row := range s.hymns {
		hymns[i] = row.Hymn()
	}
	return hymns, nil
}

// Len returns the number of feasts and hymns held.
func (s *RecordStore) Len() (feasts, hymns int) {
	return len(s.feasts), len(s.hymns)
}
