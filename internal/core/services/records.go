package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/pew/internal/core/domain"
	"github.com/custodia-labs/pew/internal/core/ports/driven"
	"github.com/custodia-labs/pew/internal/core/ports/driving"
)

// Ensure RecordService implements the interface.
var _ driving.RecordService = (*RecordService)(nil)

// RecordService resolves feasts and hymns from the reference tables.
type RecordService struct {
	store driven.RecordStore
}

// NewRecordService creates a new record service.
func NewRecordService(store driven.RecordStore) *RecordService {
	return &RecordService{store: store}
}

// Feasts returns all feasts in table order.
func (s *RecordService) Feasts(ctx context.Context) ([]domain.Feast, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.store.Feasts(ctx)
}

// Feast returns the feast with the given name.
func (s *RecordService) Feast(ctx context.Context, name string) (*domain.Feast, error) {
	return s.FindFeast(ctx, domain.Attributes{"name": name})
}

// FindFeast returns the single feast matching every attribute.
func (s *RecordService) FindFeast(ctx context.Context, attrs domain.Attributes) (*domain.Feast, error) {
	feasts, err := s.Feasts(ctx)
	if err != nil {
		return nil, err
	}

	feast, err := domain.Get(feasts, attrs)
	if err != nil {
		return nil, fmt.Errorf("feast %w", err)
	}
	return &feast, nil
}

// Hymns returns all hymns in table order.
func (s *RecordService) Hymns(ctx context.Context) ([]domain.Music, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.store.Hymns(ctx)
}

// Hymn returns the hymn with the given reference.
func (s *RecordService) Hymn(ctx context.Context, ref string) (*domain.Music, error) {
	hymns, err := s.Hymns(ctx)
	if err != nil {
		return nil, err
	}

	hymn, err := domain.Get(hymns, domain.Attributes{"ref": ref})
	if err != nil {
		return nil, fmt.Errorf("hymn %w", err)
	}
	return &hymn, nil
}
