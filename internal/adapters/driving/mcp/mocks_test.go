package mcp

import (
	"context"

	"github.com/custodia-labs/pew/internal/core/domain"
	"github.com/custodia-labs/pew/internal/core/ports/driving"
)

// mockRecordService is a mock implementation of driving.RecordService.
type mockRecordService struct {
	feasts []domain.Feast
	hymns  []domain.Music
	err    error
}

func (m *mockRecordService) Feasts(_ context.Context) ([]domain.Feast, error) {
	return m.feasts, m.err
}

func (m *mockRecordService) Feast(ctx context.Context, name string) (*domain.Feast, error) {
	return m.FindFeast(ctx, domain.Attributes{"name": name})
}

func (m *mockRecordService) FindFeast(_ context.Context, attrs domain.Attributes) (*domain.Feast, error) {
	if m.err != nil {
		return nil, m.err
	}
	f, err := domain.Get(m.feasts, attrs)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (m *mockRecordService) Hymns(_ context.Context) ([]domain.Music, error) {
	return m.hymns, m.err
}

func (m *mockRecordService) Hymn(_ context.Context, ref string) (*domain.Music, error) {
	if m.err != nil {
		return nil, m.err
	}
	h, err := domain.Get(m.hymns, domain.Attributes{"ref": ref})
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// mockServiceBuilder is a mock implementation of driving.ServiceBuilder.
type mockServiceBuilder struct {
	service *domain.Service
	err     error
	got     driving.ServiceRequest
}

func (m *mockServiceBuilder) Build(_ context.Context, req driving.ServiceRequest) (*domain.Service, error) {
	m.got = req
	return m.service, m.err
}

func testFeasts() []domain.Feast {
	return []domain.Feast{
		{
			Name:      "Christmas Day",
			Introit:   "Puer natus est nobis",
			Collect:   "Almighty God, who hast given us thy only-begotten Son",
			GospelRef: "John 1.1",
			Gospel:    "In the beginning was the Word",
		},
		{Name: "St Stephen", Collect: "Grant, O Lord"},
	}
}
