package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/pew/internal/core/domain"
)

// ServiceRequest names the records a service is assembled from.
// Hymns are referenced by hymnal reference ("NEH: 30"); the anthem by title.
type ServiceRequest struct {
	Title           string    `validate:"max=200"`
	Date            time.Time `validate:"-"`
	Celebrant       string    `validate:"max=100"`
	Preacher        string    `validate:"max=100"`
	PrimaryFeast    string    `validate:"required"`
	SecondaryFeast  string    `validate:"omitempty,nefield=PrimaryFeast"`
	IntroitHymn     string    `validate:"omitempty,startswith=NEH:"`
	OffertoryHymn   string    `validate:"omitempty,startswith=NEH:"`
	RecessionalHymn string    `validate:"omitempty,startswith=NEH:"`
	Anthem          string    `validate:"max=200"`
	AnthemComposer  string    `validate:"max=100"`
}

// ServiceBuilder assembles services from reference records.
type ServiceBuilder interface {
	// Build resolves every named record and returns the composed service.
	// Unknown feasts or hymns fail with domain.ErrNotFound; an invalid
	// request fails with domain.ErrInvalidInput.
	Build(ctx context.Context, req ServiceRequest) (*domain.Service, error)
}
