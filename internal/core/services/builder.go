package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/custodia-labs/pew/internal/core/domain"
	"github.com/custodia-labs/pew/internal/core/ports/driving"
)

// Ensure ServiceBuilder implements the interface.
var _ driving.ServiceBuilder = (*ServiceBuilder)(nil)

// ServiceBuilder assembles services from reference records.
type ServiceBuilder struct {
	records  driving.RecordService
	validate *validator.Validate
}

// NewServiceBuilder creates a builder resolving records through records.
func NewServiceBuilder(records driving.RecordService) *ServiceBuilder {
	return &ServiceBuilder{
		records:  records,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Build resolves every named record and returns the composed service.
func (b *ServiceBuilder) Build(ctx context.Context, req driving.ServiceRequest) (*domain.Service, error) {
	if err := b.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, fmt.Errorf("%w: %s failed %q", domain.ErrInvalidInput, verrs[0].Field(), verrs[0].Tag())
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	primary, err := b.records.Feast(ctx, req.PrimaryFeast)
	if err != nil {
		return nil, err
	}

	svc := &domain.Service{
		Title:        req.Title,
		Date:         req.Date,
		Celebrant:    req.Celebrant,
		Preacher:     req.Preacher,
		PrimaryFeast: *primary,
		Anthem: domain.Music{
			Title:    req.Anthem,
			Category: domain.CategoryAnthem,
			Composer: req.AnthemComposer,
		},
	}
	if svc.Title == "" {
		svc.Title = primary.Name
	}

	if req.SecondaryFeast != "" {
		if svc.SecondaryFeast, err = b.records.Feast(ctx, req.SecondaryFeast); err != nil {
			return nil, err
		}
	}

	hymns := []struct {
		ref  string
		dest **domain.Music
	}{
		{req.IntroitHymn, &svc.IntroitHymn},
		{req.OffertoryHymn, &svc.OffertoryHymn},
		{req.RecessionalHymn, &svc.RecessionalHymn},
	}
	for _, h := range hymns {
		if h.ref == "" {
			continue
		}
		if *h.dest, err = b.records.Hymn(ctx, h.ref); err != nil {
			return nil, err
		}
	}

	return svc, nil
}
