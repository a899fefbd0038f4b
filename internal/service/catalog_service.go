package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/internal/repository"
	apperrors "github.com/spec-kit/catalog-service/pkg/util"
)

// CatalogService manages the services catalog.
type CatalogService struct {
	services repository.ServiceRepository
}

// NewCatalogService builds the service.
func NewCatalogService(services repository.ServiceRepository) *CatalogService {
	return &CatalogService{services: services}
}

// Add inserts a catalog entry and returns the created row.
func (s *CatalogService) Add(ctx context.Context, category, name string, price *decimal.Decimal, imageURL, description *string) (*domain.Service, error) {
	svc := &domain.Service{
		Category:    category,
		Name:        name,
		ImageURL:    imageURL,
		Description: description,
	}
	if price != nil {
		svc.Price = decimal.NullDecimal{Decimal: *price, Valid: true}
	}

	if err := s.services.Create(ctx, svc); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return svc, nil
}

// List returns every catalog entry.
func (s *CatalogService) List(ctx context.Context) ([]domain.Service, error) {
	result, err := s.services.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return result, nil
}
