package dto

import (
	"github.com/shopspring/decimal"

	"github.com/spec-kit/catalog-service/internal/domain"
)

// ServiceCreateRequest payload for new catalog entries.
type ServiceCreateRequest struct {
	Category    string           `json:"category"`
	Name        string           `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	ImageURL    *string          `json:"imageUrl"`
	Description *string          `json:"description"`
}

// ServiceResponse is the public projection of a catalog entry.
type ServiceResponse struct {
	ID          string              `json:"id"`
	Category    string              `json:"category"`
	Name        string              `json:"name"`
	Price       decimal.NullDecimal `json:"price"`
	ImageURL    *string             `json:"imageUrl"`
	Description *string             `json:"description"`
}

// NewServiceResponse maps a domain service.
func NewServiceResponse(service *domain.Service) ServiceResponse {
	return ServiceResponse{
		ID:          service.ID,
		Category:    service.Category,
		Name:        service.Name,
		Price:       service.Price,
		ImageURL:    service.ImageURL,
		Description: service.Description,
	}
}

// NewServiceResponses maps a slice of domain services, never returning nil so
// an empty catalog still encodes as [].
func NewServiceResponses(services []domain.Service) []ServiceResponse {
	result := make([]ServiceResponse, 0, len(services))
	for i := range services {
		result = append(result, NewServiceResponse(&services[i]))
	}
	return result
}
