package dto

import (
	"time"

	"github.com/spec-kit/catalog-service/internal/domain"
)

// RequestCreateRequest payload for request submission.
type RequestCreateRequest struct {
	Username    string `json:"username"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

// RequestStatusUpdateRequest payload for status patches.
type RequestStatusUpdateRequest struct {
	Status string `json:"status"`
}

// RequestResponse is the public projection of a tracked request.
type RequestResponse struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	RequestDate time.Time `json:"request_date"`
	Status      string    `json:"status"`
}

// NewRequestResponse maps a domain request.
func NewRequestResponse(request *domain.Request) RequestResponse {
	return RequestResponse{
		ID:          request.ID,
		Username:    request.Username,
		ProductName: request.ProductName,
		Quantity:    request.Quantity,
		RequestDate: request.RequestDate,
		Status:      request.Status,
	}
}

// NewRequestResponses maps a slice of domain requests.
func NewRequestResponses(requests []domain.Request) []RequestResponse {
	result := make([]RequestResponse, 0, len(requests))
	for i := range requests {
		result = append(result, NewRequestResponse(&requests[i]))
	}
	return result
}
