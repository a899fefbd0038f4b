package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/internal/events"
	"github.com/spec-kit/catalog-service/internal/repository"
	apperrors "github.com/spec-kit/catalog-service/pkg/util"
)

// RequestService manages product request submission and tracking.
type RequestService struct {
	requests   repository.RequestRepository
	dispatcher events.Dispatcher
}

// NewRequestService builds the service.
func NewRequestService(requests repository.RequestRepository, dispatcher events.Dispatcher) *RequestService {
	return &RequestService{requests: requests, dispatcher: dispatcher}
}

// Submit inserts a request; status defaults to Pending.
func (s *RequestService) Submit(ctx context.Context, username, productName string, quantity int) (*domain.Request, error) {
	request := &domain.Request{
		Username:    username,
		ProductName: productName,
		Quantity:    quantity,
	}
	if err := s.requests.Create(ctx, request); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:      events.EventRequestCreated,
			RequestID: request.ID,
			Username:  request.Username,
			Timestamp: time.Now(),
			Payload: events.RequestCreatedPayload{
				ProductName: request.ProductName,
				Quantity:    request.Quantity,
			},
		})
	}
	return request, nil
}

// List returns every request row for every user.
func (s *RequestService) List(ctx context.Context) ([]domain.Request, error) {
	result, err := s.requests.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return result, nil
}

// ListByUsername returns the possibly-empty set of requests for one user.
func (s *RequestService) ListByUsername(ctx context.Context, username string) ([]domain.Request, error) {
	result, err := s.requests.ListByUsername(ctx, username)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return result, nil
}

// UpdateStatus transitions a request to the given status. Any string is
// accepted; transitions are unchecked.
func (s *RequestService) UpdateStatus(ctx context.Context, id, status string) (*domain.Request, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NewNotFound("request")
	}

	request, err := s.requests.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("request")
		}
		return nil, apperrors.NewInternalError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:      events.EventRequestStatusChanged,
			RequestID: request.ID,
			Username:  request.Username,
			Timestamp: time.Now(),
			Payload: events.RequestStatusChangedPayload{
				NewStatus: request.Status,
			},
		})
	}
	return request, nil
}
