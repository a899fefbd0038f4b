package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/catalog-service/internal/events"
)

// NotificationService logs request lifecycle events. It is the only event
// consumer; nothing leaves the process.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventRequestCreated, n.handleRequestCreated)
	n.dispatcher.Subscribe(events.EventRequestStatusChanged, n.handleRequestStatusChanged)
}

func (n *NotificationService) handleRequestCreated(_ context.Context, event events.Event) error {
	n.logger.Info("RequestCreated",
		zap.String("request_id", event.RequestID),
		zap.String("username", event.Username),
		zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleRequestStatusChanged(_ context.Context, event events.Event) error {
	n.logger.Info("RequestStatusChanged",
		zap.String("request_id", event.RequestID),
		zap.String("username", event.Username),
		zap.Any("payload", event.Payload))
	return nil
}
