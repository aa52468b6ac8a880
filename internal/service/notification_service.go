package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/helpdesk-demo/ticketing-service/internal/events"
)

// Notifier accepts events for asynchronous delivery.
type Notifier interface {
	Enqueue(event events.Event) bool
}

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	notifier   Notifier
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, notifier Notifier) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		notifier:   notifier,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
}

func (n *NotificationService) handleTicketCreated(_ context.Context, event events.Event) error {
	n.logger.Info("TicketCreated", zap.String("ticket_id", event.TicketID), zap.Any("payload", event.Payload))
	if n.notifier == nil {
		return nil
	}
	if !n.notifier.Enqueue(event) {
		n.logger.Warn("ticket event not queued", zap.String("ticket_id", event.TicketID))
	}
	return nil
}
