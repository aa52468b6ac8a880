package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/helpdesk-demo/ticketing-service/internal/events"
	"github.com/helpdesk-demo/ticketing-service/internal/service"
)

// Sink delivers a ticket event to one downstream consumer.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, event events.Event) error
}

// NotificationWorker delivers events to sinks from a single background
// goroutine. Each event is attempted once per sink.
type NotificationWorker struct {
	queue   chan events.Event
	sinks   []Sink
	timeout time.Duration
	logger  *zap.Logger

	mu      sync.RWMutex
	closed  bool
	started bool
	done    chan struct{}
}

// NewNotificationWorker builds a worker with a bounded queue.
func NewNotificationWorker(logger *zap.Logger, queueSize int, timeout time.Duration, sinks ...Sink) *NotificationWorker {
	if queueSize <= 0 {
		queueSize = 1
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &NotificationWorker{
		queue:   make(chan events.Event, queueSize),
		sinks:   sinks,
		timeout: timeout,
		logger:  logger,
		done:    make(chan struct{}),
	}
}

// Enqueue schedules an event without blocking. It returns false when the
// queue is full or the worker has been stopped.
func (w *NotificationWorker) Enqueue(event events.Event) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		return false
	}
	select {
	case w.queue <- event:
		return true
	default:
		w.logger.Warn("notification queue full; dropping event",
			zap.String("event_type", string(event.Type)),
			zap.String("ticket_id", event.TicketID))
		return false
	}
}

// Start runs the delivery loop until ctx is canceled or Stop drains the queue.
func (w *NotificationWorker) Start(ctx context.Context) {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return
	}
	w.started = true
	w.mu.Unlock()

	go func() {
		defer close(w.done)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.queue:
				if !ok {
					return
				}
				w.deliver(ctx, event)
			}
		}
	}()
}

// Stop closes the queue and waits for queued events to be delivered.
func (w *NotificationWorker) Stop() {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.queue)
	}
	started := w.started
	w.mu.Unlock()
	if started {
		<-w.done
	}
}

func (w *NotificationWorker) deliver(ctx context.Context, event events.Event) {
	for _, sink := range w.sinks {
		sinkCtx, cancel := context.WithTimeout(ctx, w.timeout)
		err := sink.Deliver(sinkCtx, event)
		cancel()
		if err != nil {
			w.logger.Warn("notification delivery failed",
				zap.String("sink", sink.Name()),
				zap.String("ticket_id", event.TicketID),
				zap.Error(err))
			continue
		}
		w.logger.Debug("notification delivered",
			zap.String("sink", sink.Name()),
			zap.String("ticket_id", event.TicketID))
	}
}

// StartNotificationWorker starts delivery and subscribes the notification
// service to ticket events.
func StartNotificationWorker(ctx context.Context, notificationService *service.NotificationService, w *NotificationWorker) {
	if notificationService == nil || w == nil {
		return
	}
	w.Start(ctx)
	notificationService.RegisterHandlers()
}
