package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/helpdesk-demo/ticketing-service/internal/domain"
	"github.com/helpdesk-demo/ticketing-service/internal/events"
	"github.com/helpdesk-demo/ticketing-service/internal/repository"
	apperrors "github.com/helpdesk-demo/ticketing-service/pkg/util/errorutil"
)

// TicketNotFoundMessage is the detail returned for unknown ticket ids.
const TicketNotFoundMessage = "Ticket not found."

// TicketService coordinates ticket workflows.
type TicketService struct {
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
	newID      func() string
}

// TicketDependencies bundles collaborators for the ticket service.
// Clock and IDGenerator are optional.
type TicketDependencies struct {
	TicketRepo  repository.TicketRepository
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
	Clock       func() time.Time
	IDGenerator func() string
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	CustomerID   string
	IssueSummary string
	// Priority is stored verbatim, including the empty string. Nil means Medium.
	Priority     *domain.TicketPriority
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	s := &TicketService{
		tickets:    deps.TicketRepo,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		now:        deps.Clock,
		newID:      deps.IDGenerator,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = generateTicketID
	}
	return s
}

// CreateTicket opens a ticket and computes its estimated resolution from the priority.
// Customer id and summary are stored as given; they are not checked for emptiness
// or against the customer registry.
func (s *TicketService) CreateTicket(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	priority := domain.TicketPriorityMedium
	if input.Priority != nil {
		priority = *input.Priority
	}

	createdAt := s.now().Truncate(time.Microsecond)
	ticket := &domain.Ticket{
		ID:                  s.newID(),
		CustomerID:          input.CustomerID,
		IssueSummary:        input.IssueSummary,
		Priority:            priority,
		Status:              domain.TicketStatusOpen,
		CreatedAt:           createdAt,
		EstimatedResolution: domain.EstimateResolution(priority, createdAt),
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	s.logger.Info("Created ticket",
		zap.String("ticket_id", ticket.ID),
		zap.String("customer_id", ticket.CustomerID),
		zap.String("priority", string(ticket.Priority)))

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			CustomerID:          ticket.CustomerID,
			IssueSummary:        ticket.IssueSummary,
			Priority:            ticket.Priority,
			EstimatedResolution: domain.FormatTimestamp(ticket.EstimatedResolution),
		},
	})
	return ticket, nil
}

// GetTicketStatus returns the stored ticket or a not-found error.
func (s *TicketService) GetTicketStatus(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound(TicketNotFoundMessage, nil)
		}
		return nil, apperrors.NewInternalError(err)
	}
	return ticket, nil
}

// TicketCount reports how many tickets the service holds.
func (s *TicketService) TicketCount(ctx context.Context) int {
	return s.tickets.Count(ctx)
}

// generateTicketID returns the first 8 hex characters of a random UUID.
// Collisions become likely only around tens of thousands of tickets.
func generateTicketID() string {
	return uuid.NewString()[:8]
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed",
			zap.String("event_type", string(event.Type)),
			zap.String("ticket_id", event.TicketID),
			zap.Error(err))
	}
}
