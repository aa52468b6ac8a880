package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/helpdesk-demo/ticketing-service/internal/domain"
)

// ErrNotFound is returned when a ticket id is absent from the store.
var ErrNotFound = errors.New("ticket not found")

// TicketRepository encapsulates ticket storage.
type TicketRepository interface {
	// Create inserts a ticket. Id uniqueness is the caller's responsibility.
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	Count(ctx context.Context) int
}

type memoryTicketRepository struct {
	mu      sync.RWMutex
	tickets map[string]domain.Ticket
}

// NewTicketRepository instantiates an empty in-memory repository.
func NewTicketRepository() TicketRepository {
	return &memoryTicketRepository{tickets: make(map[string]domain.Ticket)}
}

func (r *memoryTicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tickets[ticket.ID] = *ticket
	return nil
}

func (r *memoryTicketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	ticket, ok := r.tickets[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return &ticket, nil
}

func (r *memoryTicketRepository) Count(_ context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tickets)
}
