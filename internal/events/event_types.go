package events

import (
	"time"

	"github.com/helpdesk-demo/ticketing-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated EventType = "ticket_created"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	CustomerID          string                `json:"customer_id"`
	IssueSummary        string                `json:"issue_summary"`
	Priority            domain.TicketPriority `json:"priority"`
	EstimatedResolution string                `json:"estimated_resolution"`
}
