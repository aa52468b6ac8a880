package dto

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/helpdesk-demo/ticketing-service/internal/domain"
)

// TimestampLayout is ISO-8601 with microsecond precision and zone offset.
const TimestampLayout = domain.TimestampLayout

var errPriorityNotString = errors.New("must be a string")

// CreateTicketRequest payload. Pointers distinguish missing fields from empty ones;
// Priority is kept raw so an explicit null can be told apart from an absent field.
type CreateTicketRequest struct {
	CustomerID   *string         `json:"customer_id"`
	IssueSummary *string         `json:"issue_summary"`
	Priority     json.RawMessage `json:"priority"`
}

// PriorityValue returns the supplied priority, or nil when the field is absent.
// Null and non-string values are rejected.
func (r CreateTicketRequest) PriorityValue() (*string, error) {
	if r.Priority == nil {
		return nil, nil
	}
	var priority *string
	if err := json.Unmarshal(r.Priority, &priority); err != nil || priority == nil {
		return nil, errPriorityNotString
	}
	return priority, nil
}

// MissingFields lists required fields absent from the payload.
func (r CreateTicketRequest) MissingFields() map[string]any {
	missing := map[string]any{}
	if r.CustomerID == nil {
		missing["customer_id"] = "field required"
	}
	if r.IssueSummary == nil {
		missing["issue_summary"] = "field required"
	}
	return missing
}

// TicketResponse is the wire shape of a ticket.
type TicketResponse struct {
	TicketID            string `json:"ticket_id"`
	CustomerID          string `json:"customer_id"`
	IssueSummary        string `json:"issue_summary"`
	Priority            string `json:"priority"`
	Status              string `json:"status"`
	CreatedAt           string `json:"created_at"`
	EstimatedResolution string `json:"estimated_resolution"`
}

// NewTicketResponse maps a domain ticket to its response.
func NewTicketResponse(ticket *domain.Ticket) TicketResponse {
	return TicketResponse{
		TicketID:            ticket.ID,
		CustomerID:          ticket.CustomerID,
		IssueSummary:        ticket.IssueSummary,
		Priority:            string(ticket.Priority),
		Status:              string(ticket.Status),
		CreatedAt:           FormatTimestamp(ticket.CreatedAt),
		EstimatedResolution: FormatTimestamp(ticket.EstimatedResolution),
	}
}

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return domain.FormatTimestamp(t)
}
