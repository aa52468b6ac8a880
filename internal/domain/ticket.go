package domain

import (
	"strings"
	"time"
)

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

// Only Open is produced today; the remaining states are reserved for transitions.
const (
	TicketStatusOpen       TicketStatus = "Open"
	TicketStatusInProgress TicketStatus = "In Progress"
	TicketStatusResolved   TicketStatus = "Resolved"
	TicketStatusClosed     TicketStatus = "Closed"
)

// TicketPriority is an open string. High and Medium are recognized
// case-insensitively; any other value falls into the low-priority window.
type TicketPriority string

const (
	TicketPriorityHigh   TicketPriority = "High"
	TicketPriorityMedium TicketPriority = "Medium"
	TicketPriorityLow    TicketPriority = "Low"
)

// SLA windows per priority bucket.
const (
	HighResolutionWindow   = 4 * time.Hour
	MediumResolutionWindow = 24 * time.Hour
	LowResolutionWindow    = 3 * 24 * time.Hour
)

// TimestampLayout is the wire format for ticket timestamps: ISO-8601 with
// microsecond precision and zone offset.
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// Ticket is the aggregate for support requests. It is immutable once stored.
type Ticket struct {
	ID                  string
	CustomerID          string
	IssueSummary        string
	Priority            TicketPriority
	Status              TicketStatus
	CreatedAt           time.Time
	EstimatedResolution time.Time
}

// ResolutionWindow returns the SLA window for a priority.
func ResolutionWindow(priority TicketPriority) time.Duration {
	switch strings.ToLower(string(priority)) {
	case "high":
		return HighResolutionWindow
	case "medium":
		return MediumResolutionWindow
	default:
		return LowResolutionWindow
	}
}

// EstimateResolution computes the estimated resolution time for a ticket created at createdAt.
func EstimateResolution(priority TicketPriority, createdAt time.Time) time.Time {
	return createdAt.Add(ResolutionWindow(priority))
}

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}
