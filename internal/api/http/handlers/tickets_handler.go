package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/helpdesk-demo/ticketing-service/internal/api/dto"
	"github.com/helpdesk-demo/ticketing-service/internal/domain"
	"github.com/helpdesk-demo/ticketing-service/internal/service"
	apperrors "github.com/helpdesk-demo/ticketing-service/pkg/util/errorutil"
)

// TicketsHandler serves the ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// CreateTicket POST /create_ticket.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", map[string]any{"body": "expected a JSON object"})
	}
	if missing := req.MissingFields(); len(missing) > 0 {
		return apperrors.NewValidationError("invalid payload", missing)
	}
	priority, err := req.PriorityValue()
	if err != nil {
		return apperrors.NewValidationError("invalid payload", map[string]any{"priority": err.Error()})
	}

	input := service.TicketCreateInput{
		CustomerID:   *req.CustomerID,
		IssueSummary: *req.IssueSummary,
	}
	if priority != nil {
		p := domain.TicketPriority(*priority)
		input.Priority = &p
	}
	ticket, err := h.service.CreateTicket(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTicketResponse(ticket))
}

// GetTicketStatus GET /ticket_status/:ticket_id.
func (h *TicketsHandler) GetTicketStatus(c *fiber.Ctx) error {
	ticket, err := h.service.GetTicketStatus(c.UserContext(), c.Params("ticket_id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTicketResponse(ticket))
}
