package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/helpdesk-demo/ticketing-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Tickets *handlers.TicketsHandler
	Metrics *handlers.MetricsHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Metrics.Get)

	app.Post("/create_ticket", cfg.Tickets.CreateTicket)
	app.Get("/ticket_status/:ticket_id", cfg.Tickets.GetTicketStatus)
}
