package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/helpdesk-demo/ticketing-service/internal/api/http/handlers"
	"github.com/helpdesk-demo/ticketing-service/internal/observability"
	"github.com/helpdesk-demo/ticketing-service/internal/persistence"
	"github.com/helpdesk-demo/ticketing-service/internal/service"
)

// ServerDependencies bundles what the HTTP layer needs.
type ServerDependencies struct {
	Name           string
	Version        string
	Logger         *zap.Logger
	Metrics        *observability.Metrics
	Tickets        *service.TicketService
	Redis          *persistence.Redis
	RequestTimeout time.Duration
}

// NewServer builds a fiber app with middlewares and routes registered.
func NewServer(deps ServerDependencies) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               deps.Name,
		DisableStartupMessage: true,
	})
	RegisterMiddlewares(app, deps.Logger, deps.Metrics, deps.RequestTimeout)
	RegisterRoutes(app, RouteConfig{
		Health:  handlers.NewHealthHandler(deps.Name, deps.Version, deps.Tickets, deps.Redis),
		Tickets: handlers.NewTicketsHandler(deps.Tickets),
		Metrics: handlers.NewMetricsHandler(deps.Metrics),
	})
	return app
}
