package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	httptransport "github.com/helpdesk-demo/ticketing-service/internal/api/http"
	"github.com/helpdesk-demo/ticketing-service/internal/config"
	"github.com/helpdesk-demo/ticketing-service/internal/events"
	"github.com/helpdesk-demo/ticketing-service/internal/observability"
	"github.com/helpdesk-demo/ticketing-service/internal/persistence"
	"github.com/helpdesk-demo/ticketing-service/internal/repository"
	"github.com/helpdesk-demo/ticketing-service/internal/service"
	"github.com/helpdesk-demo/ticketing-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App.Name)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	var sinks []worker.Sink
	if cfg.Notification.WebhookURL != "" {
		sinks = append(sinks, worker.NewWebhookSink(cfg.Notification.WebhookURL))
	}
	if redis.Enabled() {
		sinks = append(sinks, worker.NewRedisSink(redis, cfg.Redis.EventsChannel))
	}

	dispatcher := events.NewInMemoryDispatcher()
	notifications := worker.NewNotificationWorker(logger, cfg.Notification.QueueSize, cfg.Notification.Timeout(), sinks...)
	notificationService := service.NewNotificationService(dispatcher, logger, notifications)
	worker.StartNotificationWorker(ctx, notificationService, notifications)

	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: repository.NewTicketRepository(),
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	metrics := observability.NewMetrics()
	app := httptransport.NewServer(httptransport.ServerDependencies{
		Name:           cfg.App.Name,
		Version:        cfg.App.Version,
		Logger:         logger,
		Metrics:        metrics,
		Tickets:        ticketService,
		Redis:          redis,
		RequestTimeout: cfg.App.RequestTimeout(),
	})

	go func() {
		logger.Info("starting", zap.String("addr", cfg.App.Addr()), zap.String("env", cfg.App.Env))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
	notifications.Stop()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
