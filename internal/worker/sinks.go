package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/helpdesk-demo/ticketing-service/internal/events"
	"github.com/helpdesk-demo/ticketing-service/internal/persistence"
)

// WebhookSink POSTs events as JSON to a fixed URL.
type WebhookSink struct {
	url string
}

// NewWebhookSink returns a sink targeting url.
func NewWebhookSink(url string) *WebhookSink {
	return &WebhookSink{url: url}
}

func (s *WebhookSink) Name() string { return "webhook" }

func (s *WebhookSink) Deliver(ctx context.Context, event events.Event) error {
	agent := fiber.Post(s.url).JSON(event)
	if deadline, ok := ctx.Deadline(); ok {
		agent.Timeout(time.Until(deadline))
	}
	status, _, errs := agent.Bytes()
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	if status >= fiber.StatusBadRequest {
		return fmt.Errorf("webhook responded with status %d", status)
	}
	return nil
}

// RedisSink publishes events on a Redis pub/sub channel.
type RedisSink struct {
	redis   *persistence.Redis
	channel string
}

// NewRedisSink returns a sink publishing on channel.
func NewRedisSink(redis *persistence.Redis, channel string) *RedisSink {
	return &RedisSink{redis: redis, channel: channel}
}

func (s *RedisSink) Name() string { return "redis" }

func (s *RedisSink) Deliver(ctx context.Context, event events.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	return s.redis.Publish(ctx, s.channel, payload)
}
