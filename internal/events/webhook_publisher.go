package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

const webhookTimeout = 5 * time.Second

// WebhookPublisher POSTs every event as JSON to a configured endpoint.
type WebhookPublisher struct {
	url string
}

// NewWebhookPublisher returns a publisher for url.
func NewWebhookPublisher(url string) *WebhookPublisher {
	return &WebhookPublisher{url: url}
}

// Handle implements EventHandler. The request timeout never outlives the
// deadline of ctx, and a finished ctx skips the call.
func (p *WebhookPublisher) Handle(ctx context.Context, event Event) error {
	timeout, err := requestTimeout(ctx)
	if err != nil {
		return fmt.Errorf("webhook %s: %w", p.url, err)
	}

	agent := fiber.Post(p.url)
	agent.JSON(event)
	agent.Set("X-Event-Type", string(event.Type))
	agent.Timeout(timeout)
	if err := agent.Parse(); err != nil {
		fiber.ReleaseAgent(agent)
		return fmt.Errorf("webhook %s: %w", p.url, err)
	}

	code, _, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("webhook %s: %w", p.url, errors.Join(errs...))
	}
	if code < 200 || code >= 300 {
		return fmt.Errorf("webhook %s: unexpected status %d", p.url, code)
	}
	return nil
}

func requestTimeout(ctx context.Context) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		return webhookTimeout, nil
	}
	remaining := time.Until(deadline)
	if remaining <= 0 {
		return 0, context.DeadlineExceeded
	}
	return min(remaining, webhookTimeout), nil
}
