// Package events holds the broker-less event publisher used when no Kafka
// broker is configured (local development, tests).
package events

import (
	"context"
	"log/slog"

	"github.com/karineriquena/fiap-soat1-tech-challenge/internal/core/ports"
)

// NoopPublisher logs events instead of publishing them.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, event ports.OrderEvent) error {
	slog.DebugContext(ctx, "order event (no broker configured)",
		"event", event.Name, "order_id", event.OrderID, "status", event.Status)
	return nil
}
