package bootstrap

import (
	"context"
	"log/slog"

	"marketcart/internal/infra/events"
	"marketcart/internal/pkg/config"
	"marketcart/internal/usecase/commands"

	"go.uber.org/fx"
)

var KafkaModule = fx.Module("kafka",
	fx.Provide(
		NewOrderEventPublisher,
	),
)

// NewOrderEventPublisher falls back to a no-op when no brokers are
// configured; order events are best-effort either way.
func NewOrderEventPublisher(lc fx.Lifecycle, cfg config.Config) commands.OrderEventPublisher {
	if len(cfg.Kafka.Brokers) == 0 {
		slog.Info("Kafka not configured, order event publication disabled")
		return events.NewNoopOrderPublisher()
	}

	publisher := events.NewKafkaOrderPublisher(cfg.Kafka)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return publisher.Close()
		},
	})

	slog.Info("Kafka order publisher initialized", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.OrdersTopic)
	return publisher
}
