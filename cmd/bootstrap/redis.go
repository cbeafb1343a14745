package bootstrap

import (
	"context"
	"log/slog"

	"marketcart/internal/infra/notify"
	"marketcart/internal/pkg/config"
	"marketcart/internal/usecase/commands"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewStockNotifier,
	),
)

// NewStockNotifier falls back to a no-op when no Redis address is
// configured; stock-change notifications are best-effort either way.
func NewStockNotifier(lc fx.Lifecycle, cfg config.Config) commands.StockNotifier {
	if cfg.Redis.Addr == "" {
		slog.Info("Redis not configured, stock change notifications disabled")
		return notify.NewNoopStockNotifier()
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	slog.Info("Redis stock notifier initialized", "addr", cfg.Redis.Addr, "channel", cfg.Redis.StockChannel)
	return notify.NewRedisStockNotifier(client, cfg.Redis)
}
