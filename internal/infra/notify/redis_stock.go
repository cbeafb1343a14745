package notify

import (
	"context"
	"encoding/json"
	"time"

	"marketcart/internal/pkg/config"
	"marketcart/internal/pkg/errs"
	"marketcart/internal/usecase/commands"

	"github.com/redis/go-redis/v9"
)

var errPublishStockChange = errs.New("failed to publish stock change")

type stockChangedMessage struct {
	ProductSKU     string    `json:"product_sku"`
	UnitsAvailable int       `json:"units_available"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// RedisStockNotifier broadcasts availability changes on a pub/sub channel so
// storefront caches can invalidate without polling.
type RedisStockNotifier struct {
	client  *redis.Client
	channel string
}

func NewRedisStockNotifier(client *redis.Client, cfg config.RedisConfig) commands.StockNotifier {
	return &RedisStockNotifier{
		client:  client,
		channel: cfg.StockChannel,
	}
}

func (n *RedisStockNotifier) StockChanged(ctx context.Context, sku string, unitsAvailable int) error {
	payload, err := json.Marshal(stockChangedMessage{
		ProductSKU:     sku,
		UnitsAvailable: unitsAvailable,
		OccurredAt:     time.Now().UTC(),
	})
	if err != nil {
		return errs.Mark(err, errPublishStockChange)
	}
	if err := n.client.Publish(ctx, n.channel, payload).Err(); err != nil {
		return errs.Mark(err, errPublishStockChange)
	}
	return nil
}

// NoopStockNotifier is used when no Redis address is configured.
type NoopStockNotifier struct{}

func NewNoopStockNotifier() commands.StockNotifier {
	return NoopStockNotifier{}
}

func (NoopStockNotifier) StockChanged(context.Context, string, int) error {
	return nil
}
