package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"marketcart/internal/pkg/config"
	"marketcart/internal/pkg/errs"
	"marketcart/internal/usecase/commands"

	"github.com/segmentio/kafka-go"
)

var errEnqueueOrderEvent = errs.New("failed to enqueue order event")

// KafkaOrderPublisher buffers order-created events through an async writer so
// checkout latency does not depend on broker round trips.
type KafkaOrderPublisher struct {
	writer *kafka.Writer
	inbox  chan kafka.Message
	done   chan struct{}
}

func NewKafkaOrderPublisher(cfg config.KafkaConfig) *KafkaOrderPublisher {
	p := &KafkaOrderPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.OrdersTopic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
		inbox: make(chan kafka.Message, cfg.BufferSize),
		done:  make(chan struct{}),
	}
	go p.run()
	return p
}

func (p *KafkaOrderPublisher) run() {
	defer close(p.done)
	for msg := range p.inbox {
		if err := p.writer.WriteMessages(context.Background(), msg); err != nil {
			slog.Warn("failed to write order event", "error", err.Error())
		}
	}
}

func (p *KafkaOrderPublisher) OrdersCreated(ctx context.Context, events []commands.OrderCreatedEvent) error {
	for _, ev := range events {
		payload, err := json.Marshal(ev)
		if err != nil {
			return errs.Mark(err, errEnqueueOrderEvent)
		}
		msg := kafka.Message{
			Key:   []byte(ev.SessionID.String()),
			Value: payload,
			Time:  time.Now(),
		}
		select {
		case p.inbox <- msg:
		case <-ctx.Done():
			return errs.Mark(ctx.Err(), errEnqueueOrderEvent)
		}
	}
	return nil
}

// Close flushes buffered events and releases the writer.
func (p *KafkaOrderPublisher) Close() error {
	close(p.inbox)
	<-p.done
	return p.writer.Close()
}

// NoopOrderPublisher is used when no Kafka brokers are configured.
type NoopOrderPublisher struct{}

func NewNoopOrderPublisher() commands.OrderEventPublisher {
	return NoopOrderPublisher{}
}

func (NoopOrderPublisher) OrdersCreated(context.Context, []commands.OrderCreatedEvent) error {
	return nil
}
