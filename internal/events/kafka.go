package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaPublisher forwards cart events to a Kafka topic. Publishing is
// best-effort: failures are logged and never reach the mutation caller.
type KafkaPublisher struct {
	writer  *kafka.Writer
	logger  *zap.Logger
	timeout time.Duration
}

func NewKafkaPublisher(logger *zap.Logger, brokers ...string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  "cart-events",
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{
		writer:  w,
		logger:  logger,
		timeout: 5 * time.Second,
	}
}

// Publish satisfies the Emitter subscriber signature.
func (p *KafkaPublisher) Publish(ev CartEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		p.logger.Error("failed to marshal cart event", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.Type),
		Value: payload,
	})
	if err != nil {
		p.logger.Error("failed to publish cart event",
			zap.String("type", string(ev.Type)),
			zap.Error(err))
	}
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
