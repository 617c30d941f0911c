package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"go.uber.org/zap"
)

// Message is one event read from the topic.
type Message struct {
	// Key uniquely identifies the delivery as topic/partition/offset.
	Key string
	// Value is the raw payload.
	Value []byte
}

// Handler processes one message. Failed messages are retried with backoff
// unless the error is wrapped with Permanent; the message is committed once it
// succeeds or the retries run out.
type Handler func(ctx context.Context, msg Message) error

// Permanent marks a handler error that retrying cannot fix, such as a
// malformed payload.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// reader is the subset of *kafka.Consumer the consume loop needs.
type reader interface {
	ReadMessage(timeout time.Duration) (*kafka.Message, error)
	CommitMessage(m *kafka.Message) ([]kafka.TopicPartition, error)
	Close() error
}

// Consumer reads adjustment events with manual commits.
type Consumer struct {
	reader  reader
	handler Handler
	logger  *zap.Logger
	cfg     Config
}

// NewConsumer connects to the brokers and subscribes to cfg.Topic.
func NewConsumer(cfg Config, handler Handler, logger *zap.Logger) (*Consumer, error) {
	c, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers":  cfg.Brokers,
		"group.id":           cfg.GroupID,
		"enable.auto.commit": false,
		"auto.offset.reset":  "earliest",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka consumer: %w", err)
	}

	if err := c.SubscribeTopics([]string{cfg.Topic}, nil); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", cfg.Topic, err)
	}

	return newConsumer(c, handler, logger, cfg), nil
}

func newConsumer(r reader, handler Handler, logger *zap.Logger, cfg Config) *Consumer {
	return &Consumer{
		reader:  r,
		handler: handler,
		logger:  logger,
		cfg:     cfg,
	}
}

// Run consumes until ctx is cancelled, then closes the underlying consumer.
func (c *Consumer) Run(ctx context.Context) error {
	defer func() {
		if err := c.reader.Close(); err != nil {
			c.logger.Warn("Failed to close kafka consumer", zap.Error(err))
		}
	}()

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("Event consumer stopping")
			return nil
		default:
		}

		msg, err := c.reader.ReadMessage(c.cfg.PollTimeout())
		if err != nil {
			var kerr kafka.Error
			if errors.As(err, &kerr) && kerr.IsTimeout() {
				continue
			}
			if errors.As(err, &kerr) && kerr.IsFatal() {
				return fmt.Errorf("kafka consumer failed: %w", err)
			}
			// The client recovers from non-fatal errors on its own.
			c.logger.Warn("Consumer error", zap.Error(err))
			continue
		}
		if msg == nil {
			continue
		}

		c.handle(ctx, msg)
	}
}

func (c *Consumer) handle(ctx context.Context, msg *kafka.Message) {
	m := Message{Key: MessageKey(msg.TopicPartition), Value: msg.Value}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.cfg.RetryInterval()

	attempt := 0
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		attempt++
		err := c.handler(ctx, m)
		if err != nil {
			c.logger.Warn("Failed to handle event",
				zap.String("key", m.Key),
				zap.Int("attempt", attempt),
				zap.Error(err))
		}
		return struct{}{}, err
	}, backoff.WithBackOff(b), backoff.WithMaxTries(c.cfg.maxTries()))

	if err != nil && ctx.Err() != nil {
		// Left uncommitted so the message is read again after restart
		return
	}
	if err != nil {
		c.logger.Error("Dropping event", zap.String("key", m.Key), zap.Int("attempts", attempt), zap.Error(err))
	}

	if _, err := c.reader.CommitMessage(msg); err != nil {
		c.logger.Warn("Failed to commit event", zap.String("key", m.Key), zap.Error(err))
	}
}

// MessageKey identifies a delivery by its topic, partition and offset.
func MessageKey(tp kafka.TopicPartition) string {
	topic := ""
	if tp.Topic != nil {
		topic = *tp.Topic
	}
	return fmt.Sprintf("%s/%d/%d", topic, tp.Partition, int64(tp.Offset))
}
