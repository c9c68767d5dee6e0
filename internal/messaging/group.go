package messaging

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/zap"
)

// Runnable represents a component that can be started and shutdown.
type Runnable interface {
	Start(ctx context.Context) error
	Shutdown() error
}

type topicReader interface {
	Topic() string
}

// ConsumerGroup runs the consumers that share one subscriber and owns the subscriber's lifetime.
// Only consumers that started successfully are shut down, in reverse start order.
type ConsumerGroup struct {
	mu         sync.Mutex
	consumers  []Runnable
	running    []Runnable
	subscriber message.Subscriber
	logger     *zap.Logger
}

// NewConsumerGroup creates a new consumer group.
func NewConsumerGroup(subscriber message.Subscriber, logger *zap.Logger) *ConsumerGroup {
	return &ConsumerGroup{
		subscriber: subscriber,
		logger:     logger,
	}
}

// Add registers a consumer to the group.
func (g *ConsumerGroup) Add(consumer Runnable) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.consumers = append(g.consumers, consumer)
}

// Running returns the number of consumers currently started.
func (g *ConsumerGroup) Running() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return len(g.running)
}

// Start starts all consumers. If one fails, the ones already started are stopped again.
func (g *ConsumerGroup) Start(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	for i, consumer := range g.consumers {
		if err := consumer.Start(ctx); err != nil {
			g.logger.Error("consumer failed to start",
				zap.Int("index", i),
				zap.String("topic", topicOf(consumer)),
				zap.Error(err),
			)

			return errors.Join(fmt.Errorf("start consumer %d: %w", i, err), g.stopRunning())
		}

		g.running = append(g.running, consumer)
	}

	topics := make([]string, 0, len(g.running))
	for _, consumer := range g.running {
		topics = append(topics, topicOf(consumer))
	}

	g.logger.Info("consumer group started", zap.Int("count", len(g.running)), zap.Strings("topics", topics))

	return nil
}

// Shutdown stops the running consumers, closes the subscriber, and joins every error seen.
func (g *ConsumerGroup) Shutdown() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	stopErr := g.stopRunning()

	if err := g.subscriber.Close(); err != nil {
		g.logger.Warn("failed to close subscriber", zap.Error(err))

		return errors.Join(stopErr, err)
	}

	return stopErr
}

// stopRunning must be called with mu held.
func (g *ConsumerGroup) stopRunning() error {
	var (
		errs    []error
		stopped int
	)

	for i := len(g.running) - 1; i >= 0; i-- {
		consumer := g.running[i]
		if err := consumer.Shutdown(); err != nil {
			errs = append(errs, fmt.Errorf("stop consumer %q: %w", topicOf(consumer), err))

			continue
		}

		stopped++
	}

	g.running = nil

	g.logger.Info("consumers stopped", zap.Int("stopped", stopped), zap.Int("failed", len(errs)))

	return errors.Join(errs...)
}

func topicOf(consumer Runnable) string {
	if t, ok := consumer.(topicReader); ok {
		return t.Topic()
	}

	return ""
}
