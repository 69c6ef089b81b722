package rabbitmq

import (
	"context"
	"fmt"
	"sync"

	"checkout-hub/internal/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Publisher struct {
	connManager *ConnectionManager
	channel     *amqp.Channel
	mu          sync.Mutex
	ctx         context.Context
}

func NewPublisher(ctx context.Context, connManager *ConnectionManager) (*Publisher, error) {
	p := &Publisher{
		connManager: connManager,
		ctx:         ctx,
	}

	if err := p.ensureChannel(); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Publisher) ensureChannel() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel != nil && !p.channel.IsClosed() {
		return nil
	}

	conn := p.connManager.GetConnection()
	if conn == nil {
		return fmt.Errorf("no active connection")
	}

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}

	p.channel = ch
	return nil
}

// Publish declares the queue (durable) and publishes a persistent message to it.
func (p *Publisher) Publish(queueName string, payload interface{}) error {
	if err := p.ensureChannel(); err != nil {
		return err
	}

	msg, err := NewMessage(payload, nil)
	if err != nil {
		return fmt.Errorf("failed to build message: %w", err)
	}

	cfg := DefaultQueueConfig()

	p.mu.Lock()
	defer p.mu.Unlock()

	_, err = p.channel.QueueDeclare(queueName, cfg.Durable, cfg.AutoDelete, cfg.Exclusive, cfg.NoWait, cfg.Args)
	if err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", queueName, err)
	}

	err = p.channel.PublishWithContext(p.ctx, "", queueName, false, false, *msg.GeneratePayload())
	if err != nil {
		return fmt.Errorf("failed to publish to queue %s: %w", queueName, err)
	}

	logger.Info.Printf("Published message %s to queue %s", msg.ID, queueName)
	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel != nil && !p.channel.IsClosed() {
		return p.channel.Close()
	}
	return nil
}
