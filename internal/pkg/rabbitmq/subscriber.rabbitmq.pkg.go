package rabbitmq

import (
	"context"
	"fmt"
	"sync"
	"time"

	"checkout-hub/internal/pkg/logger"

	"github.com/panjf2000/ants/v2"

	amqp "github.com/rabbitmq/amqp091-go"
)

type MessageHandler func(msg *amqp.Delivery) error

type SubscribeOptions struct {
	QueueOpts        *QueueConfig
	QueueName        string
	ConsumerName     string
	WorkerCount      int
	PrefetchCount    int
	MaxRetryAttempts int
	BaseRetryDelay   time.Duration
}

func DefaultSubscribeOptions(queueName string) *SubscribeOptions {
	return &SubscribeOptions{
		QueueOpts:        DefaultQueueConfig(),
		QueueName:        queueName,
		ConsumerName:     queueName,
		WorkerCount:      3,
		PrefetchCount:    10,
		MaxRetryAttempts: 5,
		BaseRetryDelay:   time.Second * 5,
	}
}

type Subscriber struct {
	connManager *ConnectionManager
	handler     MessageHandler
	opts        *SubscribeOptions
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	pool        *ants.Pool
}

func NewSubscriber(ctx context.Context, connManager *ConnectionManager, handler MessageHandler, opts *SubscribeOptions) (*Subscriber, error) {
	ctx, cancel := context.WithCancel(ctx)

	poolOpts := ants.Options{
		ExpiryDuration: time.Hour,
		PreAlloc:       true,
		Nonblocking:    false,
		PanicHandler: func(i interface{}) {
			logger.Error.Printf("Worker panic: %v\n", i)
		},
	}

	pool, err := ants.NewPool(opts.WorkerCount, ants.WithOptions(poolOpts))
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}

	return &Subscriber{
		connManager: connManager,
		handler:     handler,
		opts:        opts,
		ctx:         ctx,
		cancel:      cancel,
		pool:        pool,
	}, nil
}

// Subscribe consumes the queue until the context is canceled. Failed
// deliveries are retried up to MaxRetryAttempts via header-counted requeue,
// then dropped with a log line.
func (s *Subscriber) Subscribe() error {
	conn := s.connManager.GetConnection()
	if conn == nil {
		return fmt.Errorf("no active connection")
	}

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	cfg := s.opts.QueueOpts
	if cfg == nil {
		cfg = DefaultQueueConfig()
	}

	if _, err := ch.QueueDeclare(s.opts.QueueName, cfg.Durable, cfg.AutoDelete, cfg.Exclusive, cfg.NoWait, cfg.Args); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", s.opts.QueueName, err)
	}

	if err := ch.Qos(s.opts.PrefetchCount, 0, false); err != nil {
		return fmt.Errorf("failed to set prefetch: %w", err)
	}

	deliveries, err := ch.Consume(s.opts.QueueName, s.opts.ConsumerName, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to consume queue %s: %w", s.opts.QueueName, err)
	}

	logger.Info.Printf("Subscribed to queue %s", s.opts.QueueName)

	for {
		select {
		case <-s.ctx.Done():
			s.wg.Wait()
			return nil
		case d, ok := <-deliveries:
			if !ok {
				s.wg.Wait()
				return fmt.Errorf("delivery channel closed for queue %s", s.opts.QueueName)
			}
			delivery := d
			s.wg.Add(1)
			if err := s.pool.Submit(func() {
				defer s.wg.Done()
				s.process(ch, &delivery)
			}); err != nil {
				s.wg.Done()
				_ = delivery.Nack(false, true)
			}
		}
	}
}

func (s *Subscriber) process(ch *amqp.Channel, d *amqp.Delivery) {
	if err := s.handler(d); err == nil {
		_ = d.Ack(false)
		return
	}

	attempts := deliveryAttempts(d)
	if attempts >= s.opts.MaxRetryAttempts {
		logger.Error.Printf("Dropping message %s after %d attempts", d.MessageId, attempts)
		_ = d.Ack(false)
		return
	}

	time.Sleep(s.opts.BaseRetryDelay)

	headers := d.Headers
	if headers == nil {
		headers = amqp.Table{}
	}
	headers["x-attempts"] = int32(attempts + 1)

	err := ch.PublishWithContext(s.ctx, "", s.opts.QueueName, false, false, amqp.Publishing{
		ContentType:  d.ContentType,
		Body:         d.Body,
		MessageId:    d.MessageId,
		Timestamp:    d.Timestamp,
		DeliveryMode: amqp.Persistent,
		Headers:      headers,
	})
	if err != nil {
		_ = d.Nack(false, true)
		return
	}
	_ = d.Ack(false)
}

func deliveryAttempts(d *amqp.Delivery) int {
	if d.Headers == nil {
		return 0
	}
	switch v := d.Headers["x-attempts"].(type) {
	case int32:
		return int(v)
	case int64:
		return int(v)
	case int:
		return v
	}
	return 0
}

func (s *Subscriber) Close() {
	s.cancel()
	s.wg.Wait()
	s.pool.Release()
}
