package notify

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"checkout-hub/internal/pkg/logger"
	"checkout-hub/internal/repository"
)

type Service struct {
	ctx context.Context
	rp  repository.IRepository
}

type IService interface {
	HandleCheckoutCompleted(delivery *amqp.Delivery) error
}

func NewService(ctx context.Context, rp repository.IRepository) IService {
	return &Service{ctx: ctx, rp: rp}
}

type checkoutCompleted struct {
	OrderID       string `json:"order_id"`
	CustomerEmail string `json:"customer_email"`
}

// HandleCheckoutCompleted consumes a checkout event and marks the order
// as notified. Returning an error makes the subscriber retry.
func (s *Service) HandleCheckoutCompleted(delivery *amqp.Delivery) error {
	var event checkoutCompleted
	if err := json.Unmarshal(delivery.Body, &event); err != nil {
		logger.Error.Printf("checkout event %s decode: %v", delivery.MessageId, err)
		return err
	}

	if event.OrderID == "" {
		logger.Warning.Printf("checkout event %s has no order id, dropping", delivery.MessageId)
		return nil
	}

	if err := s.rp.Order.MarkNotified(s.ctx, event.OrderID, time.Now()); err != nil {
		logger.Error.Printf("mark notified %s: %v", event.OrderID, err)
		return err
	}

	logger.Info.Printf("order %s notified (%s)", event.OrderID, event.CustomerEmail)
	return nil
}
