package payment

import (
	"context"

	"github.com/stripe/stripe-go/v72"

	types "checkout-hub/internal/common/type"
	stripePkg "checkout-hub/internal/pkg/stripe"
	"checkout-hub/internal/repository"
)

// IProvider is the slice of the payment provider the service needs.
type IProvider interface {
	IsConfigured() bool
	CreatePaymentIntent(amount int64, currency string) (*stripe.PaymentIntent, error)
	CreateTrialCharge(req *stripePkg.TrialChargeRequest) (*stripePkg.TrialChargeResult, error)
}

// IPublisher publishes checkout lifecycle events.
type IPublisher interface {
	Publish(queueName string, payload interface{}) error
}

type Service struct {
	ctx       context.Context
	rp        repository.IRepository
	provider  IProvider
	publisher IPublisher
	port      int
}

type IService interface {
	CreatePaymentIntent(req *CreateIntentRequest) *types.Response
	Checkout(req *CheckoutRequest) *types.Response
	GetOrder(orderID string) *types.Response
	Health() *types.Response
}

func NewService(ctx context.Context, rp repository.IRepository, provider IProvider, publisher IPublisher, port int) IService {
	return &Service{
		ctx:       ctx,
		rp:        rp,
		provider:  provider,
		publisher: publisher,
		port:      port,
	}
}

// Request/Response DTOs

type CreateIntentRequest struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type CreateIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

type CheckoutRequest struct {
	TokenID       string  `json:"tokenId" binding:"required"`
	CustomerEmail string  `json:"customerEmail" binding:"required,email"`
	CustomerName  string  `json:"customerName" binding:"required"`
	TrialAmount   float64 `json:"trialAmount"`
	TrialDays     int     `json:"trialDays"`
	PaymentMethod string  `json:"paymentMethod"`
}

type CheckoutResponse struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderId"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Port   int    `json:"port"`
}

// CheckoutCompletedEvent is published after a successful checkout.
type CheckoutCompletedEvent struct {
	OrderID       string `json:"order_id"`
	CustomerEmail string `json:"customer_email"`
	AmountCents   int64  `json:"amount_cents"`
	Currency      string `json:"currency"`
}

// CheckoutCompletedQueue is the queue checkout events land on.
const CheckoutCompletedQueue = "checkout.completed"
