package payment

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"checkout-hub/internal/common/enum"
	"checkout-hub/internal/common/models"
	types "checkout-hub/internal/common/type"
	funnel "checkout-hub/internal/funnel/checkout"
	"checkout-hub/internal/pkg/helper"
	"checkout-hub/internal/pkg/logger"
	stripePkg "checkout-hub/internal/pkg/stripe"
)

const defaultCurrency = "usd"

// CreatePaymentIntent opens a payment intent with the provider and hands
// back only the client secret the widget needs.
func (s *Service) CreatePaymentIntent(req *CreateIntentRequest) *types.Response {
	if req.Amount <= 0 {
		return helper.ParseResponse(&types.Response{
			Code:  http.StatusBadRequest,
			Error: errors.New("amount is required"),
		})
	}

	if !s.provider.IsConfigured() {
		return helper.ParseResponse(&types.Response{
			Code:  http.StatusInternalServerError,
			Error: errors.New("payment provider secret key is not configured"),
		})
	}

	currency := lo.Ternary(req.Currency != "", req.Currency, defaultCurrency)

	intent, err := s.provider.CreatePaymentIntent(helper.DollarsToCents(req.Amount), currency)
	if err != nil {
		logger.Error.Printf("Failed to create payment intent: %v", err)
		return helper.ParseResponse(&types.Response{
			Code:  http.StatusInternalServerError,
			Error: errors.New("failed to create payment intent"),
		})
	}

	return helper.ParseResponse(&types.Response{
		Code:    http.StatusOK,
		Message: "Payment intent created",
		Data:    CreateIntentResponse{ClientSecret: intent.ClientSecret},
	})
}

// Checkout charges the trial amount against the submitted token and
// records the order. The charge failing means no order row is written.
func (s *Service) Checkout(req *CheckoutRequest) *types.Response {
	if !s.provider.IsConfigured() {
		return helper.ParseResponse(&types.Response{
			Code:  http.StatusInternalServerError,
			Error: errors.New("payment provider secret key is not configured"),
		})
	}

	trialDays := lo.Ternary(req.TrialDays > 0, req.TrialDays, funnel.TrialDays)
	method := lo.Ternary(req.PaymentMethod != "", req.PaymentMethod, enum.CARD.ToString())
	amountCents := helper.DollarsToCents(req.TrialAmount)
	orderID := "ord_" + uuid.NewString()

	result, err := s.provider.CreateTrialCharge(&stripePkg.TrialChargeRequest{
		TokenID:       req.TokenID,
		CustomerEmail: req.CustomerEmail,
		CustomerName:  req.CustomerName,
		AmountCents:   amountCents,
		Currency:      defaultCurrency,
		Description:   fmt.Sprintf("%d-day trial for %s", trialDays, req.CustomerEmail),
	})
	if err != nil {
		logger.Error.Printf("Trial charge failed: %v", err)
		return helper.ParseResponse(&types.Response{
			Code:  http.StatusPaymentRequired,
			Error: errors.New("payment was declined"),
		})
	}

	now := time.Now()
	order := &models.CheckoutOrder{
		OrderID:          orderID,
		TokenID:          req.TokenID,
		CustomerName:     req.CustomerName,
		CustomerEmail:    req.CustomerEmail,
		TrialAmountCents: amountCents,
		TrialDays:        trialDays,
		Currency:         defaultCurrency,
		PaymentMethod:    method,
		ProviderCustomer: result.CustomerID,
		ProviderCharge:   result.ChargeID,
		Status:           enum.ORDER_PAID.ToString(),
		PaidAt:           &now,
	}

	if err := s.rp.Order.Create(s.ctx, order); err != nil {
		logger.Error.Printf("Failed to save order %s: %v", orderID, err)
		return helper.ParseResponse(&types.Response{
			Code:  http.StatusInternalServerError,
			Error: errors.New("failed to save order"),
		})
	}

	s.publishCompleted(order)

	return helper.ParseResponse(&types.Response{
		Code:    http.StatusOK,
		Message: "Checkout completed",
		Data:    CheckoutResponse{Success: true, OrderID: orderID},
	})
}

// publishCompleted emits the checkout event. Publishing is best-effort;
// the order is already persisted.
func (s *Service) publishCompleted(order *models.CheckoutOrder) {
	if s.publisher == nil {
		return
	}

	event := CheckoutCompletedEvent{
		OrderID:       order.OrderID,
		CustomerEmail: order.CustomerEmail,
		AmountCents:   order.TrialAmountCents,
		Currency:      order.Currency,
	}

	if err := s.publisher.Publish(CheckoutCompletedQueue, event); err != nil {
		logger.Warning.Printf("Failed to publish checkout event for %s: %v", order.OrderID, err)
	}
}

func (s *Service) GetOrder(orderID string) *types.Response {
	order, err := s.rp.Order.FindByOrderID(s.ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.ParseResponse(&types.Response{
				Code:  http.StatusNotFound,
				Error: errors.New("order not found"),
			})
		}
		logger.Error.Printf("Failed to load order %s: %v", orderID, err)
		return helper.ParseResponse(&types.Response{
			Code:  http.StatusInternalServerError,
			Error: err,
		})
	}

	return helper.ParseResponse(&types.Response{
		Code:    http.StatusOK,
		Message: "Order found",
		Data:    order,
	})
}

func (s *Service) Health() *types.Response {
	return helper.ParseResponse(&types.Response{
		Code:    http.StatusOK,
		Message: "OK",
		Data:    HealthResponse{Status: "ok", Port: s.port},
	})
}
