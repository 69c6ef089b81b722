package stripe

import (
	"fmt"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"
)

type Config struct {
	SecretKey  string
	PublicKey  string
	MerchantID string
}

type StripeClient struct {
	API        *client.API
	PublicKey  string
	MerchantID string
	configured bool
}

func Setup(cfg *Config) *StripeClient {
	sc := &client.API{}
	if cfg.SecretKey != "" {
		sc.Init(cfg.SecretKey, nil)
	}

	return &StripeClient{
		API:        sc,
		PublicKey:  cfg.PublicKey,
		MerchantID: cfg.MerchantID,
		configured: cfg.SecretKey != "",
	}
}

// IsConfigured reports whether a secret key was provided. Calls against an
// unconfigured client must fail loudly, never silently.
func (s *StripeClient) IsConfigured() bool {
	return s.configured
}

// CreatePaymentIntent creates a payment intent with automatic payment
// methods enabled and returns it (the caller only needs ClientSecret).
func (s *StripeClient) CreatePaymentIntent(amount int64, currency string) (*stripe.PaymentIntent, error) {
	if !s.configured {
		return nil, fmt.Errorf("stripe secret key is not configured")
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}

	return s.API.PaymentIntents.New(params)
}

type TrialChargeRequest struct {
	TokenID       string
	CustomerEmail string
	CustomerName  string
	AmountCents   int64
	Currency      string
	Description   string
}

type TrialChargeResult struct {
	CustomerID string
	ChargeID   string
}

// CreateTrialCharge creates a customer from a payment token and charges the
// trial amount against it.
func (s *StripeClient) CreateTrialCharge(req *TrialChargeRequest) (*TrialChargeResult, error) {
	if !s.configured {
		return nil, fmt.Errorf("stripe secret key is not configured")
	}

	customerParams := &stripe.CustomerParams{
		Email: stripe.String(req.CustomerEmail),
		Name:  stripe.String(req.CustomerName),
	}
	if err := customerParams.SetSource(req.TokenID); err != nil {
		return nil, fmt.Errorf("invalid payment token: %w", err)
	}

	customer, err := s.API.Customers.New(customerParams)
	if err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	charge, err := s.API.Charges.New(&stripe.ChargeParams{
		Amount:      stripe.Int64(req.AmountCents),
		Currency:    stripe.String(req.Currency),
		Customer:    stripe.String(customer.ID),
		Description: stripe.String(req.Description),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create charge: %w", err)
	}

	return &TrialChargeResult{
		CustomerID: customer.ID,
		ChargeID:   charge.ID,
	}, nil
}
