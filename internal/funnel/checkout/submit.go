package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"checkout-hub/internal/pkg/helper"
	"checkout-hub/internal/pkg/logger"
)

// TrialDays is the fixed trial length attached to every checkout.
const TrialDays = 7

// SubmitRequest is the payload the checkout backend expects once a
// payment token exists.
type SubmitRequest struct {
	TokenID       string  `json:"tokenId"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerName  string  `json:"customerName"`
	TrialAmount   float64 `json:"trialAmount"`
	TrialDays     int     `json:"trialDays"`
}

type submitError struct {
	Error string `json:"error"`
}

// Submitter posts tokens to the checkout backend.
type Submitter struct {
	url    string
	client *http.Client
}

func NewSubmitter(url string, client *http.Client) *Submitter {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Submitter{url: url, client: client}
}

// Submit sends the checkout payload. The returned error carries a
// user-facing message.
func (s *Submitter) Submit(ctx context.Context, req *SubmitRequest) error {
	body, err := helper.JSONToByte(req)
	if err != nil {
		logger.Error.Printf("checkout payload: %v", err)
		return errors.New("failed to process payment")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		logger.Error.Printf("checkout request: %v", err)
		return errors.New("failed to process payment")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		logger.Error.Printf("checkout call: %v", err)
		return errors.New("failed to process payment, please try again")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := "server error"

		var parsed submitError
		if err := json.NewDecoder(resp.Body).Decode(&parsed); err == nil && parsed.Error != "" {
			message = parsed.Error
		}

		logger.Warning.Printf("checkout rejected: status=%d message=%s", resp.StatusCode, message)
		return fmt.Errorf("%s", message)
	}

	return nil
}
