package funnel

import (
	"context"
	"net/http"
	"sync"

	types "checkout-hub/internal/common/type"
	"checkout-hub/internal/funnel/checkout"
	"checkout-hub/internal/funnel/widget"
	"checkout-hub/internal/repository"
)

type Service struct {
	ctx         context.Context
	rp          repository.IRepository
	publicKey   string
	checkoutURL string
	planLabel   string
	httpClient  *http.Client

	mu       sync.RWMutex
	sessions map[string]*session
}

type session struct {
	id   string
	lib  *widget.RemoteLibrary
	orch *checkout.Orchestrator
}

type IService interface {
	CreateSession(req *CreateSessionRequest) *types.Response
	SelectMethod(sessionID string, req *SelectMethodRequest) *types.Response
	UpdateForm(sessionID string, req *FormRequest) *types.Response
	Submit(sessionID string) *types.Response
	SubmitToken(sessionID string, req *SubmitTokenRequest) *types.Response
	GetState(sessionID string) *types.Response
	CloseSession(sessionID string) *types.Response
}

func NewService(ctx context.Context, rp repository.IRepository, publicKey, checkoutURL, planLabel string) IService {
	return &Service{
		ctx:         ctx,
		rp:          rp,
		publicKey:   publicKey,
		checkoutURL: checkoutURL,
		planLabel:   planLabel,
		sessions:    make(map[string]*session),
	}
}

// Request/Response DTOs

type CreateSessionRequest struct {
	Name          string                    `json:"name"`
	Email         string                    `json:"email"`
	SelectedPrice string                    `json:"selected_price" binding:"omitempty,price"`
	Timezone      string                    `json:"timezone"`
	Locales       []string                  `json:"locales"`
	Capabilities  widget.ClientCapabilities `json:"capabilities"`
}

type CreateSessionResponse struct {
	SessionID          string `json:"session_id"`
	Country            string `json:"country"`
	ApplePayAvailable  bool   `json:"apple_pay_available"`
	GooglePayAvailable bool   `json:"google_pay_available"`
	SelectedPrice      string `json:"selected_price"`
}

type SelectMethodRequest struct {
	Method string `json:"method" binding:"required"`
}

type SubmitTokenRequest struct {
	TokenID string `json:"token_id" binding:"required"`
	Method  string `json:"method"`
}

type FormRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type SessionStateResponse struct {
	SessionID          string `json:"session_id"`
	State              string `json:"state"`
	Loading            bool   `json:"loading"`
	Error              string `json:"error,omitempty"`
	Method             string `json:"method"`
	Country            string `json:"country"`
	SelectedPrice      string `json:"selected_price"`
	ApplePayAvailable  bool   `json:"apple_pay_available"`
	GooglePayAvailable bool   `json:"google_pay_available"`
	CardMounted        bool   `json:"card_mounted"`
}
