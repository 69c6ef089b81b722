package funnel

import (
	"errors"
	"net/http"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"checkout-hub/internal/common/enum"
	types "checkout-hub/internal/common/type"
	"checkout-hub/internal/funnel/checkout"
	"checkout-hub/internal/funnel/geo"
	"checkout-hub/internal/funnel/widget"
	"checkout-hub/internal/pkg/helper"
	"checkout-hub/internal/pkg/logger"
)

// CreateSession opens a checkout session for one funnel visitor: the
// country is detected, the payment library resolved against the
// reported client capabilities, and the card method mounted.
func (s *Service) CreateSession(req *CreateSessionRequest) *types.Response {
	id, err := gonanoid.New()
	if err != nil {
		return helper.ParseResponse(&types.Response{
			Code:  http.StatusInternalServerError,
			Error: err,
		})
	}
	id = "fs_" + id

	country := geo.Detect(req.Timezone, req.Locales...)

	if req.Name != "" || req.Email != "" || req.SelectedPrice != "" {
		quizData := &checkout.QuizData{
			Name:          req.Name,
			Email:         req.Email,
			SelectedPrice: req.SelectedPrice,
		}
		if err := s.rp.Quiz.Save(s.ctx, id, quizData); err != nil {
			logger.Warning.Printf("quiz context save for %s: %v", id, err)
		}
	}

	lib := widget.NewRemoteLibrary(req.Capabilities)

	orch := checkout.New(checkout.Config{
		Loader:        widget.NewLoader(s.publicKey, widget.StaticProvider{Library: lib}),
		DOM:           defaultDOM(),
		Platform:      lib,
		Quiz:          s.rp.Quiz,
		SessionID:     id,
		SelectedPrice: req.SelectedPrice,
		PlanLabel:     s.planLabel,
		Country:       country,
		CheckoutURL:   s.checkoutURL,
		HTTPClient:    s.httpClient,
	})

	if err := orch.Start(s.ctx); err != nil {
		orch.Close()
		logger.Error.Printf("session %s start: %v", id, err)
		return helper.ParseResponse(&types.Response{
			Code:  http.StatusInternalServerError,
			Error: err,
		})
	}

	s.mu.Lock()
	s.sessions[id] = &session{id: id, lib: lib, orch: orch}
	s.mu.Unlock()

	snap := orch.Snapshot()
	return helper.ParseResponse(&types.Response{
		Code:    http.StatusCreated,
		Message: "Session created",
		Data: CreateSessionResponse{
			SessionID:          id,
			Country:            snap.Country,
			ApplePayAvailable:  snap.Availability.ApplePay,
			GooglePayAvailable: snap.Availability.GooglePay,
			SelectedPrice:      snap.Price,
		},
	})
}

// SelectMethod switches the session's active payment method.
func (s *Service) SelectMethod(sessionID string, req *SelectMethodRequest) *types.Response {
	sess, resp := s.find(sessionID)
	if resp != nil {
		return resp
	}

	method := enum.PaymentMethodEnum(req.Method)
	if !method.IsValid() {
		return helper.ParseResponse(&types.Response{
			Code:  http.StatusBadRequest,
			Error: errors.New("unknown payment method"),
		})
	}

	if err := sess.orch.SelectMethod(method); err != nil {
		code := http.StatusBadRequest
		if errors.Is(err, checkout.ErrBusy) {
			code = http.StatusConflict
		}
		return helper.ParseResponse(&types.Response{Code: code, Error: err})
	}

	return s.stateResponse(sess, http.StatusOK, "Payment method selected")
}

// UpdateForm replaces the billing form fields collected from the visitor.
func (s *Service) UpdateForm(sessionID string, req *FormRequest) *types.Response {
	sess, resp := s.find(sessionID)
	if resp != nil {
		return resp
	}

	sess.orch.SetForm(req.FirstName, req.LastName, req.Email)
	return s.stateResponse(sess, http.StatusOK, "Form updated")
}

// Submit drives the session's checkout attempt for the active method.
// Wallet sessions hand control to the platform sheet and wait for the
// token; card sessions consume the token staged by SubmitToken.
func (s *Service) Submit(sessionID string) *types.Response {
	sess, resp := s.find(sessionID)
	if resp != nil {
		return resp
	}

	snap := sess.orch.Snapshot()
	if !snap.Method.IsWallet() && !sess.lib.HasPendingToken() {
		return helper.ParseResponse(&types.Response{
			Code:  http.StatusUnprocessableEntity,
			Error: errors.New("no payment token has been delivered for this session"),
		})
	}

	if err := sess.orch.Submit(); err != nil {
		return submitError(err)
	}

	return s.stateResponse(sess, http.StatusOK, "Submission accepted")
}

// SubmitToken feeds a client-produced payment token into the session.
// Wallet tokens arriving while the platform sheet is open flow through
// the wallet event path. Card tokens are staged on the library bridge
// and consumed by tokenization; a token for an inactive method submits
// directly.
func (s *Service) SubmitToken(sessionID string, req *SubmitTokenRequest) *types.Response {
	sess, resp := s.find(sessionID)
	if resp != nil {
		return resp
	}

	token := &widget.Token{ID: req.TokenID}
	method := enum.PaymentMethodEnum(req.Method)
	snap := sess.orch.Snapshot()

	if method.IsWallet() && snap.State == checkout.StateAwaitingWallet {
		if err := sess.lib.DeliverWalletToken(method, token); err == nil {
			return s.stateResponse(sess, http.StatusOK, "Token accepted")
		}
	}

	if !method.IsWallet() && snap.Method == enum.CARD {
		sess.lib.DeliverToken(token)
		if err := sess.orch.Submit(); err != nil {
			return submitError(err)
		}
		return s.stateResponse(sess, http.StatusOK, "Token accepted")
	}

	if err := sess.orch.SubmitToken(token); err != nil {
		return submitError(err)
	}

	return s.stateResponse(sess, http.StatusOK, "Token accepted")
}

func submitError(err error) *types.Response {
	if errors.Is(err, checkout.ErrBusy) {
		return helper.ParseResponse(&types.Response{Code: http.StatusConflict, Error: err})
	}
	return helper.ParseResponse(&types.Response{Code: http.StatusUnprocessableEntity, Error: err})
}

// GetState reports where the session's checkout currently stands.
func (s *Service) GetState(sessionID string) *types.Response {
	sess, resp := s.find(sessionID)
	if resp != nil {
		return resp
	}
	return s.stateResponse(sess, http.StatusOK, "Session state")
}

// CloseSession tears the session down and forgets it.
func (s *Service) CloseSession(sessionID string) *types.Response {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	if !ok {
		return sessionNotFound()
	}

	sess.orch.Close()
	if err := s.rp.Quiz.Delete(s.ctx, sessionID); err != nil {
		logger.Warning.Printf("quiz context delete for %s: %v", sessionID, err)
	}

	return helper.ParseResponse(&types.Response{
		Code:    http.StatusOK,
		Message: "Session closed",
	})
}

func (s *Service) find(sessionID string) (*session, *types.Response) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	if !ok {
		return nil, sessionNotFound()
	}
	return sess, nil
}

func sessionNotFound() *types.Response {
	return helper.ParseResponse(&types.Response{
		Code:  http.StatusNotFound,
		Error: errors.New("session not found"),
	})
}

func (s *Service) stateResponse(sess *session, code int, message string) *types.Response {
	snap := sess.orch.Snapshot()

	return helper.ParseResponse(&types.Response{
		Code:    code,
		Message: message,
		Data: SessionStateResponse{
			SessionID:          sess.id,
			State:              snap.State.String(),
			Loading:            snap.Loading,
			Error:              snap.Error,
			Method:             snap.Method.ToString(),
			Country:            snap.Country,
			SelectedPrice:      snap.Price,
			ApplePayAvailable:  snap.Availability.ApplePay,
			GooglePayAvailable: snap.Availability.GooglePay,
			CardMounted:        snap.CardMounted,
		},
	})
}

// defaultDOM is the page composition of the checkout step: all four
// card containers and both wallet button containers exist.
func defaultDOM() widget.StaticDOM {
	return widget.NewStaticDOM(
		widget.TargetCardNumber,
		widget.TargetCardMonth,
		widget.TargetCardYear,
		widget.TargetCardCVV,
		widget.TargetApplePay,
		widget.TargetGooglePay,
	)
}
