package funnel

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"checkout-hub/internal/funnel/checkout"
	"checkout-hub/internal/funnel/widget"
	"checkout-hub/internal/repository"
)

type memoryQuizRepo struct {
	mu   sync.Mutex
	data map[string]*checkout.QuizData
}

func newMemoryQuizRepo() *memoryQuizRepo {
	return &memoryQuizRepo{data: map[string]*checkout.QuizData{}}
}

func (q *memoryQuizRepo) Get(_ context.Context, id string) (*checkout.QuizData, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.data[id], nil
}

func (q *memoryQuizRepo) Save(_ context.Context, id string, data *checkout.QuizData) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.data[id] = data
	return nil
}

func (q *memoryQuizRepo) Delete(_ context.Context, id string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.data, id)
	return nil
}

func newTestBackend() (*httptest.Server, *[]map[string]any) {
	var mu sync.Mutex
	requests := &[]map[string]any{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		mu.Lock()
		*requests = append(*requests, body)
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))

	return srv, requests
}

func newTestService(t *testing.T, publicKey string) (IService, *memoryQuizRepo, *[]map[string]any) {
	t.Helper()

	srv, requests := newTestBackend()
	t.Cleanup(srv.Close)

	quiz := newMemoryQuizRepo()
	rp := repository.IRepository{Quiz: quiz}
	svc := NewService(context.Background(), rp, publicKey, srv.URL, "Premium Plan")
	return svc, quiz, requests
}

func createSession(t *testing.T, svc IService) CreateSessionResponse {
	t.Helper()

	resp := svc.CreateSession(&CreateSessionRequest{
		Name:          "Maria da Silva",
		Email:         "maria@exemplo.com",
		SelectedPrice: "$37.00/mo",
		Timezone:      "America/Sao_Paulo",
		Locales:       []string{"pt-BR"},
		Capabilities: widget.ClientCapabilities{
			ApplePay:             true,
			GooglePay:            true,
			CanMakeApplePayments: true,
		},
	})
	assert.Equal(t, http.StatusCreated, resp.Code)
	return resp.Data.(CreateSessionResponse)
}

func TestCreateSessionDetectsCountryAndWallets(t *testing.T) {
	svc, _, _ := newTestService(t, "pk_test_1")

	out := createSession(t, svc)

	assert.NotEmpty(t, out.SessionID)
	assert.Equal(t, "BR", out.Country)
	assert.True(t, out.ApplePayAvailable)
	assert.True(t, out.GooglePayAvailable)
	assert.Equal(t, "$37.00/mo", out.SelectedPrice)
}

func TestCreateSessionMissingPublicKey(t *testing.T) {
	svc, _, _ := newTestService(t, "")

	resp := svc.CreateSession(&CreateSessionRequest{Timezone: "America/Sao_Paulo"})

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Contains(t, resp.Error.Error(), "public key")
}

func TestSessionTokenFlow(t *testing.T) {
	svc, quiz, requests := newTestService(t, "pk_test_1")

	out := createSession(t, svc)

	resp := svc.SubmitToken(out.SessionID, &SubmitTokenRequest{TokenID: "tok_abc", Method: "card"})
	assert.Equal(t, http.StatusOK, resp.Code)

	state := resp.Data.(SessionStateResponse)
	assert.Equal(t, "succeeded", state.State)

	assert.Len(t, *requests, 1)
	sent := (*requests)[0]
	assert.Equal(t, "tok_abc", sent["tokenId"])
	assert.Equal(t, "Maria da Silva", sent["customerName"])
	assert.Equal(t, "maria@exemplo.com", sent["customerEmail"])
	assert.InDelta(t, 37.00, sent["trialAmount"].(float64), 0.001)
	assert.InDelta(t, 7, sent["trialDays"].(float64), 0.001)

	saved, _ := quiz.Get(context.Background(), out.SessionID)
	assert.NotNil(t, saved)
	assert.Equal(t, "Maria da Silva", saved.Name)

	// A token posted after the checkout succeeded is refused.
	resp = svc.SubmitToken(out.SessionID, &SubmitTokenRequest{TokenID: "tok_again", Method: "card"})
	assert.Equal(t, http.StatusConflict, resp.Code)
	assert.Len(t, *requests, 1)
}

func TestSessionWalletSubmitFlow(t *testing.T) {
	svc, _, requests := newTestService(t, "pk_test_1")

	out := createSession(t, svc)

	resp := svc.SelectMethod(out.SessionID, &SelectMethodRequest{Method: "applepay"})
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = svc.Submit(out.SessionID)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "awaiting_wallet", resp.Data.(SessionStateResponse).State)

	resp = svc.SubmitToken(out.SessionID, &SubmitTokenRequest{TokenID: "tok_wallet", Method: "applepay"})
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "succeeded", resp.Data.(SessionStateResponse).State)

	assert.Len(t, *requests, 1)
	assert.Equal(t, "tok_wallet", (*requests)[0]["tokenId"])
}

func TestSessionSubmitRequiresStagedCardToken(t *testing.T) {
	svc, _, requests := newTestService(t, "pk_test_1")

	out := createSession(t, svc)

	resp := svc.Submit(out.SessionID)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	assert.Contains(t, resp.Error.Error(), "no payment token")
	assert.Empty(t, *requests)
}

func TestSessionFormValidationBlocksToken(t *testing.T) {
	svc, _, requests := newTestService(t, "pk_test_1")

	out := createSession(t, svc)

	resp := svc.UpdateForm(out.SessionID, &FormRequest{FirstName: "", LastName: "", Email: ""})
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = svc.SubmitToken(out.SessionID, &SubmitTokenRequest{TokenID: "tok_abc"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	assert.Empty(t, *requests)
}

func TestSessionSelectMethod(t *testing.T) {
	svc, _, _ := newTestService(t, "pk_test_1")

	out := createSession(t, svc)

	resp := svc.SelectMethod(out.SessionID, &SelectMethodRequest{Method: "applepay"})
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "applepay", resp.Data.(SessionStateResponse).Method)

	resp = svc.SelectMethod(out.SessionID, &SelectMethodRequest{Method: "bitcoin"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestSessionWalletUnavailable(t *testing.T) {
	srv, _ := newTestBackend()
	t.Cleanup(srv.Close)

	rp := repository.IRepository{Quiz: newMemoryQuizRepo()}
	svc := NewService(context.Background(), rp, "pk_test_1", srv.URL, "Premium Plan")

	resp := svc.CreateSession(&CreateSessionRequest{
		Timezone:     "America/Sao_Paulo",
		Capabilities: widget.ClientCapabilities{},
	})
	out := resp.Data.(CreateSessionResponse)
	assert.False(t, out.ApplePayAvailable)
	assert.False(t, out.GooglePayAvailable)

	sel := svc.SelectMethod(out.SessionID, &SelectMethodRequest{Method: "applepay"})
	assert.Equal(t, http.StatusBadRequest, sel.Code)
}

func TestSessionNotFound(t *testing.T) {
	svc, _, _ := newTestService(t, "pk_test_1")

	resp := svc.GetState("fs_missing")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestCloseSessionForgets(t *testing.T) {
	svc, _, _ := newTestService(t, "pk_test_1")

	out := createSession(t, svc)

	resp := svc.CloseSession(out.SessionID)
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = svc.GetState(out.SessionID)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
