package funnel

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	types "checkout-hub/internal/common/type"
	"checkout-hub/internal/pkg/middleware"
	"checkout-hub/internal/pkg/validation"
	funnelService "checkout-hub/internal/service/funnel"
)

type stubService struct {
	resp *types.Response

	createdReq    *funnelService.CreateSessionRequest
	methodSession string
	submitSession string
	tokenSession  string
	stateSession  string
	closedSession string
}

func (s *stubService) CreateSession(req *funnelService.CreateSessionRequest) *types.Response {
	s.createdReq = req
	return s.resp
}

func (s *stubService) SelectMethod(id string, _ *funnelService.SelectMethodRequest) *types.Response {
	s.methodSession = id
	return s.resp
}

func (s *stubService) UpdateForm(id string, _ *funnelService.FormRequest) *types.Response {
	return s.resp
}

func (s *stubService) Submit(id string) *types.Response {
	s.submitSession = id
	return s.resp
}

func (s *stubService) SubmitToken(id string, _ *funnelService.SubmitTokenRequest) *types.Response {
	s.tokenSession = id
	return s.resp
}

func (s *stubService) GetState(id string) *types.Response {
	s.stateSession = id
	return s.resp
}

func (s *stubService) CloseSession(id string) *types.Response {
	s.closedSession = id
	return s.resp
}

func setupRouter(svc funnelService.IService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	if err := validation.Setup(); err != nil {
		panic(err)
	}

	e := gin.New()
	e.Use(middleware.ResponseInit())

	h := NewHandler(context.Background(), svc)
	h.NewRoutes(e.Group("/api"))
	return e
}

func doJSON(e *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

func TestCreateSessionEnvelope(t *testing.T) {
	svc := &stubService{resp: &types.Response{
		Code:    http.StatusCreated,
		Message: "Session created",
		Data:    funnelService.CreateSessionResponse{SessionID: "fs_1", Country: "BR"},
	}}
	e := setupRouter(svc)

	w := doJSON(e, http.MethodPost, "/api/v1/funnel/sessions", `{"timezone":"America/Sao_Paulo","locales":["pt-BR"]}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"session_id":"fs_1"`)
	assert.Equal(t, "America/Sao_Paulo", svc.createdReq.Timezone)
}

func TestCreateSessionMalformedBody(t *testing.T) {
	e := setupRouter(&stubService{})

	w := doJSON(e, http.MethodPost, "/api/v1/funnel/sessions", `{"timezone":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateSessionRejectsMalformedPrice(t *testing.T) {
	svc := &stubService{}
	e := setupRouter(svc)

	w := doJSON(e, http.MethodPost, "/api/v1/funnel/sessions", `{"selected_price":"free"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, svc.createdReq)
}

func TestSelectMethodRequiresMethod(t *testing.T) {
	svc := &stubService{resp: &types.Response{Code: http.StatusOK}}
	e := setupRouter(svc)

	w := doJSON(e, http.MethodPost, "/api/v1/funnel/sessions/fs_1/method", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, svc.methodSession)
}

func TestSubmitRoutesSessionID(t *testing.T) {
	svc := &stubService{resp: &types.Response{Code: http.StatusOK, Message: "Submission accepted"}}
	e := setupRouter(svc)

	w := doJSON(e, http.MethodPost, "/api/v1/funnel/sessions/fs_5/submit", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "fs_5", svc.submitSession)
}

func TestSubmitTokenRoutesSessionID(t *testing.T) {
	svc := &stubService{resp: &types.Response{Code: http.StatusOK, Message: "Token accepted"}}
	e := setupRouter(svc)

	w := doJSON(e, http.MethodPost, "/api/v1/funnel/sessions/fs_9/token", `{"token_id":"tok_1","method":"card"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "fs_9", svc.tokenSession)
}

func TestGetStateAndClose(t *testing.T) {
	svc := &stubService{resp: &types.Response{Code: http.StatusOK}}
	e := setupRouter(svc)

	w := doJSON(e, http.MethodGet, "/api/v1/funnel/sessions/fs_2", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "fs_2", svc.stateSession)

	w = doJSON(e, http.MethodDelete, "/api/v1/funnel/sessions/fs_2", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "fs_2", svc.closedSession)
}
