package funnel

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	types "checkout-hub/internal/common/type"
	"checkout-hub/internal/pkg/helper"
	funnelService "checkout-hub/internal/service/funnel"
)

type Handler struct {
	ctx           context.Context
	funnelService funnelService.IService
}

type IHandler interface {
	NewRoutes(e *gin.RouterGroup)
}

func NewHandler(ctx context.Context, funnelService funnelService.IService) IHandler {
	return &Handler{
		ctx:           ctx,
		funnelService: funnelService,
	}
}

func (h *Handler) CreateSession(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req funnelService.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
			Error:   err,
		}))
		return
	}

	send(h.funnelService.CreateSession(&req))
}

func (h *Handler) SelectMethod(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req funnelService.SelectMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
			Error:   err,
		}))
		return
	}

	send(h.funnelService.SelectMethod(c.Param("session_id"), &req))
}

func (h *Handler) UpdateForm(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req funnelService.FormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
			Error:   err,
		}))
		return
	}

	send(h.funnelService.UpdateForm(c.Param("session_id"), &req))
}

func (h *Handler) Submit(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))
	send(h.funnelService.Submit(c.Param("session_id")))
}

func (h *Handler) SubmitToken(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req funnelService.SubmitTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
			Error:   err,
		}))
		return
	}

	send(h.funnelService.SubmitToken(c.Param("session_id"), &req))
}

func (h *Handler) GetState(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))
	send(h.funnelService.GetState(c.Param("session_id")))
}

func (h *Handler) CloseSession(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))
	send(h.funnelService.CloseSession(c.Param("session_id")))
}
