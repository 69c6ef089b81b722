package funnel

import (
	"github.com/gin-gonic/gin"
)

func (h *Handler) NewRoutes(e *gin.RouterGroup) {
	sessions := e.Group("/v1/funnel/sessions")

	sessions.POST("", h.CreateSession)
	sessions.GET("/:session_id", h.GetState)
	sessions.POST("/:session_id/method", h.SelectMethod)
	sessions.PUT("/:session_id/form", h.UpdateForm)
	sessions.POST("/:session_id/submit", h.Submit)
	sessions.POST("/:session_id/token", h.SubmitToken)
	sessions.DELETE("/:session_id", h.CloseSession)
}
