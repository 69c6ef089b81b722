package payment

import (
	"github.com/gin-gonic/gin"

	"checkout-hub/internal/pkg/middleware"
)

func (h *Handler) NewRoutes(e *gin.RouterGroup) {
	// Wire-contract endpoints consumed by the funnel frontend.
	e.POST("/create-payment-intent", h.CreatePaymentIntent)
	e.POST("/checkout", h.Checkout)
	e.GET("/health", h.Health)

	orders := e.Group("/v1/orders")
	orders.Use(middleware.AuthMiddleware())
	orders.GET("/:order_id", h.GetOrder)
}
