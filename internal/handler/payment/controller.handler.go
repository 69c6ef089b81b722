package payment

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	types "checkout-hub/internal/common/type"
	"checkout-hub/internal/pkg/helper"
	paymentService "checkout-hub/internal/service/payment"
)

type Handler struct {
	ctx            context.Context
	paymentService paymentService.IService
}

type IHandler interface {
	NewRoutes(e *gin.RouterGroup)
}

func NewHandler(ctx context.Context, paymentService paymentService.IService) IHandler {
	return &Handler{
		ctx:            ctx,
		paymentService: paymentService,
	}
}

// CreatePaymentIntent speaks the widget's wire contract directly: the
// success body is the bare client secret object and errors are
// {"error": message}, without the standard envelope.
func (h *Handler) CreatePaymentIntent(c *gin.Context) {
	var req paymentService.CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sendRaw(c, h.paymentService.CreatePaymentIntent(&req))
}

// Checkout charges the trial against a payment token. Same bare wire
// contract as CreatePaymentIntent.
func (h *Handler) Checkout(c *gin.Context) {
	var req paymentService.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sendRaw(c, h.paymentService.Checkout(&req))
}

// Health reports liveness in the shape the funnel clients poll for.
func (h *Handler) Health(c *gin.Context) {
	resp := h.paymentService.Health()
	c.JSON(resp.Code, resp.Data)
}

// GetOrder returns one order for back-office use.
func (h *Handler) GetOrder(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	orderID := c.Param("order_id")
	if orderID == "" {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "order_id is required",
		}))
		return
	}

	send(h.paymentService.GetOrder(orderID))
}

// sendRaw writes a service response without the envelope.
func sendRaw(c *gin.Context, resp *types.Response) {
	if resp.Code >= 200 && resp.Code <= 299 {
		c.JSON(resp.Code, resp.Data)
		return
	}

	message := resp.Message
	if resp.Error != nil {
		message = resp.Error.Error()
	}
	c.JSON(resp.Code, gin.H{"error": message})
}
