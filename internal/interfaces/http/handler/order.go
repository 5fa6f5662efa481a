package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dressshop/backend/internal/application/checkout"
	"github.com/dressshop/backend/internal/interfaces/http/dto"
)

// OrderIntake creates orders from validated carts
type OrderIntake interface {
	CreateOrder(ctx context.Context, userID uuid.UUID, req checkout.CreateOrderRequest) (*checkout.OrderResponse, error)
}

// PaymentVerifier reconciles gateway payment confirmations
type PaymentVerifier interface {
	VerifyPayment(ctx context.Context, req checkout.VerifyPaymentRequest) (*checkout.VerifyPaymentResult, error)
}

// OrderReader serves a shopper's own orders
type OrderReader interface {
	ListMyOrders(ctx context.Context, userID uuid.UUID) ([]checkout.OrderResponse, error)
	GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*checkout.OrderResponse, error)
}

// OrderHandler handles shopper-facing order endpoints
type OrderHandler struct {
	BaseHandler
	intake   OrderIntake
	verifier PaymentVerifier
	reader   OrderReader
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(intake OrderIntake, verifier PaymentVerifier, reader OrderReader) *OrderHandler {
	return &OrderHandler{
		intake:   intake,
		verifier: verifier,
		reader:   reader,
	}
}

// VerifyPaymentResponse is the body returned to the checkout page
// @Description Outcome of a payment verification
type VerifyPaymentResponse struct {
	Status string `json:"status" example:"success"`
}

// CreateOrder godoc
// @Summary      Create order
// @Description  Validate the cart total against catalog prices and open a gateway order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Client supplied idempotency key"
// @Param        request body checkout.CreateOrderRequest true "Cart and claimed total"
// @Success      201 {object} dto.Response{data=checkout.OrderResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Failure      502 {object} dto.Response
// @Security     BearerAuth
// @Router       /orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req checkout.CreateOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.intake.CreateOrder(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// VerifyPayment godoc
// @Summary      Verify payment
// @Description  Check the gateway signature and mark the order paid. A bad signature is reported as status failure.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request body checkout.VerifyPaymentRequest true "Gateway confirmation"
// @Success      200 {object} VerifyPaymentResponse
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      429 {object} dto.Response
// @Router       /orders/payment/verify [post]
func (h *OrderHandler) VerifyPayment(c *gin.Context) {
	var req checkout.VerifyPaymentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.verifier.VerifyPayment(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, VerifyPaymentResponse{Status: result.Status})
}

// ListMyOrders godoc
// @Summary      List my orders
// @Description  Paid orders of the authenticated shopper, newest first
// @Tags         orders
// @Produce      json
// @Success      200 {object} dto.Response{data=[]checkout.OrderResponse}
// @Failure      401 {object} dto.Response
// @Security     BearerAuth
// @Router       /orders/me [get]
func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orders, err := h.reader.ListMyOrders(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, orders)
}

// GetOrder godoc
// @Summary      Get order
// @Description  A single order owned by the authenticated shopper
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=checkout.OrderResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}
	orderID, err := uuid.Parse(uri.ID)
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	resp, err := h.reader.GetOrder(c.Request.Context(), userID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
