package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dressshop/backend/internal/application/checkout"
	"github.com/dressshop/backend/internal/domain/identity"
	"github.com/dressshop/backend/internal/domain/shared"
	"github.com/dressshop/backend/internal/interfaces/http/dto"
	"github.com/dressshop/backend/internal/interfaces/http/middleware"
)

// PaidOrderLister lists paid orders for administrators
type PaidOrderLister interface {
	ListPaidOrders(ctx context.Context, admin identity.AdminCapability, filter shared.Filter) (*shared.Paginated[checkout.AdminOrderResponse], error)
}

// DeliveryMarker records that an order has been delivered
type DeliveryMarker interface {
	MarkDelivered(ctx context.Context, admin identity.AdminCapability, orderID uuid.UUID) (*checkout.OrderResponse, error)
}

// AdminOrderHandler handles the administrator order endpoints.
// Routes must sit behind middleware.RequireAdmin.
type AdminOrderHandler struct {
	BaseHandler
	lister PaidOrderLister
	marker DeliveryMarker
}

// NewAdminOrderHandler creates a new AdminOrderHandler
func NewAdminOrderHandler(lister PaidOrderLister, marker DeliveryMarker) *AdminOrderHandler {
	return &AdminOrderHandler{
		lister: lister,
		marker: marker,
	}
}

// ListPaidOrders godoc
// @Summary      List paid orders
// @Description  Paid orders joined with their owner and payment, newest first
// @Tags         admin
// @Produce      json
// @Param        page      query int false "Page number" minimum(1)
// @Param        page_size query int false "Page size"   minimum(1) maximum(100)
// @Success      200 {object} dto.Response{data=[]checkout.AdminOrderResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      403 {object} dto.Response
// @Security     BearerAuth
// @Router       /admin/orders [get]
func (h *AdminOrderHandler) ListPaidOrders(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	page, err := h.lister.ListPaidOrders(c.Request.Context(), middleware.GetAdminCapability(c), shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// MarkDelivered godoc
// @Summary      Mark order delivered
// @Description  Move a paid order to delivered. Repeating the call is a no-op.
// @Tags         admin
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=checkout.OrderResponse}
// @Failure      400 {object} dto.Response
// @Failure      403 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Security     BearerAuth
// @Router       /admin/orders/{id}/deliver [put]
func (h *AdminOrderHandler) MarkDelivered(c *gin.Context) {
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

	resp, err := h.marker.MarkDelivered(c.Request.Context(), middleware.GetAdminCapability(c), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
