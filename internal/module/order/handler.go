package order

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/freshmart/admin-console/internal/domain"
	"github.com/freshmart/admin-console/internal/pkg"
)

// OrderHandler handles REST API requests for the order resource.
type OrderHandler struct {
	svc domain.OrderService
}

// NewHandler creates an OrderHandler with the given service.
func NewHandler(svc domain.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// List handles GET /api/v1/orders.
func (h *OrderHandler) List(c *gin.Context) {
	req := pkg.ParsePageRequest(c)

	result, err := h.svc.ListOrders(c.Request.Context(), req)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, result)
}

// Get handles GET /api/v1/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.svc.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, order)
}

// Create handles POST /api/v1/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	order, err := h.svc.CreateOrder(c.Request.Context(), domain.OrderInput{
		UserID:   req.UserID,
		Items:    req.Items,
		Shipping: req.Shipping,
	})
	if err != nil {
		pkg.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, pkg.Response{
		Code:    http.StatusCreated,
		Message: "success",
		Data:    order,
	})
}

// UpdateStatus handles PATCH /api/v1/orders/:id/status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	err := h.svc.UpdateOrderStatus(c.Request.Context(), c.Param("id"), domain.OrderStatus(req.Status))
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, nil)
}

// StatusOptions handles GET /api/v1/orders/:id/status-options.
func (h *OrderHandler) StatusOptions(c *gin.Context) {
	order, err := h.svc.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, StatusOptionsResponse{
		Current: order.Status,
		Next:    order.Status.NextStatuses(),
	})
}

// Delete handles DELETE /api/v1/orders/:id.
func (h *OrderHandler) Delete(c *gin.Context) {
	var req DeleteOrderRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	if err := h.svc.DeleteOrder(c.Request.Context(), c.Param("id"), req.Confirm); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, nil)
}
