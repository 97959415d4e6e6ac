package order

import (
	"github.com/gin-gonic/gin"

	"github.com/freshmart/admin-console/internal/domain"
	"github.com/freshmart/admin-console/internal/listquery"
)

// OrderModule implements the app.Module interface for the order domain.
type OrderModule struct {
	handler *OrderHandler
	svc     domain.OrderService
}

// NewModule creates an OrderModule with the given handler and service.
// Panics if either is nil.
func NewModule(h *OrderHandler, svc domain.OrderService) *OrderModule {
	if h == nil {
		panic("order.NewModule: handler must not be nil")
	}
	if svc == nil {
		panic("order.NewModule: service must not be nil")
	}
	return &OrderModule{handler: h, svc: svc}
}

// RegisterRoutes registers order routes. All of them require a session.
func (m *OrderModule) RegisterRoutes(public, private *gin.RouterGroup) {
	private.GET("/orders", m.handler.List)
	private.GET("/orders/:id", m.handler.Get)
	private.POST("/orders", m.handler.Create)
	private.PATCH("/orders/:id/status", m.handler.UpdateStatus)
	private.GET("/orders/:id/status-options", m.handler.StatusOptions)
	private.DELETE("/orders/:id", m.handler.Delete)

	private.GET("/live/orders", func(c *gin.Context) {
		listquery.ServeLive(c, m.svc.ListOrders)
	})
}
