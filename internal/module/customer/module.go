package customer

import (
	"github.com/gin-gonic/gin"

	"github.com/freshmart/admin-console/internal/domain"
	"github.com/freshmart/admin-console/internal/listquery"
)

// CustomerModule implements the app.Module interface for the customer
// domain.
type CustomerModule struct {
	handler *CustomerHandler
	svc     domain.CustomerService
}

// NewModule creates a CustomerModule with the given handler and service.
// Panics if either is nil.
func NewModule(h *CustomerHandler, svc domain.CustomerService) *CustomerModule {
	if h == nil {
		panic("customer.NewModule: handler must not be nil")
	}
	if svc == nil {
		panic("customer.NewModule: service must not be nil")
	}
	return &CustomerModule{handler: h, svc: svc}
}

// RegisterRoutes registers customer routes. All of them require a session.
func (m *CustomerModule) RegisterRoutes(public, private *gin.RouterGroup) {
	private.GET("/customers", m.handler.List)
	private.GET("/customers/:id", m.handler.Get)
	private.PUT("/customers/:id", m.handler.Update)
	private.PATCH("/customers/:id/status", m.handler.UpdateStatus)
	private.DELETE("/customers/:id", m.handler.Delete)

	private.GET("/live/customers", func(c *gin.Context) {
		listquery.ServeLive(c, m.svc.ListCustomers)
	})
}
