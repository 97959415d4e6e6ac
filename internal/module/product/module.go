package product

import (
	"github.com/gin-gonic/gin"

	"github.com/freshmart/admin-console/internal/domain"
	"github.com/freshmart/admin-console/internal/listquery"
)

// ProductModule implements the app.Module interface for the product domain.
type ProductModule struct {
	handler *ProductHandler
	svc     domain.ProductService
}

// NewModule creates a ProductModule with the given handler and service.
// Panics if either is nil.
func NewModule(h *ProductHandler, svc domain.ProductService) *ProductModule {
	if h == nil {
		panic("product.NewModule: handler must not be nil")
	}
	if svc == nil {
		panic("product.NewModule: service must not be nil")
	}
	return &ProductModule{handler: h, svc: svc}
}

// RegisterRoutes registers product routes. All of them require a session.
func (m *ProductModule) RegisterRoutes(public, private *gin.RouterGroup) {
	private.GET("/products", m.handler.List)
	private.GET("/products/:id", m.handler.Get)
	private.POST("/products", m.handler.Create)
	private.PUT("/products/:id", m.handler.Update)
	private.DELETE("/products/:id", m.handler.Delete)

	// Live list: the browser keeps one socket per products page and sends
	// keyword/page/filter changes; debouncing and page clamping happen
	// server-side.
	private.GET("/live/products", func(c *gin.Context) {
		listquery.ServeLive(c, m.svc.ListProducts)
	})
}
