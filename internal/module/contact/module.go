package contact

import (
	"github.com/gin-gonic/gin"

	"github.com/freshmart/admin-console/internal/domain"
	"github.com/freshmart/admin-console/internal/listquery"
)

// ContactModule implements the app.Module interface for contact
// submissions.
type ContactModule struct {
	handler *ContactHandler
	svc     domain.ContactService
}

// NewModule creates a ContactModule with the given handler and service.
// Panics if either is nil.
func NewModule(h *ContactHandler, svc domain.ContactService) *ContactModule {
	if h == nil {
		panic("contact.NewModule: handler must not be nil")
	}
	if svc == nil {
		panic("contact.NewModule: service must not be nil")
	}
	return &ContactModule{handler: h, svc: svc}
}

// RegisterRoutes registers contact routes. Submitting the storefront form
// is public; everything else requires a session.
func (m *ContactModule) RegisterRoutes(public, private *gin.RouterGroup) {
	public.POST("/contacts", m.handler.Create)

	private.GET("/contacts", m.handler.List)
	private.POST("/contacts/:id/reply", m.handler.Reply)
	private.DELETE("/contacts/:id", m.handler.Delete)

	private.GET("/live/contacts", func(c *gin.Context) {
		listquery.ServeLive(c, m.svc.ListContacts)
	})
}
