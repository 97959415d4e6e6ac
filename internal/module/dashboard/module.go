package dashboard

import "github.com/gin-gonic/gin"

// DashboardModule implements the app.Module interface for console
// statistics.
type DashboardModule struct {
	handler *DashboardHandler
}

// NewModule creates a DashboardModule with the given handler.
// Panics if h is nil.
func NewModule(h *DashboardHandler) *DashboardModule {
	if h == nil {
		panic("dashboard.NewModule: handler must not be nil")
	}
	return &DashboardModule{handler: h}
}

// RegisterRoutes registers statistics routes. Both require a session.
func (m *DashboardModule) RegisterRoutes(public, private *gin.RouterGroup) {
	private.GET("/dashboard", m.handler.Stats)
	private.GET("/reports", m.handler.Report)
}
