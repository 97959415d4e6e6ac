package notification

import "github.com/gin-gonic/gin"

// NotificationModule implements the app.Module interface for the
// notification channel.
type NotificationModule struct {
	handler *NotificationHandler
}

// NewModule creates a NotificationModule with the given handler.
// Panics if h is nil.
func NewModule(h *NotificationHandler) *NotificationModule {
	if h == nil {
		panic("notification.NewModule: handler must not be nil")
	}
	return &NotificationModule{handler: h}
}

// RegisterRoutes registers notification routes. All of them require a
// session.
func (m *NotificationModule) RegisterRoutes(public, private *gin.RouterGroup) {
	private.GET("/notifications", m.handler.Active)
	private.GET("/notifications/stream", m.handler.Stream)
	private.DELETE("/notifications/:id", m.handler.Dismiss)
}
