package media

import "github.com/gin-gonic/gin"

// MediaModule implements the app.Module interface for image form
// sessions.
type MediaModule struct {
	handler *MediaHandler
}

// NewModule creates a MediaModule with the given handler.
// Panics if h is nil.
func NewModule(h *MediaHandler) *MediaModule {
	if h == nil {
		panic("media.NewModule: handler must not be nil")
	}
	return &MediaModule{handler: h}
}

// RegisterRoutes registers media routes. All of them require a session.
func (m *MediaModule) RegisterRoutes(public, private *gin.RouterGroup) {
	private.POST("/media/forms", m.handler.Open)
	private.GET("/media/forms/:id", m.handler.Snapshot)
	private.POST("/media/forms/:id/file", m.handler.Select)
	private.POST("/media/forms/:id/crop", m.handler.Crop)
	private.POST("/media/forms/:id/link", m.handler.Link)
	private.DELETE("/media/forms/:id", m.handler.Close)
}
