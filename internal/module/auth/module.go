package auth

import "github.com/gin-gonic/gin"

// AuthModule implements the app.Module interface for authentication.
type AuthModule struct {
	handler *AuthHandler
}

// NewModule creates an AuthModule with the given handler.
// Panics if h is nil.
func NewModule(h *AuthHandler) *AuthModule {
	if h == nil {
		panic("auth.NewModule: handler must not be nil")
	}
	return &AuthModule{handler: h}
}

// RegisterRoutes registers auth routes. Sign-in and password recovery are
// public; logout and the session probe require a token.
func (m *AuthModule) RegisterRoutes(public, private *gin.RouterGroup) {
	group := public.Group("/auth")
	group.POST("/login", m.handler.Login)
	group.POST("/register", m.handler.Register)
	group.POST("/forgot-password", m.handler.ForgotPassword)
	group.POST("/reset-password", m.handler.ResetPassword)

	private.POST("/auth/logout", m.handler.Logout)
	private.GET("/auth/session", m.handler.Session)
}
