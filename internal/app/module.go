package app

import "github.com/gin-gonic/gin"

// Module defines the contract for a self-registering business module.
// Routes on public are reachable without a session; routes on private sit
// behind the auth guard.
type Module interface {
	RegisterRoutes(public *gin.RouterGroup, private *gin.RouterGroup)
}
