package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/freshmart/admin-console/internal/middleware"
	"github.com/freshmart/admin-console/internal/pkg"
)

// RemotePinger checks reachability of the upstream store API.
type RemotePinger interface {
	Ping(ctx context.Context) error
}

// RouteDeps holds all dependencies needed to register routes.
type RouteDeps struct {
	Modules  []Module
	DB       *gorm.DB
	Remote   RemotePinger
	Tokens   middleware.TokenVerifier
	Sessions middleware.SessionSource
}

// RegisterRoutes registers all application routes on the given gin.Engine.
// Everything lives under /api/v1; module routes registered on the private
// group require a signed-in operator.
func RegisterRoutes(r *gin.Engine, deps *RouteDeps) error {
	if r == nil {
		return errors.New("router is nil")
	}
	if deps == nil {
		return errors.New("route dependencies are nil")
	}
	if len(deps.Modules) == 0 {
		return errors.New("at least one module is required")
	}
	if deps.Tokens == nil || deps.Sessions == nil {
		return errors.New("auth guard dependencies are required")
	}

	r.GET("/health", healthHandler(deps.DB, deps.Remote))

	public := r.Group("/api/v1")
	private := r.Group("/api/v1")
	private.Use(middleware.AuthGuard(deps.Tokens, deps.Sessions))

	for i, m := range deps.Modules {
		if m == nil {
			return fmt.Errorf("module at index %d is nil", i)
		}
		m.RegisterRoutes(public, private)
	}

	r.NoRoute(noRouteHandler())

	return nil
}

// healthHandler reports the state of the two things the console depends
// on: its local state database and the remote store API. An unreachable
// remote degrades the console but does not take it down, so both show up
// as separate components.
func healthHandler(db *gorm.DB, remote RemotePinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		dbStatus := "ok"
		remoteStatus := "ok"

		if db == nil {
			dbStatus = "error"
		} else if sqlDB, err := db.DB(); err != nil {
			dbStatus = "error"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
			if err := sqlDB.PingContext(ctx); err != nil {
				dbStatus = "error"
			}
			cancel()
		}

		if remote == nil {
			remoteStatus = "error"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
			if err := remote.Ping(ctx); err != nil {
				remoteStatus = "error"
			}
			cancel()
		}

		status := "ok"
		code := http.StatusOK
		if dbStatus != "ok" || remoteStatus != "ok" {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status": status,
			"components": gin.H{
				"database": dbStatus,
				"remote":   remoteStatus,
			},
		})
	}
}

func noRouteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, pkg.Response{Code: http.StatusNotFound, Message: "not found"})
	}
}
