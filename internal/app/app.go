package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/logger"
	"gorm.io/gorm"

	"github.com/freshmart/admin-console/internal/config"
	"github.com/freshmart/admin-console/internal/middleware"
	"github.com/freshmart/admin-console/internal/module/auth"
	"github.com/freshmart/admin-console/internal/module/contact"
	"github.com/freshmart/admin-console/internal/module/customer"
	"github.com/freshmart/admin-console/internal/module/dashboard"
	"github.com/freshmart/admin-console/internal/module/media"
	"github.com/freshmart/admin-console/internal/module/notification"
	"github.com/freshmart/admin-console/internal/module/order"
	"github.com/freshmart/admin-console/internal/module/product"
	"github.com/freshmart/admin-console/internal/notify"
	"github.com/freshmart/admin-console/internal/remote"
	"github.com/freshmart/admin-console/internal/session"
	"github.com/freshmart/admin-console/internal/upload"
)

// App holds the core application dependencies and the HTTP server.
type App struct {
	engine *gin.Engine
	db     *gorm.DB
	logger *logger.Logger
	cfg    *config.Config
	forms  *upload.Manager
	hub    *notify.Hub
}

type httpServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

var newHTTPServer = func(addr string, handler http.Handler) httpServer {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Live list sockets and SSE streams outlive any sane write
		// timeout, so the server-level one stays off and the JSON
		// handlers rely on the remote call timeout instead.
		IdleTimeout: 120 * time.Second,
	}
}

var notifyContext = func(parent context.Context, signals ...os.Signal) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, signals...)
}

// New creates and wires a fully configured App from the given Config.
//
// It sets up logging, local state storage, the remote API client, the
// upload pipeline, the notification hub, middleware, and routes.
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	success := false

	// 1. Setup logger.
	log, err := config.SetupLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	if cfg.Server.Mode == gin.DebugMode && cfg.Server.Host == "0.0.0.0" {
		log.Warn("insecure server config: debug mode on 0.0.0.0 may expose debug behavior and permissive CORS")
	}
	defer func() {
		if success {
			return
		}
		if err := log.Close(); err != nil {
			slog.Error("logger close error", slog.Any("error", err))
		}
	}()

	// 2. Setup local state storage.
	db, err := config.SetupStorage(&cfg.Storage, log.Logger)
	if err != nil {
		return nil, fmt.Errorf("setup storage: %w", err)
	}
	defer func() {
		if success {
			return
		}
		sqlDB, err := db.DB()
		if err != nil {
			return
		}
		if err := sqlDB.Close(); err != nil {
			slog.Error("storage close error", slog.Any("error", err))
		}
	}()

	// 3. Session store, hydrated from disk so a restart keeps the
	// operator signed in.
	sessions, err := session.NewStore(db)
	if err != nil {
		return nil, fmt.Errorf("setup session store: %w", err)
	}
	sessions.Hydrate()

	// 4. Remote API client. The session store supplies the bearer token.
	client := remote.NewClient(cfg.Remote.Endpoint, cfg.RemoteTimeout(), sessions)

	// 5. Upload pipeline.
	backend, err := buildUploadBackend(&cfg.Upload)
	if err != nil {
		return nil, err
	}
	forms := upload.NewManager(backend, cfg.Upload.MaxBytes, cfg.Upload.MaxDimension)

	// 6. Notification hub. Upload failures surface here; the orchestrator
	// itself only records the failed state.
	hub := notify.NewHub(cfg.DismissAfter())
	forms.OnUploadFailure(func(err error) {
		hub.Error("image upload failed: " + err.Error())
	})

	// 7. Console token service.
	tokens := auth.NewTokenService(cfg.Auth.TokenSecret, cfg.TokenExpiry())

	// 8. Manual dependency injection: repository → service → handler,
	// one chain per module.
	authSvc := auth.NewService(client, sessions, tokens)

	productSvc := product.NewService(product.NewRepository(client), hub)
	orderSvc := order.NewService(order.NewRepository(client), hub)
	customerSvc := customer.NewService(customer.NewRepository(client), hub)
	contactSvc := contact.NewService(contact.NewRepository(client), hub)
	statsSvc := dashboard.NewService(dashboard.NewRepository(client))

	modules := []Module{
		auth.NewModule(auth.NewHandler(authSvc)),
		product.NewModule(product.NewHandler(productSvc, forms), productSvc),
		order.NewModule(order.NewHandler(orderSvc), orderSvc),
		customer.NewModule(customer.NewHandler(customerSvc), customerSvc),
		contact.NewModule(contact.NewHandler(contactSvc), contactSvc),
		dashboard.NewModule(dashboard.NewHandler(statsSvc)),
		media.NewModule(media.NewHandler(forms)),
		notification.NewModule(notification.NewHandler(hub)),
	}

	// 9. Create Gin engine with custom middleware (not gin.Default()).
	if err := validateGinMode(cfg.Server.Mode); err != nil {
		return nil, err
	}
	gin.SetMode(cfg.Server.Mode)
	engine := gin.New()

	// In release mode, when no allowlist is configured, default to deny
	// cross-origin requests.
	corsConfig := resolveCORSConfig(cfg.Server.Mode, cfg.Server.CORS.AllowOrigins)

	engine.Use(
		middleware.Recovery(log.Logger),
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{
			TrustUpstream: false,
		}),
		middleware.Logger(log.Logger),
		middleware.CORSWithConfig(corsConfig),
	)

	// 10. Register all routes.
	if err := RegisterRoutes(engine, &RouteDeps{
		Modules:  modules,
		DB:       db,
		Remote:   client,
		Tokens:   tokens,
		Sessions: sessions,
	}); err != nil {
		return nil, fmt.Errorf("register routes: %w", err)
	}

	success = true
	return &App{
		engine: engine,
		db:     db,
		logger: log,
		cfg:    cfg,
		forms:  forms,
		hub:    hub,
	}, nil
}

func buildUploadBackend(cfg *config.UploadConfig) (upload.Backend, error) {
	switch cfg.Backend {
	case "cloudinary":
		return upload.NewCloudinaryBackend(cfg.Cloudinary.CloudName, cfg.Cloudinary.UploadPreset), nil
	case "storeapi", "":
		return upload.NewStoreAPIBackend(cfg.StoreAPI.BaseURL, cfg.StoreAPI.Storage, cfg.StoreAPI.Folder), nil
	default:
		return nil, fmt.Errorf("unknown upload backend %q", cfg.Backend)
	}
}

func resolveCORSConfig(mode string, configuredAllowOrigins []string) middleware.CORSConfig {
	corsConfig := middleware.DefaultCORSConfig()

	if len(configuredAllowOrigins) > 0 {
		corsConfig.AllowOrigins = configuredAllowOrigins
		return corsConfig
	}

	if mode == gin.ReleaseMode {
		corsConfig.AllowOrigins = []string{}
	}

	return corsConfig
}

func validateGinMode(mode string) error {
	switch mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		return nil
	default:
		return fmt.Errorf("invalid server.mode %q: must be one of %q, %q, %q", mode, gin.DebugMode, gin.ReleaseMode, gin.TestMode)
	}
}

// Run starts the HTTP server and blocks until a shutdown signal is
// received. It performs graceful shutdown with a 5-second timeout, rolls
// back any open image forms, and closes the notification hub and the
// state database.
func (a *App) Run() error {
	if a == nil {
		return errors.New("app is nil")
	}
	if a.cfg == nil {
		return errors.New("app config is nil")
	}
	if a.engine == nil {
		return errors.New("app engine is nil")
	}

	addr := fmt.Sprintf("%s:%d", a.cfg.Server.Host, a.cfg.Server.Port)
	srv := newHTTPServer(addr, a.engine)

	// Listen for SIGINT / SIGTERM.
	ctx, stop := notifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.log().Info("server started", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var runErr error

	select {
	case <-ctx.Done():
		a.log().Info("shutdown signal received")
	case err := <-errCh:
		runErr = fmt.Errorf("server error: %w", err)
	}

	if runErr == nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.log().Error("server shutdown error", slog.Any("error", err))
		}
	}

	// Abandoned image forms roll back their uncommitted uploads so no
	// orphaned files remain on the image store.
	if a.forms != nil {
		a.forms.CloseAll()
	}
	if a.hub != nil {
		a.hub.Close()
	}

	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				a.log().Error("storage close error", slog.Any("error", err))
			} else {
				a.log().Info("state storage closed")
			}
		}
	}

	a.log().Info("server stopped")
	if a.logger != nil {
		if err := a.logger.Close(); err != nil {
			slog.Error("logger close error", slog.Any("error", err))
		}
	}

	return runErr
}

func (a *App) log() *slog.Logger {
	if a.logger != nil {
		return a.logger.Logger
	}
	return slog.Default()
}
