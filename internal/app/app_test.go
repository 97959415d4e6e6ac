package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/freshmart/admin-console/internal/config"
	"github.com/freshmart/admin-console/internal/upload"
)

func TestValidateGinMode(t *testing.T) {
	for _, mode := range []string{gin.DebugMode, gin.ReleaseMode, gin.TestMode} {
		if err := validateGinMode(mode); err != nil {
			t.Errorf("mode %q: unexpected error %v", mode, err)
		}
	}
	if err := validateGinMode("production"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestResolveCORSConfig(t *testing.T) {
	t.Run("happy_configured_allowlist_wins", func(t *testing.T) {
		got := resolveCORSConfig(gin.ReleaseMode, []string{"https://admin.freshmart.example"})
		if len(got.AllowOrigins) != 1 || got.AllowOrigins[0] != "https://admin.freshmart.example" {
			t.Errorf("unexpected origins: %v", got.AllowOrigins)
		}
	})

	t.Run("happy_release_defaults_to_deny", func(t *testing.T) {
		got := resolveCORSConfig(gin.ReleaseMode, nil)
		if len(got.AllowOrigins) != 0 {
			t.Errorf("expected empty allowlist, got %v", got.AllowOrigins)
		}
	})

	t.Run("happy_debug_keeps_defaults", func(t *testing.T) {
		got := resolveCORSConfig(gin.DebugMode, nil)
		if len(got.AllowOrigins) == 0 {
			t.Error("expected permissive defaults in debug mode")
		}
	})
}

func TestBuildUploadBackend(t *testing.T) {
	t.Run("happy_cloudinary", func(t *testing.T) {
		b, err := buildUploadBackend(&config.UploadConfig{
			Backend:    "cloudinary",
			Cloudinary: config.CloudinaryConfig{CloudName: "demo", UploadPreset: "unsigned"},
		})
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := b.(*upload.CloudinaryBackend); !ok {
			t.Errorf("expected cloudinary backend, got %T", b)
		}
	})

	t.Run("happy_storeapi_is_default", func(t *testing.T) {
		b, err := buildUploadBackend(&config.UploadConfig{})
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := b.(*upload.StoreAPIBackend); !ok {
			t.Errorf("expected store api backend, got %T", b)
		}
	})

	t.Run("error_unknown_backend", func(t *testing.T) {
		if _, err := buildUploadBackend(&config.UploadConfig{Backend: "s3"}); err == nil {
			t.Error("expected error for unknown backend")
		}
	})
}

func TestNew_NilConfig(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Error("expected error for nil config")
	}
}

type stubServer struct {
	listenErr  error
	shutdownCh chan struct{}
}

func (s *stubServer) ListenAndServe() error {
	if s.listenErr != nil {
		return s.listenErr
	}
	<-s.shutdownCh
	return http.ErrServerClosed
}

func (s *stubServer) Shutdown(ctx context.Context) error {
	close(s.shutdownCh)
	return nil
}

func TestRun_ServerError(t *testing.T) {
	origServer := newHTTPServer
	origNotify := notifyContext
	defer func() {
		newHTTPServer = origServer
		notifyContext = origNotify
	}()

	newHTTPServer = func(addr string, handler http.Handler) httpServer {
		return &stubServer{listenErr: errors.New("bind: address already in use")}
	}
	notifyContext = func(parent context.Context, signals ...os.Signal) (context.Context, context.CancelFunc) {
		return context.WithCancel(parent)
	}

	a := &App{
		engine: gin.New(),
		cfg:    &config.Config{},
	}
	if err := a.Run(); err == nil {
		t.Error("expected server error to propagate")
	}
}

func TestRun_GracefulShutdown(t *testing.T) {
	origServer := newHTTPServer
	origNotify := notifyContext
	defer func() {
		newHTTPServer = origServer
		notifyContext = origNotify
	}()

	srv := &stubServer{shutdownCh: make(chan struct{})}
	newHTTPServer = func(addr string, handler http.Handler) httpServer { return srv }

	ctx, cancel := context.WithCancel(context.Background())
	notifyContext = func(parent context.Context, signals ...os.Signal) (context.Context, context.CancelFunc) {
		return ctx, cancel
	}

	a := &App{
		engine: gin.New(),
		cfg:    &config.Config{},
	}

	done := make(chan error, 1)
	go func() { done <- a.Run() }()

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after shutdown signal")
	}
}

func TestRun_NilReceivers(t *testing.T) {
	var a *App
	if err := a.Run(); err == nil {
		t.Error("expected error for nil app")
	}
	if err := (&App{}).Run(); err == nil {
		t.Error("expected error for missing config")
	}
	if err := (&App{cfg: &config.Config{}}).Run(); err == nil {
		t.Error("expected error for missing engine")
	}
}
