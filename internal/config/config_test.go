package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const validYAML = `
server:
  host: "127.0.0.1"
  port: 8080
  mode: "test"
remote:
  endpoint: "https://api.freshmart.example/graphql"
  timeout: "10s"
storage:
  driver: "sqlite"
  sqlite:
    path: "data/console.db"
upload:
  backend: "storeapi"
  storeapi:
    base_url: "https://images.freshmart.example"
    storage: "intern"
    folder: "products"
auth:
  token_secret: "0123456789abcdef0123456789abcdef"
  token_expiry: "12h"
log:
  level: "info"
  format: "text"
`

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	cfg, err := Load(writeConfigFile(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Remote.Endpoint != "https://api.freshmart.example/graphql" {
		t.Errorf("unexpected remote endpoint: %q", cfg.Remote.Endpoint)
	}
	if cfg.RemoteTimeout() != 10*time.Second {
		t.Errorf("expected remote timeout 10s, got %v", cfg.RemoteTimeout())
	}
	if cfg.Upload.StoreAPI.Storage != "intern" {
		t.Errorf("unexpected storeapi storage: %q", cfg.Upload.StoreAPI.Storage)
	}
}

func TestLoad_EnvOverlay(t *testing.T) {
	t.Setenv("APP__SERVER__PORT", "9090")
	t.Setenv("APP__UPLOAD__STOREAPI__FOLDER", "avatars")

	cfg, err := Load(writeConfigFile(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("expected env override port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Upload.StoreAPI.Folder != "avatars" {
		t.Errorf("expected env override folder avatars, got %q", cfg.Upload.StoreAPI.Folder)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidate_Rejections(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(s string) string
		wantSub string
	}{
		{
			"bad_mode",
			func(s string) string { return strings.Replace(s, `mode: "test"`, `mode: "dev"`, 1) },
			"server.mode",
		},
		{
			"missing_remote_endpoint",
			func(s string) string {
				return strings.Replace(s, `endpoint: "https://api.freshmart.example/graphql"`, `endpoint: ""`, 1)
			},
			"remote.endpoint",
		},
		{
			"bad_upload_backend",
			func(s string) string { return strings.Replace(s, `backend: "storeapi"`, `backend: "ftp"`, 1) },
			"upload.backend",
		},
		{
			"short_token_secret",
			func(s string) string {
				return strings.Replace(s, `token_secret: "0123456789abcdef0123456789abcdef"`, `token_secret: "short"`, 1)
			},
			"auth.token_secret",
		},
		{
			"bad_token_expiry",
			func(s string) string { return strings.Replace(s, `token_expiry: "12h"`, `token_expiry: "soon"`, 1) },
			"auth.token_expiry",
		},
		{
			"bad_log_level",
			func(s string) string { return strings.Replace(s, `level: "info"`, `level: "verbose"`, 1) },
			"log.level",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfigFile(t, tc.mutate(validYAML)))
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantSub) {
				t.Errorf("expected error mentioning %q, got: %v", tc.wantSub, err)
			}
		})
	}
}

func TestValidate_ReleaseModeRequiresHTTPSEndpoint(t *testing.T) {
	yaml := strings.Replace(validYAML, `mode: "test"`, `mode: "release"`, 1)
	yaml = strings.Replace(yaml, `endpoint: "https://api.freshmart.example/graphql"`, `endpoint: "http://api.freshmart.example/graphql"`, 1)
	// Release mode also requires a mixed-class secret.
	yaml = strings.Replace(yaml, `token_secret: "0123456789abcdef0123456789abcdef"`, `token_secret: "0123456789Abcdef0123456789abcdef!"`, 1)

	if _, err := Load(writeConfigFile(t, yaml)); err == nil {
		t.Fatal("expected error for http endpoint in release mode")
	}
}

func TestCountSecretClasses(t *testing.T) {
	cases := []struct {
		secret string
		want   int
	}{
		{"abc", 1},
		{"abcABC", 2},
		{"abcABC123", 3},
		{"abcABC123!@#", 4},
		{"", 0},
	}
	for _, tc := range cases {
		if got := CountSecretClasses(tc.secret); got != tc.want {
			t.Errorf("CountSecretClasses(%q) = %d, want %d", tc.secret, got, tc.want)
		}
	}
}
