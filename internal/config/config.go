package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is the top-level application configuration.
type Config struct {
	Server  ServerConfig   `koanf:"server"`
	Remote  RemoteConfig   `koanf:"remote"`
	Storage DatabaseConfig `koanf:"storage"`
	Upload  UploadConfig   `koanf:"upload"`
	Auth    AuthConfig     `koanf:"auth"`
	Notify  NotifyConfig   `koanf:"notify"`
	Log     LogConfig      `koanf:"log"`
}

// ServerConfig holds HTTP server settings for the console surface.
type ServerConfig struct {
	Host string     `koanf:"host"`
	Port int        `koanf:"port"`
	Mode string     `koanf:"mode"`
	CORS CORSConfig `koanf:"cors"`
}

// CORSConfig holds CORS middleware settings.
type CORSConfig struct {
	AllowOrigins     []string `koanf:"allow_origins"`
	AllowMethods     []string `koanf:"allow_methods"`
	AllowHeaders     []string `koanf:"allow_headers"`
	AllowCredentials bool     `koanf:"allow_credentials"`
	MaxAge           string   `koanf:"max_age"`
}

// RemoteConfig holds the connection settings for the FreshMart GraphQL API.
// All entity data lives behind this endpoint; the console never persists
// entities locally.
type RemoteConfig struct {
	Endpoint string `koanf:"endpoint"`
	Timeout  string `koanf:"timeout"`
}

// DatabaseConfig holds the local durable-storage settings. The console only
// stores its own session state here, but the connection layer supports the
// same drivers as the rest of our services.
type DatabaseConfig struct {
	Driver   string         `koanf:"driver"`
	SQLite   SQLiteConfig   `koanf:"sqlite"`
	Postgres PostgresConfig `koanf:"postgres"`
	Pool     PoolConfig     `koanf:"pool"`
}

// SQLiteConfig holds SQLite-specific settings.
type SQLiteConfig struct {
	Path string `koanf:"path"`
}

// PostgresConfig holds PostgreSQL-specific settings.
type PostgresConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	DBName   string `koanf:"dbname"`
	SSLMode  string `koanf:"sslmode"`
}

// PoolConfig holds database connection pool settings.
type PoolConfig struct {
	MaxIdleConns    int    `koanf:"max_idle_conns"`
	MaxOpenConns    int    `koanf:"max_open_conns"`
	ConnMaxLifetime string `koanf:"conn_max_lifetime"`
}

// UploadConfig selects and configures the image storage backend.
type UploadConfig struct {
	Backend      string           `koanf:"backend"`
	MaxBytes     int              `koanf:"max_bytes"`
	MaxDimension int              `koanf:"max_dimension"`
	Cloudinary   CloudinaryConfig `koanf:"cloudinary"`
	StoreAPI     StoreAPIConfig   `koanf:"storeapi"`
}

// CloudinaryConfig holds unsigned-upload settings for the Cloudinary backend.
type CloudinaryConfig struct {
	CloudName    string `koanf:"cloud_name"`
	UploadPreset string `koanf:"upload_preset"`
}

// StoreAPIConfig holds settings for the in-house image store backend.
type StoreAPIConfig struct {
	BaseURL string `koanf:"base_url"`
	Storage string `koanf:"storage"`
	Folder  string `koanf:"folder"`
}

// AuthConfig holds the local console-token settings. The remote API issues
// its own opaque token on login; this secret only signs the short-lived
// token the gateway hands to the browser.
type AuthConfig struct {
	TokenSecret string `koanf:"token_secret"`
	TokenExpiry string `koanf:"token_expiry"`
}

// NotifyConfig holds notification channel settings.
type NotifyConfig struct {
	DismissAfter string `koanf:"dismiss_after"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level           string `koanf:"level"`
	Format          string `koanf:"format"`
	Color           *bool  `koanf:"color"`
	FilePath        string `koanf:"file_path"`
	MaxSizeMB       int    `koanf:"max_size_mb"`
	RetentionDays   int    `koanf:"retention_days"`
	MaxBackups      int    `koanf:"max_backups"`
	CompressRotated *bool  `koanf:"compress_rotated"`
}

// Load reads configuration from a YAML file and overlays environment variables.
// Environment variables use the prefix "APP__" and double-underscore as the
// hierarchy separator. Single underscores are preserved as part of the key name.
// For example, APP__SERVER__PORT=9090 overrides server.port and
// APP__UPLOAD__MAX_BYTES=2097152 overrides upload.max_bytes.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	// Load YAML config file.
	if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
	}

	// Overlay environment variables with prefix APP__.
	// APP__SERVER__PORT -> server.port
	// APP__REMOTE__ENDPOINT -> remote.endpoint
	if err := k.Load(env.Provider("APP__", ".", func(s string) string {
		key := strings.TrimPrefix(s, "APP__")
		key = strings.ToLower(key)
		key = strings.ReplaceAll(key, "__", ".")
		return key
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cross-field constraints and supported values.
func (c *Config) Validate() error {
	// Validate server.mode.
	mode := strings.TrimSpace(c.Server.Mode)
	switch mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		c.Server.Mode = mode
	default:
		return fmt.Errorf("invalid server.mode %q: must be one of %q, %q, %q", c.Server.Mode, gin.DebugMode, gin.ReleaseMode, gin.TestMode)
	}

	// Validate server.port range.
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d: must be between 1 and 65535", c.Server.Port)
	}

	// Validate server.host.
	host := strings.TrimSpace(c.Server.Host)
	if host == "" {
		return fmt.Errorf("server.host is required")
	}
	c.Server.Host = host

	// Validate remote.endpoint.
	endpoint := strings.TrimSpace(c.Remote.Endpoint)
	if endpoint == "" {
		return fmt.Errorf("remote.endpoint is required")
	}
	u, err := url.Parse(endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid remote.endpoint %q: must be an http(s) URL", c.Remote.Endpoint)
	}
	if c.Server.Mode == gin.ReleaseMode && u.Scheme != "https" {
		return fmt.Errorf("invalid remote.endpoint %q: must use https in release mode", c.Remote.Endpoint)
	}
	c.Remote.Endpoint = endpoint

	// Validate remote.timeout (optional; must be a valid positive duration if set).
	c.Remote.Timeout = strings.TrimSpace(c.Remote.Timeout)
	if t := c.Remote.Timeout; t != "" {
		d, err := time.ParseDuration(t)
		if err != nil {
			return fmt.Errorf("invalid remote.timeout %q: %w", c.Remote.Timeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("invalid remote.timeout %q: must be greater than 0", c.Remote.Timeout)
		}
	}

	// Validate storage.driver.
	switch c.Storage.Driver {
	case "sqlite", "postgres":
		// ok
	default:
		return fmt.Errorf("invalid storage.driver %q: must be one of %q, %q", c.Storage.Driver, "sqlite", "postgres")
	}

	if c.Storage.Driver == "sqlite" {
		sqlitePath := strings.TrimSpace(c.Storage.SQLite.Path)
		if sqlitePath == "" {
			return fmt.Errorf("storage.sqlite.path is required when driver is sqlite")
		}
		c.Storage.SQLite.Path = sqlitePath
	}

	// When driver is postgres, required connection fields must be valid.
	if c.Storage.Driver == "postgres" {
		pgHost := strings.TrimSpace(c.Storage.Postgres.Host)
		if pgHost == "" {
			return fmt.Errorf("storage.postgres.host is required when driver is postgres")
		}
		if c.Storage.Postgres.Port < 1 || c.Storage.Postgres.Port > 65535 {
			return fmt.Errorf("invalid storage.postgres.port %d: must be between 1 and 65535", c.Storage.Postgres.Port)
		}
		user := strings.TrimSpace(c.Storage.Postgres.User)
		if user == "" {
			return fmt.Errorf("storage.postgres.user is required when driver is postgres")
		}
		dbName := strings.TrimSpace(c.Storage.Postgres.DBName)
		if dbName == "" {
			return fmt.Errorf("storage.postgres.dbname is required when driver is postgres")
		}
		sslMode := strings.TrimSpace(c.Storage.Postgres.SSLMode)

		switch sslMode {
		case "disable", "allow", "prefer", "require", "verify-ca", "verify-full":
			// ok
		default:
			return fmt.Errorf("invalid storage.postgres.sslmode %q: must be one of %q, %q, %q, %q, %q, %q", c.Storage.Postgres.SSLMode, "disable", "allow", "prefer", "require", "verify-ca", "verify-full")
		}

		c.Storage.Postgres.Host = pgHost
		c.Storage.Postgres.User = user
		c.Storage.Postgres.DBName = dbName
		c.Storage.Postgres.SSLMode = sslMode
	}

	// Normalize optional duration fields: whitespace-only means unset.
	c.Server.CORS.MaxAge = strings.TrimSpace(c.Server.CORS.MaxAge)
	c.Storage.Pool.ConnMaxLifetime = strings.TrimSpace(c.Storage.Pool.ConnMaxLifetime)
	c.Notify.DismissAfter = strings.TrimSpace(c.Notify.DismissAfter)

	// Validate server.cors.max_age (optional; must be a valid duration if set).
	if ma := c.Server.CORS.MaxAge; ma != "" {
		d, err := time.ParseDuration(ma)
		if err != nil {
			return fmt.Errorf("invalid server.cors.max_age %q: must be a valid duration (e.g. \"24h\", \"3600s\"): %w", c.Server.CORS.MaxAge, err)
		}
		if d <= 0 {
			return fmt.Errorf("invalid server.cors.max_age %q: must be greater than 0", c.Server.CORS.MaxAge)
		}
	}

	// Validate storage.pool.conn_max_lifetime (optional; must be positive if set).
	if lm := c.Storage.Pool.ConnMaxLifetime; lm != "" {
		d, err := time.ParseDuration(lm)
		if err != nil {
			return fmt.Errorf("invalid storage.pool.conn_max_lifetime %q: %w", c.Storage.Pool.ConnMaxLifetime, err)
		}
		if d <= 0 {
			return fmt.Errorf("invalid storage.pool.conn_max_lifetime %q: must be greater than 0", c.Storage.Pool.ConnMaxLifetime)
		}
	}

	// Validate upload settings.
	backend := strings.TrimSpace(c.Upload.Backend)
	switch backend {
	case "cloudinary":
		if strings.TrimSpace(c.Upload.Cloudinary.CloudName) == "" {
			return fmt.Errorf("upload.cloudinary.cloud_name is required when backend is cloudinary")
		}
		if strings.TrimSpace(c.Upload.Cloudinary.UploadPreset) == "" {
			return fmt.Errorf("upload.cloudinary.upload_preset is required when backend is cloudinary")
		}
	case "storeapi":
		base := strings.TrimSpace(c.Upload.StoreAPI.BaseURL)
		if base == "" {
			return fmt.Errorf("upload.storeapi.base_url is required when backend is storeapi")
		}
		bu, err := url.Parse(base)
		if err != nil || (bu.Scheme != "http" && bu.Scheme != "https") || bu.Host == "" {
			return fmt.Errorf("invalid upload.storeapi.base_url %q: must be an http(s) URL", c.Upload.StoreAPI.BaseURL)
		}
		c.Upload.StoreAPI.BaseURL = base
	default:
		return fmt.Errorf("invalid upload.backend %q: must be one of %q, %q", c.Upload.Backend, "cloudinary", "storeapi")
	}
	c.Upload.Backend = backend

	if c.Upload.MaxBytes < 0 {
		return fmt.Errorf("invalid upload.max_bytes %d: must not be negative", c.Upload.MaxBytes)
	}
	if c.Upload.MaxDimension < 0 {
		return fmt.Errorf("invalid upload.max_dimension %d: must not be negative", c.Upload.MaxDimension)
	}

	// Validate auth settings.
	tokenSecret := strings.TrimSpace(c.Auth.TokenSecret)
	if tokenSecret == "" {
		return fmt.Errorf("auth.token_secret is required")
	}
	if len(tokenSecret) < 32 {
		return fmt.Errorf("invalid auth.token_secret: must be at least 32 characters")
	}
	if c.Server.Mode == gin.ReleaseMode && CountSecretClasses(tokenSecret) < 3 {
		return fmt.Errorf("auth.token_secret must include at least 3 character classes (lowercase, uppercase, digit, symbol) in release mode")
	}
	c.Auth.TokenSecret = tokenSecret

	tokenExpiry := strings.TrimSpace(c.Auth.TokenExpiry)
	if tokenExpiry == "" {
		return fmt.Errorf("auth.token_expiry is required")
	}
	td, err := time.ParseDuration(tokenExpiry)
	if err != nil {
		return fmt.Errorf("invalid auth.token_expiry %q: %w", c.Auth.TokenExpiry, err)
	}
	if td <= 0 {
		return fmt.Errorf("invalid auth.token_expiry %q: must be greater than 0", c.Auth.TokenExpiry)
	}
	c.Auth.TokenExpiry = tokenExpiry

	// Validate notify.dismiss_after (optional; must be positive if set).
	if da := c.Notify.DismissAfter; da != "" {
		d, err := time.ParseDuration(da)
		if err != nil {
			return fmt.Errorf("invalid notify.dismiss_after %q: %w", c.Notify.DismissAfter, err)
		}
		if d <= 0 {
			return fmt.Errorf("invalid notify.dismiss_after %q: must be greater than 0", c.Notify.DismissAfter)
		}
	}

	// Validate log.level.
	level := strings.ToLower(strings.TrimSpace(c.Log.Level))
	switch level {
	case "debug", "info", "warn", "error":
		c.Log.Level = level
	default:
		return fmt.Errorf("invalid log.level %q: must be one of %q, %q, %q, %q", c.Log.Level, "debug", "info", "warn", "error")
	}

	// Validate log.format.
	format := strings.ToLower(strings.TrimSpace(c.Log.Format))
	switch format {
	case "text", "json":
		c.Log.Format = format
	default:
		return fmt.Errorf("invalid log.format %q: must be one of %q, %q", c.Log.Format, "text", "json")
	}

	return nil
}

// RemoteTimeout returns the configured remote call timeout, defaulting to 15s.
func (c *Config) RemoteTimeout() time.Duration {
	if c.Remote.Timeout == "" {
		return 15 * time.Second
	}
	d, err := time.ParseDuration(c.Remote.Timeout)
	if err != nil {
		return 15 * time.Second
	}
	return d
}

// TokenExpiry returns the configured console token lifetime, defaulting
// to 12h.
func (c *Config) TokenExpiry() time.Duration {
	if c.Auth.TokenExpiry == "" {
		return 12 * time.Hour
	}
	d, err := time.ParseDuration(c.Auth.TokenExpiry)
	if err != nil {
		return 12 * time.Hour
	}
	return d
}

// DismissAfter returns the configured notification auto-dismiss duration,
// defaulting to 3500ms.
func (c *Config) DismissAfter() time.Duration {
	if c.Notify.DismissAfter == "" {
		return 3500 * time.Millisecond
	}
	d, err := time.ParseDuration(c.Notify.DismissAfter)
	if err != nil {
		return 3500 * time.Millisecond
	}
	return d
}

// CountSecretClasses counts how many character classes (lowercase, uppercase,
// digit, symbol) are present in the given secret string.
func CountSecretClasses(secret string) int {
	hasLower := false
	hasUpper := false
	hasDigit := false
	hasSymbol := false

	for _, r := range secret {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}

	classes := 0
	if hasLower {
		classes++
	}
	if hasUpper {
		classes++
	}
	if hasDigit {
		classes++
	}
	if hasSymbol {
		classes++
	}

	return classes
}
