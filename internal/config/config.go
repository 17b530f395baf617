package config

import (
	"net"
	"strconv"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Retention RetentionConfig `yaml:"retention"`
	Chat      ChatConfig      `yaml:"chat"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type,X-Request-Id"`
	ExposedHeaders   string `yaml:"exposed_headers"   env:"CORS_EXPOSED_HEADERS"   env-default:"X-Request-Id,Retry-After"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	// TrustProxy makes the client IP come from X-Forwarded-For.
	TrustProxy bool `yaml:"trust_proxy" env:"SERVER_TRUST_PROXY" env-default:"false"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	// StatementTimeout is applied to every pooled connection. Zero keeps the
	// server default.
	StatementTimeout time.Duration `yaml:"statement_timeout" env:"DATABASE_STATEMENT_TIMEOUT" env-default:"30s"`
	AutoMigrate      bool          `yaml:"auto_migrate"      env:"DATABASE_AUTO_MIGRATE"      env-default:"false"`
}

// AuthConfig holds JWT settings. Tokens are minted by the identity
// service; this service only validates them (and chatctl mints dev tokens).
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"chatvault"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"15m"`
	// CheckUserActive rejects tokens of disabled accounts with 403.
	CheckUserActive bool `yaml:"check_user_active" env:"AUTH_CHECK_USER_ACTIVE" env-default:"true"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds per-minute request allowances. Zero disables a group.
type RateLimitConfig struct {
	Enabled          bool          `yaml:"enabled"            env:"RATE_LIMIT_ENABLED"            env-default:"true"`
	APIPerMinute     int           `yaml:"api_per_minute"     env:"RATE_LIMIT_API_PER_MINUTE"     env-default:"300"`
	BatchPerMinute   int           `yaml:"batch_per_minute"   env:"RATE_LIMIT_BATCH_PER_MINUTE"   env-default:"30"`
	CleanupPerMinute int           `yaml:"cleanup_per_minute" env:"RATE_LIMIT_CLEANUP_PER_MINUTE" env-default:"6"`
	CleanupInterval  time.Duration `yaml:"cleanup_interval"   env:"RATE_LIMIT_CLEANUP_INTERVAL"   env-default:"5m"`
}

// RetentionConfig controls the scheduled cleanup.
type RetentionConfig struct {
	// ScheduleEnabled runs the scheduler inside the API server. Disable it
	// when cmd/cleanup is driven by an external cron.
	ScheduleEnabled bool          `yaml:"schedule_enabled" env:"RETENTION_SCHEDULE_ENABLED" env-default:"true"`
	Schedule        string        `yaml:"schedule"         env:"RETENTION_SCHEDULE"         env-default:"0 2 * * *"`
	RunTimeout      time.Duration `yaml:"run_timeout"      env:"RETENTION_RUN_TIMEOUT"      env-default:"30m"`
}

// ChatConfig holds chat lifecycle defaults.
type ChatConfig struct {
	DefaultTitle    string `yaml:"default_title"     env:"CHAT_DEFAULT_TITLE"     env-default:"New chat"`
	DefaultPageSize int    `yaml:"default_page_size" env:"CHAT_DEFAULT_PAGE_SIZE" env-default:"20"`
	MaxPageSize     int    `yaml:"max_page_size"     env:"CHAT_MAX_PAGE_SIZE"     env-default:"100"`
	MaxBatchSize    int    `yaml:"max_batch_size"    env:"CHAT_MAX_BATCH_SIZE"    env-default:"200"`
}

// MetricsConfig holds Prometheus exposition settings.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"   env:"METRICS_ENABLED"   env-default:"true"`
	Path      string `yaml:"path"      env:"METRICS_PATH"      env-default:"/metrics"`
	Namespace string `yaml:"namespace" env:"METRICS_NAMESPACE" env-default:"chatvault"`
	// RuntimeCollectors adds Go runtime and process collectors.
	RuntimeCollectors bool `yaml:"runtime_collectors" env:"METRICS_RUNTIME_COLLECTORS" env-default:"true"`
}

// Addr returns host:port for http.Server.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
