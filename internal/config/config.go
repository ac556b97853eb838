package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Verify    VerifyConfig    `yaml:"verify"`
	Notify    NotifyConfig    `yaml:"notify"`
	Auth      AuthConfig      `yaml:"auth"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
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
	MaxBodyBytes    int64         `yaml:"max_body_bytes"   env:"SERVER_MAX_BODY_BYTES"   env-default:"65536"`
}

// DatabaseConfig holds PostgreSQL connection settings for the table backend.
// An empty DSN means the table backend is not configured; the service can
// run without it.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// Enabled reports whether the table backend is configured.
func (c DatabaseConfig) Enabled() bool { return c.DSN != "" }

// RedisConfig holds connection settings for the log backend.
// An empty Addr means the log backend is not configured.
type RedisConfig struct {
	Addr        string        `yaml:"addr"         env:"REDIS_ADDR"`
	Password    string        `yaml:"password"     env:"REDIS_PASSWORD"`
	DB          int           `yaml:"db"           env:"REDIS_DB"           env-default:"0"`
	DialTimeout time.Duration `yaml:"dial_timeout" env:"REDIS_DIAL_TIMEOUT" env-default:"5s"`
}

// Enabled reports whether the log backend is configured.
func (c RedisConfig) Enabled() bool { return c.Addr != "" }

// RateLimitConfig holds the fixed-window quota applied to submission intake.
type RateLimitConfig struct {
	MaxRequests int           `yaml:"max_requests" env:"RATE_LIMIT_MAX_REQUESTS" env-default:"10"`
	Window      time.Duration `yaml:"window"       env:"RATE_LIMIT_WINDOW"       env-default:"60s"`
}

// WindowSeconds returns the window length in whole seconds.
func (c RateLimitConfig) WindowSeconds() int {
	return int(c.Window / time.Second)
}

// VerifyConfig holds Turnstile verification settings. An empty secret
// disables verification entirely: submissions are accepted without a token.
type VerifyConfig struct {
	TurnstileSecret string        `yaml:"turnstile_secret" env:"VERIFY_TURNSTILE_SECRET"`
	Timeout         time.Duration `yaml:"timeout"          env:"VERIFY_TIMEOUT"          env-default:"10s"`
}

// Enabled reports whether anti-abuse verification is configured.
func (c VerifyConfig) Enabled() bool { return c.TurnstileSecret != "" }

// NotifyConfig holds email notification settings. An empty To address
// disables notifications.
type NotifyConfig struct {
	Endpoint string        `yaml:"endpoint" env:"NOTIFY_ENDPOINT" env-default:"https://api.mailchannels.net/tx/v1/send"`
	APIKey   string        `yaml:"api_key"  env:"NOTIFY_API_KEY"`
	From     string        `yaml:"from"     env:"NOTIFY_FROM"`
	To       string        `yaml:"to"       env:"NOTIFY_TO"`
	Timeout  time.Duration `yaml:"timeout"  env:"NOTIFY_TIMEOUT" env-default:"30s"`
}

// Enabled reports whether submission notifications are configured.
func (c NotifyConfig) Enabled() bool { return c.To != "" }

// AuthConfig holds settings for the read-API bearer tokens.
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" env:"AUTH_JWT_SECRET" env-required:"true"`
	JWTIssuer string        `yaml:"jwt_issuer" env:"AUTH_JWT_ISSUER" env-default:"formsink"`
	TokenTTL  time.Duration `yaml:"token_ttl"  env:"AUTH_TOKEN_TTL"  env-default:"720h"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
