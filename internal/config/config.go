package config

import (
	"time"

	"github.com/shopspring/decimal"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
	Redis    RedisConfig    `yaml:"redis"`
	Storage  StorageConfig  `yaml:"storage"`
	PubSub   PubSubConfig   `yaml:"pubsub"`
	Wallet   WalletConfig   `yaml:"wallet"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
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
	MetricsEnabled  bool          `yaml:"metrics_enabled"  env:"SERVER_METRICS_ENABLED"  env-default:"true"`
	RateLimit       int           `yaml:"rate_limit"       env:"SERVER_RATE_LIMIT"       env-default:"300"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds access token verification settings. Tokens are issued by
// the identity service; this service only verifies them.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"hrwallet"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"15m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RedisConfig holds the optional Redis connection used for wallet locks.
// An empty Addr disables distributed locking.
type RedisConfig struct {
	Addr     string `yaml:"addr"     env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db"       env:"REDIS_DB" env-default:"0"`
}

// Enabled reports whether Redis is configured.
func (c RedisConfig) Enabled() bool { return c.Addr != "" }

// StorageConfig holds the Cloud Storage bucket for proof documents.
// An empty Bucket disables proof storage.
type StorageConfig struct {
	Bucket          string `yaml:"bucket"           env:"GCS_BUCKET"`
	Prefix          string `yaml:"prefix"           env:"GCS_PREFIX"           env-default:"redemption-proofs"`
	CredentialsJSON string `yaml:"credentials_json" env:"GCS_CREDENTIALS_JSON"`
}

// Enabled reports whether proof storage is configured.
func (c StorageConfig) Enabled() bool { return c.Bucket != "" }

// PubSubConfig holds the Pub/Sub topic workflow emails are published to.
// An empty ProjectID or EmailTopic disables publishing.
type PubSubConfig struct {
	ProjectID       string `yaml:"project_id"       env:"PUBSUB_PROJECT_ID"`
	EmailTopic      string `yaml:"email_topic"      env:"PUBSUB_EMAIL_TOPIC" env-default:"workflow-emails"`
	CredentialsJSON string `yaml:"credentials_json" env:"PUBSUB_CREDENTIALS_JSON"`
}

// Enabled reports whether email publishing is configured.
func (c PubSubConfig) Enabled() bool { return c.ProjectID != "" && c.EmailTopic != "" }

// WalletConfig holds workflow tuning.
type WalletConfig struct {
	LockTTL           time.Duration `yaml:"lock_ttl"            env:"WALLET_LOCK_TTL"            env-default:"10s"`
	LockWait          time.Duration `yaml:"lock_wait"           env:"WALLET_LOCK_WAIT"           env-default:"5s"`
	SideEffectTimeout time.Duration `yaml:"side_effect_timeout" env:"WALLET_SIDE_EFFECT_TIMEOUT" env-default:"10s"`
	ProofTimeout      time.Duration `yaml:"proof_timeout"       env:"WALLET_PROOF_TIMEOUT"       env-default:"30s"`
	MaxRequestAmount  string        `yaml:"max_request_amount"  env:"WALLET_MAX_REQUEST_AMOUNT"  env-default:"10000000"`
	ReconcileWorkers  int           `yaml:"reconcile_workers"   env:"WALLET_RECONCILE_WORKERS"   env-default:"4"`

	// MaxAmount is parsed from MaxRequestAmount during validation.
	MaxAmount decimal.Decimal `yaml:"-" env:"-"`
}
