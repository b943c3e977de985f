package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// BackendMode selects the identity backend: "remote" or "local".
	BackendMode    string        `env:"BACKEND_MODE,     default=local"`
	DeviceTokenTTL time.Duration `env:"DEVICE_TOKEN_TTL, default=720h"`
	SessionIdleTTL time.Duration `env:"SESSION_IDLE_TTL, default=30m"`
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL,  default=10m"`

	Directory DirectoryConfig
	Inquiry   InquiryConfig
	SignIn    SignInConfig
	Federated FederatedConfig
	Mongo     MongoConfig
	Redis     RedisConfig
}

type DirectoryConfig struct {
	PageSize int           `env:"PAGE_SIZE,           default=12"`
	CacheTTL time.Duration `env:"DIRECTORY_CACHE_TTL, default=5m"`
}

type InquiryConfig struct {
	Workers int `env:"INQUIRY_WORKERS, default=4"`
}

type SignInConfig struct {
	MaxAttempts int           `env:"SIGNIN_MAX_ATTEMPTS, default=5"`
	Window      time.Duration `env:"SIGNIN_WINDOW,       default=15m"`
}

// FederatedConfig describes the ID tokens accepted for federated sign-in.
// An empty key disables it. Key is a PEM RSA public key or an HMAC secret.
type FederatedConfig struct {
	Issuer   string `env:"FEDERATED_ISSUER,   default=https://accounts.google.com"`
	Audience string `env:"FEDERATED_AUDIENCE"`
	Key      string `env:"FEDERATED_KEY"`
}

// MongoConfig is optional. An empty URI disables the remote stores.
type MongoConfig struct {
	URI            string        `env:"MONGO_URI"`
	Database       string        `env:"MONGO_DB,              default=career_guidance"`
	ConnectTimeout time.Duration `env:"MONGO_CONNECT_TIMEOUT, default=10s"`
}

// RedisConfig is optional. An empty address selects the in-memory stores.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadFrom(envconfig.OsLookuper())
	if err != nil {
		panic(err.Error())
	}
	return cfg
}

// LoadFrom reads configuration through l. It exists so tests can supply
// their own environment.
func LoadFrom(l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if cfg.IsProduction() && cfg.JWTSecret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET is required in production")
	}
	return &cfg, nil
}
