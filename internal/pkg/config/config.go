package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Token store drivers.
const (
	TokenStoreFile   = "file"
	TokenStoreRedis  = "redis"
	TokenStoreMemory = "memory"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	API    APIConfig
	Tokens TokenConfig
	Redis  RedisConfig
	DevAPI DevAPIConfig
	Mongo  MongoConfig
}

type APIConfig struct {
	BaseURL string        `env:"API_BASE_URL, default=http://localhost:8081"`
	Timeout time.Duration `env:"API_TIMEOUT,  default=15s"`
}

type TokenConfig struct {
	Store string `env:"TOKEN_STORE, default=file"`
	// File overrides the default token file under the user config directory.
	File string `env:"TOKEN_FILE"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type DevAPIConfig struct {
	Port      string        `env:"DEVAPI_PORT, default=8081"`
	JWTSecret string        `env:"JWT_SECRET,  default=dev-secret"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,   default=24h"`
}

// MongoConfig is optional; the dev API keeps accounts in memory when URI is empty.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=interview_portal"`
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration through the given lookuper and validates it.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}

	switch cfg.Tokens.Store {
	case TokenStoreFile, TokenStoreRedis, TokenStoreMemory:
	default:
		return nil, fmt.Errorf("unknown TOKEN_STORE %q", cfg.Tokens.Store)
	}
	if cfg.API.Timeout <= 0 {
		return nil, fmt.Errorf("API_TIMEOUT must be positive, got %s", cfg.API.Timeout)
	}
	return &cfg, nil
}
