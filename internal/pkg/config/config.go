package config

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sethvargo/go-envconfig"
)

const (
	DriverFile   = "file"
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverMongo  = "mongo"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development" validate:"oneof=development production test"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth      AuthConfig
	Store     StoreConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	Signin    SigninConfig
	Bootstrap BootstrapConfig

	MetricsEnabled bool `env:"METRICS_ENABLED, default=true"`
}

type AuthConfig struct {
	JWTSecret string        `env:"JWT_SECRET, required" validate:"min=16"`
	Issuer    string        `env:"JWT_ISSUER, default=accounts-api"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=1h" validate:"gt=0"`
}

type StoreConfig struct {
	Driver  string `env:"STORE_DRIVER, default=file" validate:"oneof=file memory redis mongo"`
	DataDir string `env:"DATA_DIR,     default=./data"`
}

type MongoConfig struct {
	URI        string `env:"MONGO_URI,        default=mongodb://localhost:27017"`
	Database   string `env:"MONGO_DB,         default=accounts"`
	Collection string `env:"MONGO_COLLECTION, default=record_collections"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
	Prefix   string `env:"REDIS_PREFIX,   default=accounts:"`
}

type SigninConfig struct {
	// RateLimit is sign-in requests per second per client IP; 0 disables.
	RateLimit float64 `env:"SIGNIN_RATE_LIMIT, default=1" validate:"gte=0"`
	Burst     int     `env:"SIGNIN_BURST,      default=5" validate:"gte=0"`
}

type BootstrapConfig struct {
	AdminName     string `env:"BOOTSTRAP_ADMIN_NAME, default=Administrator"`
	AdminEmail    string `env:"BOOTSTRAP_ADMIN_EMAIL"`
	AdminPassword string `env:"BOOTSTRAP_ADMIN_PASSWORD"`
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool { return c.Env == "production" }

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration from l and validates it.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
