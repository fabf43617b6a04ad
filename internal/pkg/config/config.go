package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,       default=4000"`
	Env       string        `env:"ENV,        default=development"`
	LogLevel  string        `env:"LOG_LEVEL,  default=info"`
	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=24h"`

	FrontendURL    string   `env:"FRONTEND_URL"`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS, default=http://localhost:5173,http://localhost:5174,http://127.0.0.1:5173,http://127.0.0.1:5174"`

	EventWorkers int `env:"EVENT_WORKERS, default=4"`

	Mongo     MongoConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	AMQP      AMQPConfig
	TMDB      TMDBConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=nodo_cine"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type RateLimitConfig struct {
	Enabled        bool          `env:"RATE_LIMIT_ENABLED,         default=true"`
	Capacity       int           `env:"RATE_LIMIT_CAPACITY,        default=10"`
	RefillInterval time.Duration `env:"RATE_LIMIT_REFILL_INTERVAL, default=6s"`
}

// AMQPConfig enables catalog event publishing when URL is set.
type AMQPConfig struct {
	URL      string `env:"AMQP_URL"`
	Exchange string `env:"AMQP_EXCHANGE, default=catalog.events"`
}

type TMDBConfig struct {
	APIKey        string  `env:"TMDB_API_KEY"`
	BaseURL       string  `env:"TMDB_BASE_URL,        default=https://api.themoviedb.org/3"`
	RatePerSecond float64 `env:"TMDB_RATE_PER_SECOND, default=4"`
}

// IsDevelopment reports whether the process runs in a developer environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Origins returns the CORS allow-list including FRONTEND_URL.
func (c *Config) Origins() []string {
	out := append([]string{}, c.AllowedOrigins...)
	if c.FrontendURL != "" {
		out = append(out, c.FrontendURL)
	}
	return out
}

// Load reads a .env file when present, then the process environment.
// A missing JWT_SECRET is an error.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	return &cfg, nil
}
