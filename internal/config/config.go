package config

import (
	"fmt"

	pkgconfig "github.com/paripprabhu/sneakopedia/pkg/config"
	"github.com/paripprabhu/sneakopedia/pkg/validator"
)

// Config holds all configuration for the catalog service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development" validate:"oneof=development staging production"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"CATALOG_HTTP_PORT" envDefault:"8004" validate:"gte=1,lte=65535"`

	// PostgreSQL
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost" validate:"required"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432" validate:"gte=1,lte=65535"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"sneakopedia" validate:"required"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"sneakopedia_secret"`
	PostgresDB   string `env:"CATALOG_DB_NAME" envDefault:"catalog_db" validate:"required"`
	PostgresSSL  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`

	// Database pool
	DBMaxConns            int32 `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns            int32 `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetimeMins int   `env:"DB_MAX_CONN_LIFETIME_MINUTES" envDefault:"60"`
	DBMaxConnIdleTimeMins int   `env:"DB_MAX_CONN_IDLE_TIME_MINUTES" envDefault:"30"`

	// Redis query cache
	RedisHost     string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     int    `env:"REDIS_PORT" envDefault:"6379" validate:"gte=1,lte=65535"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	CacheEnabled  bool   `env:"CATALOG_CACHE_ENABLED" envDefault:"true"`
	// CacheTTLSecs bounds staleness between scrape runs; invalidation events
	// usually clear entries sooner.
	CacheTTLSecs int `env:"CATALOG_CACHE_TTL_SECONDS" envDefault:"30" validate:"gte=1"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:"," validate:"required,min=1"`

	// Request surface
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`
	// CacheMaxAgeSecs is the Cache-Control max-age sent on catalog reads.
	CacheMaxAgeSecs int `env:"CATALOG_CACHE_MAX_AGE_SECONDS" envDefault:"30" validate:"gte=0"`

	// Store queries
	QueryTimeoutMs int `env:"CATALOG_QUERY_TIMEOUT_MS" envDefault:"8000" validate:"gte=100"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load catalog config: %w", err)
	}
	if err := validator.Validate(cfg); err != nil {
		return nil, fmt.Errorf("validate catalog config: %w", err)
	}
	return cfg, nil
}

// PostgresDSN returns the PostgreSQL connection string.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.PostgresUser, c.PostgresPass, c.PostgresHost, c.PostgresPort, c.PostgresDB, c.PostgresSSL,
	)
}
