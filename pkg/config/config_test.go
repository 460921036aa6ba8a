package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type catalogEnv struct {
	HTTPPort     int      `env:"LOADER_TEST_HTTP_PORT" envDefault:"8004"`
	PostgresHost string   `env:"LOADER_TEST_POSTGRES_HOST" envDefault:"localhost"`
	CacheEnabled bool     `env:"LOADER_TEST_CACHE_ENABLED" envDefault:"true"`
	Brokers      []string `env:"LOADER_TEST_BROKERS" envDefault:"localhost:9092" envSeparator:","`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg catalogEnv
	require.NoError(t, Load(&cfg))

	assert.Equal(t, 8004, cfg.HTTPPort)
	assert.Equal(t, "localhost", cfg.PostgresHost)
	assert.True(t, cfg.CacheEnabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Brokers)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("LOADER_TEST_HTTP_PORT", "9001")
	t.Setenv("LOADER_TEST_POSTGRES_HOST", "db.internal")
	t.Setenv("LOADER_TEST_CACHE_ENABLED", "false")
	t.Setenv("LOADER_TEST_BROKERS", "kafka-1:9092,kafka-2:9092")

	var cfg catalogEnv
	require.NoError(t, Load(&cfg))

	assert.Equal(t, 9001, cfg.HTTPPort)
	assert.Equal(t, "db.internal", cfg.PostgresHost)
	assert.False(t, cfg.CacheEnabled)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Brokers)
}

func TestLoad_RequiredMissing(t *testing.T) {
	var cfg struct {
		Password string `env:"LOADER_TEST_DB_PASSWORD,required"`
	}
	err := Load(&cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoad_BadNumber(t *testing.T) {
	t.Setenv("LOADER_TEST_HTTP_PORT", "eight-thousand")

	var cfg catalogEnv
	err := Load(&cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}
