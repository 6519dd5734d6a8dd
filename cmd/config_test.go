package cmd_test

import (
	"testing"
	"time"

	"fooddelivery/cmd"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnv(t *testing.T, env map[string]string) {
	t.Helper()
	for _, key := range []string{
		"HTTP_PORT", "DB_DRIVER", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
		"SQLITE_PATH", "JWT_SECRET", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "KAFKA_HOST",
		"KAFKA_ORDER_CHANGED_TOPIC", "RABBITMQ_URL", "RABBITMQ_EXCHANGE", "STALE_DELIVERY_AFTER",
		"TRACKING_POSITION_TTL",
	} {
		t.Setenv(key, env[key])
	}
}

func TestLoadConfig(t *testing.T) {
	setEnv(t, map[string]string{
		"DB_HOST":               "db",
		"DB_NAME":               "delivery",
		"DB_USER":               "app",
		"JWT_SECRET":            "s3cret",
		"REDIS_DB":              "2",
		"KAFKA_HOST":            "kafka-1:9092, kafka-2:9092,",
		"STALE_DELIVERY_AFTER":  "15m",
		"TRACKING_POSITION_TTL": "1h",
	})

	cfg, err := cmd.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers())
	assert.Equal(t, 15*time.Minute, cfg.StaleDeliveryAfter)
	assert.Equal(t, time.Hour, cfg.TrackingPositionTTL)
	assert.Equal(t, "order.changed", cfg.KafkaOrderChangedTopic)
	assert.Equal(t, "host=db port=5432 user=app password= dbname=delivery sslmode=disable", cfg.DSN())
}

func TestLoadConfig_SQLite(t *testing.T) {
	setEnv(t, map[string]string{
		"DB_DRIVER":   "SQLite",
		"SQLITE_PATH": "/tmp/food.db",
		"JWT_SECRET":  "s3cret",
	})

	cfg, err := cmd.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "/tmp/food.db", cfg.DSN())
	assert.Empty(t, cfg.KafkaBrokers())
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Run("missing secret and database", func(t *testing.T) {
		setEnv(t, map[string]string{})

		_, err := cmd.LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_SECRET")
		assert.Contains(t, err.Error(), "DB_HOST")
	})

	t.Run("unknown driver", func(t *testing.T) {
		setEnv(t, map[string]string{"DB_DRIVER": "mysql", "JWT_SECRET": "x"})

		_, err := cmd.LoadConfig()
		assert.ErrorContains(t, err, "mysql")
	})

	t.Run("bad duration", func(t *testing.T) {
		setEnv(t, map[string]string{"DB_DRIVER": "sqlite", "JWT_SECRET": "x", "STALE_DELIVERY_AFTER": "soon"})

		_, err := cmd.LoadConfig()
		assert.ErrorContains(t, err, "STALE_DELIVERY_AFTER")
	})
}
