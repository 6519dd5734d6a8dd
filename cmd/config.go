package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"fooddelivery/internal/adapters/out/postgres"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPPort            = "8080"
	defaultStaleDeliveryAfter  = 10 * time.Minute
	defaultTrackingPositionTTL = 30 * time.Minute
	defaultRabbitMQExchange    = "food_delivery.notifications"
	defaultOrderChangedTopic   = "order.changed"
	defaultSQLitePath          = "food_delivery.db"
)

type Config struct {
	HTTPPort string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	SQLitePath string

	JWTSecret string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	KafkaHost              string
	KafkaOrderChangedTopic string

	RabbitMQURL      string
	RabbitMQExchange string

	StaleDeliveryAfter  time.Duration
	TrackingPositionTTL time.Duration
}

// LoadConfig reads the environment. A .env file in the working directory is loaded
// first when present; variables already set in the environment win.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		HTTPPort:               getEnv("HTTP_PORT", defaultHTTPPort),
		DBDriver:               strings.ToLower(getEnv("DB_DRIVER", postgres.DriverPostgres)),
		DBHost:                 os.Getenv("DB_HOST"),
		DBPort:                 getEnv("DB_PORT", "5432"),
		DBUser:                 os.Getenv("DB_USER"),
		DBPassword:             os.Getenv("DB_PASSWORD"),
		DBName:                 os.Getenv("DB_NAME"),
		DBSslMode:              getEnv("DB_SSLMODE", "disable"),
		SQLitePath:             getEnv("SQLITE_PATH", defaultSQLitePath),
		JWTSecret:              os.Getenv("JWT_SECRET"),
		RedisAddr:              os.Getenv("REDIS_ADDR"),
		RedisPassword:          os.Getenv("REDIS_PASSWORD"),
		KafkaHost:              os.Getenv("KAFKA_HOST"),
		KafkaOrderChangedTopic: getEnv("KAFKA_ORDER_CHANGED_TOPIC", defaultOrderChangedTopic),
		RabbitMQURL:            os.Getenv("RABBITMQ_URL"),
		RabbitMQExchange:       getEnv("RABBITMQ_EXCHANGE", defaultRabbitMQExchange),
	}

	var err error
	if cfg.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return Config{}, fmt.Errorf("REDIS_DB: %w", err)
	}
	if cfg.StaleDeliveryAfter, err = getDuration("STALE_DELIVERY_AFTER", defaultStaleDeliveryAfter); err != nil {
		return Config{}, err
	}
	if cfg.TrackingPositionTTL, err = getDuration("TRACKING_POSITION_TTL", defaultTrackingPositionTTL); err != nil {
		return Config{}, err
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var problems []error
	if c.JWTSecret == "" {
		problems = append(problems, errors.New("JWT_SECRET is required"))
	}
	switch c.DBDriver {
	case postgres.DriverPostgres:
		if c.DBHost == "" || c.DBName == "" {
			problems = append(problems, errors.New("DB_HOST and DB_NAME are required for postgres"))
		}
	case postgres.DriverSQLite:
	default:
		problems = append(problems, fmt.Errorf("DB_DRIVER %q is not one of postgres, sqlite", c.DBDriver))
	}
	if c.StaleDeliveryAfter <= 0 {
		problems = append(problems, errors.New("STALE_DELIVERY_AFTER must be positive"))
	}
	return errors.Join(problems...)
}

// DSN returns the connection string for the configured driver.
func (c Config) DSN() string {
	if c.DBDriver == postgres.DriverSQLite {
		return c.SQLitePath
	}
	return postgres.PostgresDSN(c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// KafkaBrokers splits KAFKA_HOST on commas.
func (c Config) KafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaHost, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
