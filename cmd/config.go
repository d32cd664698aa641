package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultOrderExpiryThreshold = 20 * time.Minute
	DefaultOrderSweepInterval   = 20 * time.Minute
)

type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// RedisAddr enables the cross-replica sweep lease when set.
	RedisAddr string

	// KafkaBrokers enables order event publishing when non-empty.
	KafkaBrokers    []string
	KafkaOrderTopic string

	// JWTSecret enables bearer authentication when set.
	JWTSecret string

	OrderExpiryThreshold time.Duration
	OrderSweepInterval   time.Duration

	LogLevel       string
	OTLPEndpoint   string
	ServiceName    string
	ServiceVersion string
}

// LoadConfig reads the environment, after loading envFile when it exists.
// Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	threshold, thresholdErr := durationVariable("ORDER_EXPIRY_THRESHOLD", DefaultOrderExpiryThreshold)
	interval, intervalErr := durationVariable("ORDER_SWEEP_INTERVAL", DefaultOrderSweepInterval)
	if err := errors.Join(thresholdErr, intervalErr); err != nil {
		return Config{}, err
	}

	return Config{
		HTTPPort:             getEnv("HTTP_PORT", "8080"),
		DBHost:               getEnv("DB_HOST", "localhost"),
		DBPort:               getEnv("DB_PORT", "5432"),
		DBUser:               getEnv("DB_USER", "postgres"),
		DBPassword:           getEnv("DB_PASSWORD", ""),
		DBName:               getEnv("DB_NAME", "foodorder"),
		DBSslMode:            getEnv("DB_SSLMODE", "disable"),
		RedisAddr:            getEnv("REDIS_ADDR", ""),
		KafkaBrokers:         listVariable("KAFKA_BROKERS"),
		KafkaOrderTopic:      getEnv("KAFKA_ORDER_TOPIC", "order.events"),
		JWTSecret:            getEnv("JWT_SECRET", ""),
		OrderExpiryThreshold: threshold,
		OrderSweepInterval:   interval,
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		OTLPEndpoint:         getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		ServiceName:          getEnv("SERVICE_NAME", "foodorder"),
		ServiceVersion:       getEnv("SERVICE_VERSION", "dev"),
	}, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func durationVariable(key string, fallback time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s: must be positive, got %s", key, raw)
	}
	return d, nil
}

func listVariable(key string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
