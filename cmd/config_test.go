package cmd_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"foodorder/cmd"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"ORDER_EXPIRY_THRESHOLD", "ORDER_SWEEP_INTERVAL", "KAFKA_BROKERS", "HTTP_PORT", "JWT_SECRET"} {
		t.Setenv(key, "")
	}

	cfg, err := cmd.LoadConfig(filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, 20*time.Minute, cfg.OrderExpiryThreshold)
	assert.Equal(t, 20*time.Minute, cfg.OrderSweepInterval)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Empty(t, cfg.JWTSecret)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("ORDER_EXPIRY_THRESHOLD", "30m")
	t.Setenv("ORDER_SWEEP_INTERVAL", "1m30s")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")

	cfg, err := cmd.LoadConfig(filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, cfg.OrderExpiryThreshold)
	assert.Equal(t, 90*time.Second, cfg.OrderSweepInterval)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
}

func TestLoadConfig_EnvFile(t *testing.T) {
	// the file only fills variables that are not set at all
	t.Setenv("DB_NAME", "")
	require.NoError(t, os.Unsetenv("DB_NAME"))
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("DB_NAME=orders_from_file\n"), 0o600))

	cfg, err := cmd.LoadConfig(envFile)

	require.NoError(t, err)
	assert.Equal(t, "orders_from_file", cfg.DBName)
}

func TestLoadConfig_InvalidDurations(t *testing.T) {
	t.Setenv("ORDER_EXPIRY_THRESHOLD", "soon")
	t.Setenv("ORDER_SWEEP_INTERVAL", "-5m")

	_, err := cmd.LoadConfig(filepath.Join(t.TempDir(), "missing.env"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ORDER_EXPIRY_THRESHOLD")
	assert.Contains(t, err.Error(), "ORDER_SWEEP_INTERVAL")
}
