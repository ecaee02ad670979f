package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
http:
  address: ":8080"
  swagger_dir: "docs/swagger"
database:
  host: "localhost"
  port: 5432
  user: "ng"
  password: "secret"
  name: "neighbourgood"
  ssl_mode: "disable"
redis:
  addr: "localhost:6379"
kafka:
  brokers: ["localhost:9092"]
  booking_topic: "bookings"
  notifications_topic: "notifications"
  group_id: "booking-worker"
booking:
  resource_cache_ttl_seconds: 60
worker:
  reminder_sweep_hours: 24
`

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 60, cfg.Booking.ResourceCacheTTLSeconds)
	assert.Equal(t, "host=localhost port=5432 user=ng password=secret dbname=neighbourgood sslmode=disable", cfg.Database.DSN())
}

func TestLoadConfig_envOverride(t *testing.T) {
	t.Setenv("NG_DATABASE_HOST", "db.internal")
	t.Setenv("NG_HTTP_ADDRESS", ":9090")

	cfg, err := LoadConfig(writeConfig(t))
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, ":9090", cfg.HTTP.Address)
	assert.Equal(t, "ng", cfg.Database.User, "untouched fields keep file values")
}

func TestLoadConfig_missingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
