package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	os.Clearenv()
	cfg := Load()

	assert.Equal(t, 7, cfg.Capacity)
	assert.Equal(t, "parking_data.txt", cfg.DataFile)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "parking-lot-manager", cfg.OTelServiceName)
	assert.Equal(t, "http://localhost:4318", cfg.OTelEndpoint)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PARKING_CAPACITY", "12")
	t.Setenv("PARKING_DATA_FILE", "/tmp/lot.txt")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("OTEL_SERVICE_NAME", "lot-test")

	cfg := Load()

	assert.Equal(t, 12, cfg.Capacity)
	assert.Equal(t, "/tmp/lot.txt", cfg.DataFile)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "lot-test", cfg.OTelServiceName)
}

func TestInvalidCapacityFallsBackToDefault(t *testing.T) {
	t.Setenv("PARKING_CAPACITY", "not-a-number")
	assert.Equal(t, 7, Load().Capacity)

	t.Setenv("PARKING_CAPACITY", "-3")
	assert.Equal(t, 7, Load().Capacity)
}
