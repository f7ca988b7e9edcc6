package config

import (
	"os"
	"strconv"
)

type Config struct {
	Capacity        int
	DataFile        string
	Port            string
	OTelServiceName string
	OTelEndpoint    string
}

func Load() *Config {
	return &Config{
		Capacity:        envOrInt("PARKING_CAPACITY", 7),
		DataFile:        envOr("PARKING_DATA_FILE", "parking_data.txt"),
		Port:            envOr("APP_PORT", "8080"),
		OTelServiceName: envOr("OTEL_SERVICE_NAME", "parking-lot-manager"),
		OTelEndpoint:    envOr("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4318"),
	}
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func envOrInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			return i
		}
	}
	return fallback
}
