package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	// Server
	Port        string
	Environment string

	// CORS
	CORSAllowedOrigins []string

	// Demo data seeded at startup; the store is in-memory and starts empty.
	SeedDemoData bool
}

func Load() (*Config, error) {
	environment := getEnv("ENVIRONMENT", "development")

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		Environment:        environment,
		CORSAllowedOrigins: strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "*"), ","),
		SeedDemoData:       getEnvBool("SEED_DEMO_DATA", environment == "development"),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
