// Package config loads server configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all server settings.
type Config struct {
	// Port is the HTTP listen port.
	Port int

	// DBPath is the SQLite database file path.
	DBPath string

	// RatesBaseURL overrides the exchange-rate endpoint (tests, self-hosted
	// mirrors). Empty means the public default.
	RatesBaseURL string

	// PaymentSecret signs simulated payment-gateway callbacks.
	PaymentSecret string
}

// Load reads configuration from the environment. A .env file is applied
// first when present; missing files are not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port := 5001
	if raw := os.Getenv("PORT"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil || p <= 0 {
			return nil, fmt.Errorf("invalid PORT %q", raw)
		}
		port = p
	}

	return &Config{
		Port:          port,
		DBPath:        getEnv("DB_PATH", "./data/splitpal.db"),
		RatesBaseURL:  os.Getenv("RATES_BASE_URL"),
		PaymentSecret: getEnv("PAYMENT_SECRET", "splitpal-dev-secret"),
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
