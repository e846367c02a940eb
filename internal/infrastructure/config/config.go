// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the scanner
type Config struct {
	// App
	AppVersion string
	LogLevel   string

	// OAuth
	CredentialsFile string
	TokenFile       string

	// Gmail
	GmailQPS     float64
	FetchRetries int

	// Filters
	PassengerNames []string

	// Airline reference data (optional Postgres table)
	AirlinesDSN string

	// Output
	OutputFile string
	ReportFile string

	// Metrics (optional; empty disables the endpoint)
	MetricsPort string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion: getEnv("APP_VERSION", "1.0.0"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		CredentialsFile: getEnv("CREDENTIALS_FILE", "credentials.json"),
		TokenFile:       getEnv("TOKEN_FILE", "token.json"),

		GmailQPS:     getEnvAsFloat("GMAIL_QPS", 5),
		FetchRetries: getEnvAsInt("FETCH_RETRIES", 3),

		PassengerNames: getEnvAsList("PASSENGER_NAMES"),

		AirlinesDSN: getEnv("AIRLINES_DSN", ""),

		OutputFile: getEnv("OUTPUT_FILE", "flights.csv"),
		ReportFile: getEnv("REPORT_FILE", "flight_emails_verification.txt"),

		MetricsPort: getEnv("METRICS_PORT", ""),
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return nil
	}

	var values []string
	for _, part := range strings.Split(valueStr, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, strings.ToLower(part))
		}
	}
	return values
}
