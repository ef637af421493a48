package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config collects every tunable the service reads from the environment.
type Config struct {
	Port string

	Database DatabaseConfig

	RedisAddr     string
	RedisPassword string

	// Payment gateway settings. SecretKey is the server-held secret used
	// for HTTP Basic authentication against the confirm endpoint.
	GatewayBaseURL string
	GatewaySecret  string
	GatewayTimeout time.Duration

	JWTSecret []byte
}

// DatabaseConfig contains PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string
}

// Load reads configuration from environment variables with development
// fallbacks. The JWT secret has no fallback outside of development use.
func Load() (*Config, error) {
	timeoutMS, err := strconv.Atoi(getEnv("GATEWAY_TIMEOUT_MS", "10000"))
	if err != nil || timeoutMS <= 0 {
		return nil, errors.New("GATEWAY_TIMEOUT_MS must be a positive integer")
	}

	return &Config{
		Port: getEnv("PORT", "8080"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Database: getEnv("DB_NAME", "shopping_mall"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		GatewayBaseURL: getEnv("TOSS_BASE_URL", "https://api.tosspayments.com"),
		GatewaySecret:  os.Getenv("TOSS_SECRET_KEY"),
		GatewayTimeout: time.Duration(timeoutMS) * time.Millisecond,
		JWTSecret:      []byte(getEnv("JWT_SECRET", "dev-secret-key")),
	}, nil
}

// getEnv gets an environment variable with a fallback.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
