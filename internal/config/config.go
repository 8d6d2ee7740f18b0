package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	Environment string
	DBUser      string
	DBPassword  string
	DBHost      string
	DBPort      string
	DBName      string

	// AppAddress is the system's own ledger account; burns must be
	// addressed to it and emitted tokens flow out of it.
	AppAddress string

	// OwnerAddress is the deployment owner recorded at create time.
	OwnerAddress string

	// DevMode swaps the Postgres store for the in-memory store.
	DevMode bool
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "text"),
		Environment:  getEnv("ENVIRONMENT", "dev"),
		DBUser:       getEnv("DB_USER", "postgres"),
		DBPassword:   getEnv("DB_PASSWORD", "postgres"),
		DBHost:       getEnv("DB_HOST", "localhost"),
		DBPort:       getEnv("DB_PORT", "5432"),
		DBName:       getEnv("DB_NAME", "growpod"),
		AppAddress:   getEnv("APP_ADDRESS", ""),
		OwnerAddress: getEnv("OWNER_ADDRESS", ""),
		DevMode:      getEnv("DEV_MODE", "false") == "true",
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if cfg.AppAddress == "" {
		return nil, fmt.Errorf("APP_ADDRESS environment variable must be set")
	}
	if cfg.OwnerAddress == "" {
		return nil, fmt.Errorf("OWNER_ADDRESS environment variable must be set")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
