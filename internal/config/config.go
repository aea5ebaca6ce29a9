package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type DatabaseType string

const (
	MongoDB DatabaseType = "mongodb"
	SQLite  DatabaseType = "sqlite"
)

const (
	defaultPort         = "3000"
	defaultDatabaseName = "exercise_tracker"
	defaultRateBurst    = 20
)

type Config struct {
	Port         string
	DatabaseType DatabaseType
	DatabaseName string
	// MongoDB config
	MongoURI string
	// SQLite config
	SQLitePath string
	// Logging
	LogLevel  string
	LogFormat string
	// HTTP
	CORSAllowedOrigin string
	RateLimitRPS      float64
	RateLimitBurst    int
}

// LoadConfig reads configuration from an optional .env file and the
// process environment. Variables already set in the environment win over
// the .env file.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}
	return FromEnv()
}

// FromEnv builds the configuration from the process environment only
func FromEnv() (*Config, error) {
	dbType := os.Getenv("DATABASE_TYPE")
	if dbType == "" {
		dbType = string(MongoDB)
	}

	config := &Config{
		Port:              getEnv("PORT", defaultPort),
		DatabaseType:      DatabaseType(dbType),
		DatabaseName:      getEnv("DATABASE_NAME", defaultDatabaseName),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "text"),
		CORSAllowedOrigin: getEnv("CORS_ALLOWED_ORIGIN", "*"),
		RateLimitBurst:    defaultRateBurst,
	}

	if _, err := strconv.Atoi(config.Port); err != nil {
		return nil, fmt.Errorf("PORT must be numeric: %q", config.Port)
	}

	if raw := os.Getenv("RATE_LIMIT_RPS"); raw != "" {
		rps, err := strconv.ParseFloat(raw, 64)
		if err != nil || rps < 0 {
			return nil, fmt.Errorf("RATE_LIMIT_RPS must be a non-negative number: %q", raw)
		}
		config.RateLimitRPS = rps
	}

	if raw := os.Getenv("RATE_LIMIT_BURST"); raw != "" {
		burst, err := strconv.Atoi(raw)
		if err != nil || burst <= 0 {
			return nil, fmt.Errorf("RATE_LIMIT_BURST must be a positive integer: %q", raw)
		}
		config.RateLimitBurst = burst
	}

	// Configure based on database type
	switch config.DatabaseType {
	case MongoDB:
		mongoURI := os.Getenv("MONGO_URI")
		if mongoURI == "" {
			return nil, fmt.Errorf("MONGO_URI is not set")
		}
		config.MongoURI = mongoURI
	case SQLite:
		sqlitePath := os.Getenv("SQLITE_PATH")
		if sqlitePath == "" {
			// Default to a data directory in the current directory
			sqlitePath = filepath.Join("data", fmt.Sprintf("%s.db", config.DatabaseName))
		}
		config.SQLitePath = sqlitePath
	default:
		return nil, fmt.Errorf("unsupported DATABASE_TYPE: %s", dbType)
	}

	return config, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
