package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort string

	// Database: sqlite (default), postgres or mysql
	DatabaseType string
	DatabasePath string // sqlite file path
	DatabaseURL  string // postgres/mysql DSN
	QueryTimeout time.Duration

	MigrationsPath string

	// Auth tokens
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	// OAuth providers (the mobile client sends the authorization code)
	GoogleClientID     string
	GoogleClientSecret string
	AppleClientID      string
	AppleClientSecret  string
	OAuthRedirectURL   string

	// Report digest email via SES; disabled when FromEmail is empty
	AWSRegion string
	FromEmail string
	FromName  string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first if present.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	return &Config{
		ServerPort:   getEnv("PORT", "8080"),
		DatabaseType: getEnv("DATABASE_TYPE", "sqlite"),
		DatabasePath: getEnv("DB_PATH", "./currimap.db"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		QueryTimeout: getDurationEnv("QUERY_TIMEOUT", 5*time.Second),

		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),

		JWTSecret:       getEnv("JWT_SECRET", "dev-secret-change-me"),
		AccessTokenTTL:  getDurationEnv("ACCESS_TOKEN_TTL", 1*time.Hour),
		RefreshTokenTTL: getDurationEnv("REFRESH_TOKEN_TTL", 30*24*time.Hour),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		AppleClientID:      getEnv("APPLE_CLIENT_ID", ""),
		AppleClientSecret:  getEnv("APPLE_CLIENT_SECRET", ""),
		OAuthRedirectURL:   getEnv("OAUTH_REDIRECT_URL", ""),

		AWSRegion: getEnv("AWS_REGION", "us-east-1"),
		FromEmail: getEnv("SES_FROM_EMAIL", ""),
		FromName:  getEnv("SES_FROM_NAME", "CurriMap"),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationEnv reads a duration environment variable, accepting plain
// seconds ("30") or Go duration syntax ("5s", "1h")
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	log.Printf("Invalid duration for %s: %q, using default %s", key, value, defaultValue)
	return defaultValue
}
