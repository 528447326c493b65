package config

import (
	"fmt"
	"os"
)

// Config holds the configuration for the application.
type Config struct {
	Env          string
	HTTPAddr     string
	DatabasePath string
	JWTSecret    string
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	databasePath := os.Getenv("DATABASE_PATH")
	if databasePath == "" {
		return nil, fmt.Errorf("DATABASE_PATH environment variable not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable not set")
	}

	httpAddr := os.Getenv("HTTP_ADDR")
	if httpAddr == "" {
		httpAddr = ":8080"
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "prod"
	}

	return &Config{
		Env:          env,
		HTTPAddr:     httpAddr,
		DatabasePath: databasePath,
		JWTSecret:    jwtSecret,
	}, nil
}
