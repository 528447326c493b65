package config

import (
	"os"
	"testing"
)

func TestNewFromEnv(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		t.Setenv("DATABASE_PATH", "/tmp/planifer.db")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("HTTP_ADDR", ":9090")
		t.Setenv("APP_ENV", "dev")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.DatabasePath != "/tmp/planifer.db" {
			t.Errorf("Expected DatabasePath '/tmp/planifer.db', got '%s'", cfg.DatabasePath)
		}
		if cfg.HTTPAddr != ":9090" {
			t.Errorf("Expected HTTPAddr ':9090', got '%s'", cfg.HTTPAddr)
		}
		if cfg.Env != "dev" {
			t.Errorf("Expected Env 'dev', got '%s'", cfg.Env)
		}
	})

	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("DATABASE_PATH", "/tmp/planifer.db")
		t.Setenv("JWT_SECRET", "secret")
		os.Unsetenv("HTTP_ADDR")
		os.Unsetenv("APP_ENV")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.HTTPAddr != ":8080" {
			t.Errorf("Expected default HTTPAddr ':8080', got '%s'", cfg.HTTPAddr)
		}
		if cfg.Env != "prod" {
			t.Errorf("Expected default Env 'prod', got '%s'", cfg.Env)
		}
	})

	t.Run("MissingDatabasePath", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		os.Unsetenv("DATABASE_PATH")

		_, err := NewFromEnv()
		if err == nil {
			t.Fatal("Expected an error for missing DATABASE_PATH, got nil")
		}
		expectedError := "DATABASE_PATH environment variable not set"
		if err.Error() != expectedError {
			t.Errorf("Expected error '%s', got '%s'", expectedError, err.Error())
		}
	})

	t.Run("MissingJWTSecret", func(t *testing.T) {
		t.Setenv("DATABASE_PATH", "/tmp/planifer.db")
		os.Unsetenv("JWT_SECRET")

		_, err := NewFromEnv()
		if err == nil {
			t.Fatal("Expected an error for missing JWT_SECRET, got nil")
		}
	})
}
