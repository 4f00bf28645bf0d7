package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

type envTestConfig struct {
	Port int `env:"ACCOUNT_BACKEND_TEST_PORT" envDefault:"123"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("ACCOUNT_BACKEND_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestLoadServerDefaults(t *testing.T) {
	for _, key := range []string{
		"HTTP_ADDR", "HTTP_READ_TIMEOUT", "HTTP_WRITE_TIMEOUT", "GIN_MODE",
		"LOG_LEVEL", "PASSWORD_HASH_COST", "TOKEN_CACHE_TTL",
	} {
		// t.Setenv restores the original value after the test.
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Addr != ":8080" {
		t.Errorf("expected Addr ':8080', got %q", cfg.Addr)
	}
	if cfg.ReadTimeout != 10*time.Second || cfg.WriteTimeout != 10*time.Second {
		t.Errorf("expected 10s timeouts, got %v/%v", cfg.ReadTimeout, cfg.WriteTimeout)
	}
	if cfg.GinMode != "release" {
		t.Errorf("expected GinMode 'release', got %q", cfg.GinMode)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected LogLevel 'info', got %q", cfg.LogLevel)
	}
	if cfg.PasswordHashCost != 10 {
		t.Errorf("expected PasswordHashCost 10, got %d", cfg.PasswordHashCost)
	}
	if cfg.TokenCacheTTL != 24*time.Hour {
		t.Errorf("expected TokenCacheTTL 24h, got %v", cfg.TokenCacheTTL)
	}
}

func TestLoadServerOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("PASSWORD_HASH_COST", "12")
	t.Setenv("TOKEN_CACHE_TTL", "30m")

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Addr != ":9090" {
		t.Errorf("expected Addr ':9090', got %q", cfg.Addr)
	}
	if cfg.PasswordHashCost != 12 {
		t.Errorf("expected PasswordHashCost 12, got %d", cfg.PasswordHashCost)
	}
	if cfg.TokenCacheTTL != 30*time.Minute {
		t.Errorf("expected TokenCacheTTL 30m, got %v", cfg.TokenCacheTTL)
	}
}
