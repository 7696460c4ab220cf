package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.App.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.App.Port)
	}
	if cfg.App.Addr() != "0.0.0.0:8080" {
		t.Fatalf("unexpected addr: %s", cfg.App.Addr())
	}
	if cfg.Distribution.Seed != 0 {
		t.Fatalf("expected clock-seeded selector by default, got %d", cfg.Distribution.Seed)
	}
	if cfg.Postgres.MaxConns != 10 || cfg.Postgres.MinConns != 2 {
		t.Fatalf("unexpected pool defaults: %+v", cfg.Postgres)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DISTRIBUTION_RANDOM_SEED", "12345")
	t.Setenv("POSTGRES_RUN_MIGRATIONS", "false")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.App.Port != "9090" {
		t.Fatalf("expected port 9090, got %s", cfg.App.Port)
	}
	if cfg.Distribution.Seed != 12345 {
		t.Fatalf("expected seed 12345, got %d", cfg.Distribution.Seed)
	}
	if cfg.Postgres.RunMigrations {
		t.Fatalf("expected migrations disabled")
	}
	if cfg.Logger.Level != "debug" {
		t.Fatalf("expected debug level, got %s", cfg.Logger.Level)
	}
}

func TestLoad_RejectsMalformedSeed(t *testing.T) {
	t.Setenv("DISTRIBUTION_RANDOM_SEED", "not-a-number")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for malformed seed")
	}
}

func TestRequestTimeout(t *testing.T) {
	app := AppConfig{RequestTimeoutSeconds: 15}
	if app.RequestTimeout().Seconds() != 15 {
		t.Fatalf("unexpected timeout: %v", app.RequestTimeout())
	}
	app.RequestTimeoutSeconds = 0
	if app.RequestTimeout() != 0 {
		t.Fatalf("expected zero timeout for non-positive seconds")
	}
}
