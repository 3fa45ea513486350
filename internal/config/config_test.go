package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func isolate(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_NAME", "APP_ENV", "PORT", "LOG_LEVEL", "DATABASE_URL", "REDIS_URL",
		"JWT_SECRET", "REFRESH_SECRET", sessionTTLEnvVar, accessTTLEnvVar, refreshTTLEnvVar,
		signInMaxPerMinEnvVar, shutdownSecondsEnvVar, shutdownDurationEnvVar,
		idemTTLSecondsEnvVar, idemTTLDurEnvVar,
	} {
		t.Setenv(key, "")
	}
	t.Setenv(dotenvPathEnvVar, filepath.Join(t.TempDir(), "missing.env"))
}

func TestLoadDevelopmentDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.IsDev() {
		t.Fatalf("expected development env, got %q", cfg.Env)
	}
	if cfg.SessionTTL != defaultSessionTTL {
		t.Fatalf("expected session ttl %s, got %s", defaultSessionTTL, cfg.SessionTTL)
	}
	if cfg.JWTSecret == "" || cfg.RefreshSecret == "" {
		t.Fatal("expected development secrets to be filled in")
	}
	if cfg.Address() != ":8080" {
		t.Fatalf("unexpected address %s", cfg.Address())
	}
}

func TestLoadProductionRequiresBackends(t *testing.T) {
	isolate(t)
	t.Setenv("APP_ENV", "production")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without DATABASE_URL")
	}

	t.Setenv("DATABASE_URL", "postgres://localhost/carelink")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	if _, err := Load(); err == nil {
		t.Fatal("expected error without token secrets")
	}

	t.Setenv("JWT_SECRET", "a")
	t.Setenv("REFRESH_SECRET", "b")
	if _, err := Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
}

func TestLoadDurations(t *testing.T) {
	isolate(t)
	t.Setenv(shutdownSecondsEnvVar, "3")
	t.Setenv(sessionTTLEnvVar, "5m")
	t.Setenv(signInMaxPerMinEnvVar, "9")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ShutdownPeriod != 3*time.Second {
		t.Fatalf("expected 3s shutdown, got %s", cfg.ShutdownPeriod)
	}
	if cfg.SessionTTL != 5*time.Minute {
		t.Fatalf("expected 5m session ttl, got %s", cfg.SessionTTL)
	}
	if cfg.SignInMaxPerMin != 9 {
		t.Fatalf("expected 9 sign-ins per minute, got %d", cfg.SignInMaxPerMin)
	}

	t.Setenv(sessionTTLEnvVar, "soon")
	if _, err := Load(); err == nil {
		t.Fatal("expected invalid duration error")
	}
}

func TestLoadReadsDotenv(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("APP_NAME=FromDotenv\n"), 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}
	t.Setenv(dotenvPathEnvVar, path)
	// godotenv does not override variables that are already present, even empty ones.
	os.Unsetenv("APP_NAME")
	t.Cleanup(func() { os.Unsetenv("APP_NAME") })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AppName != "FromDotenv" {
		t.Fatalf("expected app name from dotenv, got %q", cfg.AppName)
	}
}
