package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"DB_DRIVER", "PORT", "TOKEN_TTL", "JWT_SECRET", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.DBDriver != "postgres" {
		t.Fatalf("expected postgres driver, got %q", cfg.DBDriver)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected port 8080, got %q", cfg.Port)
	}
	if cfg.TokenTTL != time.Hour {
		t.Fatalf("expected 1h token ttl, got %s", cfg.TokenTTL)
	}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected missing JWT secret to fail validation")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")

	cfg := Load()
	if cfg.DBDriver != "sqlite" {
		t.Fatalf("unexpected driver %q", cfg.DBDriver)
	}
	if cfg.TokenTTL != 30*time.Minute {
		t.Fatalf("unexpected ttl %s", cfg.TokenTTL)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://b.test" {
		t.Fatalf("unexpected origins %v", cfg.AllowedOrigins)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_NAME", "from_env")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "port: \"9090\"\ndb_name: from_file\njwt_secret: file-secret\ncors_allowed_origins:\n  - http://admin.test\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if cfg.Port != "9090" {
		t.Fatalf("expected port from file, got %q", cfg.Port)
	}
	if cfg.DBName != "from_env" {
		t.Fatalf("expected env to override file, got %q", cfg.DBName)
	}
	if cfg.JWTSecret != "file-secret" {
		t.Fatalf("unexpected secret %q", cfg.JWTSecret)
	}
	if len(cfg.AllowedOrigins) != 1 {
		t.Fatalf("unexpected origins %v", cfg.AllowedOrigins)
	}
}

func TestValidateRejectsUnknownDriver(t *testing.T) {
	cfg := Defaults()
	cfg.JWTSecret = "x"
	cfg.DBDriver = "mysql"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected unsupported driver error")
	}
}
