package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"finchpay/config"
)

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("WEBHOOK_SECRET", "top-secret")
	t.Setenv("DB_DSN", "user:pass@tcp(localhost:3306)/finchpay")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("REDIS_HOST", "10.0.0.9")

	cfg, err := config.Load(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ServerPort != 9090 {
		t.Fatalf("port = %d, want 9090", cfg.ServerPort)
	}
	if cfg.WebhookSecret != "top-secret" {
		t.Fatalf("secret not picked up from environment")
	}
	if cfg.DBDSN != "user:pass@tcp(localhost:3306)/finchpay" {
		t.Fatalf("dsn not picked up from environment")
	}
	if cfg.RedisHost != "10.0.0.9" {
		t.Fatalf("redis host not picked up from environment: %q", cfg.RedisHost)
	}
	// Defaults fill in everything not set explicitly.
	if cfg.Env != "development" {
		t.Fatalf("env = %q, want development", cfg.Env)
	}
	if cfg.RateLimit != 300 || cfg.RateWindow() != time.Minute {
		t.Fatalf("rate limit defaults wrong: %d per %s", cfg.RateLimit, cfg.RateWindow())
	}
	if cfg.OutboxPollInterval() != 5*time.Second {
		t.Fatalf("outbox poll default wrong: %s", cfg.OutboxPollInterval())
	}
	if cfg.ReadTimeout() != 10*time.Second || cfg.WriteTimeout() != 10*time.Second {
		t.Fatalf("timeout defaults wrong: read %s, write %s", cfg.ReadTimeout(), cfg.WriteTimeout())
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	content := "WEBHOOK_SECRET=file-secret\nDB_DSN=dsn-from-file\nSERVER_PORT=8081\nENV=production\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.WebhookSecret != "file-secret" || cfg.DBDSN != "dsn-from-file" {
		t.Fatalf("file values not loaded: %+v", cfg.Redact())
	}
	if cfg.Env != "production" {
		t.Fatalf("env = %q, want production", cfg.Env)
	}
}

func TestLoadRejectsMissingSecret(t *testing.T) {
	t.Setenv("DB_DSN", "dsn")
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("WEBHOOK_SECRET", "")

	if _, err := config.Load(t.TempDir()); err == nil {
		t.Fatal("expected error for missing webhook secret")
	}
}

func TestLoadRejectsMissingDSN(t *testing.T) {
	t.Setenv("WEBHOOK_SECRET", "s")
	t.Setenv("DB_DSN", "")

	if _, err := config.Load(t.TempDir()); err == nil {
		t.Fatal("expected error for missing database DSN")
	}
}

func TestRedactHidesSecrets(t *testing.T) {
	cfg := &config.Config{
		WebhookSecret: "hunter2",
		DBDSN:         "user:hunter2@tcp(db)/x",
		RedisPassword: "hunter2",
		ServerPort:    8080,
	}
	r := cfg.Redact()
	if r.WebhookSecret == "hunter2" || r.DBDSN != "****" || r.RedisPassword != "****" {
		t.Fatalf("secrets leaked: %+v", r)
	}
	if cfg.WebhookSecret != "hunter2" {
		t.Fatal("Redact mutated the original config")
	}
}
