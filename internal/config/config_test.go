package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/garnizeh/staffing/internal/config"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Database.DSN != "staffing.db" {
		t.Fatalf("unexpected database defaults: %+v", cfg.Database)
	}
	if cfg.Redis.TTL != 10*time.Minute || cfg.Redis.Addr != "" {
		t.Fatalf("unexpected redis defaults: %+v", cfg.Redis)
	}
	if cfg.Audit.Schedule != "@every 1h" {
		t.Fatalf("unexpected audit schedule %q", cfg.Audit.Schedule)
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("expected development env by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadConfig_EnvAndFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("STAFFING_DATABASE_DRIVER", "postgres")
	t.Setenv("STAFFING_DATABASE_DSN", "postgres://localhost/staffing")
	t.Setenv("STAFFING_LOG_LEVEL", "debug")

	cfgPath := filepath.Join(dir, "config.yaml")
	y := "log:\n  format: text\nredis:\n  addr: localhost:6379\n  ttl: 30s\n"
	if err := os.WriteFile(cfgPath, []byte(y), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Database.Driver != "postgres" || cfg.Database.DSN != "postgres://localhost/staffing" {
		t.Fatalf("env not applied: %+v", cfg.Database)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Fatalf("unexpected log config: %+v", cfg.Log)
	}
	if cfg.Redis.Addr != "localhost:6379" || cfg.Redis.TTL != 30*time.Second {
		t.Fatalf("file not applied: %+v", cfg.Redis)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("STAFFING_AUDIT_SCHEDULE=@daily\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("STAFFING_AUDIT_SCHEDULE") })

	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Audit.Schedule != "@daily" {
		t.Fatalf("expected schedule from .env, got %q", cfg.Audit.Schedule)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := config.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *config.Config {
		return &config.Config{
			Database: config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:"},
			Log:      config.LogConfig{Level: "info", Format: "json"},
			Audit:    config.AuditConfig{Schedule: "*/5 * * * *"},
		}
	}
	if err := valid().Validate(); err != nil {
		t.Fatalf("expected valid config: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"driver", func(c *config.Config) { c.Database.Driver = "mysql" }},
		{"dsn", func(c *config.Config) { c.Database.DSN = " " }},
		{"level", func(c *config.Config) { c.Log.Level = "loud" }},
		{"format", func(c *config.Config) { c.Log.Format = "xml" }},
		{"schedule", func(c *config.Config) { c.Audit.Schedule = "every now and then" }},
		{"redis ttl", func(c *config.Config) { c.Redis.Addr = "localhost:6379"; c.Redis.TTL = 0 }},
	}
	for _, tt := range tests {
		cfg := valid()
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected Validate to fail", tt.name)
		}
	}
}

func TestLogConfig_Logger(t *testing.T) {
	var buf bytes.Buffer
	logger := config.LogConfig{Level: "warn", Format: "text"}.Logger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "msg=shown") || !strings.Contains(out, "k=v") {
		t.Fatalf("unexpected text output: %q", out)
	}

	buf.Reset()
	config.LogConfig{Level: "debug", Format: "json"}.Logger(&buf).Debug("hello")
	if !strings.Contains(buf.String(), `"msg":"hello"`) {
		t.Fatalf("expected json output, got %q", buf.String())
	}
}
