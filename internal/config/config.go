package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Env      string         `yaml:"env" env:"STAFFING_ENV" envDefault:"development"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Redis    RedisConfig    `yaml:"redis"`
	Audit    AuditConfig    `yaml:"audit"`
}

type DatabaseConfig struct {
	// Driver is "sqlite" or "postgres".
	Driver string `yaml:"driver" env:"STAFFING_DATABASE_DRIVER" envDefault:"sqlite"`
	DSN    string `yaml:"dsn" env:"STAFFING_DATABASE_DSN" envDefault:"staffing.db"`
	// MigrateOnStart applies pending migrations when a command opens the database.
	MigrateOnStart bool `yaml:"migrate_on_start" env:"STAFFING_MIGRATE_ON_START" envDefault:"true"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"STAFFING_LOG_LEVEL" envDefault:"info"`
	Format string `yaml:"format" env:"STAFFING_LOG_FORMAT" envDefault:"json"`
}

// RedisConfig enables the reference-data cache when Addr is set.
type RedisConfig struct {
	Addr     string        `yaml:"addr" env:"STAFFING_REDIS_ADDR"`
	Password string        `yaml:"password" env:"STAFFING_REDIS_PASSWORD"`
	DB       int           `yaml:"db" env:"STAFFING_REDIS_DB" envDefault:"0"`
	TTL      time.Duration `yaml:"ttl" env:"STAFFING_REDIS_TTL" envDefault:"10m"`
}

type AuditConfig struct {
	// Schedule is a cron spec; descriptors such as "@every 1h" are accepted.
	Schedule string `yaml:"schedule" env:"STAFFING_AUDIT_SCHEDULE" envDefault:"@every 1h"`
}

// LoadConfig reads .env (when present), then the environment, then the YAML
// file at path. Values in the file win over the environment.
func LoadConfig(path string) (*Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil && err != io.EOF {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch strings.ToLower(c.Database.Driver) {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("database.driver must be sqlite or postgres, got %q", c.Database.Driver)
	}
	if strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text, got %q", c.Log.Format)
	}
	if c.Redis.Addr != "" && c.Redis.TTL <= 0 {
		return fmt.Errorf("redis.ttl must be positive")
	}
	if c.Audit.Schedule != "" {
		if _, err := cron.ParseStandard(c.Audit.Schedule); err != nil {
			return fmt.Errorf("audit.schedule: %w", err)
		}
	}
	return nil
}

// IsDevelopment reports whether the configured environment is development.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// Logger builds the process logger writing to w.
func (l LogConfig) Logger(w io.Writer) *slog.Logger {
	level, err := parseLevel(l.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(l.Format, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return level, fmt.Errorf("log.level: unknown level %q", s)
	}
	return level, nil
}
