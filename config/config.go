// Package config loads service configuration and opens the backing connections.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreMongo  = "mongo"
)

// Config holds all configuration for the application
type Config struct {
	Port     int    `yaml:"port" env:"PORT"`
	Env      string `yaml:"env" env:"ENV"`
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`

	StoreBackend string `yaml:"store_backend" env:"STORE_BACKEND"`
	StorageKey   string `yaml:"storage_key" env:"STORAGE_KEY"`

	MongoURI      string `yaml:"mongodb_uri" env:"MONGODB_URI"`
	MongoDatabase string `yaml:"mongodb_database" env:"MONGODB_DATABASE"`

	RedisAddress  string `yaml:"redis_address" env:"REDIS_ADDRESS"`
	RedisPassword string `yaml:"redis_password" env:"REDIS_PASSWORD"`

	// Submissions per client per 24h; 0 disables the limiter.
	IssueLimitPerDay int    `yaml:"issue_limit_per_day" env:"ISSUE_LIMIT_PER_DAY"`
	IssueLimitPrefix string `yaml:"issue_limit_prefix" env:"REDIS_QUEUE_FOR_ISSUE_LIMIT"`

	EventsEnabled bool   `yaml:"events_enabled" env:"EVENTS_ENABLED"`
	EventStream   string `yaml:"event_stream" env:"EVENT_STREAM"`

	CORSOrigins []string `yaml:"cors_origins" env:"CORS_ORIGINS" envSeparator:","`

	ServiceName  string `yaml:"service_name" env:"SERVICE_NAME"`
	OTLPEndpoint string `yaml:"otlp_endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Port:             8080,
		Env:              "production",
		LogLevel:         "info",
		StoreBackend:     StoreMemory,
		StorageKey:       "civiclens_issues",
		MongoDatabase:    "civiclens",
		IssueLimitPerDay: 10,
		IssueLimitPrefix: "civiclens:issue_limit",
		EventStream:      "issue-events",
		CORSOrigins:      []string{"*"},
		ServiceName:      "civiclens",
	}
}

// Load applies, in order: defaults, the YAML file named by CIVICLENS_CONFIG_FILE,
// a .env file, and the process environment.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CIVICLENS_CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	// a missing .env is normal outside development
	_ = godotenv.Load()

	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, "parsing environment")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading config file %s", path)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return errors.Wrapf(err, "parsing config file %s", path)
	}
	return nil
}

func (c *Config) Validate() error {
	c.StoreBackend = strings.ToLower(strings.TrimSpace(c.StoreBackend))

	switch c.StoreBackend {
	case StoreMemory:
	case StoreRedis:
		if c.RedisAddress == "" {
			return errors.Errorf("store backend %q needs REDIS_ADDRESS", c.StoreBackend)
		}
	case StoreMongo:
		if c.MongoURI == "" {
			return errors.Errorf("store backend %q needs MONGODB_URI", c.StoreBackend)
		}
	default:
		return errors.Errorf("unknown store backend %q", c.StoreBackend)
	}

	if c.EventsEnabled && c.RedisAddress == "" {
		return errors.New("events need REDIS_ADDRESS")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return errors.Errorf("invalid port %d", c.Port)
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
