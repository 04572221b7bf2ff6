// Package config holds newsdesk service configuration loaded from YAML
// with environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultServerPort      = 8060
	defaultServerTimeout   = 30
	defaultUpstreamTimeout = 15
	defaultSessionTTL      = 12
	defaultRedisAddress    = "localhost:6379"
)

// Duration is a time.Duration that unmarshals from YAML strings like
// "30s" or "12h".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped standard duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

type Config struct {
	Debug    bool           `env:"APP_DEBUG"  yaml:"debug"`
	Server   ServerConfig   `yaml:"server"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Session  SessionConfig  `yaml:"session"`
	Redis    RedisConfig    `yaml:"redis"`
}

type ServerConfig struct {
	Host         string   `env:"SERVER_HOST" yaml:"host"`
	Port         int      `env:"SERVER_PORT" yaml:"port"`
	ReadTimeout  Duration `yaml:"read_timeout"`
	WriteTimeout Duration `yaml:"write_timeout"`
	CORSOrigins  []string `env:"CORS_ORIGINS" yaml:"cors_origins"`
}

// UpstreamConfig describes the external content API the console consumes.
type UpstreamConfig struct {
	BaseURL string   `env:"UPSTREAM_BASE_URL" yaml:"base_url"`
	Timeout Duration `yaml:"timeout"`
}

// SessionConfig controls admin session lifetime.
type SessionConfig struct {
	TTL Duration `yaml:"ttl"`
}

// RedisConfig holds Redis connection configuration for event publishing.
type RedisConfig struct {
	Address  string `env:"REDIS_ADDRESS"        yaml:"address"`
	Password string `env:"REDIS_PASSWORD"       yaml:"password"`
	DB       int    `env:"REDIS_DB"             yaml:"db"`
	Enabled  bool   `env:"REDIS_EVENTS_ENABLED" yaml:"enabled"`
}

func (c *Config) Validate() error {
	if c.Server.Host == "" {
		return errors.New("server.host is required")
	}
	if c.Server.Port <= 0 {
		return errors.New("server.port is required and must be positive")
	}
	if c.Upstream.BaseURL == "" {
		return errors.New("upstream.base_url is required")
	}
	if _, err := url.Parse(c.Upstream.BaseURL); err != nil {
		return fmt.Errorf("upstream.base_url is not a valid URL: %w", err)
	}
	return nil
}

func setDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultServerPort
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = Duration(defaultServerTimeout * time.Second)
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = Duration(defaultServerTimeout * time.Second)
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		cfg.Server.CORSOrigins = []string{
			"http://localhost:3000", // reader frontend
			"http://localhost:3001", // admin frontend
		}
	}
	if cfg.Upstream.Timeout == 0 {
		cfg.Upstream.Timeout = Duration(defaultUpstreamTimeout * time.Second)
	}
	if cfg.Session.TTL == 0 {
		cfg.Session.TTL = Duration(defaultSessionTTL * time.Hour)
	}
	if cfg.Redis.Address == "" {
		cfg.Redis.Address = defaultRedisAddress
	}
}
