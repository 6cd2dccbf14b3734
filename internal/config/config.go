package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/terraincognita07/cyclejournal/internal/security"
)

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

// Config holds all runtime settings. Values come from an optional YAML file and are
// overridden by environment variables.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Analytics AnalyticsConfig `yaml:"analytics"`
	Log       LogConfig       `yaml:"log"`

	Timezone    string `yaml:"timezone" env:"TZ" env-default:"UTC"`
	DefaultUser string `yaml:"default_user" env:"DEFAULT_USER" env-default:"default"`

	location *time.Location
}

type ServerConfig struct {
	BindAddr    string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"0.0.0.0"`
	Port        string `yaml:"port" env:"PORT" env-default:"8000"`
	CORSOrigins string `yaml:"cors_origins" env:"CORS_ORIGINS" env-default:"*"`
}

type DatabaseConfig struct {
	Path string `yaml:"path" env:"DB_PATH" env-default:"data/cyclejournal.db"`
}

type AuthConfig struct {
	// SecretKey signs bearer tokens. Secrets are only read from the environment.
	SecretKey string `yaml:"-" env:"SECRET_KEY"`
	// Required rejects requests that do not carry a bearer token.
	Required bool `yaml:"required" env:"AUTH_REQUIRED" env-default:"false"`
}

type AnalyticsConfig struct {
	CycleLength int `yaml:"cycle_length" env:"CYCLE_LENGTH" env-default:"28"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Mode  string `yaml:"mode" env:"LOG_MODE" env-default:"development"`
}

// Load reads path when it exists, then applies environment overrides and validates.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	path = strings.TrimSpace(path)
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, cfg); err != nil {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
			return cfg, cfg.validate()
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("stat config %s: %w", path, err)
		}
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return fmt.Errorf("invalid PORT %q", c.Server.Port)
	}
	if strings.TrimSpace(c.Database.Path) == "" {
		return errors.New("DB_PATH must not be empty")
	}
	if c.Analytics.CycleLength < 20 || c.Analytics.CycleLength > 45 {
		return fmt.Errorf("CYCLE_LENGTH must be between 20 and 45, got %d", c.Analytics.CycleLength)
	}
	c.DefaultUser = strings.TrimSpace(c.DefaultUser)
	if c.DefaultUser == "" {
		return errors.New("DEFAULT_USER must not be empty")
	}

	location, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("invalid TZ %q: %w", c.Timezone, err)
	}
	c.location = location

	if c.Auth.Required || c.Auth.SecretKey != "" {
		if err := validateSecretKey(c.Auth.SecretKey); err != nil {
			return err
		}
	}
	return nil
}

func validateSecretKey(secret string) error {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return errors.New("SECRET_KEY is required when AUTH_REQUIRED is enabled")
	}
	if _, insecure := insecureSecretKeys[strings.ToLower(secret)]; insecure {
		return errors.New("SECRET_KEY uses an insecure placeholder value")
	}
	if len(secret) < security.MinSecretKeyLength {
		return fmt.Errorf("SECRET_KEY must be at least %d characters", security.MinSecretKeyLength)
	}
	return nil
}

func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

func (c *Config) ListenAddr() string {
	return c.Server.BindAddr + ":" + c.Server.Port
}
