package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Session store backends
const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
	StoreMemory   = "memory"
)

// DefaultWhatsAppPhone receives checkout handoffs when none is configured
const DefaultWhatsAppPhone = "573155230570"

// Config holds the storefront settings
type Config struct {
	Env  string `yaml:"env"`
	Port string `yaml:"port"`
	// PublicBaseURL is where this process is reachable, used by the PDF export
	PublicBaseURL string `yaml:"public_base_url"`

	API      APIConfig      `yaml:"api"`
	Session  SessionConfig  `yaml:"session"`
	Checkout CheckoutConfig `yaml:"checkout"`
	Images   ImagesConfig   `yaml:"images"`
}

// APIConfig points at the remote inventory API
type APIConfig struct {
	BaseURL         string        `yaml:"base_url"`
	Timeout         time.Duration `yaml:"timeout"`
	BreakerFailures uint32        `yaml:"breaker_failures"`
	BreakerCooldown time.Duration `yaml:"breaker_cooldown"`
}

// SessionConfig selects where the session token and user are persisted
type SessionConfig struct {
	Store       string `yaml:"store"`
	SQLitePath  string `yaml:"sqlite_path"`
	DatabaseURL string `yaml:"database_url"`
	RedisURL    string `yaml:"redis_url"`
	RedisPrefix string `yaml:"redis_prefix"`
}

// CheckoutConfig configures the WhatsApp handoff
type CheckoutConfig struct {
	WhatsAppPhone string `yaml:"whatsapp_phone"`
}

// ImagesConfig configures image staging
type ImagesConfig struct {
	Optimize bool `yaml:"optimize"`
	// DriveCredentials is a Service Account JSON file. Drive import is off when empty.
	DriveCredentials string `yaml:"drive_credentials"`
}

// DefaultConfig returns the settings used when nothing is configured
func DefaultConfig() *Config {
	return &Config{
		Env:           "development",
		Port:          "8080",
		PublicBaseURL: "http://localhost:8080",
		API: APIConfig{
			BaseURL:         "http://localhost:3000/api",
			Timeout:         30 * time.Second,
			BreakerFailures: 5,
			BreakerCooldown: 10 * time.Second,
		},
		Session: SessionConfig{
			Store:       StoreSQLite,
			SQLitePath:  "princegaming.db",
			RedisURL:    "redis://localhost:6379/0",
			RedisPrefix: "princegaming",
		},
		Checkout: CheckoutConfig{WhatsAppPhone: DefaultWhatsAppPhone},
		Images:   ImagesConfig{Optimize: true},
	}
}

// Load reads the YAML file at path over the defaults and applies environment overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	setString(&c.Env, "ENV")
	setString(&c.Port, "PORT")
	// PORT from hosting platforms may come with a leading colon
	c.Port = strings.TrimPrefix(c.Port, ":")
	setString(&c.PublicBaseURL, "PUBLIC_BASE_URL")
	setString(&c.API.BaseURL, "API_BASE_URL")
	setString(&c.Session.Store, "SESSION_STORE")
	setString(&c.Session.SQLitePath, "SESSION_SQLITE_PATH")
	setString(&c.Session.DatabaseURL, "DATABASE_URL")
	setString(&c.Session.RedisURL, "REDIS_URL")
	setString(&c.Checkout.WhatsAppPhone, "WHATSAPP_PHONE")
	setString(&c.Images.DriveCredentials, "GOOGLE_APPLICATION_CREDENTIALS")

	if v := os.Getenv("API_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid API_TIMEOUT %q: %w", v, err)
		}
		c.API.Timeout = d
	}
	if v := os.Getenv("OPTIMIZE_IMAGES"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid OPTIMIZE_IMAGES %q: %w", v, err)
		}
		c.Images.Optimize = b
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate checks the settings that cannot be defaulted
func (c *Config) Validate() error {
	switch c.Session.Store {
	case StoreSQLite, StorePostgres, StoreRedis, StoreMemory:
	default:
		return fmt.Errorf("unknown session store %q", c.Session.Store)
	}
	if c.API.BaseURL == "" {
		return fmt.Errorf("api base url is required")
	}
	if c.Session.Store == StoreSQLite && c.Session.SQLitePath == "" {
		return fmt.Errorf("sqlite path is required for the sqlite session store")
	}
	return nil
}

// IsProduction reports whether ENV is production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Addr is the listen address of the local HTTP surface
func (c *Config) Addr() string {
	return "0.0.0.0:" + c.Port
}
