package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	DriverSQLite = "sqlite"
	DriverFile   = "file"
	DriverRedis  = "redis"
)

var (
	ErrEncryptionKeyRequired = errors.New("encryption key is required outside development")
	ErrInvalidBaseURL        = errors.New("api base url must be an absolute http(s) url")
	ErrUnknownStorageDriver  = errors.New("unknown storage driver")
)

// Config holds runtime settings for the gophsync CLI.
type Config struct {
	APIBaseURL     string
	EncryptionKey  string
	StorageDriver  string
	StoragePath    string
	RequestTimeout time.Duration
	Env            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:3001"
	c.EncryptionKey = ""
	c.StorageDriver = DriverSQLite
	c.StoragePath = "gophsync.db"
	c.RequestTimeout = 30 * time.Second
	c.Env = "production"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

// Development reports whether Env names a development environment.
func (c *Config) Development() bool {
	switch strings.ToLower(c.Env) {
	case "development", "dev":
		return true
	}
	return false
}

// Validate checks the settings that would otherwise fail late or silently.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.APIBaseURL)
	}

	if c.EncryptionKey == "" && !c.Development() {
		return ErrEncryptionKeyRequired
	}

	switch c.StorageDriver {
	case DriverSQLite, DriverFile:
	case DriverRedis:
		if u, err := url.Parse(c.StoragePath); err != nil || (u.Scheme != "redis" && u.Scheme != "rediss") {
			return fmt.Errorf("storage path must be a redis:// or rediss:// url for the redis driver, got %q", c.StoragePath)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStorageDriver, c.StorageDriver)
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	return nil
}
