package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the top-level dexctl configuration.
type Config struct {
	Catalogue CatalogueConfig `mapstructure:"catalogue" yaml:"catalogue"`
	Auth      AuthConfig      `mapstructure:"auth" yaml:"auth"`
	Storage   StorageConfig   `mapstructure:"storage" yaml:"storage"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
}

// CatalogueConfig holds remote catalogue connection settings.
type CatalogueConfig struct {
	APIBase     string  `mapstructure:"api_base" yaml:"api_base"`
	PageSize    int     `mapstructure:"page_size" yaml:"page_size"`
	Concurrency int     `mapstructure:"concurrency" yaml:"concurrency"` // 0 = unbounded
	RateLimit   float64 `mapstructure:"rate_limit" yaml:"rate_limit"`   // requests/s, 0 = unlimited
	RateBurst   int     `mapstructure:"rate_burst" yaml:"rate_burst"`
	Timeout     string  `mapstructure:"timeout" yaml:"timeout"` // Go duration, "0" = none
	UserAgent   string  `mapstructure:"user_agent" yaml:"user_agent"`
}

// AuthConfig holds the shared local credential.
type AuthConfig struct {
	AdminUser    string `mapstructure:"admin_user" yaml:"admin_user"`
	Password     string `mapstructure:"password" yaml:"password,omitempty"`
	PasswordHash string `mapstructure:"password_hash" yaml:"password_hash,omitempty"`
	HashCost     int    `mapstructure:"hash_cost" yaml:"hash_cost,omitempty"`
}

// StorageConfig locates the local database.
type StorageConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// LogConfig controls the diagnostic log.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	File   string `mapstructure:"file" yaml:"file"`
	Format string `mapstructure:"format" yaml:"format"`
}

// RequestTimeout parses Timeout. Empty or zero means no timeout.
func (c CatalogueConfig) RequestTimeout() (time.Duration, error) {
	s := strings.TrimSpace(c.Timeout)
	if s == "" || s == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("catalogue.timeout: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("catalogue.timeout: must not be negative")
	}
	return d, nil
}

// Validate reports the first unusable setting.
func (c *Config) Validate() error {
	if c.Catalogue.APIBase == "" {
		return fmt.Errorf("catalogue.api_base is required")
	}
	if c.Catalogue.PageSize <= 0 {
		return fmt.Errorf("catalogue.page_size must be positive, got %d", c.Catalogue.PageSize)
	}
	if c.Catalogue.Concurrency < 0 {
		return fmt.Errorf("catalogue.concurrency must not be negative")
	}
	if c.Catalogue.RateLimit < 0 {
		return fmt.Errorf("catalogue.rate_limit must not be negative")
	}
	if _, err := c.Catalogue.RequestTimeout(); err != nil {
		return err
	}
	if c.Auth.AdminUser == "" {
		return fmt.Errorf("auth.admin_user is required")
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("storage.path is required")
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}
