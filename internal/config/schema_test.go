package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/blackwell-systems/dexctl/internal/config"
)

func TestRequestTimeout(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"", 0},
		{"0", 0},
		{"0s", 0},
		{"1500ms", 1500 * time.Millisecond},
		{"30s", 30 * time.Second},
	}
	for _, c := range cases {
		got, err := config.CatalogueConfig{Timeout: c.in}.RequestTimeout()
		if err != nil {
			t.Errorf("RequestTimeout(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("RequestTimeout(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestRequestTimeout_Invalid(t *testing.T) {
	for _, in := range []string{"soon", "-5s"} {
		if _, err := (config.CatalogueConfig{Timeout: in}).RequestTimeout(); err == nil {
			t.Errorf("RequestTimeout(%q): expected error", in)
		}
	}
}

func TestValidate_Default(t *testing.T) {
	if err := config.Default().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"api base", func(c *config.Config) { c.Catalogue.APIBase = "" }, "api_base"},
		{"page size", func(c *config.Config) { c.Catalogue.PageSize = 0 }, "page_size"},
		{"concurrency", func(c *config.Config) { c.Catalogue.Concurrency = -1 }, "concurrency"},
		{"rate limit", func(c *config.Config) { c.Catalogue.RateLimit = -2 }, "rate_limit"},
		{"timeout", func(c *config.Config) { c.Catalogue.Timeout = "later" }, "timeout"},
		{"admin user", func(c *config.Config) { c.Auth.AdminUser = "" }, "admin_user"},
		{"storage", func(c *config.Config) { c.Storage.Path = "" }, "storage.path"},
		{"log format", func(c *config.Config) { c.Log.Format = "xml" }, "log.format"},
	}
	for _, c := range cases {
		cfg := config.Default()
		c.mutate(cfg)
		err := cfg.Validate()
		if err == nil {
			t.Errorf("%s: expected error", c.name)
			continue
		}
		if !strings.Contains(err.Error(), c.want) {
			t.Errorf("%s: error %q should mention %q", c.name, err, c.want)
		}
	}
}
