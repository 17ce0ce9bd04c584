package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/blackwell-systems/dexctl/internal/util"
)

// DotEnvFile is loaded into the environment before the config is read.
// A missing file is ignored; variables already set win.
var DotEnvFile = ".env"

// DefaultPath returns the default config file path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "dexctl", "config.yml")
}

// Path returns the config file in effect: explicit, then DEXCTL_CONFIG,
// then the default.
func Path(explicit string) string {
	if explicit != "" {
		return util.ExpandHome(explicit)
	}
	if p := os.Getenv("DEXCTL_CONFIG"); p != "" {
		return util.ExpandHome(p)
	}
	return DefaultPath()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("catalogue.api_base", "https://pokeapi.co/api/v2")
	v.SetDefault("catalogue.page_size", 100)
	v.SetDefault("catalogue.concurrency", 0)
	v.SetDefault("catalogue.rate_limit", 0)
	v.SetDefault("catalogue.rate_burst", 1)
	v.SetDefault("catalogue.timeout", "0")
	v.SetDefault("catalogue.user_agent", "dexctl")
	v.SetDefault("auth.admin_user", "admin")
	v.SetDefault("auth.password", "password")
	v.SetDefault("auth.password_hash", "")
	v.SetDefault("auth.hash_cost", 0)
	v.SetDefault("storage.path", filepath.Join(dataDir(), "dexctl.db"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(dataDir(), "dexctl.log"))
	v.SetDefault("log.format", "text")
}

// Default returns the built-in configuration.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Load reads the config from disk and the environment. A missing file is
// not an error: the defaults apply until init writes one.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading %s: %w", DotEnvFile, err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("DEXCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(Path(path))
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		// Not finding the config file is fine — the init command creates it.
		if !errors.Is(err, fs.ErrNotExist) {
			if _, isCfgNotFound := err.(viper.ConfigFileNotFoundError); !isCfgNotFound {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Storage.Path = util.ExpandHome(cfg.Storage.Path)
	cfg.Log.File = util.ExpandHome(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the config as YAML to path, or the default path when empty.
func Save(cfg *Config, path string) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := util.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(cfg)
}

func dataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "dexctl")
}
