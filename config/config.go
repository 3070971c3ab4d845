// Package config loads octoctl's runtime configuration from a TOML file,
// grounded in the pool-config pattern used elsewhere in the ecosystem: a
// viper instance reads the file and decodes it over the defaults returned
// by Default(), while github.com/pelletier/go-toml/v2 marshals a Config
// back out to a file in WriteDefault.
package config

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// Config is octoctl's full runtime configuration.
type Config struct {
	// SessionId is the 14-bit session id the CLI's in-process State mints
	// object ids under.
	SessionId uint16 `mapstructure:"session_id" toml:"session_id"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level" toml:"log_level"`
	// ListenAddr is the address the HTTP gateway binds to when `octoctl
	// serve` is invoked without an explicit address argument.
	ListenAddr string `mapstructure:"listen_addr" toml:"listen_addr"`
}

// Default returns the configuration octoctl runs with when no file is
// present.
func Default() *Config {
	return &Config{
		SessionId:  1,
		LogLevel:   "info",
		ListenAddr: ":8080",
	}
}

// Load reads the TOML file at path and overlays it on Default(). A
// missing file is not an error; Load returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

// WriteDefault writes cfg to path in TOML form, creating the file if it
// does not exist, and overwriting it if it does.
func WriteDefault(path string, cfg *Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
