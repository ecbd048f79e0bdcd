// Package config loads the registry's YAML configuration file and applies
// command-line overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the complete registry configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Addr      string `yaml:"addr"`
	UsersFile string `yaml:"users_file"`
}

// StorageConfig holds the filesystem root for blobs, manifests and uploads.
type StorageConfig struct {
	Root string `yaml:"root"`
}

// LogConfig holds logging verbosity.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:      ":5000",
			UsersFile: "users.json",
		},
		Storage: StorageConfig{
			Root: "/var/lib/ocireg",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from a YAML file, falling back to defaults for
// anything the file doesn't set.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	data = []byte(os.ExpandEnv(string(data)))

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for obviously missing required fields.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Storage.Root == "" {
		return fmt.Errorf("storage.root is required")
	}
	if c.Server.UsersFile == "" {
		return fmt.Errorf("server.users_file is required")
	}
	return nil
}
