// Package config loads the client configuration from an optional YAML
// file, with flag and environment overrides applied by the command layer.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Default is used when no config file exists. The endpoint and
// authorization pair target the public training backend.
var Default = Config{
	Endpoint:      "https://22.objects.htmlacademy.pro/big-trip",
	Authorization: "Basic er883jdzbdw",
	DemoPoints:    15,
}

// Config is the user-facing configuration.
type Config struct {
	Endpoint      string `yaml:"endpoint" validate:"required,url"`
	Authorization string `yaml:"authorization" validate:"required"`
	Demo          bool   `yaml:"demo"`
	DemoPoints    int    `yaml:"demoPoints" validate:"gte=0"`
}

// DefaultPath returns ~/.bigtrip.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".bigtrip.yaml"), nil
}

// Load reads the config file at path, falling back to Default when the
// file does not exist.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		c := Default
		return &c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to open config %s: %w", path, err)
	}
	defer f.Close()

	return NewFromReader(f)
}

// NewFromReader unmarshals a config over the defaults and validates it.
func NewFromReader(r io.Reader) (*Config, error) {
	c := Default

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation error: %w", err)
	}
	return nil
}
