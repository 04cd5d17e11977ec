// Package config loads the optional hmaptool YAML config file
// (~/.config/hmaptool/config.yaml). Every field is a pointer or may be empty so
// that "not set" can be told apart from a zero value.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrParse indicates the config file is not valid YAML for Config.
var ErrParse = errors.New("parse config failed")

// Config holds tool defaults that CLI flags override.
type Config struct {
	// Logging
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Export and update
	Surface   string `yaml:"surface"`
	Flip      *bool  `yaml:"flip"`
	Normalize *bool  `yaml:"normalize"`
	Scale     *int   `yaml:"scale"`

	// Legacy hex text
	HexWidth  *int  `yaml:"hex_width"`
	HexIndent *bool `yaml:"hex_indent"`

	// EDDS textures
	TextureFormat   string `yaml:"texture_format"`
	TextureCompress *bool  `yaml:"texture_compress"`
	TextureMipMaps  *int   `yaml:"texture_mipmaps"`
}

// DefaultPath returns the per-user config location, or "" when the user
// config directory is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "hmaptool", "config.yaml")
}

// Load reads path. A missing file yields a zero Config and no error.
func Load(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %q: %v", ErrParse, path, err)
	}
	return cfg, nil
}
