// Package config provides configuration loading for printer defaults.
//
// Defaults are resolved in order: built-in values, then an optional YAML
// config file, then environment variable overrides. All of it is optional;
// a missing file or unset variables leave the built-ins in place.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultDir is the per-user config directory under the home dir.
	DefaultDir = ".dout"
	// ConfigFile is the config file name inside DefaultDir.
	ConfigFile = "config.yaml"

	// EnvConfigDir overrides the config directory location.
	EnvConfigDir = "DOUT_CONFIG"
)

// Config holds printer defaults.
type Config struct {
	// Color is the terminal highlight color code (e.g. "36", "1;34").
	Color string `yaml:"color"`
	// NoColor disables highlight colors regardless of Color.
	NoColor bool `yaml:"no_color"`
	// Precision is the number of decimal digits for float output.
	Precision int `yaml:"precision"`
	// MaxFrames is the default stack trace depth.
	MaxFrames int `yaml:"max_frames"`
	// LogLevel sets the side-channel diagnostic level.
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in printer defaults, matching the historical
// DebugPrinter behavior: cyan highlights, five digits of precision.
func Default() Config {
	return Config{
		Color:     "36",
		Precision: 5,
		MaxFrames: 50,
		LogLevel:  "warn",
	}
}

// Load resolves the effective configuration: built-in defaults, overlaid
// with the config file when one exists, overlaid with env overrides.
//
// A missing config file is not an error. A file that exists but does not
// parse is, so a typo never silently reverts the user to defaults.
func Load() (Config, error) {
	cfg := Default()

	path := configPath()
	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304: path comes from the user's own env/home
		switch {
		case os.IsNotExist(err):
			// No file, defaults apply.
		case err != nil:
			return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// configPath returns the config file location, or "" when no base
// directory can be resolved (e.g. containers without a home dir).
func configPath() string {
	if baseDir := os.Getenv(EnvConfigDir); baseDir != "" {
		return filepath.Join(baseDir, ConfigFile)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, DefaultDir, ConfigFile)
}

// applyEnv overlays environment variable overrides onto cfg.
func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv("DOUT_COLOR"); ok {
		cfg.Color = v
	}
	if v, ok := os.LookupEnv("DOUT_NO_COLOR"); ok {
		noColor, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid DOUT_NO_COLOR value %q: %w", v, err)
		}
		cfg.NoColor = noColor
	}
	if v, ok := os.LookupEnv("DOUT_PRECISION"); ok {
		prec, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid DOUT_PRECISION value %q: %w", v, err)
		}
		cfg.Precision = prec
	}
	if v, ok := os.LookupEnv("DOUT_MAX_FRAMES"); ok {
		frames, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid DOUT_MAX_FRAMES value %q: %w", v, err)
		}
		cfg.MaxFrames = frames
	}
	if v, ok := os.LookupEnv("DOUT_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	return nil
}
