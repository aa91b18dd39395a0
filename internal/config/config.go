// Package config loads the runeword tracker configuration.
// Configuration source priority (highest to lowest):
// 1. Command line flags (applied by the caller)
// 2. Environment variables (RUNEWORD_TRACKER_DB, RUNEWORD_TRACKER_CATALOG,
//    RUNEWORD_TRACKER_LOG_LEVEL), also read from a .env file
// 3. Config file path specified via --config flag
// 4. ~/.config/runeword-tracker/config.yaml
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rsned/runeword-tracker/internal/tracker/runeword"
)

// Environment variable names.
const (
	EnvDatabase = "RUNEWORD_TRACKER_DB"
	EnvCatalog  = "RUNEWORD_TRACKER_CATALOG"
	EnvLogLevel = "RUNEWORD_TRACKER_LOG_LEVEL"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// sortkey accepts any value of runeword.SortKeys.
	err := v.RegisterValidation("sortkey", func(fl validator.FieldLevel) bool {
		return runeword.SortKey(fl.Field().String()).IsValid()
	})
	if err != nil {
		panic(err)
	}
	return v
}

// Config is the complete configuration structure for the tracker.
type Config struct {
	// Database is the SQLite file holding catalog, inventory and preferences.
	Database string `yaml:"database" validate:"required"`

	// Catalog is the runeword JSON imported when the database has none.
	Catalog string `yaml:"catalog"`

	// DefaultThreshold is the progress threshold until the player sets one.
	DefaultThreshold float64 `yaml:"default_threshold" validate:"gte=0,lte=1"`

	// DefaultSort is the sort key until the player picks one.
	DefaultSort string `yaml:"default_sort" validate:"sortkey"`

	// LogLevel: "debug" | "info" | "warn" | "error"
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Database:         filepath.Join("data", "runeword-tracker.db"),
		Catalog:          filepath.Join("data", "runewords.json"),
		DefaultThreshold: runeword.DefaultThreshold,
		DefaultSort:      string(runeword.DefaultSortKey),
		LogLevel:         "info",
	}
}

// Load reads the configuration. A missing file at the default location is
// not an error; a missing file that was asked for explicitly is.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := configPath != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err == nil {
			configPath = filepath.Join(home, ".config", "runeword-tracker", "config.yaml")
		}
	}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
			}
		case explicit || !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	// A missing .env is fine.
	_ = godotenv.Load(".env")
	applyEnvOverrides(cfg)
	cfg.DefaultSort = strings.ToLower(strings.TrimSpace(cfg.DefaultSort))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvDatabase); v != "" {
		cfg.Database = v
	}
	if v := os.Getenv(EnvCatalog); v != "" {
		cfg.Catalog = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validating config: %w", err)
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s %s", fe.Field(), fe.Tag(), fe.Param()))
		}
		return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
	}
	return nil
}

// SlogLevel maps LogLevel to a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
