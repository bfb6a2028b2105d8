package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "ADLER_"

// Storage backends
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
	BackendMemory = "memory"
)

// Config represents the adler configuration
type Config struct {
	Backend        string        `koanf:"backend" validate:"oneof=file sqlite badger memory"`
	DataDir        string        `koanf:"data_dir" validate:"required_unless=Backend memory"`
	StorageKey     string        `koanf:"storage_key" validate:"required"`
	LogLevel       string        `koanf:"log_level" validate:"oneof=debug info warn error"`
	LogFile        string        `koanf:"log_file"`
	ConfirmTimeout time.Duration `koanf:"confirm_timeout" validate:"gt=0"`
	RedrawInterval time.Duration `koanf:"redraw_interval" validate:"gt=0"`
	RedrawDelay    time.Duration `koanf:"redraw_delay" validate:"gte=0"`
	ExportDir      string        `koanf:"export_dir"`
	Editor         string        `koanf:"editor"`
}

// Default returns the default configuration
func Default() Config {
	exportDir := xdg.UserDirs.Documents
	if exportDir == "" {
		exportDir = "."
	}
	return Config{
		Backend:        BackendFile,
		DataDir:        filepath.Join(xdg.DataHome, "adler"),
		StorageKey:     "adler_books_v1",
		LogLevel:       "info",
		LogFile:        filepath.Join(xdg.StateHome, "adler", "adler.log"),
		ConfirmTimeout: 4 * time.Second,
		RedrawInterval: 300 * time.Millisecond,
		RedrawDelay:    60 * time.Millisecond,
		ExportDir:      exportDir,
	}
}

// Path returns the config file path: $ADLER_CONFIG, or config.yaml in the
// XDG config directory. Can be overridden for testing.
var Path = func() string {
	if p := os.Getenv(EnvPrefix + "CONFIG"); p != "" {
		return p
	}
	return filepath.Join(xdg.ConfigHome, "adler", "config.yaml")
}

// Load layers the defaults, the config file if present, and ADLER_*
// environment variables, then validates the result
func Load() (*Config, error) {
	k := koanf.New(".")

	path := Path()
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.DataDir = expandHome(cfg.DataDir)
	cfg.LogFile = expandHome(cfg.LogFile)
	cfg.ExportDir = expandHome(cfg.ExportDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration values
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// StorePath returns the location the configured backend keeps its data in
func (c *Config) StorePath() string {
	switch c.Backend {
	case BackendSQLite:
		return filepath.Join(c.DataDir, "adler.db")
	case BackendBadger:
		return filepath.Join(c.DataDir, "badger")
	case BackendMemory:
		return ""
	default:
		return c.DataDir
	}
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
