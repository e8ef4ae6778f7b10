// Package config handles the task file location and the optional settings file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
)

const (
	// AppName is the application name.
	AppName = "todo"

	// DataFile is the task file, relative to the working directory.
	// It is not configurable.
	DataFile = "todo_list.json"

	// DefaultSettingsFile is the optional settings file read when --config is
	// not given.
	DefaultSettingsFile = ".todo.toml"
)

// Color modes for status labels.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Log levels accepted in the settings file.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Config holds paths and settings for a single invocation.
type Config struct {
	// DataPath is the task file path.
	DataPath string

	// SettingsPath is the settings file that was read, or empty if none was.
	SettingsPath string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses success notices.
	Quiet bool

	// LogLevel is one of the Level* constants. Empty disables logging.
	LogLevel string

	// Color is one of the Color* constants.
	Color string
}

// Settings mirrors the TOML settings file.
type Settings struct {
	Quiet    bool   `toml:"quiet"`
	LogLevel string `toml:"log_level"`
	Color    string `toml:"color"`
}

// New creates a Config with defaults and no settings file.
func New() *Config {
	return &Config{
		DataPath: DataFile,
		Color:    ColorAuto,
	}
}

// Load creates a Config, applying the settings file at path.
// If path is empty, DefaultSettingsFile is tried and silently skipped when
// absent. An explicitly named file must exist.
func Load(fsys afero.Fs, path string) (*Config, error) {
	cfg := New()

	explicit := path != ""
	if !explicit {
		path = DefaultSettingsFile
	}

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read settings file: %w", err)
	}

	var s Settings
	md, err := toml.Decode(string(data), &s)
	if err != nil {
		return nil, fmt.Errorf("parse settings file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parse settings file %s: unknown key %q", path, undecoded[0].String())
	}

	if err := cfg.apply(s); err != nil {
		return nil, fmt.Errorf("settings file %s: %w", path, err)
	}
	cfg.SettingsPath = path
	return cfg, nil
}

func (c *Config) apply(s Settings) error {
	c.Quiet = s.Quiet

	level := strings.ToLower(strings.TrimSpace(s.LogLevel))
	switch level {
	case "", LevelDebug, LevelInfo, LevelWarn, LevelError:
		c.LogLevel = level
	default:
		return fmt.Errorf("invalid log_level %q, must be one of: debug, info, warn, error", s.LogLevel)
	}

	color := strings.ToLower(strings.TrimSpace(s.Color))
	switch color {
	case "":
		c.Color = ColorAuto
	case ColorAuto, ColorAlways, ColorNever:
		c.Color = color
	default:
		return fmt.Errorf("invalid color %q, must be one of: auto, always, never", s.Color)
	}
	return nil
}

// EffectiveLogLevel returns the level logging should run at.
// --debug wins over the settings file. Empty means logging is off.
func (c *Config) EffectiveLogLevel() string {
	if c.Debug {
		return LevelDebug
	}
	return c.LogLevel
}
