// Package config loads and validates focusflow settings from the config file,
// the environment, and command-line flags
package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ayoisaiah/focusflow/internal/models"
)

type (
	// Config holds all configuration settings
	Config struct {
		Focus         SessionConfig      `mapstructure:"focus"`
		Break         SessionConfig      `mapstructure:"break"`
		Notifications NotificationConfig `mapstructure:"notifications"`
		Display       DisplayConfig      `mapstructure:"display"`
		Storage       StorageConfig      `mapstructure:"storage"`
		Server        ServerConfig       `mapstructure:"server"`
		AI            AIConfig           `mapstructure:"ai"`
		CLI           CLIConfig          `mapstructure:"-"`
		Settings      SettingsConfig     `mapstructure:"settings"`
	}

	// SessionConfig holds the settings for one kind of timer run. Lengths
	// lists the selectable run lengths in minutes.
	SessionConfig struct {
		Message  string        `mapstructure:"message"`
		Color    string        `mapstructure:"color"`
		Lengths  []int         `mapstructure:"lengths"`
		Duration time.Duration `mapstructure:"duration"`
	}

	// SettingsConfig holds timer behaviour settings
	SettingsConfig struct {
		Cmd            string `mapstructure:"cmd"`
		MaxSessions    int    `mapstructure:"max_sessions"`
		TwentyFourHour bool   `mapstructure:"24hr_clock"`
	}

	// NotificationConfig holds notification settings
	NotificationConfig struct {
		Sound        string        `mapstructure:"sound"`
		DismissAfter time.Duration `mapstructure:"dismiss_after"`
		Enabled      bool          `mapstructure:"enabled"`
	}

	// DisplayConfig holds display-related settings
	DisplayConfig struct {
		DarkTheme bool `mapstructure:"dark_theme"`
	}

	// StorageConfig selects the backing store. An empty Path resolves to the
	// driver's file in the data directory.
	StorageConfig struct {
		Driver string `mapstructure:"driver"`
		Path   string `mapstructure:"path"`
	}

	// ServerConfig holds settings for the REST API, both for serving it and
	// for reaching a running instance (URL).
	ServerConfig struct {
		Addr         string        `mapstructure:"addr"`
		URL          string        `mapstructure:"url"`
		DefaultUser  string        `mapstructure:"default_user"`
		ReadTimeout  time.Duration `mapstructure:"read_timeout"`
		WriteTimeout time.Duration `mapstructure:"write_timeout"`
	}

	// AIConfig holds the task assistant settings. The assistant falls back
	// to canned answers when APIKey is empty.
	AIConfig struct {
		APIKey  string        `mapstructure:"api_key"`
		Model   string        `mapstructure:"model"`
		BaseURL string        `mapstructure:"base_url"`
		Timeout time.Duration `mapstructure:"timeout"`
	}

	// CLIConfig holds values that only come from command-line flags.
	CLIConfig struct {
		Since  time.Time
		TaskID string
		JSON   bool
	}

	// Option is a function that modifies Config
	Option func(*Config) error
)

const Version = "v0.3.0"

const (
	DriverBolt   = "bolt"
	DriverSQLite = "sqlite"
)

var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// New creates a new Config and applies options in order.
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errConfigOption.Wrap(err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errConfigValidation.Wrap(err)
	}

	return cfg, nil
}

// Session returns the settings for the given kind of run.
func (c *Config) Session(kind models.Kind) SessionConfig {
	if kind == models.KindBreak {
		return c.Break
	}

	return c.Focus
}

// Lengths returns the selectable run lengths for the given kind.
func (c *Config) Lengths(kind models.Kind) []time.Duration {
	mins := c.Session(kind).Lengths

	out := make([]time.Duration, len(mins))
	for i, m := range mins {
		out[i] = time.Duration(m) * time.Minute
	}

	return out
}

// TimeFormat returns the clock layout for displayed times.
func (c *Config) TimeFormat() string {
	if c.Settings.TwentyFourHour {
		return "15:04"
	}

	return "03:04 PM"
}

func (s SessionConfig) String() string {
	return fmt.Sprintf("%s (%v)", s.Message, s.Duration)
}
