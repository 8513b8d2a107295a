package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/focusflow/internal/models"
)

func defaultConfig() *Config {
	return &Config{
		Focus: SessionConfig{
			Message:  "Focus on your task",
			Color:    "#B0DB43",
			Lengths:  []int{15, 25, 30, 45, 60},
			Duration: 25 * time.Minute,
		},
		Break: SessionConfig{
			Message:  "Take a breather",
			Color:    "#12EAEA",
			Lengths:  []int{5, 10, 15, 20},
			Duration: 5 * time.Minute,
		},
		Notifications: NotificationConfig{
			Enabled:      true,
			DismissAfter: 5 * time.Second,
		},
		Display: DisplayConfig{DarkTheme: true},
		Storage: StorageConfig{Driver: DriverBolt},
		Server: ServerConfig{
			Addr:         ":5000",
			DefaultUser:  "sample-user-id",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second,
		},
		AI: AIConfig{
			Model:   "gpt-5",
			Timeout: 30 * time.Second,
		},
		Settings: SettingsConfig{MaxSessions: 4},
	}
}

func TestWithViperConfig_WritesDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	path := filepath.Join(t.TempDir(), "config.yml")

	cfg, err := New(WithViperConfig(path))
	require.NoError(t, err)

	if diff := cmp.Diff(defaultConfig(), cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}

	_, err = os.Stat(path)
	require.NoError(t, err, "default config file should be written")

	again, err := New(WithViperConfig(path))
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestWithViperConfig_ReadsFile(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	path := filepath.Join(t.TempDir(), "config.yml")

	content := `focus:
  duration: 45m
  lengths: [25, 45]
  message: Deep work
  color: "#FFFFFF"
settings:
  max_sessions: 6
storage:
  driver: sqlite
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := New(WithViperConfig(path))
	require.NoError(t, err)

	assert.Equal(t, 45*time.Minute, cfg.Focus.Duration)
	assert.Equal(t, []int{25, 45}, cfg.Focus.Lengths)
	assert.Equal(t, "Deep work", cfg.Focus.Message)
	assert.Equal(t, 6, cfg.Settings.MaxSessions)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, 5*time.Minute, cfg.Break.Duration)
}

func TestWithViperConfig_APIKeyFromEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	path := filepath.Join(t.TempDir(), "config.yml")

	cfg, err := New(WithViperConfig(path))
	require.NoError(t, err)
	assert.Equal(t, "sk-test", cfg.AI.APIKey)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "sk-test")
}

func TestWithViperConfig_SeedsPromptAnswers(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	path := filepath.Join(t.TempDir(), "config.yml")

	seed := func(c *Config) error {
		return applyPromptOptions(c, PromptOptions{
			FocusDuration: 30,
			BreakDuration: 10,
			MaxSessions:   6,
			Driver:        DriverSQLite,
		})
	}

	_, err := New(seed, WithViperConfig(path))
	require.NoError(t, err)

	cfg, err := New(WithViperConfig(path))
	require.NoError(t, err)

	assert.Equal(t, 30*time.Minute, cfg.Focus.Duration)
	assert.Equal(t, 10*time.Minute, cfg.Break.Duration)
	assert.Equal(t, 6, cfg.Settings.MaxSessions)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:    "focus duration outside lengths",
			mutate:  func(c *Config) { c.Focus.Duration = 20 * time.Minute },
			wantErr: errUnsupportedDuration,
		},
		{
			name:    "empty break lengths",
			mutate:  func(c *Config) { c.Break.Lengths = nil },
			wantErr: errNoLengths,
		},
		{
			name:    "length out of range",
			mutate:  func(c *Config) { c.Focus.Lengths = append(c.Focus.Lengths, 1000) },
			wantErr: errInvalidLength,
		},
		{
			name: "break longer than focus",
			mutate: func(c *Config) {
				c.Focus.Lengths = []int{15}
				c.Focus.Duration = 15 * time.Minute
				c.Break.Duration = 20 * time.Minute
			},
			wantErr: errBreakTooLong,
		},
		{
			name:    "bad color",
			mutate:  func(c *Config) { c.Break.Color = "teal" },
			wantErr: errInvalidColor,
		},
		{
			name:    "empty message",
			mutate:  func(c *Config) { c.Focus.Message = "  " },
			wantErr: errEmptyMsg,
		},
		{
			name:    "too many sessions",
			mutate:  func(c *Config) { c.Settings.MaxSessions = 13 },
			wantErr: errInvalidMaxSessions,
		},
		{
			name:    "unsupported sound",
			mutate:  func(c *Config) { c.Notifications.Sound = "bell.aiff" },
			wantErr: errInvalidSoundFormat,
		},
		{
			name:    "zero dismiss interval",
			mutate:  func(c *Config) { c.Notifications.DismissAfter = 0 },
			wantErr: errInvalidDismissAfter,
		},
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.Storage.Driver = "postgres" },
			wantErr: errUnknownDriver,
		},
		{
			name:    "empty default user",
			mutate:  func(c *Config) { c.Server.DefaultUser = "" },
			wantErr: errEmptyDefaultUser,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(cfg)

			err := cfg.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}

			assert.True(
				t,
				errors.Is(err, tc.wantErr),
				"expected %v, got %v",
				tc.wantErr,
				err,
			)
		})
	}
}

func TestApplyCLIOptions(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	cfg := defaultConfig()

	err := applyCLIOptions(cfg, CLIOptions{
		Focus:         45,
		Break:         10,
		MaxSessions:   6,
		DisableNotify: true,
		Sound:         "off",
		ServerURL:     "http://localhost:5000/",
		StoragePath:   "/tmp/focusflow-test.db",
		TaskID:        "t1",
		JSON:          true,
		Since:         "2026-03-01",
	}, now)
	require.NoError(t, err)

	assert.Equal(t, 45*time.Minute, cfg.Focus.Duration)
	assert.Equal(t, 10*time.Minute, cfg.Break.Duration)
	assert.Equal(t, 6, cfg.Settings.MaxSessions)
	assert.False(t, cfg.Notifications.Enabled)
	assert.Empty(t, cfg.Notifications.Sound)
	assert.Equal(t, "http://localhost:5000", cfg.Server.URL)
	assert.Equal(t, "/tmp/focusflow-test.db", cfg.Storage.Path)
	assert.Equal(t, "t1", cfg.CLI.TaskID)
	assert.True(t, cfg.CLI.JSON)
	assert.Equal(t, 2026, cfg.CLI.Since.Year())
	assert.Equal(t, time.March, cfg.CLI.Since.Month())
	assert.Equal(t, 1, cfg.CLI.Since.Day())

	err = applyCLIOptions(defaultConfig(), CLIOptions{Focus: -5}, now)
	assert.True(t, errors.Is(err, errInvalidCLIDuration))
}

func TestSessionLengths(t *testing.T) {
	cfg := defaultConfig()

	assert.Equal(
		t,
		[]time.Duration{5 * time.Minute, 10 * time.Minute, 15 * time.Minute, 20 * time.Minute},
		cfg.Lengths(models.KindBreak),
	)
	assert.Equal(t, "Focus on your task", cfg.Session(models.KindFocus).Message)
	assert.Equal(t, "03:04 PM", cfg.TimeFormat())
}
