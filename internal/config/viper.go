package config

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// viper keys for every persisted setting.
const (
	keyFocusDuration        = "focus.duration"
	keyFocusLengths         = "focus.lengths"
	keyFocusMessage         = "focus.message"
	keyFocusColor           = "focus.color"
	keyBreakDuration        = "break.duration"
	keyBreakLengths         = "break.lengths"
	keyBreakMessage         = "break.message"
	keyBreakColor           = "break.color"
	keyMaxSessions          = "settings.max_sessions"
	keySessionCmd           = "settings.cmd"
	keyTwentyFourHour       = "settings.24hr_clock"
	keyNotificationsEnabled = "notifications.enabled"
	keyNotificationSound    = "notifications.sound"
	keyDismissAfter         = "notifications.dismiss_after"
	keyDarkTheme            = "display.dark_theme"
	keyStorageDriver        = "storage.driver"
	keyStoragePath          = "storage.path"
	keyServerAddr           = "server.addr"
	keyServerURL            = "server.url"
	keyDefaultUser          = "server.default_user"
	keyReadTimeout          = "server.read_timeout"
	keyWriteTimeout         = "server.write_timeout"
	keyAIAPIKey             = "ai.api_key"
	keyAIModel              = "ai.model"
	keyAIBaseURL            = "ai.base_url"
	keyAITimeout            = "ai.timeout"
)

const envPrefix = "FOCUSFLOW"

// WithViperConfig returns an Option that loads configuration from the file
// at configPath, writing the defaults there first if it does not exist.
// Environment variables are bound after the file is written so that secrets
// such as OPENAI_API_KEY never end up on disk.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setupViper(v)

		err := v.ReadInConfig()
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return errReadConfig.Wrap(err)
			}

			seedFromPrompt(v, c)

			if err := v.WriteConfig(); err != nil {
				return errWriteConfig.Wrap(err)
			}
		}

		bindEnv(v)

		return loadViperConfig(v, c)
	}
}

// setupViper registers the default value of every setting.
func setupViper(v *viper.Viper) {
	v.SetDefault(keyFocusDuration, "25m")
	v.SetDefault(keyFocusLengths, []int{15, 25, 30, 45, 60})
	v.SetDefault(keyFocusMessage, "Focus on your task")
	v.SetDefault(keyFocusColor, "#B0DB43")
	v.SetDefault(keyBreakDuration, "5m")
	v.SetDefault(keyBreakLengths, []int{5, 10, 15, 20})
	v.SetDefault(keyBreakMessage, "Take a breather")
	v.SetDefault(keyBreakColor, "#12EAEA")
	v.SetDefault(keyMaxSessions, 4)
	v.SetDefault(keySessionCmd, "")
	v.SetDefault(keyTwentyFourHour, false)
	v.SetDefault(keyNotificationsEnabled, true)
	v.SetDefault(keyNotificationSound, "")
	v.SetDefault(keyDismissAfter, "5s")
	v.SetDefault(keyDarkTheme, true)
	v.SetDefault(keyStorageDriver, DriverBolt)
	v.SetDefault(keyStoragePath, "")
	v.SetDefault(keyServerAddr, ":5000")
	v.SetDefault(keyServerURL, "")
	v.SetDefault(keyDefaultUser, "sample-user-id")
	v.SetDefault(keyReadTimeout, "10s")
	v.SetDefault(keyWriteTimeout, "60s")
	v.SetDefault(keyAIAPIKey, "")
	v.SetDefault(keyAIModel, "gpt-5")
	v.SetDefault(keyAIBaseURL, "")
	v.SetDefault(keyAITimeout, "30s")
}

// seedFromPrompt carries first-run prompt answers already applied to c into
// the file about to be written.
func seedFromPrompt(v *viper.Viper, c *Config) {
	if c.Focus.Duration > 0 {
		v.Set(keyFocusDuration, c.Focus.Duration.String())
	}

	if c.Break.Duration > 0 {
		v.Set(keyBreakDuration, c.Break.Duration.String())
	}

	if c.Settings.MaxSessions > 0 {
		v.Set(keyMaxSessions, c.Settings.MaxSessions)
	}

	if c.Storage.Driver != "" {
		v.Set(keyStorageDriver, c.Storage.Driver)
	}
}

func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv(keyAIAPIKey, envPrefix+"_AI_API_KEY", "OPENAI_API_KEY")
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config) error {
	if err := v.Unmarshal(c); err != nil {
		return errReadConfig.Wrap(err)
	}

	return nil
}
