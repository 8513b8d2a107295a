package config

import (
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/ayoisaiah/focusflow/internal/models"
)

var (
	// Bounds for selectable run lengths, in minutes.
	minLength = 1
	maxLength = 720

	minMaxSessions = 1
	maxMaxSessions = 12

	hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
)

// Validate performs validation checks on the Config struct and its fields.
func (c *Config) Validate() error {
	if err := c.validateSessionConfig(models.KindFocus); err != nil {
		return err
	}

	if err := c.validateSessionConfig(models.KindBreak); err != nil {
		return err
	}

	if c.Break.Duration >= c.Focus.Duration {
		return errBreakTooLong.Fmt(c.Break.Duration, c.Focus.Duration)
	}

	if err := c.validateSettings(); err != nil {
		return err
	}

	return c.validateStorage()
}

// validateSessionConfig validates the settings for one kind of run.
func (c *Config) validateSessionConfig(kind models.Kind) error {
	sc := c.Session(kind)

	if len(sc.Lengths) == 0 {
		return errNoLengths.Fmt(kind)
	}

	for _, l := range sc.Lengths {
		if l < minLength || l > maxLength {
			return errInvalidLength.Fmt(kind, minLength, maxLength, l)
		}
	}

	if !slices.Contains(c.Lengths(kind), sc.Duration) {
		return errUnsupportedDuration.Fmt(kind, sc.Duration, sc.Lengths)
	}

	if strings.TrimSpace(sc.Message) == "" {
		return errEmptyMsg.Fmt(kind)
	}

	if !hexColorRegex.MatchString(sc.Color) {
		return errInvalidColor.Fmt(kind, sc.Color)
	}

	return nil
}

// validateSettings validates timer and notification settings.
func (c *Config) validateSettings() error {
	if c.Settings.MaxSessions < minMaxSessions ||
		c.Settings.MaxSessions > maxMaxSessions {
		return errInvalidMaxSessions.Fmt(minMaxSessions, maxMaxSessions)
	}

	if c.Notifications.DismissAfter <= 0 {
		return errInvalidDismissAfter.Fmt(c.Notifications.DismissAfter)
	}

	if c.Notifications.Sound != "" {
		ext := strings.ToLower(filepath.Ext(c.Notifications.Sound))
		if !slices.Contains([]string{".mp3", ".ogg", ".flac", ".wav"}, ext) {
			return errInvalidSoundFormat.Fmt(c.Notifications.Sound)
		}
	}

	return nil
}

func (c *Config) validateStorage() error {
	if c.Storage.Driver != DriverBolt && c.Storage.Driver != DriverSQLite {
		return errUnknownDriver.Fmt(c.Storage.Driver)
	}

	if strings.TrimSpace(c.Server.Addr) == "" {
		return errEmptyServerAddr
	}

	if strings.TrimSpace(c.Server.DefaultUser) == "" {
		return errEmptyDefaultUser
	}

	return nil
}

// durationFromMinutes converts a minutes value supplied on the command line.
func durationFromMinutes(m int) time.Duration {
	return time.Duration(m) * time.Minute
}
