package config

import (
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/focusflow/internal/models"
	"github.com/ayoisaiah/focusflow/internal/timeutil"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	Since         string
	Sound         string
	SessionCmd    string
	ServerURL     string
	Driver        string
	StoragePath   string
	TaskID        string
	Focus         int
	Break         int
	MaxSessions   int
	DisableNotify bool
	JSON          bool
}

// WithCLIConfig returns an Option that loads configuration from CLI flags.
// Flags that are not defined on the running command read as zero values and
// leave the config untouched.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			Focus:         ctx.Int("focus"),
			Break:         ctx.Int("break"),
			MaxSessions:   ctx.Int("max-sessions"),
			Sound:         ctx.String("sound"),
			SessionCmd:    ctx.String("session-cmd"),
			ServerURL:     ctx.String("server"),
			Driver:        ctx.String("driver"),
			StoragePath:   ctx.String("db"),
			TaskID:        ctx.String("task"),
			Since:         ctx.String("since"),
			DisableNotify: ctx.Bool("disable-notification"),
			JSON:          ctx.Bool("json"),
		}

		return applyCLIOptions(c, opts, time.Now())
	}
}

// applyCLIOptions applies CLI options to the config.
func applyCLIOptions(c *Config, opts CLIOptions, now time.Time) error {
	if err := applyCLIDurations(c, opts); err != nil {
		return err
	}

	if opts.MaxSessions > 0 {
		c.Settings.MaxSessions = opts.MaxSessions
	}

	if opts.DisableNotify {
		c.Notifications.Enabled = false
	}

	if opts.Sound != "" {
		if opts.Sound == "off" {
			c.Notifications.Sound = ""
		} else {
			c.Notifications.Sound = opts.Sound
		}
	}

	if opts.SessionCmd != "" {
		c.Settings.Cmd = opts.SessionCmd
	}

	if opts.ServerURL != "" {
		c.Server.URL = strings.TrimRight(opts.ServerURL, "/")
	}

	if opts.Driver != "" {
		c.Storage.Driver = opts.Driver
	}

	if opts.StoragePath != "" {
		c.Storage.Path = opts.StoragePath
	}

	c.CLI.TaskID = opts.TaskID
	c.CLI.JSON = opts.JSON

	if opts.Since != "" {
		since, err := timeutil.FromStr(opts.Since, now)
		if err != nil {
			return errInvalidSince.Fmt(opts.Since).Wrap(err)
		}

		c.CLI.Since = since
	}

	return nil
}

// applyCLIDurations handles the run length flags, given in minutes.
func applyCLIDurations(c *Config, opts CLIOptions) error {
	lengths := map[models.Kind]int{
		models.KindFocus: opts.Focus,
		models.KindBreak: opts.Break,
	}

	for kind, mins := range lengths {
		if mins == 0 {
			continue
		}

		if mins < 0 {
			return errInvalidCLIDuration.Fmt(kind, mins)
		}

		if kind == models.KindFocus {
			c.Focus.Duration = durationFromMinutes(mins)
		} else {
			c.Break.Duration = durationFromMinutes(mins)
		}
	}

	return nil
}
