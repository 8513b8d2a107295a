package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
)

const asciiLogo = `
█▀▀ █▀█ █▀▀ █ █ █▀▀ █▀▀ █   █▀█ █ █ █
█▀  █▄█ █▄▄ █▄█ ▄▄█ █▀  █▄▄ █▄█ ▀▄▀▄▀`

// PromptOptions holds the user's responses to the first-run prompts.
type PromptOptions struct {
	Driver        string
	FocusDuration int
	BreakDuration int
	MaxSessions   int
}

// WithPromptConfig returns an Option that asks for the core settings when no
// config file exists yet. It must run before WithViperConfig so that the
// answers are written out with the defaults.
func WithPromptConfig(configPath string) Option {
	return func(c *Config) error {
		_, err := os.Stat(configPath)
		if err == nil || !errors.Is(err, os.ErrNotExist) {
			return err
		}

		opts, err := promptUser()
		if err != nil {
			return fmt.Errorf("user prompt failed: %w", err)
		}

		return applyPromptOptions(c, opts)
	}
}

func promptUser() (PromptOptions, error) {
	var opts PromptOptions

	pterm.Println(asciiLogo)

	_ = putils.BulletListFromString(`Follow the prompts below to set up FocusFlow for the first time.
Select your preferred value, or press ENTER to accept the defaults.
Edit the config file with 'focusflow edit-config' to change any settings.`, " ").
		Render()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Focus session length").
				Options(
					huh.NewOption("15 minutes", 15),
					huh.NewOption("25 minutes", 25).Selected(true),
					huh.NewOption("30 minutes", 30),
					huh.NewOption("45 minutes", 45),
					huh.NewOption("60 minutes", 60),
				).
				Value(&opts.FocusDuration),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Break length").
				Options(
					huh.NewOption("5 minutes", 5).Selected(true),
					huh.NewOption("10 minutes", 10),
					huh.NewOption("15 minutes", 15),
					huh.NewOption("20 minutes", 20),
				).
				Value(&opts.BreakDuration),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Focus sessions per cycle").
				Options(
					huh.NewOption("4 sessions", 4).Selected(true),
					huh.NewOption("6 sessions", 6),
					huh.NewOption("8 sessions", 8),
				).
				Value(&opts.MaxSessions),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Storage").
				Options(
					huh.NewOption("Single file (bolt)", DriverBolt).Selected(true),
					huh.NewOption("SQLite database", DriverSQLite),
				).
				Value(&opts.Driver),
		),
	)

	err := form.Run()
	if err != nil {
		return opts, fmt.Errorf("form interaction failed: %w", err)
	}

	return opts, nil
}

// applyPromptOptions stores the prompt answers so that they become the
// defaults written to the new config file.
func applyPromptOptions(c *Config, opts PromptOptions) error {
	c.Focus.Duration = time.Duration(opts.FocusDuration) * time.Minute
	c.Break.Duration = time.Duration(opts.BreakDuration) * time.Minute
	c.Settings.MaxSessions = opts.MaxSessions
	c.Storage.Driver = opts.Driver

	return nil
}
