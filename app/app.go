// Package app wires the focusflow command-line interface
package app

import (
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/focusflow/internal/config"
)

// Get retrieves the focusflow app instance.
func Get() *cli.App {
	return &cli.App{
		Name: "focusflow",
		Usage: `
		FocusFlow is a study companion for the command-line. It combines a
		Pomodoro focus timer with tasks, progress statistics and a small REST
		API that powers the web dashboard.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Writer:               config.Stdout,
		ErrWriter:            config.Stderr,
		Commands: []*cli.Command{
			{
				Name:   "timer",
				Usage:  "Start the interactive focus timer",
				Action: timerAction,
				Flags: []cli.Flag{
					focusFlag,
					breakFlag,
					maxSessionsFlag,
					soundFlag,
					sessionCmdFlag,
					disableNotificationFlag,
					taskFlag,
				},
			},
			{
				Name:   "serve",
				Usage:  "Serve the REST API and the progress dashboard",
				Action: serveAction,
				Flags: []cli.Flag{
					openFlag,
				},
			},
			{
				Name: "stats",
				Usage: `
				Show your progress. Totals cover all time unless --since is
				given; the daily breakdown always covers the last 7 days`,
				Action: statsAction,
				Flags: []cli.Flag{
					sinceFlag,
					jsonFlag,
					listFlag,
				},
			},
			{
				Name:  "task",
				Usage: "Manage your tasks",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List tasks",
						Action: listTasksAction,
						Flags: []cli.Flag{
							allFlag,
						},
					},
					{
						Name:      "add",
						Usage:     "Add a task",
						ArgsUsage: "<title>",
						Action:    addTaskAction,
						Flags: []cli.Flag{
							priorityFlag,
							dueFlag,
							descriptionFlag,
						},
					},
					{
						Name:      "done",
						Usage:     "Mark a task as completed",
						ArgsUsage: "<id>",
						Action:    completeTaskAction,
					},
					{
						Name:      "breakdown",
						Usage:     "Suggest the steps of a task",
						ArgsUsage: "<title>",
						Action:    breakDownAction,
						Flags: []cli.Flag{
							descriptionFlag,
						},
					},
				},
			},
			{
				Name:   "login",
				Usage:  "Act as the given user in later commands",
				Action: loginAction,
				Flags: []cli.Flag{
					userFlag,
					emailFlag,
				},
			},
			{
				Name:   "logout",
				Usage:  "Forget the logged in user",
				Action: logoutAction,
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
		},
		Flags: []cli.Flag{
			configFlag,
			dbFlag,
			driverFlag,
			serverFlag,
			sessionFileFlag,
			noColorFlag,
		},
		Before: beforeAction,
	}
}
