package app

import "github.com/urfave/cli/v2"

var (
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "Path to the config file",
	}

	dbFlag = &cli.StringFlag{
		Name:  "db",
		Usage: "Path to the data file. Defaults to a file in the data directory",
	}

	driverFlag = &cli.StringFlag{
		Name:  "driver",
		Usage: "Storage driver: bolt or sqlite",
	}

	serverFlag = &cli.StringFlag{
		Name:  "server",
		Usage: "Use the focusflow server at this URL instead of the local data file",
	}

	sessionFileFlag = &cli.StringFlag{
		Name:   "session-file",
		Hidden: true,
	}

	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	focusFlag = &cli.IntFlag{
		Name:    "focus",
		Aliases: []string{"f"},
		Usage:   "Focus duration in minutes (default: 25)",
	}

	breakFlag = &cli.IntFlag{
		Name:    "break",
		Aliases: []string{"b"},
		Usage:   "Break duration in minutes (default: 5)",
	}

	maxSessionsFlag = &cli.IntFlag{
		Name:  "max-sessions",
		Usage: "The number of focus sessions in a set (default: 4)",
	}

	soundFlag = &cli.StringFlag{
		Name:  "sound",
		Usage: "Sound file played when a session ends (mp3, ogg, flac or wav). Set to 'off' for the built-in chime",
	}

	sessionCmdFlag = &cli.StringFlag{
		Name:    "session-cmd",
		Aliases: []string{"cmd"},
		Usage:   "Execute an arbitrary command after each session",
	}

	disableNotificationFlag = &cli.BoolFlag{
		Name:    "disable-notification",
		Aliases: []string{"d"},
		Usage:   "Disable the system notification that appears after a session is completed",
	}

	taskFlag = &cli.StringFlag{
		Name:    "task",
		Aliases: []string{"t"},
		Usage:   "Id of the task to focus on",
	}

	openFlag = &cli.BoolFlag{
		Name:  "open",
		Usage: "Open the dashboard in the default browser",
	}

	sinceFlag = &cli.StringFlag{
		Name:  "since",
		Usage: "Only count sessions completed after this date (e.g. 'last monday', '2026-09-01')",
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print the statistics as JSON",
	}

	listFlag = &cli.BoolFlag{
		Name:  "list",
		Usage: "List the sessions in the reporting period",
	}

	allFlag = &cli.BoolFlag{
		Name:  "all",
		Usage: "Include completed tasks",
	}

	priorityFlag = &cli.StringFlag{
		Name:    "priority",
		Aliases: []string{"p"},
		Usage:   "Task priority: urgent, medium or low",
		Value:   "medium",
	}

	dueFlag = &cli.StringFlag{
		Name:  "due",
		Usage: "Due date (e.g. 'friday', '2026-10-01')",
	}

	descriptionFlag = &cli.StringFlag{
		Name:  "description",
		Usage: "Task description",
	}

	userFlag = &cli.StringFlag{
		Name:     "user",
		Aliases:  []string{"u"},
		Usage:    "User id",
		Required: true,
	}

	emailFlag = &cli.StringFlag{
		Name:  "email",
		Usage: "Email address shown with the session",
	}
)
