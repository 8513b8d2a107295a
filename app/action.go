package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/kballard/go-shellquote"
	"github.com/maruel/natural"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/focusflow/assistant"
	"github.com/ayoisaiah/focusflow/internal/apperr"
	"github.com/ayoisaiah/focusflow/internal/auth"
	"github.com/ayoisaiah/focusflow/internal/cache"
	"github.com/ayoisaiah/focusflow/internal/config"
	"github.com/ayoisaiah/focusflow/internal/logging"
	"github.com/ayoisaiah/focusflow/internal/models"
	"github.com/ayoisaiah/focusflow/internal/osutil"
	"github.com/ayoisaiah/focusflow/internal/pathutil"
	"github.com/ayoisaiah/focusflow/internal/server"
	"github.com/ayoisaiah/focusflow/internal/timeutil"
	"github.com/ayoisaiah/focusflow/internal/ui"
	"github.com/ayoisaiah/focusflow/stats"
	"github.com/ayoisaiah/focusflow/timer"
)

const (
	envNoColor          = "NO_COLOR"
	envFocusflowNoColor = "FOCUSFLOW_NO_COLOR"
)

var (
	errMissingTitle = &apperr.Error{
		Message: "a task title is required",
	}

	errMissingID = &apperr.Error{
		Message: "a task id is required",
	}

	errInvalidDue = &apperr.Error{
		Message: "unable to understand the due date: %q",
	}

	errUnknownTask = &apperr.Error{
		Message: "no open task with id %q",
	}

	errEditor = &apperr.Error{
		Message: "unable to run editor %q",
	}
)

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(ctx *cli.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx.Context, os.Interrupt, syscall.SIGTERM)
}

// dashboardURL turns a listen address into a URL a browser can open.
func dashboardURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}

	return "http://" + addr
}

// serveAction handles the serve command which runs the REST API until it
// is interrupted.
func serveAction(ctx *cli.Context) error {
	e, err := load(ctx, false)
	if err != nil {
		return err
	}

	logger := logging.NewConsoleLogger(config.Stderr, logging.Level())
	slog.SetDefault(logger)

	sigCtx, stop := signalContext(ctx)
	defer stop()

	db, err := openStore(sigCtx, e.cfg)
	if err != nil {
		return err
	}

	defer db.Close()

	srv := server.New(db, assistant.New(e.cfg.AI, logger), server.Options{
		Addr:         e.cfg.Server.Addr,
		DefaultUser:  e.cfg.Server.DefaultUser,
		ReadTimeout:  e.cfg.Server.ReadTimeout,
		WriteTimeout: e.cfg.Server.WriteTimeout,
		Logger:       logger,
	})

	if ctx.Bool("open") {
		go func() {
			// give the listener a moment to come up
			time.Sleep(time.Second)

			if err := osutil.OpenURL(dashboardURL(e.cfg.Server.Addr)); err != nil {
				logger.Warn("unable to open the dashboard", slog.Any("error", err))
			}
		}()
	}

	return srv.ListenAndServe(sigCtx)
}

// timerAction handles the timer command which runs the interactive focus
// timer.
func timerAction(ctx *cli.Context) error {
	e, err := load(ctx, true)
	if err != nil {
		return err
	}

	if err := pathutil.Initialize(); err != nil {
		return err
	}

	logger, closer := logging.NewFileLogger(pathutil.LogFilePath(), logging.Level())
	defer closer.Close()

	slog.SetDefault(logger)

	sigCtx, stop := signalContext(ctx)
	defer stop()

	b, err := openBackend(sigCtx, e.cfg)
	if err != nil {
		return err
	}

	defer b.Close()

	c := cache.New(cache.DefaultSize, cache.DefaultTTL)

	if u, err := b.GetUser(sigCtx, e.userID); err == nil {
		c.SetFocusTime(u.ID, u.TotalFocusTime)
	} else {
		logger.Warn("unable to load the user profile",
			slog.String("user", e.userID),
			slog.Any("error", err),
		)
	}

	toasts := timer.NewToasts(time.Now)

	notifier := timer.NewDesktopNotifier(toasts, timer.NotifierOptions{
		Player:       timer.NewSound(e.cfg.Notifications.Sound),
		Logger:       logger,
		Cmd:          e.cfg.Settings.Cmd,
		DismissAfter: e.cfg.Notifications.DismissAfter,
		Enabled:      e.cfg.Notifications.Enabled,
	})

	// asked here, before the timer takes over the terminal
	notifier.RequestPermission()

	persister := timer.NewCompletionPersister(e.userID, b, b, c, time.Now, logger)

	opts := controllerOptions(e.cfg, toasts)
	opts.Logger = logger

	ctrl := timer.NewController(sigCtx, persister, notifier, opts)
	defer ctrl.Close()

	binder := timer.NewBinder(e.userID, b, c, ctrl)

	if id := e.cfg.CLI.TaskID; id != "" {
		if err := bindTask(sigCtx, binder, id); err != nil {
			return err
		}
	}

	ui.SetDarkTheme(e.cfg.Display.DarkTheme)

	m := timer.NewModel(sigCtx, timer.ModelOptions{
		Controller: ctrl,
		Binder:     binder,
		Sessions:   b,
		Cache:      c,
		Config:     e.cfg,
		Logger:     logger,
		UserID:     e.userID,
	})

	return timer.Run(sigCtx, m)
}

func bindTask(ctx context.Context, binder *timer.Binder, id string) error {
	tasks, err := binder.Candidates(ctx)
	if err != nil {
		return err
	}

	for i := range tasks {
		if tasks[i].ID == id {
			binder.Bind(tasks[i])
			return nil
		}
	}

	return errUnknownTask.Fmt(id)
}

// statsAction prints the progress summary of the current user.
func statsAction(ctx *cli.Context) error {
	e, err := load(ctx, false)
	if err != nil {
		return err
	}

	b, err := openBackend(ctx.Context, e.cfg)
	if err != nil {
		return err
	}

	defer b.Close()

	u, err := b.GetUser(ctx.Context, e.userID)
	if err != nil {
		return err
	}

	tasks, err := b.ListTasks(ctx.Context, e.userID)
	if err != nil {
		return err
	}

	sessions, err := b.ListFocusSessions(ctx.Context, e.userID)
	if err != nil {
		return err
	}

	s := stats.Compute(time.Now(), u, tasks, sessions, e.cfg.CLI.Since)

	if e.cfg.CLI.JSON {
		out, err := s.ToJSON()
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(config.Stdout, string(out))

		return err
	}

	ui.SetDarkTheme(e.cfg.Display.DarkTheme)

	stats.Show(config.Stdout, s, ctx.Bool("list"), e.cfg.TimeFormat())

	return nil
}

// listTasksAction prints the user's tasks, open ones only unless --all is
// set.
func listTasksAction(ctx *cli.Context) error {
	e, err := load(ctx, false)
	if err != nil {
		return err
	}

	b, err := openBackend(ctx.Context, e.cfg)
	if err != nil {
		return err
	}

	defer b.Close()

	tasks, err := b.ListTasks(ctx.Context, e.userID)
	if err != nil {
		return err
	}

	data := [][]string{
		{"ID", "TITLE", "PRIORITY", "DUE", "DONE"},
	}

	tasks = filterTasks(tasks, ctx.Bool("all"))

	for i := range tasks {
		t := &tasks[i]

		due := ""
		if t.DueDate != nil {
			due = t.DueDate.Local().Format("Jan 02, 2006")
		}

		done := ""
		if t.Completed {
			done = ui.Green("✓")
		}

		data = append(data, []string{t.ID, t.Title, string(t.Priority), due, done})
	}

	if len(tasks) == 0 {
		_, err = fmt.Fprintln(config.Stdout, pterm.Info.Sprint("No tasks yet. Add one with 'focusflow task add <title>'"))
		return err
	}

	return ui.PrintTable(config.Stdout, data)
}

// filterTasks drops completed tasks unless all is set and sorts the rest
// by title.
func filterTasks(tasks []models.Task, all bool) []models.Task {
	out := make([]models.Task, 0, len(tasks))

	for i := range tasks {
		if tasks[i].Completed && !all {
			continue
		}

		out = append(out, tasks[i])
	}

	sortByTitle(out)

	return out
}

func sortByTitle(tasks []models.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return natural.Less(tasks[i].Title, tasks[j].Title)
	})
}

// addTaskAction creates a task from the command arguments.
func addTaskAction(ctx *cli.Context) error {
	title := strings.TrimSpace(strings.Join(ctx.Args().Slice(), " "))
	if title == "" {
		return errMissingTitle
	}

	e, err := load(ctx, false)
	if err != nil {
		return err
	}

	in := &models.NewTask{
		Title:       title,
		Description: ctx.String("description"),
		Priority:    models.Priority(ctx.String("priority")),
	}

	if v := ctx.String("due"); v != "" {
		due, err := timeutil.FromStr(v, time.Now())
		if err != nil {
			return errInvalidDue.Fmt(v).Wrap(err)
		}

		in.DueDate = &due
	}

	b, err := openBackend(ctx.Context, e.cfg)
	if err != nil {
		return err
	}

	defer b.Close()

	t, err := b.CreateTask(ctx.Context, e.userID, in)
	if err != nil {
		return err
	}

	ui.Success(config.Stdout, "Added task %q (%s)", t.Title, t.ID)

	return nil
}

// completeTaskAction marks the task with the given id as completed.
func completeTaskAction(ctx *cli.Context) error {
	id := ctx.Args().First()
	if id == "" {
		return errMissingID
	}

	e, err := load(ctx, false)
	if err != nil {
		return err
	}

	b, err := openBackend(ctx.Context, e.cfg)
	if err != nil {
		return err
	}

	defer b.Close()

	done := true

	t, err := b.UpdateTask(ctx.Context, e.userID, id, &models.TaskPatch{
		Completed: &done,
	})
	if err != nil {
		return err
	}

	ui.Success(config.Stdout, "Completed %q", t.Title)

	return nil
}

// breakDownAction prints suggested steps for a task.
func breakDownAction(ctx *cli.Context) error {
	title := strings.TrimSpace(strings.Join(ctx.Args().Slice(), " "))
	if title == "" {
		return errMissingTitle
	}

	e, err := load(ctx, false)
	if err != nil {
		return err
	}

	a := assistant.New(e.cfg.AI, slog.Default())

	steps := a.BreakDown(ctx.Context, title, ctx.String("description"))

	fmt.Fprintln(config.Stdout, ui.Blue(title))

	for i, step := range steps {
		fmt.Fprintf(config.Stdout, "%d. %s\n", i+1, step)
	}

	return nil
}

// loginAction stores the user that later commands act for, after checking
// that the user exists.
func loginAction(ctx *cli.Context) error {
	e, err := load(ctx, false)
	if err != nil {
		return err
	}

	id := ctx.String("user")

	b, err := openBackend(ctx.Context, e.cfg)
	if err != nil {
		return err
	}

	defer b.Close()

	u, err := b.GetUser(ctx.Context, id)
	if err != nil {
		return err
	}

	_, err = auth.Login(e.sessionPath, auth.Session{
		UserID:    u.ID,
		Email:     firstNonEmptyString(ctx.String("email"), u.Email),
		ServerURL: ctx.String("server"),
	})
	if err != nil {
		return err
	}

	ui.Success(config.Stdout, "Logged in as %s", firstNonEmptyString(u.FullName(), u.ID))

	return nil
}

func logoutAction(ctx *cli.Context) error {
	e, err := load(ctx, false)
	if err != nil {
		return err
	}

	if e.session == nil {
		_, err = fmt.Fprintln(config.Stdout, pterm.Info.Sprint("Not logged in"))
		return err
	}

	if err := e.session.Logout(); err != nil {
		return err
	}

	ui.Success(config.Stdout, "Logged out")

	return nil
}

// editorCommand splits the configured editor into a command line that opens
// path. Editors such as "code --wait" carry their own arguments.
func editorCommand(editor, path string) (*exec.Cmd, error) {
	args, err := shellquote.Split(editor)
	if err != nil || len(args) == 0 {
		return nil, errEditor.Fmt(editor).Wrap(err)
	}

	args = append(args, path)

	return exec.Command(args[0], args[1:]...), nil
}

// editConfigAction handles the edit-config command which opens the focusflow
// config file in the user's default text editor.
func editConfigAction(ctx *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == osutil.Windows {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	// writes the defaults on first use
	if _, err := load(ctx, false); err != nil {
		return err
	}

	cfgPath, err := pathOr(ctx, "config", pathutil.ConfigFilePath)
	if err != nil {
		return err
	}

	cmd, err := editorCommand(editor, cfgPath)
	if err != nil {
		return err
	}

	cmd.Stderr = config.Stderr
	cmd.Stdin = config.Stdin
	cmd.Stdout = config.Stdout

	return cmd.Run()
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	_, noColor := os.LookupEnv(envNoColor)
	_, ffNoColor := os.LookupEnv(envFocusflowNoColor)

	ui.Setup(noColor || ffNoColor || ctx.Bool("no-color"))

	return nil
}

// ReportError prints err the way command failures are shown to the user.
func ReportError(err error) {
	var exitErr cli.ExitCoder
	if errors.As(err, &exitErr) && exitErr.Error() == "" {
		return
	}

	ui.Error(config.Stderr, err)
}
