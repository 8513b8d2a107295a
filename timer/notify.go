package timer

import (
	"context"
	"log/slog"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/gen2brain/beeep"
	"github.com/kballard/go-shellquote"

	"github.com/ayoisaiah/focusflow/internal/models"
)

// Player plays the completion cue.
type Player interface {
	Play(ctx context.Context) error
}

// NotifierOptions configures a DesktopNotifier.
type NotifierOptions struct {
	Player       Player
	Logger       *slog.Logger
	Desktop      func(title, message, icon string) error
	Prompt       func() (bool, error)
	Icon         string
	Cmd          string
	DismissAfter time.Duration
	Enabled      bool
}

// DesktopNotifier announces completed runs with an in-app toast, a desktop
// notification, a sound and an optional user command. Only the toast is
// guaranteed; every other channel fails silently.
type DesktopNotifier struct {
	toasts       *Toasts
	player       Player
	log          *slog.Logger
	desktop      func(title, message, icon string) error
	prompt       func() (bool, error)
	icon         string
	cmd          string
	dismissAfter time.Duration
	once         sync.Once
	enabled      bool
	granted      atomic.Bool
}

func NewDesktopNotifier(toasts *Toasts, opts NotifierOptions) *DesktopNotifier {
	n := &DesktopNotifier{
		toasts:       toasts,
		player:       opts.Player,
		log:          opts.Logger,
		desktop:      opts.Desktop,
		prompt:       opts.Prompt,
		icon:         opts.Icon,
		cmd:          opts.Cmd,
		dismissAfter: opts.DismissAfter,
		enabled:      opts.Enabled,
	}

	if n.log == nil {
		n.log = slog.Default()
	}

	if n.desktop == nil {
		n.desktop = func(title, message, icon string) error {
			return beeep.Notify(title, message, icon)
		}
	}

	if n.prompt == nil {
		n.prompt = ConfirmPermission
	}

	if n.dismissAfter <= 0 {
		n.dismissAfter = defaultToastTTL
	}

	return n
}

// ConfirmPermission asks on the terminal whether desktop notifications may
// be shown.
func ConfirmPermission() (bool, error) {
	allow := true

	err := huh.NewConfirm().
		Title("Show a desktop notification when a session ends?").
		Affirmative("Yes").
		Negative("No").
		Value(&allow).
		Run()

	return allow, err
}

// RequestPermission asks for permission the first time it is called and
// returns the stored answer afterwards. A failed prompt counts as a denial.
func (n *DesktopNotifier) RequestPermission() bool {
	n.once.Do(func() {
		if !n.enabled {
			return
		}

		ok, err := n.prompt()
		if err != nil {
			n.log.Debug("notification permission prompt failed", slog.Any("error", err))
			return
		}

		n.granted.Store(ok)
	})

	return n.granted.Load()
}

func completionText(kind models.Kind) (title, body string) {
	if kind == models.KindBreak {
		return "Break complete!", "Ready for another focus session?"
	}

	return "Focus session complete!", "Time for a break!"
}

// Notify announces the end of a run of the given kind.
func (n *DesktopNotifier) Notify(ctx context.Context, kind models.Kind) {
	title, body := completionText(kind)

	n.toasts.Show(ToastInfo, title, body, n.dismissAfter)

	if n.granted.Load() {
		if err := n.desktop(title, body, n.icon); err != nil {
			n.log.Debug("desktop notification failed", slog.Any("error", err))
		}
	}

	if n.player != nil {
		if err := n.player.Play(ctx); err != nil {
			n.log.Debug("completion sound failed", slog.Any("error", err))
		}
	}

	if err := runSessionCmd(ctx, n.cmd); err != nil {
		n.log.Debug("session command failed", slog.String("cmd", n.cmd), slog.Any("error", err))
	}
}

// runSessionCmd executes the specified command.
func runSessionCmd(ctx context.Context, sessionCmd string) error {
	if sessionCmd == "" {
		return nil
	}

	cmdSlice, err := shellquote.Split(sessionCmd)
	if err != nil {
		return errSessionCmd.Wrap(err)
	}

	if len(cmdSlice) == 0 {
		return nil
	}

	name := cmdSlice[0]
	args := cmdSlice[1:]

	cmd := exec.CommandContext(ctx, name, args...)

	return cmd.Run()
}
