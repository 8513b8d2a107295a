package app

import (
	"context"
	"errors"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/focusflow/internal/apiclient"
	"github.com/ayoisaiah/focusflow/internal/auth"
	"github.com/ayoisaiah/focusflow/internal/config"
	"github.com/ayoisaiah/focusflow/internal/models"
	"github.com/ayoisaiah/focusflow/internal/pathutil"
	"github.com/ayoisaiah/focusflow/store"
	"github.com/ayoisaiah/focusflow/store/sqlite"
	"github.com/ayoisaiah/focusflow/timer"
)

// backend is the data the client commands read and write, served either by
// the local store or by a running server.
type backend interface {
	timer.SessionStore
	timer.ProfileStore
	timer.TaskLister
	timer.SessionLister
	GetUser(ctx context.Context, id string) (*models.User, error)
	CreateTask(
		ctx context.Context,
		userID string,
		in *models.NewTask,
	) (*models.Task, error)
	UpdateTask(
		ctx context.Context,
		userID, id string,
		patch *models.TaskPatch,
	) (*models.Task, error)
	Close() error
}

// env is what every command starts from: the merged config and the user it
// acts for.
type env struct {
	cfg         *config.Config
	session     *auth.Session
	sessionPath string
	userID      string
}

// pathOr returns the flag value, or the default location once the data
// directories exist.
func pathOr(ctx *cli.Context, flag string, fallback func() string) (string, error) {
	if p := ctx.String(flag); p != "" {
		return p, nil
	}

	if err := pathutil.Initialize(); err != nil {
		return "", err
	}

	return fallback(), nil
}

// load reads the configuration and the login session. With prompt set, a
// missing config file is created from the answers to a short questionnaire.
func load(ctx *cli.Context, prompt bool) (*env, error) {
	cfgPath, err := pathOr(ctx, "config", pathutil.ConfigFilePath)
	if err != nil {
		return nil, err
	}

	sessionPath, err := pathOr(ctx, "session-file", pathutil.SessionFilePath)
	if err != nil {
		return nil, err
	}

	opts := make([]config.Option, 0, 3)
	if prompt {
		opts = append(opts, config.WithPromptConfig(cfgPath))
	}

	opts = append(opts,
		config.WithViperConfig(cfgPath),
		config.WithCLIConfig(ctx),
	)

	cfg, err := config.New(opts...)
	if err != nil {
		return nil, err
	}

	session, err := auth.Hydrate(sessionPath)
	if err != nil && !errors.Is(err, auth.ErrNoSession) {
		return nil, err
	}

	if session != nil && cfg.Server.URL == "" && ctx.String("server") == "" {
		cfg.Server.URL = session.ServerURL
	}

	return &env{
		cfg:         cfg,
		session:     session,
		sessionPath: sessionPath,
		userID:      session.UserOr(cfg.Server.DefaultUser),
	}, nil
}

// openStore opens the local data file with the configured driver.
func openStore(ctx context.Context, cfg *config.Config) (store.DB, error) {
	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		path := cfg.Storage.Path
		if path == "" {
			if err := pathutil.Initialize(); err != nil {
				return nil, err
			}

			path = pathutil.SQLiteFilePath()
		}

		return sqlite.Open(ctx, path, sqlite.WithDefaultUser(cfg.Server.DefaultUser))
	default:
		path := cfg.Storage.Path
		if path == "" {
			if err := pathutil.Initialize(); err != nil {
				return nil, err
			}

			path = pathutil.BoltFilePath()
		}

		return store.NewClient(path, store.WithDefaultUser(cfg.Server.DefaultUser))
	}
}

// openBackend prefers the configured server over the local data file.
func openBackend(ctx context.Context, cfg *config.Config) (backend, error) {
	if cfg.Server.URL != "" {
		return apiclient.New(cfg.Server.URL)
	}

	return openStore(ctx, cfg)
}

func controllerOptions(cfg *config.Config, toasts *timer.Toasts) timer.Options {
	return timer.Options{
		Lengths: map[models.Kind][]time.Duration{
			models.KindFocus: cfg.Lengths(models.KindFocus),
			models.KindBreak: cfg.Lengths(models.KindBreak),
		},
		Durations: map[models.Kind]time.Duration{
			models.KindFocus: cfg.Focus.Duration,
			models.KindBreak: cfg.Break.Duration,
		},
		Toasts:      toasts,
		ToastTTL:    cfg.Notifications.DismissAfter,
		MaxSessions: cfg.Settings.MaxSessions,
	}
}
