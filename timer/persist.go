package timer

import (
	"context"
	"log/slog"
	"time"

	"github.com/ayoisaiah/focusflow/internal/cache"
	"github.com/ayoisaiah/focusflow/internal/models"
	"github.com/ayoisaiah/focusflow/internal/timeutil"
)

// SessionStore creates focus-session records.
type SessionStore interface {
	CreateFocusSession(
		ctx context.Context,
		userID string,
		in *models.NewFocusSession,
	) (*models.FocusSession, error)
}

// ProfileStore adds to a user's cumulative focus time.
type ProfileStore interface {
	AddFocusTime(ctx context.Context, userID string, mins int) (*models.User, error)
}

// CompletionPersister records completed runs.
type CompletionPersister struct {
	sessions SessionStore
	profiles ProfileStore
	cache    *cache.Cache
	now      func() time.Time
	log      *slog.Logger
	userID   string
}

func NewCompletionPersister(
	userID string,
	sessions SessionStore,
	profiles ProfileStore,
	c *cache.Cache,
	now func() time.Time,
	logger *slog.Logger,
) *CompletionPersister {
	if now == nil {
		now = time.Now
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &CompletionPersister{
		userID:   userID,
		sessions: sessions,
		profiles: profiles,
		cache:    c,
		now:      now,
		log:      logger,
	}
}

// Persist makes one create call for run. The recorded duration is the time
// elapsed since the run started, pauses included, rounded to the minute.
//
// After a successful create the cached session list is invalidated and the
// minutes of a focus run are added to the user's total. The profile update is
// best effort: its failure is logged and the record stands.
func (p *CompletionPersister) Persist(
	ctx context.Context,
	run Run,
) (*models.FocusSession, error) {
	if run.StartedAt.IsZero() {
		return nil, ErrRunNotStarted
	}

	now := p.now()
	mins := timeutil.ElapsedMinutes(run.StartedAt, now)

	label := run.BoundTaskLabel
	if label == "" {
		label = models.DefaultTaskLabel
	}

	rec, err := p.sessions.CreateFocusSession(ctx, p.userID, &models.NewFocusSession{
		DurationMinutes: mins,
		TaskID:          run.BoundTaskID,
		TaskLabel:       label,
		Kind:            run.Kind,
		CompletedAt:     now,
	})
	if err != nil {
		return nil, errPersist.Fmt(run.Kind).Wrap(err)
	}

	p.cache.Invalidate(cache.SessionsKey(p.userID))

	if run.Kind != models.KindFocus {
		return rec, nil
	}

	p.cache.AddFocusTime(p.userID, mins)

	if _, err := p.profiles.AddFocusTime(ctx, p.userID, mins); err != nil {
		p.log.Warn(
			"unable to update total focus time",
			slog.String("user", p.userID),
			slog.Int("minutes", mins),
			slog.Any("error", err),
		)
	}

	return rec, nil
}
