package timer

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/ayoisaiah/focusflow/internal/models"
)

// State of the current run.
type State int

const (
	StateIdle State = iota
	StateRunning
	StatePaused
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateCompleted:
		return "completed"
	default:
		return "idle"
	}
}

// Run is a copy of the controller's run state.
type Run struct {
	StartedAt          time.Time
	Kind               models.Kind
	BoundTaskID        string
	BoundTaskLabel     string
	Toasts             []Toast
	DurationSeconds    int
	RemainingSeconds   int
	SessionCount       int
	MaxSessions        int
	State              State
	Active             bool
	CompletionReported bool
	// Completions counts the runs reported since the controller was created.
	Completions        uint64
}

// Persister records a completed run.
type Persister interface {
	Persist(ctx context.Context, run Run) (*models.FocusSession, error)
}

// Notifier tells the user that a run has finished.
type Notifier interface {
	Notify(ctx context.Context, kind models.Kind)
}

// Options configures a Controller. Zero values fall back to the defaults.
type Options struct {
	Lengths     map[models.Kind][]time.Duration
	Durations   map[models.Kind]time.Duration
	Source      TickSource
	Now         func() time.Time
	Logger      *slog.Logger
	Toasts      *Toasts
	Period      time.Duration
	ToastTTL    time.Duration
	MaxSessions int
}

// DefaultLengths are the selectable run lengths.
func DefaultLengths() map[models.Kind][]time.Duration {
	return map[models.Kind][]time.Duration{
		models.KindFocus: {
			15 * time.Minute,
			25 * time.Minute,
			30 * time.Minute,
			45 * time.Minute,
			60 * time.Minute,
		},
		models.KindBreak: {
			5 * time.Minute,
			10 * time.Minute,
			15 * time.Minute,
			20 * time.Minute,
		},
	}
}

const (
	defaultFocus       = 25 * time.Minute
	defaultBreak       = 5 * time.Minute
	defaultMaxSessions = 4
	defaultToastTTL    = 5 * time.Second
)

// Controller drives the session lifecycle. All state is guarded by mu, and
// the clock delivers its ticks under the same lock.
type Controller struct {
	ctx       context.Context
	persister Persister
	notifier  Notifier
	clock     *Clock
	toasts    *Toasts
	log       *slog.Logger
	now       func() time.Time
	changed   chan struct{}
	cancel    context.CancelFunc
	lengths   map[models.Kind][]time.Duration
	durations map[models.Kind]time.Duration

	startedAt          time.Time
	kind               models.Kind
	taskID             string
	taskLabel          string
	sessionCount       int
	maxSessions        int
	toastTTL           time.Duration
	completionReported bool
	closed             bool
	completions        uint64

	wg sync.WaitGroup
	mu sync.Mutex
}

// NewController returns an idle focus run at the configured focus duration.
// Completions are persisted and announced with ctx, so cancelling it aborts
// in-flight store calls.
func NewController(
	ctx context.Context,
	persister Persister,
	notifier Notifier,
	opts Options,
) *Controller {
	ctx, cancel := context.WithCancel(ctx)

	c := &Controller{
		ctx:          ctx,
		cancel:       cancel,
		persister:    persister,
		notifier:     notifier,
		kind:         models.KindFocus,
		sessionCount: 1,
		maxSessions:  opts.MaxSessions,
		lengths:      opts.Lengths,
		durations:    map[models.Kind]time.Duration{},
		toasts:       opts.Toasts,
		toastTTL:     opts.ToastTTL,
		log:          opts.Logger,
		now:          opts.Now,
		changed:      make(chan struct{}, 1),
	}

	if c.maxSessions <= 0 {
		c.maxSessions = defaultMaxSessions
	}

	if c.lengths == nil {
		c.lengths = DefaultLengths()
	}

	if c.toasts == nil {
		c.toasts = NewToasts(opts.Now)
	}

	if c.toastTTL <= 0 {
		c.toastTTL = defaultToastTTL
	}

	if c.log == nil {
		c.log = slog.Default()
	}

	if c.now == nil {
		c.now = time.Now
	}

	c.durations[models.KindFocus] = defaultFocus
	c.durations[models.KindBreak] = defaultBreak

	for kind, d := range opts.Durations {
		if d > 0 {
			c.durations[kind] = d
		}
	}

	c.clock = NewClock(
		seconds(c.durations[c.kind]),
		opts.Period,
		opts.Source,
		c.handleTick,
	)

	return c
}

func seconds(d time.Duration) int {
	return int(d / time.Second)
}

// Changes receives a value whenever the run state changes. Notifications are
// coalesced, so readers should take a fresh Snapshot.
func (c *Controller) Changes() <-chan struct{} {
	return c.changed
}

func (c *Controller) signal() {
	select {
	case c.changed <- struct{}{}:
	default:
	}
}

// Snapshot returns a copy of the current run.
func (c *Controller) Snapshot() Run {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Run {
	r := Run{
		StartedAt:          c.startedAt,
		Kind:               c.kind,
		BoundTaskID:        c.taskID,
		BoundTaskLabel:     c.taskLabel,
		DurationSeconds:    c.clock.Duration(),
		RemainingSeconds:   c.clock.Remaining(),
		SessionCount:       c.sessionCount,
		MaxSessions:        c.maxSessions,
		Active:             c.clock.Running(),
		CompletionReported: c.completionReported,
		Completions:        c.completions,
		Toasts:             c.toasts.Active(),
	}

	switch {
	case r.Active:
		r.State = StateRunning
	case r.RemainingSeconds == 0:
		r.State = StateCompleted
	case !r.StartedAt.IsZero():
		r.State = StatePaused
	default:
		r.State = StateIdle
	}

	return r
}

// Lengths returns the selectable durations for kind.
func (c *Controller) Lengths(kind models.Kind) []time.Duration {
	return slices.Clone(c.lengths[kind])
}

// Start runs the clock. Starting an idle run records its start time; a paused
// run keeps its original one. Start is a no-op while running or once the run
// has counted down to zero: only Reset, ChangeDuration or Skip re-arm it.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.startLocked()
}

func (c *Controller) startLocked() {
	if c.closed || c.clock.Running() || c.clock.Remaining() == 0 {
		return
	}

	if c.startedAt.IsZero() {
		c.startedAt = c.now()
		c.completionReported = false
	}

	c.clock.Start()
	c.signal()
}

// Pause stops the clock and keeps the remaining time.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.clock.Running() {
		return
	}

	c.clock.Stop()
	c.signal()
}

// Toggle starts a stopped run or pauses a running one.
func (c *Controller) Toggle() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.clock.Running() {
		c.clock.Stop()
		c.signal()

		return
	}

	c.startLocked()
}

// Reset returns the run to idle at its current duration.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.clock.Rewind()
	c.startedAt = time.Time{}
	c.completionReported = false

	c.signal()
}

// ChangeDuration selects a new length for the current kind of run. It is
// rejected while the clock is running.
func (c *Controller) ChangeDuration(d time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.clock.Running() {
		return ErrTimerRunning
	}

	if !slices.Contains(c.lengths[c.kind], d) {
		return ErrUnsupportedDuration.Fmt(d, c.kind)
	}

	c.durations[c.kind] = d
	c.clock.SetDuration(seconds(d))
	c.startedAt = time.Time{}
	c.completionReported = false

	c.signal()

	return nil
}

// SwitchKind turns the idle run into a run of the given kind at that kind's
// selected duration.
func (c *Controller) SwitchKind(kind models.Kind) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.clock.Running() {
		return ErrTimerRunning
	}

	c.kind = kind
	c.clock.SetDuration(seconds(c.durations[kind]))
	c.startedAt = time.Time{}
	c.completionReported = false

	c.signal()

	return nil
}

// Skip abandons the current run and moves on to the next session in the
// cycle, never past the configured maximum.
func (c *Controller) Skip() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.clock.SetDuration(seconds(c.durations[c.kind]))
	c.startedAt = time.Time{}
	c.completionReported = false
	c.sessionCount = min(c.sessionCount+1, c.maxSessions)

	c.signal()
}

// SetTask sets the label carried into the recorded session. An empty label
// unbinds the run.
func (c *Controller) SetTask(id, label string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.taskID = id
	c.taskLabel = label

	c.signal()
}

// handleTick is the clock's deliver callback.
func (c *Controller) handleTick(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.clock.Tick(gen) {
		if gen == c.clock.Generation() {
			c.signal()
		}

		return
	}

	c.onZeroCrossing()
	c.signal()
}

// onZeroCrossing runs with mu held when the clock reaches zero. The run is
// marked reported before any side effect is scheduled so that a run can be
// recorded at most once.
func (c *Controller) onZeroCrossing() {
	c.clock.Stop()

	if c.startedAt.IsZero() || c.completionReported || c.closed {
		return
	}

	c.completionReported = true
	c.completions++

	run := c.snapshotLocked()

	c.wg.Add(2)

	go c.persist(run)
	go c.announce(run)
}

func (c *Controller) persist(run Run) {
	defer c.wg.Done()

	rec, err := c.persister.Persist(c.ctx, run)
	if err != nil {
		if errors.Is(err, ErrRunNotStarted) {
			c.log.Error("skipping completion", slog.Any("error", err))
			return
		}

		c.log.Error(
			"session was not recorded",
			slog.String("kind", string(run.Kind)),
			slog.Any("error", err),
		)

		c.toasts.Show(
			ToastError,
			unrecordedTitle(run.Kind),
			"Check your connection and try again",
			c.toastTTL,
		)
		c.signal()

		return
	}

	c.log.Info(
		"session recorded",
		slog.String("id", rec.ID),
		slog.String("kind", string(rec.Kind)),
		slog.Int("minutes", rec.DurationMinutes),
	)

	c.signal()
}

func unrecordedTitle(kind models.Kind) string {
	if kind == models.KindBreak {
		return "Break wasn't recorded"
	}

	return "Focus session wasn't recorded"
}

func (c *Controller) announce(run Run) {
	defer c.wg.Done()

	c.notifier.Notify(c.ctx, run.Kind)
	c.signal()
}

// Close stops the clock and waits for in-flight completions to finish.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.clock.Stop()
	c.mu.Unlock()

	c.clock.Wait()
	c.wg.Wait()
	c.cancel()
}
