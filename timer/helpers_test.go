package timer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ayoisaiah/focusflow/internal/cache"
	"github.com/ayoisaiah/focusflow/internal/models"
)

var t0 = time.Date(2026, 9, 14, 9, 0, 0, 0, time.UTC)

// noTicks never ticks, so tests drive the clock through handleTick.
func noTicks(time.Duration) (<-chan time.Time, func()) {
	return nil, func() {}
}

type testClock struct {
	t  time.Time
	mu sync.Mutex
}

func newTestClock() *testClock {
	return &testClock{t: t0}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

type fakePersister struct {
	err  error
	runs []Run
	mu   sync.Mutex
}

func (f *fakePersister) Persist(_ context.Context, run Run) (*models.FocusSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.runs = append(f.runs, run)

	if f.err != nil {
		return nil, f.err
	}

	return &models.FocusSession{ID: "fs-1", Kind: run.Kind}, nil
}

func (f *fakePersister) Runs() []Run {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]Run, len(f.runs))
	copy(out, f.runs)

	return out
}

type fakeNotifier struct {
	kinds []models.Kind
	mu    sync.Mutex
}

func (f *fakeNotifier) Notify(_ context.Context, kind models.Kind) {
	f.mu.Lock()
	f.kinds = append(f.kinds, kind)
	f.mu.Unlock()
}

func (f *fakeNotifier) Kinds() []models.Kind {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]models.Kind(nil), f.kinds...)
}

type fixture struct {
	ctrl      *Controller
	clock     *testClock
	persister *fakePersister
	notifier  *fakeNotifier
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()

	f := &fixture{
		clock:     newTestClock(),
		persister: &fakePersister{},
		notifier:  &fakeNotifier{},
	}

	if opts.Source == nil {
		opts.Source = noTicks
	}

	opts.Now = f.clock.Now

	f.ctrl = NewController(context.Background(), f.persister, f.notifier, opts)

	t.Cleanup(f.ctrl.Close)

	return f
}

// tick delivers n ticks of the current generation, advancing the test clock
// by one second each.
func (f *fixture) tick(n int) {
	for range n {
		f.clock.Advance(time.Second)

		f.ctrl.mu.Lock()
		gen := f.ctrl.clock.Generation()
		f.ctrl.mu.Unlock()

		f.ctrl.handleTick(gen)
	}
}

// settle waits for in-flight completions.
func (f *fixture) settle() {
	f.ctrl.wg.Wait()
}

// fakeStore implements SessionStore, ProfileStore and TaskLister in memory.
type fakeStore struct {
	createErr  error
	profileErr error
	created    []models.NewFocusSession
	tasks      []models.Task
	sessions   []models.FocusSession
	added      []int
	listCalls  int
	mu         sync.Mutex
}

var errUnavailable = errors.New("store unavailable")

func (s *fakeStore) CreateFocusSession(
	_ context.Context,
	userID string,
	in *models.NewFocusSession,
) (*models.FocusSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.createErr != nil {
		return nil, s.createErr
	}

	if err := in.Validate(); err != nil {
		return nil, err
	}

	s.created = append(s.created, *in)

	return &models.FocusSession{
		ID:              "fs-1",
		UserID:          userID,
		TaskLabel:       in.TaskLabel,
		Kind:            in.Kind,
		DurationMinutes: in.DurationMinutes,
		CompletedAt:     in.CompletedAt,
	}, nil
}

func (s *fakeStore) AddFocusTime(
	_ context.Context,
	userID string,
	mins int,
) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.profileErr != nil {
		return nil, s.profileErr
	}

	s.added = append(s.added, mins)

	return &models.User{ID: userID}, nil
}

func (s *fakeStore) ListTasks(_ context.Context, _ string) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listCalls++

	return append([]models.Task(nil), s.tasks...), nil
}

func (s *fakeStore) ListFocusSessions(
	_ context.Context,
	_ string,
) ([]models.FocusSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]models.FocusSession(nil), s.sessions...), nil
}

func newCache() *cache.Cache {
	return cache.New(cache.DefaultSize, time.Minute)
}
