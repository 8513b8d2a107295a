package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/focusflow/internal/models"
)

type fakeClock struct {
	t time.Time
}

func (f *fakeClock) now() time.Time {
	f.t = f.t.Add(time.Second)
	return f.t
}

func newTestClient(t *testing.T) (*Client, *fakeClock) {
	t.Helper()

	clock := &fakeClock{t: time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)}

	c, err := NewClient(
		filepath.Join(t.TempDir(), "focusflow.db"),
		WithClock(clock.now),
		WithDefaultUser("sample-user-id"),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = c.Close()
	})

	return c, clock
}

func TestSeedsDefaultUser(t *testing.T) {
	c, _ := newTestClient(t)

	u, err := c.GetUser(context.Background(), "sample-user-id")
	require.NoError(t, err)
	assert.Equal(t, "Jordan", u.FirstName)
	assert.Equal(t, 150, u.TotalFocusTime)
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "focusflow.db")
	ctx := context.Background()

	c, err := NewClient(path)
	require.NoError(t, err)

	_, err = c.AddFocusTime(ctx, "sample-user-id", 25)
	require.NoError(t, err)
	require.NoError(t, c.Close())

	c, err = NewClient(path)
	require.NoError(t, err)

	defer c.Close()

	u, err := c.GetUser(ctx, "sample-user-id")
	require.NoError(t, err)
	assert.Equal(t, 175, u.TotalFocusTime, "migrations must not reseed")
}

func TestStoreLocked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "focusflow.db")

	c, err := NewClient(path)
	require.NoError(t, err)

	defer c.Close()

	_, err = NewClient(path)
	assert.True(t, errors.Is(err, ErrStoreLocked), "got %v", err)
}

func TestFocusSessions(t *testing.T) {
	c, clock := newTestClient(t)
	ctx := context.Background()

	first, err := c.CreateFocusSession(ctx, "u1", &models.NewFocusSession{
		DurationMinutes: 25,
		TaskLabel:       "Essay",
		Kind:            models.KindFocus,
		CompletedAt:     time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, clock.t, first.CompletedAt, "store assigns completedAt")

	_, err = c.CreateFocusSession(ctx, "u1", &models.NewFocusSession{
		DurationMinutes: 5,
		Kind:            models.KindBreak,
	})
	require.NoError(t, err)

	_, err = c.CreateFocusSession(ctx, "u2", &models.NewFocusSession{
		DurationMinutes: 30,
	})
	require.NoError(t, err)

	sessions, err := c.ListFocusSessions(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "Essay", sessions[0].TaskLabel)
	assert.Equal(t, models.DefaultTaskLabel, sessions[1].TaskLabel)
	assert.Equal(t, models.KindBreak, sessions[1].Kind)

	_, err = c.CreateFocusSession(ctx, "u1", &models.NewFocusSession{
		DurationMinutes: -1,
	})
	assert.True(t, errors.Is(err, models.ErrInvalidInput))
}

func TestTasks(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	a, err := c.CreateTask(ctx, "u1", &models.NewTask{Title: "Read", Priority: models.PriorityLow})
	require.NoError(t, err)

	b, err := c.CreateTask(ctx, "u1", &models.NewTask{Title: "Write"})
	require.NoError(t, err)

	done := true
	updated, err := c.UpdateTask(ctx, "u1", a.ID, &models.TaskPatch{Completed: &done})
	require.NoError(t, err)
	assert.True(t, updated.Completed)

	tasks, err := c.ListTasks(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, a.ID, tasks[0].ID)
	assert.Equal(t, b.ID, tasks[1].ID)

	_, err = c.GetTask(ctx, "u2", a.ID)
	assert.True(t, errors.Is(err, ErrNotFound), "tasks are scoped to their owner")

	require.NoError(t, c.DeleteTask(ctx, "u1", a.ID))
	assert.True(t, errors.Is(c.DeleteTask(ctx, "u1", a.ID), ErrNotFound))
}

func TestNotesAndHabits(t *testing.T) {
	c, clock := newTestClient(t)
	ctx := context.Background()

	n, err := c.CreateNote(ctx, "u1", &models.NewNote{Title: "Ideas", Content: "..."})
	require.NoError(t, err)

	tags := []string{"school"}
	n, err = c.UpdateNote(ctx, "u1", n.ID, &models.NotePatch{Tags: &tags})
	require.NoError(t, err)
	assert.Equal(t, tags, n.Tags)
	assert.True(t, n.UpdatedAt.After(n.CreatedAt))

	h, err := c.CreateHabit(ctx, "u1", &models.NewHabit{Name: "Drink water"})
	require.NoError(t, err)

	done := true
	_, err = c.UpdateHabit(ctx, "u1", h.ID, &models.HabitPatch{Completed: &done})
	require.NoError(t, err)

	habits, err := c.ListHabits(ctx, "u1", clock.t)
	require.NoError(t, err)
	require.Len(t, habits, 1)
	assert.True(t, habits[0].Completed)

	habits, err = c.ListHabits(ctx, "u1", clock.t.AddDate(0, 0, -1))
	require.NoError(t, err)
	assert.Empty(t, habits)

	require.NoError(t, c.DeleteNote(ctx, "u1", n.ID))

	notes, err := c.ListNotes(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestCanceledContext(t *testing.T) {
	c, _ := newTestClient(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListTasks(ctx, "u1")
	assert.ErrorIs(t, err, context.Canceled)
}
