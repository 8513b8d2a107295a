// Package store persists users, tasks, focus sessions, notes and habits.
// Client is the default single-file implementation on BoltDB.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/focusflow/internal/models"
	"github.com/ayoisaiah/focusflow/internal/timeutil"
)

const (
	metaBucket     = "meta"
	usersBucket    = "users"
	tasksBucket    = "tasks"
	sessionsBucket = "focus_sessions"
	notesBucket    = "notes"
	habitsBucket   = "habits"
)

// Client is a BoltDB database client.
type Client struct {
	db          *bolt.DB
	now         func() time.Time
	defaultUser string
}

// Option configures a Client.
type Option func(*Client)

// WithClock overrides the clock used for store-assigned timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// WithDefaultUser sets the id of the profile seeded into a new store.
func WithDefaultUser(id string) Option {
	return func(c *Client) {
		c.defaultUser = id
	}
}

// open creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrDatabaseOpen) ||
			errors.Is(err, bolt.ErrTimeout) {
			return nil, ErrStoreLocked
		}

		return nil, errOpenStore.Wrap(err)
	}

	return db, nil
}

// NewClient opens the bolt file at dbPath and brings it up to date.
func NewClient(dbPath string, opts ...Option) (*Client, error) {
	c := &Client{
		now:         time.Now,
		defaultUser: "sample-user-id",
	}

	for _, opt := range opts {
		opt(c)
	}

	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	c.db = db

	if err := c.db.Update(c.migrate); err != nil {
		_ = db.Close()
		return nil, err
	}

	return c, nil
}

func (c *Client) Close() error {
	return c.db.Close()
}

// scopedKey namespaces id under the owning user.
func scopedKey(userID string, parts ...string) []byte {
	return []byte(userID + "/" + strings.Join(parts, "/"))
}

func userPrefix(userID string) []byte {
	return []byte(userID + "/")
}

func put(tx *bolt.Tx, bucket string, key []byte, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return tx.Bucket([]byte(bucket)).Put(key, b)
}

func get[T any](tx *bolt.Tx, bucket, entity string, key []byte) (*T, error) {
	b := tx.Bucket([]byte(bucket)).Get(key)
	if b == nil {
		return nil, ErrNotFound.Fmt(entity)
	}

	var v T

	if err := json.Unmarshal(b, &v); err != nil {
		return nil, err
	}

	return &v, nil
}

// list decodes every value whose key starts with prefix, in key order.
func list[T any](tx *bolt.Tx, bucket string, prefix []byte) ([]T, error) {
	out := []T{}

	cur := tx.Bucket([]byte(bucket)).Cursor()

	for k, v := cur.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = cur.Next() {
		var item T

		if err := json.Unmarshal(v, &item); err != nil {
			return nil, err
		}

		out = append(out, item)
	}

	return out, nil
}

func del(tx *bolt.Tx, bucket, entity string, key []byte) error {
	b := tx.Bucket([]byte(bucket))
	if b.Get(key) == nil {
		return ErrNotFound.Fmt(entity)
	}

	return b.Delete(key)
}

func (c *Client) view(ctx context.Context, fn func(tx *bolt.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return c.db.View(fn)
}

func (c *Client) update(ctx context.Context, fn func(tx *bolt.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return c.db.Update(fn)
}

func (c *Client) GetUser(ctx context.Context, id string) (*models.User, error) {
	var u *models.User

	err := c.view(ctx, func(tx *bolt.Tx) error {
		var err error
		u, err = get[models.User](tx, usersBucket, "user", []byte(id))

		return err
	})

	return u, err
}

func (c *Client) SaveUser(ctx context.Context, u *models.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = c.now()
	}

	return c.update(ctx, func(tx *bolt.Tx) error {
		return put(tx, usersBucket, []byte(u.ID), u)
	})
}

func (c *Client) UpdateUser(
	ctx context.Context,
	id string,
	patch *models.UserPatch,
) (*models.User, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	return c.modifyUser(ctx, id, patch.Apply)
}

func (c *Client) AddFocusTime(
	ctx context.Context,
	id string,
	mins int,
) (*models.User, error) {
	return c.modifyUser(ctx, id, func(u *models.User) {
		u.TotalFocusTime += mins
	})
}

func (c *Client) modifyUser(
	ctx context.Context,
	id string,
	fn func(u *models.User),
) (*models.User, error) {
	var u *models.User

	err := c.update(ctx, func(tx *bolt.Tx) error {
		var err error

		u, err = get[models.User](tx, usersBucket, "user", []byte(id))
		if err != nil {
			return err
		}

		fn(u)

		return put(tx, usersBucket, []byte(id), u)
	})

	return u, err
}

func (c *Client) ListTasks(ctx context.Context, userID string) ([]models.Task, error) {
	var tasks []models.Task

	err := c.view(ctx, func(tx *bolt.Tx) error {
		var err error
		tasks, err = list[models.Task](tx, tasksBucket, userPrefix(userID))

		return err
	})

	slices.SortStableFunc(tasks, func(a, b models.Task) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	return tasks, err
}

func (c *Client) GetTask(ctx context.Context, userID, id string) (*models.Task, error) {
	var t *models.Task

	err := c.view(ctx, func(tx *bolt.Tx) error {
		var err error
		t, err = get[models.Task](tx, tasksBucket, "task", scopedKey(userID, id))

		return err
	})

	return t, err
}

func (c *Client) CreateTask(
	ctx context.Context,
	userID string,
	in *models.NewTask,
) (*models.Task, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	t := &models.Task{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
		CreatedAt:   c.now(),
	}

	err := c.update(ctx, func(tx *bolt.Tx) error {
		return put(tx, tasksBucket, scopedKey(userID, t.ID), t)
	})
	if err != nil {
		return nil, err
	}

	return t, nil
}

func (c *Client) UpdateTask(
	ctx context.Context,
	userID, id string,
	patch *models.TaskPatch,
) (*models.Task, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var t *models.Task

	key := scopedKey(userID, id)

	err := c.update(ctx, func(tx *bolt.Tx) error {
		var err error

		t, err = get[models.Task](tx, tasksBucket, "task", key)
		if err != nil {
			return err
		}

		patch.Apply(t)

		return put(tx, tasksBucket, key, t)
	})

	return t, err
}

func (c *Client) DeleteTask(ctx context.Context, userID, id string) error {
	return c.update(ctx, func(tx *bolt.Tx) error {
		return del(tx, tasksBucket, "task", scopedKey(userID, id))
	})
}

func (c *Client) ListFocusSessions(
	ctx context.Context,
	userID string,
) ([]models.FocusSession, error) {
	var sessions []models.FocusSession

	err := c.view(ctx, func(tx *bolt.Tx) error {
		var err error
		sessions, err = list[models.FocusSession](
			tx,
			sessionsBucket,
			userPrefix(userID),
		)

		return err
	})

	return sessions, err
}

func (c *Client) CreateFocusSession(
	ctx context.Context,
	userID string,
	in *models.NewFocusSession,
) (*models.FocusSession, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	s := &models.FocusSession{
		ID:              uuid.NewString(),
		UserID:          userID,
		TaskID:          in.TaskID,
		TaskLabel:       in.TaskLabel,
		Kind:            in.Kind,
		DurationMinutes: in.DurationMinutes,
		CompletedAt:     c.now(),
	}

	key := scopedKey(userID, string(timeutil.ToKey(s.CompletedAt)), s.ID)

	err := c.update(ctx, func(tx *bolt.Tx) error {
		return put(tx, sessionsBucket, key, s)
	})
	if err != nil {
		return nil, err
	}

	return s, nil
}

func (c *Client) ListNotes(ctx context.Context, userID string) ([]models.Note, error) {
	var notes []models.Note

	err := c.view(ctx, func(tx *bolt.Tx) error {
		var err error
		notes, err = list[models.Note](tx, notesBucket, userPrefix(userID))

		return err
	})

	slices.SortStableFunc(notes, func(a, b models.Note) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})

	return notes, err
}

func (c *Client) CreateNote(
	ctx context.Context,
	userID string,
	in *models.NewNote,
) (*models.Note, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	now := c.now()

	n := &models.Note{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     in.Title,
		Content:   in.Content,
		Tags:      in.Tags,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := c.update(ctx, func(tx *bolt.Tx) error {
		return put(tx, notesBucket, scopedKey(userID, n.ID), n)
	})
	if err != nil {
		return nil, err
	}

	return n, nil
}

func (c *Client) UpdateNote(
	ctx context.Context,
	userID, id string,
	patch *models.NotePatch,
) (*models.Note, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var n *models.Note

	key := scopedKey(userID, id)

	err := c.update(ctx, func(tx *bolt.Tx) error {
		var err error

		n, err = get[models.Note](tx, notesBucket, "note", key)
		if err != nil {
			return err
		}

		patch.Apply(n)
		n.UpdatedAt = c.now()

		return put(tx, notesBucket, key, n)
	})

	return n, err
}

func (c *Client) DeleteNote(ctx context.Context, userID, id string) error {
	return c.update(ctx, func(tx *bolt.Tx) error {
		return del(tx, notesBucket, "note", scopedKey(userID, id))
	})
}

func (c *Client) ListHabits(
	ctx context.Context,
	userID string,
	day time.Time,
) ([]models.Habit, error) {
	var habits []models.Habit

	err := c.view(ctx, func(tx *bolt.Tx) error {
		var err error
		habits, err = list[models.Habit](tx, habitsBucket, userPrefix(userID))

		return err
	})
	if err != nil {
		return nil, err
	}

	habits = slices.DeleteFunc(habits, func(h models.Habit) bool {
		return !timeutil.SameDay(day, h.Date)
	})

	slices.SortStableFunc(habits, func(a, b models.Habit) int {
		return a.Date.Compare(b.Date)
	})

	return habits, nil
}

func (c *Client) CreateHabit(
	ctx context.Context,
	userID string,
	in *models.NewHabit,
) (*models.Habit, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	h := &models.Habit{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      in.Name,
		Completed: in.Completed,
		Date:      c.now(),
	}

	err := c.update(ctx, func(tx *bolt.Tx) error {
		return put(tx, habitsBucket, scopedKey(userID, h.ID), h)
	})
	if err != nil {
		return nil, err
	}

	return h, nil
}

func (c *Client) UpdateHabit(
	ctx context.Context,
	userID, id string,
	patch *models.HabitPatch,
) (*models.Habit, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var h *models.Habit

	key := scopedKey(userID, id)

	err := c.update(ctx, func(tx *bolt.Tx) error {
		var err error

		h, err = get[models.Habit](tx, habitsBucket, "habit", key)
		if err != nil {
			return err
		}

		patch.Apply(h)

		return put(tx, habitsBucket, key, h)
	})

	return h, err
}
