package store

import (
	"context"
	"time"

	"github.com/ayoisaiah/focusflow/internal/apperr"
	"github.com/ayoisaiah/focusflow/internal/models"
)

var (
	// ErrNotFound is returned for a missing record, or a record owned by
	// another user.
	ErrNotFound = &apperr.Error{
		Message: "%s not found",
	}

	ErrStoreLocked = &apperr.Error{
		Message: "is focusflow already running? Only one process can use the data file at a time",
	}

	errOpenStore = &apperr.Error{
		Message: "unable to open data store",
	}

	errMigrate = &apperr.Error{
		Message: "data store migration %d failed",
	}
)

// DB is the data store interface. Every method is scoped to the owning user.
type DB interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	// SaveUser creates the user or replaces it.
	SaveUser(ctx context.Context, u *models.User) error
	UpdateUser(
		ctx context.Context,
		id string,
		patch *models.UserPatch,
	) (*models.User, error)
	// AddFocusTime adds mins to the user's totalFocusTime in one transaction.
	AddFocusTime(ctx context.Context, id string, mins int) (*models.User, error)

	ListTasks(ctx context.Context, userID string) ([]models.Task, error)
	GetTask(ctx context.Context, userID, id string) (*models.Task, error)
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
	DeleteTask(ctx context.Context, userID, id string) error

	// ListFocusSessions returns the user's sessions, oldest first.
	ListFocusSessions(
		ctx context.Context,
		userID string,
	) ([]models.FocusSession, error)
	// CreateFocusSession records a completed run. The store assigns the id
	// and completedAt.
	CreateFocusSession(
		ctx context.Context,
		userID string,
		in *models.NewFocusSession,
	) (*models.FocusSession, error)

	ListNotes(ctx context.Context, userID string) ([]models.Note, error)
	CreateNote(
		ctx context.Context,
		userID string,
		in *models.NewNote,
	) (*models.Note, error)
	UpdateNote(
		ctx context.Context,
		userID, id string,
		patch *models.NotePatch,
	) (*models.Note, error)
	DeleteNote(ctx context.Context, userID, id string) error

	// ListHabits returns the user's habits dated on the same day as day.
	ListHabits(
		ctx context.Context,
		userID string,
		day time.Time,
	) ([]models.Habit, error)
	CreateHabit(
		ctx context.Context,
		userID string,
		in *models.NewHabit,
	) (*models.Habit, error)
	UpdateHabit(
		ctx context.Context,
		userID, id string,
		patch *models.HabitPatch,
	) (*models.Habit, error)

	Close() error
}

// SampleUser is the profile seeded into a new store so that the app works
// before anyone logs in.
func SampleUser(id string, now time.Time) *models.User {
	return &models.User{
		ID:             id,
		FirstName:      "Jordan",
		LastName:       "Smith",
		Email:          "jordan@example.com",
		Level:          12,
		TotalFocusTime: 150,
		CurrentStreak:  7,
		CreatedAt:      now,
	}
}
