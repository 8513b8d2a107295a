package sqlite

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ayoisaiah/focusflow/internal/models"
	"github.com/ayoisaiah/focusflow/internal/timeutil"
)

const selectHabits = "SELECT id, user_id, name, completed, date FROM habits"

func scanHabit(row scannable) (*models.Habit, error) {
	var (
		h    models.Habit
		date int64
	)

	if err := row.Scan(&h.ID, &h.UserID, &h.Name, &h.Completed, &date); err != nil {
		return nil, err
	}

	h.Date = fromMillis(date)

	return &h, nil
}

func (s *Store) ListHabits(
	ctx context.Context,
	userID string,
	day time.Time,
) ([]models.Habit, error) {
	start := timeutil.RoundToStart(day)
	end := start.AddDate(0, 0, 1)

	rows, err := s.dbGetter(ctx).QueryContext(
		ctx,
		selectHabits+" WHERE user_id = ? AND date >= ? AND date < ? ORDER BY date, rowid",
		userID,
		toMillis(start),
		toMillis(end),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint

	habits := []models.Habit{}

	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}

		habits = append(habits, *h)
	}

	return habits, rows.Err()
}

func (s *Store) CreateHabit(
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
		Date:      s.now(),
	}

	_, err := s.dbGetter(ctx).ExecContext(
		ctx,
		"INSERT INTO habits (id, user_id, name, completed, date) VALUES (?, ?, ?, ?, ?)",
		h.ID,
		h.UserID,
		h.Name,
		h.Completed,
		toMillis(h.Date),
	)
	if err != nil {
		return nil, err
	}

	return h, nil
}

func (s *Store) UpdateHabit(
	ctx context.Context,
	userID, id string,
	patch *models.HabitPatch,
) (*models.Habit, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var h *models.Habit

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		row := s.dbGetter(ctx).QueryRowContext(
			ctx,
			selectHabits+" WHERE user_id = ? AND id = ?",
			userID,
			id,
		)

		var err error

		h, err = scanHabit(row)
		if err != nil {
			return notFound(err, "habit")
		}

		patch.Apply(h)

		_, err = s.dbGetter(ctx).ExecContext(
			ctx,
			"UPDATE habits SET name = ?, completed = ? WHERE id = ? AND user_id = ?",
			h.Name,
			h.Completed,
			id,
			userID,
		)

		return err
	})
	if err != nil {
		return nil, err
	}

	return h, nil
}
