package sqlite

import (
	"context"

	"github.com/ayoisaiah/focusflow/internal/models"
)

const selectUser = "SELECT id, first_name, last_name, email, level, total_focus_time, current_streak, created_at FROM users WHERE id = ?"

func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	var (
		u         models.User
		createdAt int64
	)

	err := s.dbGetter(ctx).QueryRowContext(ctx, selectUser, id).Scan(
		&u.ID,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.Level,
		&u.TotalFocusTime,
		&u.CurrentStreak,
		&createdAt,
	)
	if err != nil {
		return nil, notFound(err, "user")
	}

	u.CreatedAt = fromMillis(createdAt)

	return &u, nil
}

func (s *Store) SaveUser(ctx context.Context, u *models.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = s.now()
	}

	query := `INSERT INTO users (id, first_name, last_name, email, level, total_focus_time, current_streak, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    first_name = excluded.first_name,
    last_name = excluded.last_name,
    email = excluded.email,
    level = excluded.level,
    total_focus_time = excluded.total_focus_time,
    current_streak = excluded.current_streak`

	_, err := s.dbGetter(ctx).ExecContext(
		ctx,
		query,
		u.ID,
		u.FirstName,
		u.LastName,
		u.Email,
		u.Level,
		u.TotalFocusTime,
		u.CurrentStreak,
		toMillis(u.CreatedAt),
	)

	return err
}

func (s *Store) UpdateUser(
	ctx context.Context,
	id string,
	patch *models.UserPatch,
) (*models.User, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var u *models.User

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error

		u, err = s.GetUser(ctx, id)
		if err != nil {
			return err
		}

		patch.Apply(u)

		return s.SaveUser(ctx, u)
	})
	if err != nil {
		return nil, err
	}

	return u, nil
}

func (s *Store) AddFocusTime(
	ctx context.Context,
	id string,
	mins int,
) (*models.User, error) {
	var u *models.User

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		res, err := s.dbGetter(ctx).ExecContext(
			ctx,
			"UPDATE users SET total_focus_time = total_focus_time + ? WHERE id = ?",
			mins,
			id,
		)
		if err != nil {
			return err
		}

		if err := affectedOrNotFound(res, "user"); err != nil {
			return err
		}

		u, err = s.GetUser(ctx, id)

		return err
	})
	if err != nil {
		return nil, err
	}

	return u, nil
}
