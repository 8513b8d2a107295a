package sqlite

import (
	"context"

	"github.com/google/uuid"

	"github.com/ayoisaiah/focusflow/internal/models"
)

func (s *Store) ListFocusSessions(
	ctx context.Context,
	userID string,
) ([]models.FocusSession, error) {
	rows, err := s.dbGetter(ctx).QueryContext(
		ctx,
		"SELECT id, user_id, task_id, task_label, kind, duration_minutes, completed_at FROM focus_sessions WHERE user_id = ? ORDER BY completed_at, rowid",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint

	sessions := []models.FocusSession{}

	for rows.Next() {
		var (
			fs          models.FocusSession
			completedAt int64
		)

		err := rows.Scan(
			&fs.ID,
			&fs.UserID,
			&fs.TaskID,
			&fs.TaskLabel,
			&fs.Kind,
			&fs.DurationMinutes,
			&completedAt,
		)
		if err != nil {
			return nil, err
		}

		fs.CompletedAt = fromMillis(completedAt)
		sessions = append(sessions, fs)
	}

	return sessions, rows.Err()
}

func (s *Store) CreateFocusSession(
	ctx context.Context,
	userID string,
	in *models.NewFocusSession,
) (*models.FocusSession, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	fs := &models.FocusSession{
		ID:              uuid.NewString(),
		UserID:          userID,
		TaskID:          in.TaskID,
		TaskLabel:       in.TaskLabel,
		Kind:            in.Kind,
		DurationMinutes: in.DurationMinutes,
		CompletedAt:     s.now(),
	}

	_, err := s.dbGetter(ctx).ExecContext(
		ctx,
		"INSERT INTO focus_sessions (id, user_id, task_id, task_label, kind, duration_minutes, completed_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		fs.ID,
		fs.UserID,
		fs.TaskID,
		fs.TaskLabel,
		fs.Kind,
		fs.DurationMinutes,
		toMillis(fs.CompletedAt),
	)
	if err != nil {
		return nil, err
	}

	return fs, nil
}
