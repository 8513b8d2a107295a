package sqlite

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/ayoisaiah/focusflow/internal/models"
)

const selectTasks = "SELECT id, user_id, title, description, priority, completed, due_date, created_at FROM tasks"

type scannable interface {
	Scan(dest ...any) error
}

func scanTask(row scannable) (*models.Task, error) {
	var (
		t         models.Task
		dueDate   sql.NullInt64
		createdAt int64
	)

	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.Title,
		&t.Description,
		&t.Priority,
		&t.Completed,
		&dueDate,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if dueDate.Valid {
		d := fromMillis(dueDate.Int64)
		t.DueDate = &d
	}

	t.CreatedAt = fromMillis(createdAt)

	return &t, nil
}

func nullMillis(t *models.Task) sql.NullInt64 {
	if t.DueDate == nil {
		return sql.NullInt64{}
	}

	return sql.NullInt64{Int64: toMillis(*t.DueDate), Valid: true}
}

func (s *Store) ListTasks(ctx context.Context, userID string) ([]models.Task, error) {
	rows, err := s.dbGetter(ctx).QueryContext(
		ctx,
		selectTasks+" WHERE user_id = ? ORDER BY created_at, rowid",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint

	tasks := []models.Task{}

	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}

		tasks = append(tasks, *t)
	}

	return tasks, rows.Err()
}

func (s *Store) GetTask(ctx context.Context, userID, id string) (*models.Task, error) {
	row := s.dbGetter(ctx).QueryRowContext(
		ctx,
		selectTasks+" WHERE user_id = ? AND id = ?",
		userID,
		id,
	)

	t, err := scanTask(row)
	if err != nil {
		return nil, notFound(err, "task")
	}

	return t, nil
}

func (s *Store) CreateTask(
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
		CreatedAt:   s.now(),
	}

	_, err := s.dbGetter(ctx).ExecContext(
		ctx,
		"INSERT INTO tasks (id, user_id, title, description, priority, completed, due_date, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		t.ID,
		t.UserID,
		t.Title,
		t.Description,
		t.Priority,
		t.Completed,
		nullMillis(t),
		toMillis(t.CreatedAt),
	)
	if err != nil {
		return nil, err
	}

	return t, nil
}

func (s *Store) UpdateTask(
	ctx context.Context,
	userID, id string,
	patch *models.TaskPatch,
) (*models.Task, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var t *models.Task

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error

		t, err = s.GetTask(ctx, userID, id)
		if err != nil {
			return err
		}

		patch.Apply(t)

		_, err = s.dbGetter(ctx).ExecContext(
			ctx,
			"UPDATE tasks SET title = ?, description = ?, priority = ?, completed = ?, due_date = ? WHERE id = ? AND user_id = ?",
			t.Title,
			t.Description,
			t.Priority,
			t.Completed,
			nullMillis(t),
			id,
			userID,
		)

		return err
	})
	if err != nil {
		return nil, err
	}

	return t, nil
}

func (s *Store) DeleteTask(ctx context.Context, userID, id string) error {
	res, err := s.dbGetter(ctx).ExecContext(
		ctx,
		"DELETE FROM tasks WHERE id = ? AND user_id = ?",
		id,
		userID,
	)
	if err != nil {
		return err
	}

	return affectedOrNotFound(res, "task")
}
