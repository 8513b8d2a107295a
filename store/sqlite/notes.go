package sqlite

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/ayoisaiah/focusflow/internal/models"
)

const selectNotes = "SELECT id, user_id, title, content, tags, created_at, updated_at FROM notes"

func scanNote(row scannable) (*models.Note, error) {
	var (
		n                    models.Note
		tags                 string
		createdAt, updatedAt int64
	)

	err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &tags, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(tags), &n.Tags); err != nil {
		return nil, err
	}

	n.CreatedAt = fromMillis(createdAt)
	n.UpdatedAt = fromMillis(updatedAt)

	return &n, nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}

	b, err := json.Marshal(tags)

	return string(b), err
}

func (s *Store) ListNotes(ctx context.Context, userID string) ([]models.Note, error) {
	rows, err := s.dbGetter(ctx).QueryContext(
		ctx,
		selectNotes+" WHERE user_id = ? ORDER BY updated_at DESC, rowid DESC",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint

	notes := []models.Note{}

	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}

		notes = append(notes, *n)
	}

	return notes, rows.Err()
}

func (s *Store) getNote(ctx context.Context, userID, id string) (*models.Note, error) {
	row := s.dbGetter(ctx).QueryRowContext(
		ctx,
		selectNotes+" WHERE user_id = ? AND id = ?",
		userID,
		id,
	)

	n, err := scanNote(row)
	if err != nil {
		return nil, notFound(err, "note")
	}

	return n, nil
}

func (s *Store) CreateNote(
	ctx context.Context,
	userID string,
	in *models.NewNote,
) (*models.Note, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	now := s.now()

	n := &models.Note{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     in.Title,
		Content:   in.Content,
		Tags:      in.Tags,
		CreatedAt: now,
		UpdatedAt: now,
	}

	tags, err := encodeTags(n.Tags)
	if err != nil {
		return nil, err
	}

	_, err = s.dbGetter(ctx).ExecContext(
		ctx,
		"INSERT INTO notes (id, user_id, title, content, tags, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		n.ID,
		n.UserID,
		n.Title,
		n.Content,
		tags,
		toMillis(n.CreatedAt),
		toMillis(n.UpdatedAt),
	)
	if err != nil {
		return nil, err
	}

	return n, nil
}

func (s *Store) UpdateNote(
	ctx context.Context,
	userID, id string,
	patch *models.NotePatch,
) (*models.Note, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var n *models.Note

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error

		n, err = s.getNote(ctx, userID, id)
		if err != nil {
			return err
		}

		patch.Apply(n)
		n.UpdatedAt = s.now()

		tags, err := encodeTags(n.Tags)
		if err != nil {
			return err
		}

		_, err = s.dbGetter(ctx).ExecContext(
			ctx,
			"UPDATE notes SET title = ?, content = ?, tags = ?, updated_at = ? WHERE id = ? AND user_id = ?",
			n.Title,
			n.Content,
			tags,
			toMillis(n.UpdatedAt),
			id,
			userID,
		)

		return err
	})
	if err != nil {
		return nil, err
	}

	return n, nil
}

func (s *Store) DeleteNote(ctx context.Context, userID, id string) error {
	res, err := s.dbGetter(ctx).ExecContext(
		ctx,
		"DELETE FROM notes WHERE id = ? AND user_id = ?",
		id,
		userID,
	)
	if err != nil {
		return err
	}

	return affectedOrNotFound(res, "note")
}
