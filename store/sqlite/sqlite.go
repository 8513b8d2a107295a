// Package sqlite implements store.DB on an embedded SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Thiht/transactor"
	txStdLib "github.com/Thiht/transactor/stdlib"
	_ "modernc.org/sqlite"

	"github.com/ayoisaiah/focusflow/internal/apperr"
	"github.com/ayoisaiah/focusflow/store"
)

var (
	errOpen = &apperr.Error{
		Message: "unable to open sqlite database",
	}

	errMigrate = &apperr.Error{
		Message: "sqlite migration %d failed",
	}

	errMigrationName = &apperr.Error{
		Message: "migration file %q must start with a version number",
	}
)

// Store is a SQLite backed store.DB.
type Store struct {
	db          *sql.DB
	tx          transactor.Transactor
	dbGetter    txStdLib.DBGetter
	now         func() time.Time
	defaultUser string
}

var _ store.DB = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func WithDefaultUser(id string) Option {
	return func(s *Store) {
		s.defaultUser = id
	}
}

// Open opens or creates the database at path and migrates it.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	s := &Store{
		now:         time.Now,
		defaultUser: "sample-user-id",
	}

	for _, opt := range opts {
		opt(s)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, errOpen.Wrap(err)
	}

	// SQLite allows one writer; a single connection keeps transactions and
	// plain statements from contending for the lock.
	db.SetMaxOpenConns(1)

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s.db = db
	s.tx, s.dbGetter = txStdLib.NewTransactor(
		db,
		txStdLib.NestedTransactionsSavepoints,
	)

	if err := s.seed(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) seed(ctx context.Context) error {
	_, err := s.GetUser(ctx, s.defaultUser)
	if err == nil {
		return nil
	}

	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	return s.SaveUser(ctx, store.SampleUser(s.defaultUser, s.now()))
}

func (s *Store) Close() error {
	return s.db.Close()
}

func toMillis(t time.Time) int64 {
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms)
}

// affectedOrNotFound maps a zero row count to a not found error.
func affectedOrNotFound(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if n == 0 {
		return store.ErrNotFound.Fmt(entity)
	}

	return nil
}

func notFound(err error, entity string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound.Fmt(entity)
	}

	return err
}
