package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"io/fs"
	"sort"
	"strconv"
	"strings"
)

//go:embed migrations/*.sql
var migrations embed.FS

// runMigrations applies the embedded migrations whose number is greater than
// the recorded schema version. File names start with the version number.
func runMigrations(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(
		ctx,
		"CREATE TABLE IF NOT EXISTS schema_migrations (version INTEGER PRIMARY KEY)",
	)
	if err != nil {
		return err
	}

	var current int

	err = db.QueryRowContext(
		ctx,
		"SELECT COALESCE(MAX(version), 0) FROM schema_migrations",
	).Scan(&current)
	if err != nil {
		return err
	}

	files, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return err
	}

	sort.Strings(files)

	for _, f := range files {
		name := strings.TrimPrefix(f, "migrations/")

		version, err := strconv.Atoi(strings.SplitN(name, "_", 2)[0])
		if err != nil {
			return errMigrationName.Fmt(name)
		}

		if version <= current {
			continue
		}

		body, err := migrations.ReadFile(f)
		if err != nil {
			return err
		}

		if err := applyMigration(ctx, db, version, string(body)); err != nil {
			return errMigrate.Fmt(version).Wrap(err)
		}
	}

	return nil
}

func applyMigration(ctx context.Context, db *sql.DB, version int, body string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, body); err != nil {
		return err
	}

	_, err = tx.ExecContext(
		ctx,
		"INSERT INTO schema_migrations (version) VALUES (?)",
		version,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}
