package storage

import (
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/julianstephens/planhub/internal/migration"
	"github.com/julianstephens/planhub/migrations"
)

func newRunner(db *sql.DB, dialect migration.Dialect, dir string) (*migration.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access %s migrations: %w", dir, err)
	}
	return migration.NewRunner(db, subFS, dialect), nil
}

func schemaVersion(db *sql.DB, dialect migration.Dialect, dir string) (int, int, error) {
	if db == nil {
		return 0, 0, ErrNotInitialized
	}
	runner, err := newRunner(db, dialect, dir)
	if err != nil {
		return 0, 0, err
	}
	current, err := runner.GetCurrentVersion()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get current schema version: %w", err)
	}
	latest, err := runner.GetLatestVersion()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get latest schema version: %w", err)
	}
	return current, latest, nil
}
