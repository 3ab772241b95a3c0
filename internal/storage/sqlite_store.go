package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/planhub/internal/logger"
	"github.com/julianstephens/planhub/internal/migration"
)

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) runMigrations() error {
	runner, err := newRunner(s.db, migration.DialectSQLite, "sqlite")
	if err != nil {
		return err
	}
	_, err = runner.ApplyMigrations(func(msg string) {
		logger.Debug(msg, "driver", "sqlite")
	})
	return err
}

func (s *SQLiteStore) SchemaVersion() (int, int, error) {
	return schemaVersion(s.db, migration.DialectSQLite, "sqlite")
}

func (s *SQLiteStore) Load(slot string) ([]byte, bool, error) {
	if s.db == nil {
		return nil, false, ErrNotInitialized
	}
	var blob string
	err := s.db.QueryRow("SELECT blob FROM slots WHERE name = ?", slot).Scan(&blob)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to load slot %s: %w", slot, err)
	}
	return []byte(blob), true, nil
}

func (s *SQLiteStore) Save(slot string, blob []byte) error {
	if s.db == nil {
		return ErrNotInitialized
	}
	_, err := s.db.Exec(`
		INSERT INTO slots (name, blob, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET blob = excluded.blob, updated_at = excluded.updated_at
	`, slot, string(blob), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save slot %s: %w", slot, err)
	}
	return nil
}

func (s *SQLiteStore) Slots() ([]string, error) {
	if s.db == nil {
		return nil, ErrNotInitialized
	}
	return querySlotNames(s.db)
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

func querySlotNames(db *sql.DB) ([]string, error) {
	rows, err := db.Query("SELECT name FROM slots ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
