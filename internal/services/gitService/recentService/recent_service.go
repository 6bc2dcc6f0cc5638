package recentService

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// keepMax bounds the comparison log; older rows are pruned on insert.
const keepMax = 100

// Comparison is one presented diff, newest first in listings.
type Comparison struct {
	ID        int64
	RepoPath  string
	FilePath  string
	FromRev   string
	ToRev     string
	CreatedAt time.Time
}

// Store is a sqlite-backed log of recently presented comparisons.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the per-user location of the comparison log.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "revview", "recent.db"), nil
}

// Open opens (creating if needed) the comparison log at dbPath.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS comparisons (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		repo_path TEXT NOT NULL,
		file_path TEXT NOT NULL,
		from_rev TEXT NOT NULL,
		to_rev TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the DB
func (s *Store) Close() error {
	return s.db.Close()
}

// Record appends a comparison and prunes the log to its size bound.
func (s *Store) Record(repoPath, filePath, fromRev, toRev string) error {
	_, err := s.db.Exec(
		`INSERT INTO comparisons (repo_path, file_path, from_rev, to_rev, created_at) VALUES (?, ?, ?, ?, ?)`,
		repoPath, filePath, fromRev, toRev, time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(
		`DELETE FROM comparisons WHERE id NOT IN (SELECT id FROM comparisons ORDER BY id DESC LIMIT ?)`,
		keepMax,
	)
	return err
}

// List returns up to limit comparisons, most recent first.
func (s *Store) List(limit int) ([]Comparison, error) {
	if limit <= 0 || limit > keepMax {
		limit = keepMax
	}

	rows, err := s.db.Query(
		`SELECT id, repo_path, file_path, from_rev, to_rev, created_at
		 FROM comparisons ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comparisons []Comparison
	for rows.Next() {
		var c Comparison
		if err := rows.Scan(&c.ID, &c.RepoPath, &c.FilePath, &c.FromRev, &c.ToRev, &c.CreatedAt); err != nil {
			return nil, err
		}
		comparisons = append(comparisons, c)
	}
	return comparisons, rows.Err()
}
