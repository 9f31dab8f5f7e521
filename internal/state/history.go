package state

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/TamerPlatform/frida-push/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS pushes (
    id        INTEGER PRIMARY KEY AUTOINCREMENT,
    serial    TEXT NOT NULL,
    version   TEXT NOT NULL,
    arch      TEXT NOT NULL,
    pid       INTEGER NOT NULL DEFAULT 0,
    pushed_at TEXT NOT NULL
);
`

// SQLiteHistory records one row per successful deploy so a later run can
// tell what was last pushed to a device.
type SQLiteHistory struct {
	mu sync.Mutex
	db *sql.DB
}

func New(dbPath string) (*SQLiteHistory, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteHistory{db: db}, nil
}

func (s *SQLiteHistory) Record(rec *domain.PushRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO pushes (serial, version, arch, pid, pushed_at)
		VALUES (?, ?, ?, ?, ?)`,
		rec.Serial, rec.Version, rec.Arch, rec.PID,
		rec.PushedAt.UTC().Format(time.RFC3339))
	return err
}

func (s *SQLiteHistory) Last(serial string) (*domain.PushRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRow(`
		SELECT serial, version, arch, pid, pushed_at
		FROM pushes WHERE serial = ?
		ORDER BY id DESC LIMIT 1`, serial)

	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return rec, nil
}

func (s *SQLiteHistory) All() ([]*domain.PushRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT serial, version, arch, pid, pushed_at
		FROM pushes ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*domain.PushRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

func (s *SQLiteHistory) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*domain.PushRecord, error) {
	var rec domain.PushRecord
	var pushedAt string

	if err := row.Scan(&rec.Serial, &rec.Version, &rec.Arch, &rec.PID, &pushedAt); err != nil {
		return nil, err
	}

	t, err := time.Parse(time.RFC3339, pushedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pushed_at: %w", err)
	}
	rec.PushedAt = t

	return &rec, nil
}
