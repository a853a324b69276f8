// Package store persists finished meetings in a local SQLite database.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no meeting matches the given id.
var ErrNotFound = errors.New("store: meeting not found")

const schema = `
	CREATE TABLE IF NOT EXISTS meetings (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		title TEXT NOT NULL,
		transcript TEXT NOT NULL,
		report TEXT NOT NULL,
		original_filename TEXT NOT NULL DEFAULT '',
		audio BLOB
	);
`

// Record is one persisted meeting. ID, CreatedAt, and AudioAsset are
// immutable after creation; title, transcript, and report are editable.
type Record struct {
	ID               string
	CreatedAt        time.Time
	Title            string
	Transcript       string
	Report           string
	OriginalFilename string
	AudioAsset       []byte
}

// ListEntry is the lightweight index row for listings; large text and blob
// columns are not loaded.
type ListEntry struct {
	ID        string
	CreatedAt time.Time
	Title     string
	HasReport bool
}

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Create persists a new meeting and returns its assigned id. The id and
// created_at fields of rec are ignored.
func (s *Store) Create(rec Record) (string, error) {
	id := uuid.NewString()
	createdAt := time.Now().UTC().Format(time.RFC3339)

	_, err := s.db.Exec(`
		INSERT INTO meetings (id, created_at, title, transcript, report, original_filename, audio)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, id, createdAt, rec.Title, rec.Transcript, rec.Report, rec.OriginalFilename, rec.AudioAsset)
	if err != nil {
		return "", fmt.Errorf("insert meeting: %w", err)
	}

	return id, nil
}

// Get fetches the full row for id.
func (s *Store) Get(id string) (*Record, error) {
	row := s.db.QueryRow(`
		SELECT id, created_at, title, transcript, report, original_filename, audio
		FROM meetings
		WHERE id = ?
	`, id)

	var rec Record
	var createdAt string
	if err := row.Scan(&rec.ID, &createdAt, &rec.Title, &rec.Transcript,
		&rec.Report, &rec.OriginalFilename, &rec.AudioAsset); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan meeting: %w", err)
	}

	rec.CreatedAt = parseTime(createdAt)
	return &rec, nil
}

// Update overwrites the title, transcript, and report of the meeting with
// the given id. The audio asset and creation time are never altered.
func (s *Store) Update(id, title, transcript, report string) error {
	res, err := s.db.Exec(`
		UPDATE meetings
		SET title = ?, transcript = ?, report = ?
		WHERE id = ?
	`, title, transcript, report, id)
	if err != nil {
		return fmt.Errorf("update meeting: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update meeting: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns the meeting index, newest first.
func (s *Store) List() ([]ListEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, created_at, title, report <> ''
		FROM meetings
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query meetings: %w", err)
	}
	defer rows.Close()

	var entries []ListEntry
	for rows.Next() {
		var e ListEntry
		var createdAt string
		if err := rows.Scan(&e.ID, &createdAt, &e.Title, &e.HasReport); err != nil {
			return nil, fmt.Errorf("scan meeting: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ResolveID expands an id prefix to the full id. It fails when the prefix
// matches no meeting or more than one.
func (s *Store) ResolveID(prefix string) (string, error) {
	rows, err := s.db.Query(`SELECT id FROM meetings WHERE id LIKE ? || '%'`, prefix)
	if err != nil {
		return "", fmt.Errorf("query meetings: %w", err)
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scan id: %w", err)
		}
		matches = append(matches, id)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	switch len(matches) {
	case 0:
		return "", ErrNotFound
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("id prefix %q is ambiguous (%d matches)", prefix, len(matches))
	}
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
