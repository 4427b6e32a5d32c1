package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"trackpub/internal/config"
	"trackpub/internal/publish"
)

// ErrNotFound indicates no journal entry exists for the requested ID.
var ErrNotFound = errors.New("journal entry not found")

const schemaSQL = `
CREATE TABLE IF NOT EXISTS publish_entries (
    id              TEXT PRIMARY KEY,
    created_at      TEXT NOT NULL,
    product_name    TEXT NOT NULL,
    product_type    TEXT NOT NULL,
    version         INTEGER NOT NULL,
    component_count INTEGER NOT NULL,
    components      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_publish_entries_created_at
    ON publish_entries (created_at DESC);
`

// Entry is one recorded assembly run.
type Entry struct {
	ID             string
	CreatedAt      time.Time
	ProductName    string
	ProductType    string
	Version        int
	ComponentCount int
	Components     []publish.ComponentItem
}

// Store manages journal persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	lock *flock.Flock
	path string
}

// Open initializes or connects to the journal database. The accompanying
// lock file serializes concurrent publish processes; Open blocks until
// the lock is held.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.JournalDir, "journal.db")
	lock := flock.New(dbPath + ".lock")
	if err := lock.Lock(); err != nil {
		return nil, fmt.Errorf("acquire journal lock: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return &Store{db: db, lock: lock, path: dbPath}, nil
}

// Close releases the writer lock and closes the database connection.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	if s.lock != nil {
		_ = s.lock.Unlock()
	}
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Record persists one assembled component list.
func (s *Store) Record(ctx context.Context, instance *publish.Instance, components []publish.ComponentItem) (*Entry, error) {
	version := 0
	if instance.Version != nil {
		version = *instance.Version
	}

	payload, err := json.Marshal(components)
	if err != nil {
		return nil, fmt.Errorf("encode components: %w", err)
	}

	entry := Entry{
		ID:             uuid.NewString(),
		CreatedAt:      time.Now().UTC(),
		ProductName:    instance.ProductName,
		ProductType:    instance.ProductType,
		Version:        version,
		ComponentCount: len(components),
		Components:     components,
	}

	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO publish_entries (
            id, created_at, product_name, product_type,
            version, component_count, components
        ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.CreatedAt.Format(time.RFC3339Nano),
		entry.ProductName,
		entry.ProductType,
		entry.Version,
		entry.ComponentCount,
		string(payload),
	)
	if err != nil {
		return nil, fmt.Errorf("insert entry: %w", err)
	}
	return &entry, nil
}

// List returns the most recent entries, newest first. A limit <= 0
// returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	query := `SELECT id, created_at, product_name, product_type,
        version, component_count, components
        FROM publish_entries ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

// GetByID returns a single entry.
func (s *Store) GetByID(ctx context.Context, id string) (*Entry, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT id, created_at, product_name, product_type,
            version, component_count, components
            FROM publish_entries WHERE id = ?`,
		id,
	)
	entry, err := scanEntry(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func scanEntry(scan func(...any) error) (Entry, error) {
	var entry Entry
	var createdAt string
	var components string
	if err := scan(
		&entry.ID,
		&createdAt,
		&entry.ProductName,
		&entry.ProductType,
		&entry.Version,
		&entry.ComponentCount,
		&components,
	); err != nil {
		return Entry{}, err
	}

	parsed, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return Entry{}, fmt.Errorf("parse created_at: %w", err)
	}
	entry.CreatedAt = parsed

	if err := json.Unmarshal([]byte(components), &entry.Components); err != nil {
		return Entry{}, fmt.Errorf("decode components: %w", err)
	}
	return entry, nil
}
