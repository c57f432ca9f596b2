package postercache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Lookup sources recorded alongside cached poster URLs.
const (
	SourceTVMaze = "tvmaze"
	SourceManual = "manual"
	SourceLegacy = "legacy"
)

// Entry represents one cached lookup result. An empty PosterURL is a negative
// entry: the lookup ran and found nothing.
type Entry struct {
	TitleKey  string
	Title     string
	PosterURL string
	Source    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Negative reports whether the entry records a failed lookup.
func (e Entry) Negative() bool {
	return strings.TrimSpace(e.PosterURL) == ""
}

// Stats summarizes cache contents for the CLI.
type Stats struct {
	Total    int
	Negative int
	BySource map[string]int
}

// Store manages lookup persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the cache database and verifies the schema.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("cache database path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
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
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Lookup returns the cached entry for the given title key if present.
func (s *Store) Lookup(ctx context.Context, titleKey string) (Entry, bool, error) {
	titleKey = strings.TrimSpace(titleKey)
	if titleKey == "" {
		return Entry{}, false, nil
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT title_key, title, poster_url, source, created_at, updated_at
         FROM poster_lookups WHERE title_key = ?`, titleKey)

	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, false, nil
		}
		return Entry{}, false, fmt.Errorf("lookup cache entry: %w", err)
	}
	return entry, true, nil
}

// Store inserts or updates an entry. CreatedAt is preserved on updates.
func (s *Store) Store(ctx context.Context, entry Entry) error {
	entry.TitleKey = strings.TrimSpace(entry.TitleKey)
	if entry.TitleKey == "" {
		return errors.New("title key cannot be empty")
	}
	if strings.TrimSpace(entry.Title) == "" {
		entry.Title = entry.TitleKey
	}
	if strings.TrimSpace(entry.Source) == "" {
		entry.Source = SourceTVMaze
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO poster_lookups (title_key, title, poster_url, source, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?)
         ON CONFLICT(title_key) DO UPDATE SET
             title = excluded.title,
             poster_url = excluded.poster_url,
             source = excluded.source,
             updated_at = excluded.updated_at`,
		entry.TitleKey,
		entry.Title,
		strings.TrimSpace(entry.PosterURL),
		entry.Source,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("store cache entry: %w", err)
	}
	return nil
}

// Remove deletes an entry by title key.
func (s *Store) Remove(ctx context.Context, titleKey string) error {
	titleKey = strings.TrimSpace(titleKey)
	if titleKey == "" {
		return errors.New("title key cannot be empty")
	}

	res, err := s.db.ExecContext(ctx, "DELETE FROM poster_lookups WHERE title_key = ?", titleKey)
	if err != nil {
		return fmt.Errorf("remove cache entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("title %q not found in cache", titleKey)
	}
	return nil
}

// List returns all entries, most recently updated first.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT title_key, title, poster_url, source, created_at, updated_at
         FROM poster_lookups ORDER BY updated_at DESC, title_key ASC`)
	if err != nil {
		return nil, fmt.Errorf("list cache entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cache entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cache entries: %w", err)
	}
	return entries, nil
}

// Clear removes all entries and returns how many were deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM poster_lookups")
	if err != nil {
		return 0, fmt.Errorf("clear cache: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return affected, nil
}

// Count returns the number of cached entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM poster_lookups").Scan(&count); err != nil {
		return 0, fmt.Errorf("count cache entries: %w", err)
	}
	return count, nil
}

// Stats returns aggregate cache statistics.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{BySource: make(map[string]int)}

	rows, err := s.db.QueryContext(ctx,
		`SELECT source, COUNT(1), SUM(CASE WHEN poster_url = '' THEN 1 ELSE 0 END)
         FROM poster_lookups GROUP BY source`)
	if err != nil {
		return Stats{}, fmt.Errorf("cache stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var source string
		var count, negative int
		if err := rows.Scan(&source, &count, &negative); err != nil {
			return Stats{}, fmt.Errorf("scan cache stats: %w", err)
		}
		stats.BySource[source] = count
		stats.Total += count
		stats.Negative += negative
	}
	if err := rows.Err(); err != nil {
		return Stats{}, fmt.Errorf("iterate cache stats: %w", err)
	}
	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (Entry, error) {
	var entry Entry
	var createdAt, updatedAt string
	if err := row.Scan(&entry.TitleKey, &entry.Title, &entry.PosterURL, &entry.Source, &createdAt, &updatedAt); err != nil {
		return Entry{}, err
	}
	entry.CreatedAt = parseTimestamp(createdAt)
	entry.UpdatedAt = parseTimestamp(updatedAt)
	return entry, nil
}

func parseTimestamp(value string) time.Time {
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return parsed
}
