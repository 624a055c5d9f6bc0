package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// dbFileName is the probe cache database file name.
const dbFileName = "probecache.db"

// ProbeCache provides SQLite-based storage for URL probe outcomes.
// It manages connection pooling and implements the urlcheck.Cache
// interface via Lookup and Store.
//
// Design decision: We persist probe outcomes rather than keeping an
// in-memory map because source lists repeat heavily across articles for
// the same company, and probes are by far the slowest part of validation.
type ProbeCache struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string

	// maxAge is how long a stored outcome stays fresh.
	maxAge time.Duration
}

// Options configures ProbeCache behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// performance. Recommended for most use cases.
	EnableWAL bool

	// MaxAge is how long a stored outcome stays fresh. Entries older than
	// this are treated as cache misses.
	MaxAge time.Duration
}

// DefaultOptions returns the default cache options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
		MaxAge:            24 * time.Hour,
	}
}

// Open opens or creates a ProbeCache in the specified directory.
func Open(dir string, opts Options) (*ProbeCache, error) {
	dbPath := filepath.Join(dir, dbFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("probe cache not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check cache path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	// modernc.org/sqlite uses mode=rw to prevent creating new files and
	// mode=rwc to allow creation.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open probe cache: %w", err)
	}

	// SQLite only supports one writer; multiple connections buy nothing
	// for this workload.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	cache := &ProbeCache{
		db:     db,
		dbPath: dbPath,
		maxAge: opts.MaxAge,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := cache.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return cache, nil
}

// Close closes the database connection.
func (c *ProbeCache) Close() error {
	return c.db.Close()
}

// Path returns the database file path.
func (c *ProbeCache) Path() string {
	return c.dbPath
}

// createTables creates the cache schema if it doesn't exist.
func (c *ProbeCache) createTables() error {
	const schema = `
CREATE TABLE IF NOT EXISTS probes (
	url        TEXT PRIMARY KEY,
	valid      INTEGER NOT NULL,
	final_url  TEXT NOT NULL,
	title      TEXT NOT NULL,
	checked_at INTEGER NOT NULL
);`
	_, err := c.db.ExecContext(context.Background(), schema)
	return err
}

// Entry is one stored probe outcome.
type Entry struct {
	// URL is the original candidate URL as requested.
	URL string

	// Valid reports whether the URL passed validation.
	Valid bool

	// FinalURL is the post-redirect, tracking-stripped URL.
	FinalURL string

	// Title is the extracted display title.
	Title string

	// CheckedAt is when the probe ran.
	CheckedAt time.Time
}

// Get returns the stored entry for a URL regardless of age.
// The boolean reports whether an entry exists.
func (c *ProbeCache) Get(ctx context.Context, url string) (Entry, bool, error) {
	const query = `SELECT url, valid, final_url, title, checked_at FROM probes WHERE url = ?`

	var e Entry
	var valid int
	var checkedAt int64
	err := c.db.QueryRowContext(ctx, query, url).Scan(&e.URL, &valid, &e.FinalURL, &e.Title, &checkedAt)
	if err == sql.ErrNoRows {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("failed to query probe cache: %w", err)
	}

	e.Valid = valid != 0
	e.CheckedAt = time.Unix(checkedAt, 0)
	return e, true, nil
}

// Put stores or replaces the entry for a URL.
func (c *ProbeCache) Put(ctx context.Context, e Entry) error {
	const query = `
INSERT INTO probes (url, valid, final_url, title, checked_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(url) DO UPDATE SET
	valid = excluded.valid,
	final_url = excluded.final_url,
	title = excluded.title,
	checked_at = excluded.checked_at`

	valid := 0
	if e.Valid {
		valid = 1
	}
	checkedAt := e.CheckedAt
	if checkedAt.IsZero() {
		checkedAt = time.Now()
	}

	if _, err := c.db.ExecContext(ctx, query, e.URL, valid, e.FinalURL, e.Title, checkedAt.Unix()); err != nil {
		return fmt.Errorf("failed to store probe result: %w", err)
	}
	return nil
}

// Prune deletes entries older than the configured max age.
// Returns the number of entries removed.
func (c *ProbeCache) Prune(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-c.maxAge).Unix()
	res, err := c.db.ExecContext(ctx, `DELETE FROM probes WHERE checked_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune probe cache: %w", err)
	}
	return res.RowsAffected()
}

// Lookup implements urlcheck.Cache. Stale or missing entries, and read
// errors, all report a miss; the cache never blocks a probe.
func (c *ProbeCache) Lookup(ctx context.Context, url string) (bool, string, string, bool) {
	e, found, err := c.Get(ctx, url)
	if err != nil || !found {
		return false, "", "", false
	}
	if c.maxAge > 0 && time.Since(e.CheckedAt) > c.maxAge {
		return false, "", "", false
	}
	return e.Valid, e.FinalURL, e.Title, true
}

// Store implements urlcheck.Cache. Write errors are dropped; a failed
// cache write must never fail a validation run.
func (c *ProbeCache) Store(ctx context.Context, url string, valid bool, finalURL, title string) {
	_ = c.Put(ctx, Entry{
		URL:      url,
		Valid:    valid,
		FinalURL: finalURL,
		Title:    title,
	})
}
