// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/citeclass/pkg/types"
)

// SQLiteStore keeps the cache in a SQLite table and records when each
// entry was fetched, which lets negative entries expire after a TTL.
type SQLiteStore struct {
	db          *sql.DB
	negativeTTL time.Duration
	now         func() time.Time
}

// OpenSQLite opens or creates the cache database at path. A negativeTTL of
// zero keeps negative entries forever.
func OpenSQLite(path string, negativeTTL time.Duration) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db, negativeTTL: negativeTTL, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS enrichment_cache (
		key TEXT PRIMARY KEY,
		found INTEGER NOT NULL,
		source TEXT,
		type TEXT,
		venue_type TEXT,
		publisher TEXT,
		fetched_at TEXT NOT NULL
	)`)
	return err
}

// Get implements Store. A negative entry older than the TTL reads as a miss.
func (s *SQLiteStore) Get(ctx context.Context, key string) (*types.Metadata, bool, error) {
	var (
		found     bool
		meta      types.Metadata
		source    sql.NullString
		typ       sql.NullString
		venueType sql.NullString
		publisher sql.NullString
		fetchedAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT found, source, type, venue_type, publisher, fetched_at
		 FROM enrichment_cache WHERE key = ?`, key,
	).Scan(&found, &source, &typ, &venueType, &publisher, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading cache entry %s: %w", key, err)
	}

	if !found {
		if s.negativeTTL > 0 {
			t, parseErr := time.Parse(time.RFC3339Nano, fetchedAt)
			if parseErr != nil || s.now().Sub(t) > s.negativeTTL {
				return nil, false, nil
			}
		}
		return nil, true, nil
	}

	meta.Source = source.String
	meta.Type = typ.String
	meta.VenueType = venueType.String
	meta.Publisher = publisher.String
	return &meta, true, nil
}

// Put implements Store.
func (s *SQLiteStore) Put(ctx context.Context, key string, meta *types.Metadata) error {
	var m types.Metadata
	if meta != nil {
		m = *meta
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO enrichment_cache (key, found, source, type, venue_type, publisher, fetched_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
			found=excluded.found, source=excluded.source, type=excluded.type,
			venue_type=excluded.venue_type, publisher=excluded.publisher,
			fetched_at=excluded.fetched_at`,
		key, meta != nil, m.Source, m.Type, m.VenueType, m.Publisher,
		s.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("writing cache entry %s: %w", key, err)
	}
	return nil
}

// Purge implements Store.
func (s *SQLiteStore) Purge(ctx context.Context, negativesOnly bool) (int, error) {
	q := `DELETE FROM enrichment_cache`
	if negativesOnly {
		q += ` WHERE found = 0`
	}
	res, err := s.db.ExecContext(ctx, q)
	if err != nil {
		return 0, fmt.Errorf("purging cache: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purging cache: %w", err)
	}
	return int(n), nil
}

// Stats implements Store.
func (s *SQLiteStore) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	err := s.db.QueryRowContext(ctx,
		`SELECT count(*), coalesce(sum(CASE WHEN found = 0 THEN 1 ELSE 0 END), 0) FROM enrichment_cache`,
	).Scan(&st.Entries, &st.Negatives)
	if err != nil {
		return Stats{}, fmt.Errorf("counting cache entries: %w", err)
	}
	return st, nil
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
