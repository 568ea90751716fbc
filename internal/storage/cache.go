package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/ramonehamilton/deckcheck/internal/deck"
)

// Cache is an advisory response cache over the api_cache table. Storage
// errors degrade to cache misses; callers never see them.
type Cache struct {
	db  *DB
	ttl time.Duration // 0 means entries never expire
}

// NewCache creates a cache over the open database with the given TTL.
func NewCache(db *DB, ttl time.Duration) *Cache {
	return &Cache{db: db, ttl: ttl}
}

// Get returns the cached payload for the key, if present and fresh.
func (c *Cache) Get(key string) ([]byte, bool) {
	var payload []byte
	var cachedAt int64
	err := c.db.Conn().QueryRowContext(context.Background(),
		`SELECT payload, cached_at FROM api_cache WHERE key = ?`, key,
	).Scan(&payload, &cachedAt)
	if err != nil {
		return nil, false
	}
	if c.expired(cachedAt) {
		return nil, false
	}
	return payload, true
}

// Set stores the payload under the key, replacing any existing entry.
func (c *Cache) Set(key string, value []byte) {
	_, _ = c.db.Conn().ExecContext(context.Background(), `
		INSERT INTO api_cache (key, payload, cached_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			payload = excluded.payload,
			cached_at = excluded.cached_at
	`, key, value, time.Now().Unix())
}

// Flush is a no-op: entries are written through on Set.
func (c *Cache) Flush() {}

func (c *Cache) expired(cachedAt int64) bool {
	if c.ttl <= 0 {
		return false
	}
	return time.Since(time.Unix(cachedAt, 0)) > c.ttl
}

// CachedSetDirectory serves the set directory from the sets table, falling
// back to the underlying source and storing its listing. Listing order is
// preserved via the position column; matching semantics depend on it.
type CachedSetDirectory struct {
	db     *DB
	source deck.SetDirectory
	ttl    time.Duration
}

// NewCachedSetDirectory wraps the source directory with the sets cache.
func NewCachedSetDirectory(db *DB, source deck.SetDirectory, ttl time.Duration) *CachedSetDirectory {
	return &CachedSetDirectory{db: db, source: source, ttl: ttl}
}

// ListSets returns the cached directory when fresh, otherwise fetches from
// the source and refreshes the cache. Cache read or write failures fall
// through to the source; only source failures are returned.
func (d *CachedSetDirectory) ListSets(ctx context.Context) ([]deck.SetInfo, error) {
	if sets, ok := d.cached(ctx); ok {
		return sets, nil
	}

	sets, err := d.source.ListSets(ctx)
	if err != nil {
		return nil, err
	}
	d.store(ctx, sets)
	return sets, nil
}

func (d *CachedSetDirectory) cached(ctx context.Context) ([]deck.SetInfo, bool) {
	var oldest sql.NullInt64
	err := d.db.Conn().QueryRowContext(ctx, `SELECT MIN(cached_at) FROM sets`).Scan(&oldest)
	if err != nil || !oldest.Valid {
		return nil, false
	}
	if d.ttl > 0 && time.Since(time.Unix(oldest.Int64, 0)) > d.ttl {
		return nil, false
	}

	rows, err := d.db.Conn().QueryContext(ctx, `SELECT code, name FROM sets ORDER BY position`)
	if err != nil {
		return nil, false
	}
	defer func() { _ = rows.Close() }()

	var sets []deck.SetInfo
	for rows.Next() {
		var set deck.SetInfo
		if err := rows.Scan(&set.Code, &set.Name); err != nil {
			return nil, false
		}
		sets = append(sets, set)
	}
	if err := rows.Err(); err != nil || len(sets) == 0 {
		return nil, false
	}
	return sets, true
}

func (d *CachedSetDirectory) store(ctx context.Context, sets []deck.SetInfo) {
	tx, err := d.db.Conn().BeginTx(ctx, nil)
	if err != nil {
		return
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM sets`); err != nil {
		return
	}
	now := time.Now().Unix()
	for position, set := range sets {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO sets (position, code, name, cached_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(code) DO UPDATE SET
				position = excluded.position,
				name = excluded.name,
				cached_at = excluded.cached_at
		`, position, set.Code, set.Name, now)
		if err != nil {
			return
		}
	}
	_ = tx.Commit()
}
