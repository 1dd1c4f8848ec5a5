package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/mkowal/docmap"
)

// DefaultTTL is how long cached extraction results stay valid.
const DefaultTTL = 24 * time.Hour

// Compile-time interface verification.
var _ docmap.ResultCache = (*Cache)(nil)

// Cache implements docmap.ResultCache using SQLite.
type Cache struct {
	db  *DB
	ttl time.Duration

	// now is overridable in tests.
	now func() time.Time
}

// NewCache creates a new Cache. A zero ttl selects DefaultTTL.
func NewCache(db *DB, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{db: db, ttl: ttl, now: time.Now}
}

// Get returns the cached modules for key, reporting whether a live entry
// was found. Expired entries are deleted lazily on read.
func (c *Cache) Get(ctx context.Context, key string) ([]docmap.Module, bool, error) {
	var payload string
	var expiresAt int64

	err := c.db.QueryRowContext(ctx, `
		SELECT payload, expires_at FROM results WHERE key = ?
	`, key).Scan(&payload, &expiresAt)

	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	if expiresAt <= c.now().Unix() {
		if _, err := c.db.ExecContext(ctx, `DELETE FROM results WHERE key = ?`, key); err != nil {
			return nil, false, err
		}
		return nil, false, nil
	}

	var modules []docmap.Module
	if err := json.Unmarshal([]byte(payload), &modules); err != nil {
		return nil, false, docmap.Errorf(docmap.EINTERNAL, "corrupt cache entry: %v", err)
	}
	return modules, true, nil
}

// Put stores modules under key, replacing any existing entry.
func (c *Cache) Put(ctx context.Context, key string, modules []docmap.Module) error {
	payload, err := json.Marshal(modules)
	if err != nil {
		return docmap.Errorf(docmap.EINTERNAL, "encode cache entry: %v", err)
	}

	expiresAt := c.now().Add(c.ttl).Unix()
	_, err = c.db.ExecContext(ctx, `
		INSERT INTO results (key, payload, expires_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, expires_at = excluded.expires_at
	`, key, payload, expiresAt)
	return err
}
