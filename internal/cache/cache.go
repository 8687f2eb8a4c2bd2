// Package cache stores successful compilations in a SQLite database so an
// unchanged source is not compiled twice.
package cache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/funvibe/tackc/internal/config"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS builds (
	id         TEXT PRIMARY KEY,
	key        TEXT UNIQUE NOT NULL,
	emit       TEXT NOT NULL,
	output     TEXT NOT NULL,
	created_at INTEGER NOT NULL
)`

// Build is one cached compilation.
type Build struct {
	ID        string
	Key       string
	Emit      string
	Output    string
	CreatedAt time.Time
}

type Cache struct {
	db *sql.DB
}

// Open opens or creates the cache database at path.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache %s: %w", path, err)
	}
	// One writer at a time; the server compiles concurrently.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema in %s: %w", path, err)
	}
	return &Cache{db: db}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// Key identifies a compilation: the source text and every option that
// changes the output.
func Key(source string, opts *config.Options) string {
	h := sha256.New()
	h.Write([]byte(opts.Emit))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(opts.FrameAlignment)))
	h.Write([]byte{0})
	h.Write([]byte(source))
	return hex.EncodeToString(h.Sum(nil))
}

// Lookup returns the build stored under key. The second result is false
// when there is none.
func (c *Cache) Lookup(ctx context.Context, key string) (*Build, bool, error) {
	row := c.db.QueryRowContext(ctx,
		`SELECT id, key, emit, output, created_at FROM builds WHERE key = ?`, key)
	var b Build
	var created int64
	err := row.Scan(&b.ID, &b.Key, &b.Emit, &b.Output, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache lookup: %w", err)
	}
	b.CreatedAt = time.Unix(created, 0)
	return &b, true, nil
}

// Store records output under key with a fresh build id, replacing any
// previous build of the same key.
func (c *Cache) Store(ctx context.Context, key, emit, output string) (*Build, error) {
	b := &Build{
		ID:        uuid.NewString(),
		Key:       key,
		Emit:      emit,
		Output:    output,
		CreatedAt: time.Now().Truncate(time.Second),
	}
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO builds (id, key, emit, output, created_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET id = excluded.id, emit = excluded.emit,
			output = excluded.output, created_at = excluded.created_at`,
		b.ID, b.Key, b.Emit, b.Output, b.CreatedAt.Unix())
	if err != nil {
		return nil, fmt.Errorf("cache store: %w", err)
	}
	return b, nil
}

// Len is the number of cached builds.
func (c *Cache) Len(ctx context.Context) (int, error) {
	var n int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM builds`).Scan(&n); err != nil {
		return 0, fmt.Errorf("cache count: %w", err)
	}
	return n, nil
}
