// Package cache provides an optional, content-addressed store for
// compiled MiniLang programs: compiling is near-instant at MiniLang's
// scale, but the cache exists to exercise sqlite as storage the same way
// a larger pipeline would memoize expensive build artifacts.
package cache

import (
	"bytes"
	"crypto/sha256"
	"database/sql"
	"encoding/gob"
	"encoding/hex"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/minilang/minilang/internal/bytecode"
	"github.com/minilang/minilang/internal/compiler"
)

// Program is the compiled artifact stored per source digest: the main
// chunk plus its top-level user-function table.
type Program struct {
	Chunk     *bytecode.Chunk
	UserFuncs map[string]*compiler.Func
}

// Cache is a SHA-256-keyed store of compiled Programs backed by a local
// sqlite database.
type Cache struct {
	db *sql.DB
}

// Open opens (creating if necessary) the sqlite database at path and
// ensures its schema exists.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cache: open %s: %w", path, err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS programs (
		digest TEXT PRIMARY KEY,
		blob   BLOB NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: create schema: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Digest returns the cache key for source text.
func Digest(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

// Lookup returns the cached Program for digest, or (nil, false) on a
// cache miss.
func (c *Cache) Lookup(digest string) (*Program, bool, error) {
	var blob []byte
	err := c.db.QueryRow(`SELECT blob FROM programs WHERE digest = ?`, digest).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache: lookup %s: %w", digest, err)
	}

	var prog Program
	if err := gob.NewDecoder(bytes.NewReader(blob)).Decode(&prog); err != nil {
		return nil, false, fmt.Errorf("cache: decode %s: %w", digest, err)
	}
	return &prog, true, nil
}

// Store gob-encodes prog and upserts it under digest.
func (c *Cache) Store(digest string, prog *Program) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(prog); err != nil {
		return fmt.Errorf("cache: encode %s: %w", digest, err)
	}

	_, err := c.db.Exec(
		`INSERT INTO programs (digest, blob) VALUES (?, ?)
		 ON CONFLICT(digest) DO UPDATE SET blob = excluded.blob`,
		digest, buf.Bytes(),
	)
	if err != nil {
		return fmt.Errorf("cache: store %s: %w", digest, err)
	}
	return nil
}
