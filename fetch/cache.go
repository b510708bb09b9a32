package fetch

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// Cache stores fetched status payloads in a local sqlite database so thread
// reconstruction and re-runs do not hammer the API. A nil *Cache is a valid
// no-op cache.
type Cache struct {
	conn *sqlite.Conn
	log  *zap.Logger
}

// OpenCache opens (creating when necessary) the cache database at path.
func OpenCache(path string, log *zap.Logger) (*Cache, error) {
	conn, err := sqlite.OpenConn(path, sqlite.OpenReadWrite, sqlite.OpenCreate)
	if err != nil {
		return nil, fmt.Errorf("unable to open cache database: %w", err)
	}
	err = sqlitex.ExecuteTransient(conn, `CREATE TABLE IF NOT EXISTS statuses (
		id         TEXT PRIMARY KEY,
		fetched_at INTEGER NOT NULL,
		payload    BLOB NOT NULL
	)`, nil)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("unable to prepare cache schema: %w", err)
	}
	return &Cache{conn: conn, log: log}, nil
}

func (c *Cache) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// Get returns a cached payload for the status id. Cache problems are logged
// and treated as a miss.
func (c *Cache) Get(id string) ([]byte, bool) {
	if c == nil || c.conn == nil {
		return nil, false
	}
	var payload []byte
	err := sqlitex.Execute(c.conn, `SELECT payload FROM statuses WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []any{id},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				payload = make([]byte, stmt.ColumnLen(0))
				stmt.ColumnBytes(0, payload)
				return nil
			},
		})
	if err != nil {
		c.log.Warn("Cache read failed", zap.String("id", id), zap.Error(err))
		return nil, false
	}
	return payload, len(payload) > 0
}

// Put stores a payload for the status id, replacing an older one. Failures
// are logged and ignored - cache is an optimization, never a requirement.
func (c *Cache) Put(id string, payload []byte) {
	if c == nil || c.conn == nil {
		return
	}
	err := sqlitex.Execute(c.conn, `INSERT OR REPLACE INTO statuses (id, fetched_at, payload) VALUES (?, ?, ?)`,
		&sqlitex.ExecOptions{Args: []any{id, time.Now().Unix(), payload}})
	if err != nil {
		c.log.Warn("Cache write failed", zap.String("id", id), zap.Error(err))
	}
}
