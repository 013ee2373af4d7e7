package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	. "github.com/ttpr0/transit-catalogue/util"
	"golang.org/x/exp/slog"
	_ "modernc.org/sqlite"
)

const _SCHEMA = `CREATE TABLE IF NOT EXISTS snapshots (
	id TEXT PRIMARY KEY,
	created_at INTEGER NOT NULL,
	size INTEGER NOT NULL,
	data BLOB NOT NULL
)`

//*******************************************
// sqlite store
//*******************************************

// NewSQLiteStore opens the database and ensures the snapshot table exists.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	conn.SetMaxOpenConns(1)
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		slog.Warn(fmt.Sprintf("failed to set busy timeout: %v", err))
	}
	if _, err := conn.Exec(_SCHEMA); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &SQLiteStore{
		conn: conn,
		path: path,
	}, nil
}

// SQLiteStore keeps every saved snapshot as a row.
type SQLiteStore struct {
	conn *sql.DB
	path string
}

func (self *SQLiteStore) Save(ctx context.Context, data []byte) error {
	id := uuid.New()
	_, err := self.conn.ExecContext(ctx,
		"INSERT INTO snapshots (id, created_at, size, data) VALUES (?, ?, ?, ?)",
		id.String(), time.Now().UnixNano(), len(data), data,
	)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}
	slog.Info(fmt.Sprintf("stored snapshot %v in %s (%v bytes)", id, self.path, len(data)))
	return nil
}

func (self *SQLiteStore) Load(ctx context.Context) ([]byte, error) {
	var id string
	var data []byte
	row := self.conn.QueryRowContext(ctx, "SELECT id, data FROM snapshots ORDER BY created_at DESC, rowid DESC LIMIT 1")
	if err := row.Scan(&id, &data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("snapshot in %s: %w", self.path, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query snapshot: %w", err)
	}
	slog.Info(fmt.Sprintf("loaded snapshot %s from %s (%v bytes)", id, self.path, len(data)))
	return data, nil
}

func (self *SQLiteStore) Close() error {
	return self.conn.Close()
}
