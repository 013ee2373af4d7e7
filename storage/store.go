package storage

import (
	"context"
	"fmt"

	. "github.com/ttpr0/transit-catalogue/util"
)

// Store keeps encoded snapshots. Load returns the most recently saved one.
type Store interface {
	Save(ctx context.Context, data []byte) error
	Load(ctx context.Context) ([]byte, error)
	Close() error
}

type Config struct {
	Backend string `yaml:"backend" validate:"omitempty,oneof=file sqlite"`
	File    string `yaml:"file"`
	SQLite  string `yaml:"sqlite"`
}

// Open selects the backend named in the config. An empty backend means file.
func Open(config Config) (Store, error) {
	switch config.Backend {
	case "", "file":
		if config.File == "" {
			return nil, fmt.Errorf("file store without path: %w", ErrInvalidSettings)
		}
		return NewFileStore(config.File), nil
	case "sqlite":
		if config.SQLite == "" {
			return nil, fmt.Errorf("sqlite store without path: %w", ErrInvalidSettings)
		}
		return NewSQLiteStore(config.SQLite)
	default:
		return nil, fmt.Errorf("unknown storage backend %s: %w", config.Backend, ErrInvalidSettings)
	}
}
