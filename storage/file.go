package storage

import (
	"context"
	"errors"
	"fmt"
	"os"

	. "github.com/ttpr0/transit-catalogue/util"
	"golang.org/x/exp/slog"
)

//*******************************************
// file store
//*******************************************

func NewFileStore(path string) *FileStore {
	return &FileStore{
		path: path,
	}
}

// FileStore keeps a single snapshot in a file. Writes replace the file
// atomically.
type FileStore struct {
	path string
}

func (self *FileStore) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := WriteToFile(data, self.path); err != nil {
		return fmt.Errorf("failed to write snapshot to %s: %w", self.path, err)
	}
	slog.Info(fmt.Sprintf("stored snapshot in %s (%v bytes)", self.path, len(data)))
	return nil
}

func (self *FileStore) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := ReadFromFile(self.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("snapshot %s: %w", self.path, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	slog.Info(fmt.Sprintf("loaded snapshot from %s (%v bytes)", self.path, len(data)))
	return data, nil
}

func (self *FileStore) Close() error {
	return nil
}
