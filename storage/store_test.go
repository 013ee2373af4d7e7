package storage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/ttpr0/transit-catalogue/util"
)

func _TestStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := store.Load(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("empty store error = %v; want ErrNotFound", err)
	}
	if err := store.Save(ctx, []byte("first")); err != nil {
		t.Fatalf("failed to save: %v", err)
	}
	if err := store.Save(ctx, []byte("second")); err != nil {
		t.Fatalf("failed to save: %v", err)
	}
	data, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if !bytes.Equal(data, []byte("second")) {
		t.Errorf("loaded %q; want %q", data, "second")
	}
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(filepath.Join(dir, "snapshot.bin"))
	defer store.Close()
	_TestStore(t, store)

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the snapshot file, found %d entries", len(entries))
	}
}

func TestFileStoreCanceled(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "snapshot.bin"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := store.Save(ctx, []byte("data")); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v; want context.Canceled", err)
	}
}

func TestSQLiteStore(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "snapshots.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()
	_TestStore(t, store)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	store, err := Open(Config{File: filepath.Join(dir, "snapshot.bin")})
	if err != nil {
		t.Fatalf("failed to open file store: %v", err)
	}
	if _, ok := store.(*FileStore); !ok {
		t.Errorf("empty backend must select the file store, got %T", store)
	}

	store, err = Open(Config{Backend: "sqlite", SQLite: filepath.Join(dir, "snapshots.db")})
	if err != nil {
		t.Fatalf("failed to open sqlite store: %v", err)
	}
	if _, ok := store.(*SQLiteStore); !ok {
		t.Errorf("expected sqlite store, got %T", store)
	}
	store.Close()

	if _, err := Open(Config{Backend: "postgres"}); !errors.Is(err, ErrInvalidSettings) {
		t.Errorf("unknown backend error = %v; want ErrInvalidSettings", err)
	}
	if _, err := Open(Config{Backend: "file"}); !errors.Is(err, ErrInvalidSettings) {
		t.Errorf("missing path error = %v; want ErrInvalidSettings", err)
	}
}
