package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/kbukum/simplemovies/logger"
)

// File is a Store persisted as a single JSON object on disk. Values are
// base64 encoded by encoding/json. Set and Delete only change memory; Sync
// writes the whole document to a temp file and renames it into place.
type File struct {
	path string
	log  *logger.Logger

	mu    sync.RWMutex
	data  map[string][]byte
	dirty bool
}

// OpenFile loads path if it exists, otherwise starts empty. The parent
// directory is created.
func OpenFile(path string, log *logger.Logger) (*File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("kvstore: resolve path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o750); err != nil {
		return nil, fmt.Errorf("kvstore: create directory: %w", err)
	}

	f := &File{path: abs, log: log, data: make(map[string][]byte)}
	raw, err := os.ReadFile(abs)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("kvstore: read %s: %w", abs, err)
	case len(raw) > 0:
		if err := json.Unmarshal(raw, &f.data); err != nil {
			return nil, fmt.Errorf("kvstore: decode %s: %w", abs, err)
		}
	}

	log.Debug("File store opened", logger.Fields("path", abs, "keys", len(f.data)))
	return f, nil
}

// Path returns the absolute document path.
func (f *File) Path() string { return f.path }

func (f *File) Get(_ context.Context, key string) ([]byte, bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.data[key]
	return clone(v), ok, nil
}

func (f *File) Set(_ context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = clone(value)
	f.dirty = true
	return nil
}

func (f *File) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.data[key]; ok {
		delete(f.data, key)
		f.dirty = true
	}
	return nil
}

// Sync writes pending changes to disk.
func (f *File) Sync(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.dirty {
		return nil
	}

	raw, err := json.MarshalIndent(f.data, "", "  ")
	if err != nil {
		return fmt.Errorf("kvstore: encode: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".kvstore-*")
	if err != nil {
		return fmt.Errorf("kvstore: create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("kvstore: write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("kvstore: flush temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("kvstore: close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("kvstore: replace %s: %w", f.path, err)
	}

	f.dirty = false
	f.log.Debug("File store synced", logger.Fields("path", f.path, "keys", len(f.data)))
	return nil
}
