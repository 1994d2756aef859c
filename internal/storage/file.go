package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileBackend stores each document as an indented JSON file in a data
// directory. Writes go through a temp file and rename so readers never
// observe a partially written document.
type FileBackend struct {
	dir string
}

func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return &FileBackend{dir: dir}, nil
}

func (f *FileBackend) path(name string) string {
	return filepath.Join(f.dir, name+".json")
}

func (f *FileBackend) Save(ctx context.Context, name string, doc interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode document %s: %w", name, err)
	}

	tmp := f.path(name) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write document %s: %w", name, err)
	}

	if err := os.Rename(tmp, f.path(name)); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to commit document %s: %w", name, err)
	}

	return nil
}

func (f *FileBackend) Load(ctx context.Context, name string, into interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := os.ReadFile(f.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to read document %s: %w", name, err)
	}

	if err := json.Unmarshal(data, into); err != nil {
		return fmt.Errorf("%w: document %s: %v", ErrCorrupt, name, err)
	}

	return nil
}

func (f *FileBackend) Close() error {
	return nil
}
