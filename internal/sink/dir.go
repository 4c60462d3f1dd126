package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Dir writes under a directory on the local filesystem.
type Dir struct {
	root string
}

// NewDir returns a Dir rooted at root. Nothing is created until written.
func NewDir(root string) *Dir {
	return &Dir{root: root}
}

func (d *Dir) path(name string) string {
	return filepath.Join(d.root, filepath.FromSlash(name))
}

// MkdirAll creates dir and any missing parents.
func (d *Dir) MkdirAll(_ context.Context, dir string) error {
	if err := os.MkdirAll(d.path(dir), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}

// WriteFile writes data to name, replacing whatever was there.
func (d *Dir) WriteFile(_ context.Context, name string, data []byte) error {
	f, err := os.OpenFile(d.path(name), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", f.Name(), err)
	}
	return f.Close()
}

// Close is a no-op for directories.
func (d *Dir) Close() error { return nil }

func (d *Dir) String() string { return d.root }
