// Package sink is where job directories get written: a directory on the
// local filesystem or a blob bucket.
package sink

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// Sink is an output root. Names are slash separated and relative to the root.
type Sink interface {
	// MkdirAll creates dir and its parents. Existing directories are not an error.
	MkdirAll(ctx context.Context, dir string) error

	// WriteFile creates or truncates name and writes data to it.
	WriteFile(ctx context.Context, name string, data []byte) error

	// Close releases the root.
	Close() error

	// String is the root's location, for messages.
	String() string
}

// Open returns the Sink for root. Plain paths and file:// URLs are local
// directories, anything else with a scheme ("s3://", "gs://", "mem://")
// is opened as a blob bucket.
func Open(ctx context.Context, root string) (Sink, error) {
	if root == "" {
		root = "."
	}

	if !strings.Contains(root, "://") {
		return NewDir(root), nil
	}

	u, err := url.Parse(root)
	if err != nil {
		return nil, fmt.Errorf("failed to parse output root %s: %w", root, err)
	}
	if u.Scheme == "file" {
		return NewDir(filepath.FromSlash(u.Path)), nil
	}

	return OpenBucket(ctx, root)
}
