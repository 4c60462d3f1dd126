package sink

import (
	"context"
	"fmt"
	"strings"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/gcsblob" // GCS driver
	_ "gocloud.dev/blob/memblob" // in-memory driver
	_ "gocloud.dev/blob/s3blob"  // S3 driver
)

// Bucket writes job directories into a blob bucket. Buckets have no
// directories, so each one is stored as a zero-length "dir/" marker object.
type Bucket struct {
	bucket *blob.Bucket
	url    string
}

// OpenBucket opens the bucket at a gocloud URL, ex: "s3://my-bucket?region=us-east-1".
func OpenBucket(ctx context.Context, bucketURL string) (*Bucket, error) {
	b, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open bucket %s: %w", bucketURL, err)
	}
	return NewBucket(b, bucketURL), nil
}

// NewBucket wraps an already opened bucket. Close closes it.
func NewBucket(b *blob.Bucket, bucketURL string) *Bucket {
	return &Bucket{bucket: b, url: bucketURL}
}

// MkdirAll writes a marker for dir and each of its parents.
func (b *Bucket) MkdirAll(ctx context.Context, dir string) error {
	dir = strings.Trim(dir, "/")
	if dir == "" || dir == "." {
		return nil
	}

	parts := strings.Split(dir, "/")
	for i := range parts {
		key := strings.Join(parts[:i+1], "/") + "/"
		if err := b.bucket.WriteAll(ctx, key, nil, nil); err != nil {
			return fmt.Errorf("failed to create directory marker %s: %w", key, err)
		}
	}
	return nil
}

// WriteFile writes data to the object at name.
func (b *Bucket) WriteFile(ctx context.Context, name string, data []byte) error {
	if err := b.bucket.WriteAll(ctx, name, data, nil); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// Close releases the bucket connection. Later calls are no-ops.
func (b *Bucket) Close() error {
	if b.bucket == nil {
		return nil
	}
	err := b.bucket.Close()
	b.bucket = nil
	return err
}

func (b *Bucket) String() string { return b.url }
