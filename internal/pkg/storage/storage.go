package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	ErrObjectNotFound = errors.New("object not found")
	ErrObjectTooLarge = errors.New("object exceeds maximum size")
	ErrEmptyObject    = errors.New("object is empty")
	ErrUnsupportedURI = errors.New("unsupported source uri")
)

// ObjectSource reads named objects from a backend (local disk, S3, MinIO).
type ObjectSource interface {
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}

// Config holds connection settings for S3-compatible backends.
type Config struct {
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
}

// Open resolves a source URI into an ObjectSource and the key to read from it.
//
//	s3://bucket/path/rooms.json -> S3Source(bucket), "path/rooms.json"
//	/etc/hotel/rooms.json       -> LocalSource("/etc/hotel"), "rooms.json"
func Open(ctx context.Context, uri string, cfg Config) (ObjectSource, string, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return nil, "", fmt.Errorf("%w: empty", ErrUnsupportedURI)
	}

	if rest, ok := strings.CutPrefix(uri, "s3://"); ok {
		bucket, key, found := strings.Cut(rest, "/")
		if !found || bucket == "" || key == "" {
			return nil, "", fmt.Errorf("%w: %s", ErrUnsupportedURI, uri)
		}
		src, err := NewS3Source(ctx, cfg, bucket)
		if err != nil {
			return nil, "", err
		}
		return src, key, nil
	}

	if strings.Contains(uri, "://") && !strings.HasPrefix(uri, "file://") {
		return nil, "", fmt.Errorf("%w: %s", ErrUnsupportedURI, uri)
	}
	dir, key := splitPath(strings.TrimPrefix(uri, "file://"))
	return NewLocalSource(dir), key, nil
}
