// Package artifact archives exported documents.
package artifact

import (
	"context"
	"fmt"
)

// Store keeps a copy of a produced document under key.
type Store interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
}

type Options struct {
	// Backend is none, fs or s3.
	Backend string
	Dir     string
	S3      S3Config
}

// Open returns the archive selected by opts.Backend, or nil for "none".
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case "", "none":
		return nil, nil
	case "fs":
		s, err := NewFileStore(opts.Dir)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "s3":
		s, err := NewS3Store(opts.S3)
		if err != nil {
			return nil, err
		}
		if err := s.EnsureBucket(ctx); err != nil {
			return nil, fmt.Errorf("ensure bucket %s: %w", opts.S3.Bucket, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown artifact backend %q", opts.Backend)
	}
}
