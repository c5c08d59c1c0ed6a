// Package store provides the object store clients backing the catalog
// layers: S3-compatible (MinIO), Google Cloud Storage, and a local
// filesystem client for development and testing.
package store

import (
	"context"
	"fmt"
)

// Object is one stored blob as reported by a listing call. Size is zero
// when the backend does not report it.
type Object struct {
	Key  string
	Size int64
}

// Client abstracts blob storage as flat buckets of keyed objects.
type Client interface {
	Put(ctx context.Context, bucket, key string, data []byte) error
	Get(ctx context.Context, bucket, key string) ([]byte, error)
	List(ctx context.Context, bucket, prefix string) ([]Object, error)
}

// OpError describes a failed store operation. Callers can unwrap it to
// reach the backend error.
type OpError struct {
	Op     string // "put", "get" or "list"
	Bucket string
	Key    string
	Err    error
}

func (e *OpError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("store %s %s: %v", e.Op, e.Bucket, e.Err)
	}
	return fmt.Sprintf("store %s %s/%s: %v", e.Op, e.Bucket, e.Key, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }
