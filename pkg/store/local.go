package store

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalClient implements Client using the local filesystem, with one
// directory per bucket. Useful for development and testing.
type LocalClient struct {
	BaseDir string
}

// NewLocalClient creates a LocalClient rooted at the given directory.
func NewLocalClient(baseDir string) *LocalClient {
	return &LocalClient{BaseDir: baseDir}
}

func (c *LocalClient) objectPath(bucket, key string) string {
	return filepath.Join(c.BaseDir, bucket, filepath.FromSlash(key))
}

// Put stores an object, creating bucket and key directories as needed.
func (c *LocalClient) Put(ctx context.Context, bucket, key string, data []byte) error {
	path := c.objectPath(bucket, key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &OpError{Op: "put", Bucket: bucket, Key: key, Err: err}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &OpError{Op: "put", Bucket: bucket, Key: key, Err: err}
	}
	return nil
}

// Get retrieves an object body.
func (c *LocalClient) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	data, err := os.ReadFile(c.objectPath(bucket, key))
	if err != nil {
		return nil, &OpError{Op: "get", Bucket: bucket, Key: key, Err: err}
	}
	return data, nil
}

// List returns all objects under the given prefix. A bucket directory that
// does not exist yet lists as empty, matching a bucket nothing has been
// written to.
func (c *LocalClient) List(ctx context.Context, bucket, prefix string) ([]Object, error) {
	root := filepath.Join(c.BaseDir, bucket)
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil, nil
	}

	var objects []Object
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if !strings.HasPrefix(key, prefix) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		objects = append(objects, Object{Key: key, Size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, &OpError{Op: "list", Bucket: bucket, Key: prefix, Err: err}
	}
	return objects, nil
}
