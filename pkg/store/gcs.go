package store

import (
	"context"
	"fmt"
	"io"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// GCSClient implements Client using Google Cloud Storage.
type GCSClient struct {
	client *gcs.Client
	prefix string
}

// NewGCSClient creates a GCS-backed Client. GCS bucket names are global, so
// bucketPrefix is prepended to every bucket name to scope a deployment.
// It uses Application Default Credentials (works with Workload Identity, SA keys, gcloud auth).
func NewGCSClient(ctx context.Context, bucketPrefix string) (*GCSClient, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}
	return &GCSClient{client: client, prefix: bucketPrefix}, nil
}

func (c *GCSClient) bucket(name string) *gcs.BucketHandle {
	return c.client.Bucket(c.prefix + name)
}

// Put stores an object as application/json.
func (c *GCSClient) Put(ctx context.Context, bucket, key string, data []byte) error {
	w := c.bucket(bucket).Object(key).NewWriter(ctx)
	w.ContentType = "application/json"
	if _, err := w.Write(data); err != nil {
		w.Close()
		return &OpError{Op: "put", Bucket: bucket, Key: key, Err: err}
	}
	if err := w.Close(); err != nil {
		return &OpError{Op: "put", Bucket: bucket, Key: key, Err: err}
	}
	return nil
}

// Get retrieves an object body.
func (c *GCSClient) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	r, err := c.bucket(bucket).Object(key).NewReader(ctx)
	if err != nil {
		return nil, &OpError{Op: "get", Bucket: bucket, Key: key, Err: err}
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &OpError{Op: "get", Bucket: bucket, Key: key, Err: err}
	}
	return data, nil
}

// List returns all objects under the given prefix.
func (c *GCSClient) List(ctx context.Context, bucket, prefix string) ([]Object, error) {
	it := c.bucket(bucket).Objects(ctx, &gcs.Query{Prefix: prefix})

	var objects []Object
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, &OpError{Op: "list", Bucket: bucket, Key: prefix, Err: err}
		}
		objects = append(objects, Object{Key: attrs.Name, Size: attrs.Size})
	}
	return objects, nil
}
