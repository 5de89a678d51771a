package content

import (
	"context"
	"io"
	"time"
)

// StoredObject describes one object held by an ObjectStorage
type StoredObject struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
}

// ObjectStorage stores the static files of store content
type ObjectStorage interface {
	// Put writes body at key, replacing any existing object
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error

	// Delete removes the object at key
	Delete(ctx context.Context, key string) error

	// Exists reports whether an object is stored at key
	Exists(ctx context.Context, key string) (bool, error)

	// List returns the objects whose key starts with prefix, ordered by key
	List(ctx context.Context, prefix string) ([]StoredObject, error)

	// URL returns a URL the object at key can be downloaded from
	URL(ctx context.Context, key string) (string, error)
}
