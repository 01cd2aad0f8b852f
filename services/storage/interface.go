package storage

import (
	"context"
	"time"
)

// DocumentStore wraps the external binary-object store. Put returns the
// locator under which the object can later be addressed.
type DocumentStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, locator string) error
	DownloadURL(ctx context.Context, locator string, expires time.Duration) (string, error)
}
