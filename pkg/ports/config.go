package ports

import (
	"context"
	"net/url"
	"time"
)

// ConfigCache persists the last successfully fetched remote path configuration.
type ConfigCache interface {
	// Get returns the cached document for key, or domain.ErrCacheMiss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores the document for key, replacing any previous entry.
	Set(ctx context.Context, key string, data []byte) error
}

// ExternalOpener hands a URL the app does not navigate to in-app to something else,
// such as an in-app browser or the operating system.
type ExternalOpener interface {
	Open(ctx context.Context, u *url.URL) error
}

// ExternalOpenerFunc adapts a function to ExternalOpener.
type ExternalOpenerFunc func(ctx context.Context, u *url.URL) error

func (f ExternalOpenerFunc) Open(ctx context.Context, u *url.URL) error { return f(ctx, u) }

// UnlockFunc is a function that releases a distributed lock.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker coordinates work across navigator processes sharing a ConfigCache,
// so that replicas refresh remote configuration one at a time.
type DistributedLocker interface {
	// Lock blocks until the lock for key is acquired or ctx is canceled.
	// The lock expires after ttl if never released.
	// Returns an UnlockFunc that MUST be called to release the lock.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
