package cache

import "context"

// Cache deduplicates and optionally persists the results of expensive named
// computations. All methods are safe for concurrent use by multiple
// goroutines.
//
// Deduplication is process-local: concurrent callers for the same name
// observe a single in-progress computation. Durable state, when configured,
// lives exclusively in the store directory.
type Cache interface {
	// GetOrFetch returns the bytes for name, running fetch at most once
	// per name across concurrent callers. Lookup order: the in-flight
	// table, then the store directory (when persistence is configured),
	// then fetch. A successful fresh result is persisted before
	// GetOrFetch returns.
	//
	// Cancelling ctx unblocks only the waiting caller; it does NOT cancel
	// a running fetch. If cancellation of the work is needed, close over
	// a context inside fetch.
	GetOrFetch(ctx context.Context, name string, fetch func() ([]byte, error)) ([]byte, error)

	// Prune enforces the size and age bounds on persisted entries:
	// oldest-first size pass, then an age pass over the survivors.
	// A no-op without persistence.
	Prune() error

	// Len returns the number of computations held in the in-flight table
	// (pending and completed).
	Len() int

	// Close marks the cache closed. Subsequent calls fail with ErrClosed.
	Close() error
}
