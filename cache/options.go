package cache

import "time"

// Clock provides time in UnixNano; useful for deterministic tests.
type Clock interface{ NowUnixNano() int64 }

// Options configures the cache behavior. The zero value is a memory-only
// cache: results are deduplicated and held in memory for the process
// lifetime, nothing touches disk, and Prune is a no-op.
type Options struct {
	// Dir enables disk persistence into a flat directory. Results survive
	// process restarts; Prune enforces MaxBytes/MaxAge against the
	// directory. New never creates the directory and never sweeps it;
	// both are left to the embedding application.
	Dir string

	// MaxBytes caps the total size of persisted entries, enforced by
	// Prune. Required (> 0) when Dir is set.
	MaxBytes int64

	// MaxAge caps the age of persisted entries, enforced by Prune.
	// Required (> 0) when Dir is set.
	MaxAge time.Duration

	// Metrics receives hit/miss/eviction signals. Nil => NoopMetrics.
	Metrics Metrics

	// Clock allows overriding the time source (tests). Nil => time.Now().
	Clock Clock
}
