// Package cache provides a deduplicating, optionally disk-persisted cache
// for the results of expensive named computations (fetched or rendered
// content keyed by a logical name).
//
// Design
//
//   - Deduplication: an in-flight table maps name hashes to single-assignment
//     result slots. The first caller for a name becomes the leader and runs
//     the supplied fetch; followers block on the slot and receive the shared
//     result (or the shared error). The table check, the store lookup and
//     the slot insertion form one critical section, so at most one fetch
//     runs per name process-wide.
//
//   - Persistence: each result is stored as a single file in a flat
//     directory. The filename is the record's only metadata,
//     <hash>-<year>-<month>-<day>-<nanos-of-day>; there are no sidecar
//     files and no file extensions. Filenames that do not parse are ignored.
//     Two files name the same artifact iff their hash fields are equal;
//     timestamps never influence matching.
//
//   - Eviction: Prune runs a two-pass sweep. The size pass walks entries
//     oldest-first against a byte budget, evicting entries that do not fit
//     the remaining budget without reducing it. The age pass then removes
//     survivors older than MaxAge. The size pass deliberately favors older
//     entries over newer ones when over budget.
//
//   - Scope: deduplication is process-local; there is no multi-process
//     locking, no checksumming, and no cancellation of a running fetch.
//     Prune does not lock against GetOrFetch: concurrent sweeps and
//     lookups can race, which is accepted for interactive use.
//
//   - Metrics: Options.Metrics receives Hit/Miss/Evict/Size signals.
//     By default NoopMetrics is used; plug the Prometheus adapter from
//     metrics/prom to export them.
//
// Basic usage
//
//	c := cache.New(cache.Options{
//	    Dir:      "/home/me/.cache/fetchcache",
//	    MaxBytes: 10 << 20,
//	    MaxAge:   30 * 24 * time.Hour,
//	})
//	b, err := c.GetOrFetch(ctx, "https://example.com", func() ([]byte, error) {
//	    return fetchURL("https://example.com")
//	})
//
// Memory-only (no persistence, no eviction)
//
//	c := cache.New(cache.Options{})
//
// Enforcing the bounds
//
//	// Invoked on demand, not on every write.
//	if err := c.Prune(); err != nil { ... }
package cache
