package cache

// EvictReason explains why Prune removed a persisted entry.
type EvictReason int

const (
	// EvictSize — removed by the size pass (byte budget exhausted).
	EvictSize EvictReason = iota
	// EvictAge — older than the configured MaxAge.
	EvictAge
)

// Metrics exposes cache-level observability hooks.
// A NoopMetrics implementation is provided and used by default.
type Metrics interface {
	// Hit is reported when a result is served without running the
	// computation: from the in-flight table or from disk.
	Hit()
	// Miss is reported when the caller's computation has to run.
	Miss()
	// Evict is reported once per entry removed by Prune.
	Evict(reason EvictReason)
	// Size reports the surviving persisted entries after a Prune pass.
	Size(entries int, bytes int64)
}

// NoopMetrics is a drop-in Metrics implementation that does nothing.
// It is safe for concurrent use and intended as the default when
// no observability backend is configured.
type NoopMetrics struct{}

func (NoopMetrics) Hit()                          {}
func (NoopMetrics) Miss()                         {}
func (NoopMetrics) Evict(EvictReason)             {}
func (NoopMetrics) Size(entries int, bytes int64) {}

// Ensure NoopMetrics implements the Metrics interface at compile time.
var _ Metrics = NoopMetrics{}
