package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/IvanBrykalov/fetchcache/internal/util"
)

// ErrClosed is returned by GetOrFetch and Prune after Close.
var ErrClosed = errors.New("cache: closed")

// flight is a single-assignment result slot. The leader publishes val/err
// and then closes done; publishing happens-before the close, so followers
// returning from <-done observe the final values.
type flight struct {
	started time.Time
	done    chan struct{} // closed when val/err are published
	val     []byte
	err     error
}

// cache owns the in-flight table and the optional store. The table maps
// name hashes to result slots. Slots for successful computations are kept
// for the process lifetime (with no store configured they are the whole
// cache) while failed slots are dropped so a later call can retry.
type cache struct {
	mu      sync.Mutex
	flights map[uint64]*flight

	store  *Store // nil = memory-only
	opt    Options
	closed atomic.Bool
}

// New constructs a Cache with the provided Options. It has no side effects
// on disk: the store directory is neither created nor swept. Defaults:
//   - nil Metrics => NoopMetrics
//
// Panics if Dir is set with a non-positive MaxBytes or MaxAge.
func New(opt Options) Cache {
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}
	var st *Store
	if opt.Dir != "" {
		if opt.MaxBytes <= 0 {
			panic("cache: MaxBytes must be > 0 when Dir is set")
		}
		if opt.MaxAge <= 0 {
			panic("cache: MaxAge must be > 0 when Dir is set")
		}
		st = NewStore(opt.Dir)
	}
	return &cache{
		flights: make(map[uint64]*flight),
		store:   st,
		opt:     opt,
	}
}

// GetOrFetch returns the bytes for name, running fetch at most once per
// name across concurrent callers.
//
// The in-flight check, the store lookup and the slot insertion happen under
// one critical section: every caller that misses the table either finds a
// completed slot installed by a disk hit or finds the pending slot of the
// leader that got there first. There is no window in which two callers can
// both conclude "not present" and both run fetch.
func (c *cache) GetOrFetch(ctx context.Context, name string, fetch func() ([]byte, error)) ([]byte, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}

	hash := util.Fnv64a(name)
	cand := Entry{Hash: hash, Time: c.now()}

	c.mu.Lock()
	if fl, ok := c.flights[hash]; ok {
		c.mu.Unlock()
		return c.wait(ctx, fl)
	}

	fl := &flight{started: cand.Time, done: make(chan struct{})}
	if c.store != nil {
		val, found, err := c.lookup(cand.Filename())
		if err != nil {
			c.mu.Unlock()
			return nil, err
		}
		if found {
			// Disk hit: install a completed slot so later callers for
			// this name are served from memory without touching disk.
			fl.val = val
			close(fl.done)
			c.flights[hash] = fl
			c.mu.Unlock()
			c.opt.Metrics.Hit()
			return val, nil
		}
	}
	c.flights[hash] = fl
	c.mu.Unlock()

	c.opt.Metrics.Miss()

	// We are the leader; run the computation outside the lock. The fetch
	// may block on network or file IO; that is the caller's business.
	val, err := fetch()

	// Publish before persisting so waiters are unblocked by the
	// in-memory result even if the disk write below fails.
	fl.val, fl.err = val, err
	close(fl.done)

	if err != nil {
		// Drop the failed slot: waiters above observe the error, and a
		// later call for the same name retries instead of caching the
		// failure forever.
		c.mu.Lock()
		delete(c.flights, hash)
		c.mu.Unlock()
		return nil, err
	}

	if c.store != nil {
		if werr := c.store.Write(cand.Filename(), val); werr != nil {
			return nil, werr
		}
	}
	return val, nil
}

// wait blocks on a slot owned by another caller. Cancelling ctx unblocks
// only this follower; the leader's fetch keeps running.
func (c *cache) wait(ctx context.Context, fl *flight) ([]byte, error) {
	select {
	case <-fl.done:
		if fl.err != nil {
			return nil, fl.err
		}
		c.opt.Metrics.Hit()
		return fl.val, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// lookup scans the store for an entry whose hash matches the candidate
// filename and reads it. Foreign filenames are skipped, never fatal.
// Called with mu held.
func (c *cache) lookup(candidate string) ([]byte, bool, error) {
	names, err := c.store.List()
	if err != nil {
		return nil, false, err
	}
	for _, name := range names {
		if _, ok := ParseEntry(name); !ok {
			continue
		}
		if matches(candidate, name) {
			val, err := c.store.Read(name)
			if err != nil {
				return nil, false, err
			}
			return val, true, nil
		}
	}
	return nil, false, nil
}

// Len returns the number of slots in the in-flight table.
func (c *cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.flights)
}

// Close marks the cache as closed and drops the in-flight table.
// Pending fetches are not interrupted.
func (c *cache) Close() error {
	c.closed.Store(true)
	c.mu.Lock()
	c.flights = make(map[uint64]*flight)
	c.mu.Unlock()
	return nil
}

// now reads the configured clock, defaulting to the wall clock. UTC keeps
// filename encoding independent of the process timezone.
func (c *cache) now() time.Time {
	if c.opt.Clock != nil {
		return time.Unix(0, c.opt.Clock.NowUnixNano()).UTC()
	}
	return time.Now().UTC()
}
