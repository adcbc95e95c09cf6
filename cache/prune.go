package cache

import (
	"errors"
	"io/fs"
	"sort"

	"github.com/IvanBrykalov/fetchcache/policy"
)

// Prune enforces the size and age bounds on persisted entries. Without a
// configured store it does nothing.
//
// Prune takes no lock against GetOrFetch: a concurrent write can land after
// the directory was listed, and a concurrent store lookup can lose the file
// it was about to read. Both races are accepted for the target use (an
// interactive, low-contention tool) and are not guarded against.
func (c *cache) Prune() error {
	if c.closed.Load() {
		return ErrClosed
	}
	if c.store == nil {
		return nil
	}

	names, err := c.store.List()
	if err != nil {
		return err
	}

	items := make([]policy.Item, 0, len(names))
	for _, name := range names {
		e, ok := ParseEntry(name)
		if !ok {
			continue // foreign file, not ours to manage
		}
		size, err := c.store.Size(name)
		if err != nil {
			return err
		}
		items = append(items, policy.Item{Name: name, Time: e.Time, Size: size})
	}

	// Oldest first; both passes depend on this order.
	sort.Slice(items, func(i, j int) bool { return items[i].Time.Before(items[j].Time) })

	kept, oversize := policy.BySize(items, c.opt.MaxBytes)
	kept, expired := policy.ByAge(kept, c.now().Add(-c.opt.MaxAge))

	for _, it := range oversize {
		if err := c.discard(it.Name); err != nil {
			return err
		}
		c.opt.Metrics.Evict(EvictSize)
	}
	for _, it := range expired {
		if err := c.discard(it.Name); err != nil {
			return err
		}
		c.opt.Metrics.Evict(EvictAge)
	}

	var total int64
	for _, it := range kept {
		total += it.Size
	}
	c.opt.Metrics.Size(len(kept), total)
	return nil
}

// discard removes one entry, treating "already gone" as success: the file
// may have been removed by a concurrent sweep or by hand.
func (c *cache) discard(name string) error {
	if err := c.store.Remove(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
