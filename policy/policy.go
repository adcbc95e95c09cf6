// Package policy holds the selection passes behind the cache's Prune sweep.
// Passes are pure: they partition items into keep/evict sets and never touch
// the filesystem. Callers are expected to pass items sorted oldest-first.
package policy

import "time"

// Item describes one persisted entry under consideration.
type Item struct {
	Name string    // encoded filename
	Time time.Time // request time decoded from the name
	Size int64     // file size in bytes
}

// BySize walks items oldest-first against a byte budget. An item that fits
// the remaining budget is kept and charged against it; one that does not is
// evicted WITHOUT reducing the budget, and the walk continues; a smaller
// newer entry may still be kept after a large one was dropped.
//
// The net effect is a retention bias toward older entries when over budget.
// That is the intended behavior here, not an LRU approximation.
func BySize(items []Item, maxBytes int64) (keep, evict []Item) {
	remaining := maxBytes
	for _, it := range items {
		if remaining-it.Size >= 0 {
			remaining -= it.Size
			keep = append(keep, it)
		} else {
			evict = append(evict, it)
		}
	}
	return keep, evict
}

// ByAge partitions items by whether their timestamp is strictly older than
// cutoff. The evicted set is independent of any size accounting.
func ByAge(items []Item, cutoff time.Time) (keep, evict []Item) {
	for _, it := range items {
		if it.Time.Before(cutoff) {
			evict = append(evict, it)
		} else {
			keep = append(keep, it)
		}
	}
	return keep, evict
}
