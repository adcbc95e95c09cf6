package policy

import (
	"testing"
	"time"
)

func day(n int) time.Time {
	return time.Date(2026, 8, n, 0, 0, 0, 0, time.UTC)
}

func names(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}

func equal(a []string, b ...string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestBySize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		items    []Item
		maxBytes int64
		keep     []string
		evict    []string
	}{
		{
			name: "all fit",
			items: []Item{
				{Name: "a", Time: day(1), Size: 100},
				{Name: "b", Time: day(2), Size: 100},
			},
			maxBytes: 1000,
			keep:     []string{"a", "b"},
		},
		{
			name: "oldest retained when over budget",
			items: []Item{
				{Name: "old", Time: day(1), Size: 600},
				{Name: "new", Time: day(2), Size: 600},
			},
			maxBytes: 1000,
			keep:     []string{"old"},
			evict:    []string{"new"},
		},
		{
			name: "eviction does not free budget, smaller newer item still fits",
			items: []Item{
				{Name: "a", Time: day(1), Size: 600},
				{Name: "b", Time: day(2), Size: 600},
				{Name: "c", Time: day(3), Size: 300},
			},
			maxBytes: 1000,
			keep:     []string{"a", "c"},
			evict:    []string{"b"},
		},
		{
			name: "exact fit is kept",
			items: []Item{
				{Name: "a", Time: day(1), Size: 1000},
			},
			maxBytes: 1000,
			keep:     []string{"a"},
		},
		{
			name: "zero budget evicts everything with size",
			items: []Item{
				{Name: "a", Time: day(1), Size: 1},
				{Name: "b", Time: day(2), Size: 0},
			},
			maxBytes: 0,
			keep:     []string{"b"},
			evict:    []string{"a"},
		},
		{
			name:     "empty",
			maxBytes: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			keep, evict := BySize(tt.items, tt.maxBytes)
			if !equal(names(keep), tt.keep...) {
				t.Errorf("keep = %v, want %v", names(keep), tt.keep)
			}
			if !equal(names(evict), tt.evict...) {
				t.Errorf("evict = %v, want %v", names(evict), tt.evict)
			}
		})
	}
}

func TestByAge(t *testing.T) {
	t.Parallel()

	items := []Item{
		{Name: "ancient", Time: day(1)},
		{Name: "boundary", Time: day(10)},
		{Name: "fresh", Time: day(20)},
	}
	keep, evict := ByAge(items, day(10))

	if !equal(names(evict), "ancient") {
		t.Errorf("evict = %v, want [ancient]", names(evict))
	}
	// An entry exactly at the cutoff is not "older than" it.
	if !equal(names(keep), "boundary", "fresh") {
		t.Errorf("keep = %v, want [boundary fresh]", names(keep))
	}
}
