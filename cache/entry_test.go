package cache

import (
	"math"
	"strings"
	"testing"
	"time"
)

func TestEntry_FilenameRoundTrip(t *testing.T) {
	t.Parallel()

	e := Entry{
		Hash: 9876543210123456789,
		Time: time.Date(2026, 8, 26, 13, 37, 42, 987654321, time.UTC),
	}
	got, ok := ParseEntry(e.Filename())
	if !ok {
		t.Fatalf("ParseEntry(%q) not ok", e.Filename())
	}
	if got.Hash != e.Hash || !got.Time.Equal(e.Time) {
		t.Fatalf("round trip: want %+v, got %+v", e, got)
	}
}

// The encoding is UTC-normalized: a zoned timestamp round-trips to the same
// instant.
func TestEntry_FilenameRoundTrip_Zoned(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("plus5", 5*3600)
	e := Entry{Hash: 42, Time: time.Date(2026, 1, 1, 2, 0, 0, 1, loc)}
	got, ok := ParseEntry(e.Filename())
	if !ok {
		t.Fatal("not ok")
	}
	if !got.Time.Equal(e.Time) {
		t.Fatalf("instant changed: want %v, got %v", e.Time, got.Time)
	}
}

// The hash field must never render with a sign, even at the top of the
// uint64 range, or it would introduce a spurious separator.
func TestEntry_HashNeverSigned(t *testing.T) {
	t.Parallel()

	e := Entry{Hash: math.MaxUint64, Time: time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)}
	name := e.Filename()
	if strings.Count(name, sep) != 4 {
		t.Fatalf("want exactly 4 separators in %q", name)
	}
	if _, ok := ParseEntry(name); !ok {
		t.Fatalf("ParseEntry(%q) not ok", name)
	}
}

func TestParseEntry_RejectsForeignNames(t *testing.T) {
	t.Parallel()

	for _, name := range []string{
		"",
		"README",
		"123",                              // too few fields
		"123-2026-8-26",                    // too few fields
		"123-2026-8-26-1-extra",            // too many fields
		"abc-2026-8-26-1",                  // hash not an integer
		"123-2026-aug-26-1",                // month not an integer
		"123-2026-8-26-1.5",                // fractional field
		"123-2026-8-26-",                   // empty field
		"18446744073709551616-2026-8-26-1", // hash overflows uint64
	} {
		if _, ok := ParseEntry(name); ok {
			t.Errorf("ParseEntry(%q) = ok, want not-an-entry", name)
		}
	}
}

func TestMatches_HashEquality(t *testing.T) {
	t.Parallel()

	a := Entry{Hash: 123, Time: time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC)}
	b := Entry{Hash: 123, Time: time.Date(2026, 6, 30, 23, 59, 59, 0, time.UTC)}
	c := Entry{Hash: 124, Time: a.Time}

	if !matches(a.Filename(), b.Filename()) {
		t.Error("same hash, different timestamps: want match")
	}
	if matches(a.Filename(), c.Filename()) {
		t.Error("different hash: want no match")
	}
}

// Hash 12 is a decimal prefix of hash 123; the two must not match.
func TestMatches_DecimalPrefixCorner(t *testing.T) {
	t.Parallel()

	short := Entry{Hash: 12, Time: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	long := Entry{Hash: 123, Time: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	if matches(short.Filename(), long.Filename()) {
		t.Error("hash 12 must not match hash 123")
	}
}
