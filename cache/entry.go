package cache

import (
	"strconv"
	"strings"
	"time"
)

// Entry identifies one cached computation result: the hash of its logical
// name plus the time the computation was requested. The timestamp records
// request time, not completion time.
type Entry struct {
	Hash uint64
	Time time.Time
}

// sep separates the filename fields. The hash is rendered as an unsigned
// decimal, so it can never introduce a spurious separator of its own.
const sep = "-"

// Filename encodes the entry as its on-disk name:
//
//	<hash>-<year>-<month>-<day>-<nanos-of-day>
//
// The filename is the only persisted metadata; there is no sidecar file.
// Times are encoded in UTC so the round trip is stable across environments.
func (e Entry) Filename() string {
	t := e.Time.UTC()
	y, m, d := t.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return strings.Join([]string{
		strconv.FormatUint(e.Hash, 10),
		strconv.Itoa(y),
		strconv.Itoa(int(m)),
		strconv.Itoa(d),
		strconv.FormatInt(t.Sub(midnight).Nanoseconds(), 10),
	}, sep)
}

// ParseEntry decodes a filename produced by Filename. A name that does not
// split into exactly five integer fields is not an entry: it yields ok=false
// and callers skip it. Foreign files in a store directory are therefore
// ignored, never surfaced as errors.
func ParseEntry(name string) (Entry, bool) {
	fields := strings.Split(name, sep)
	if len(fields) != 5 {
		return Entry{}, false
	}
	hash, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return Entry{}, false
	}
	var n [4]int64
	for i, f := range fields[1:] {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return Entry{}, false
		}
		n[i] = v
	}
	day := time.Date(int(n[0]), time.Month(n[1]), int(n[2]), 0, 0, 0, 0, time.UTC)
	return Entry{Hash: hash, Time: day.Add(time.Duration(n[3]))}, true
}

// matches reports whether two filenames name the same logical artifact:
// their hash fields (the segment before the first separator) are equal.
// Timestamps never affect matching. Whole segments are compared so a hash
// that is a decimal prefix of another (12 vs 123) cannot match.
func matches(a, b string) bool {
	ha, _, _ := strings.Cut(a, sep)
	hb, _, _ := strings.Cut(b, sep)
	return ha == hb
}
