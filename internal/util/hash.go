// Package util contains internal helpers (hashing).
package util

const (
	fnvOffset64 = 1469598103934665603
	fnvPrime64  = 1099511628211
)

// Fnv64a hashes a logical name using 64-bit FNV-1a. The result is a stable,
// opaque identifier for the name, not a checksum of any content; collisions
// are not detected downstream. Rendered as an unsigned decimal it can never
// carry a sign.
func Fnv64a(s string) uint64 {
	h := uint64(fnvOffset64)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= fnvPrime64
	}
	return h
}
