// Package hash provides the fast, non-cryptographic hashing used to key
// the decoder's definition-plan cache.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}
