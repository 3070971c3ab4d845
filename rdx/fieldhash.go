// Package rdx provides the generic value model, field hashing, and
// object-id scheme that command arguments and results are built on top of.
package rdx

import "sync"

// FieldId is a stable, position-independent key into an ArgMap. It is the
// FNV-1a hash of a field's UTF-8 name.
type FieldId uint32

const fnvOffsetBasis = 2166136261
const fnvPrime = 16777619

// FieldHash computes the FNV-1a 32-bit hash of name, matching the
// reference vectors in spec.md §4.1 exactly (e.g. FieldHash("") ==
// 2166136261, FieldHash("id") == 926444256).
//
// Go has no compile-time constant evaluation over arbitrary functions, so
// per spec.md §4.1 ("implementations lacking compile-time evaluation must
// memoize per-literal at first use") repeated calls with the same literal
// are served from a cache instead of being recomputed.
func FieldHash(name string) FieldId {
	if cached, ok := fieldHashCache.Load(name); ok {
		return cached.(FieldId)
	}
	hash := uint32(fnvOffsetBasis)
	for i := 0; i < len(name); i++ {
		// The original hashes over a signed char*, so a byte >= 0x80
		// sign-extends before the XOR. int8->int32->uint32 reproduces
		// that promotion in Go.
		hash ^= uint32(int32(int8(name[i])))
		hash *= fnvPrime
	}
	id := FieldId(hash)
	fieldHashCache.Store(name, id)
	return id
}

var fieldHashCache sync.Map
