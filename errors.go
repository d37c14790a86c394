package ucptrie

import "errors"

// Sentinel errors for the module's failure categories: out-of-range
// mutation, malformed binary input, structural limits exceeded during
// compaction, and exhaustion of the builder's data array. Mutation and serialization failures are reported this way;
// lookups never fail, out-of-range code points and malformed surrogates
// simply resolve to the map's error value.
var (
	// ErrOutOfRange is returned when a code point or range passed to a
	// Builder mutator falls outside [0, 0x10FFFF].
	ErrOutOfRange = errors.New("ucptrie: code point out of range")

	// ErrInvalidBinary is returned by FromBinary for a malformed
	// signature, non-zero reserved option bits, a kind/width mismatch
	// against the caller's expectation, or a truncated payload.
	ErrInvalidBinary = errors.New("ucptrie: invalid binary trie")

	// ErrStructuralLimit is returned by BuildImmutable when the
	// compacted index or data cannot fit within the format's structural
	// limits.
	ErrStructuralLimit = errors.New("ucptrie: structural limit exceeded during compaction")

	// ErrAllocationExhausted is returned by Set/SetRange when the
	// builder's flat data array would have to grow past its absolute
	// ceiling.
	ErrAllocationExhausted = errors.New("ucptrie: builder data array exhausted")
)
