package ucptrie

import "fmt"

// ValueFilter transforms a raw trie value before it is compared for range
// discovery or surrogate handling. It must be pure: two equal inputs always
// produce equal outputs. A nil filter is the identity function.
type ValueFilter func(value uint32) uint32

func applyFilter(filter ValueFilter, value uint32) uint32 {
	if filter == nil {
		return value
	}
	return filter(value)
}

// RangeOption controls how GetRange treats the surrogate code point block
// [U+D800, U+DFFF] when it overlaps a discovered range.
type RangeOption uint8

const (
	// RangeNormal performs no surrogate-specific adjustment: ranges are
	// reported exactly as the underlying values dictate.
	RangeNormal RangeOption = iota

	// RangeFixedLeadSurrogates forces the lead-surrogate block
	// [U+D800, U+DBFF] to be reported with surrogateValue whenever its
	// filtered trie value differs from surrogateValue, splitting or
	// merging ranges around it as needed.
	RangeFixedLeadSurrogates

	// RangeFixedAllSurrogates does the same for the entire surrogate
	// block [U+D800, U+DFFF].
	RangeFixedAllSurrogates
)

// Range is a half-open-free (inclusive) interval [Start, End] over which a
// CodePointMap returns a single Value.
type Range struct {
	Start rune
	End   rune
	Value uint32
}

// String renders r as "U+XXXX..U+YYYY -> value", or "U+XXXX -> value" for a
// single-code-point range.
func (r Range) String() string {
	if r.Start == r.End {
		return fmt.Sprintf("U+%04X -> %d", r.Start, r.Value)
	}
	return fmt.Sprintf("U+%04X..U+%04X -> %d", r.Start, r.End, r.Value)
}

// CodePointMap is the contract shared by Builder and Trie: point lookup,
// same-value range discovery, and a UTF-16 string cursor.
type CodePointMap interface {
	// Get returns the value mapped to cp. Code points outside
	// [0, 0x10FFFF] return the map's error value.
	Get(cp rune) uint32

	// GetRange returns the largest range [start, end] over which every
	// code point maps to the same value after filter is applied, or
	// false if start is out of Unicode range. See RangeOption for
	// surrogate handling.
	GetRange(start rune, filter ValueFilter, option RangeOption, surrogateValue uint32) (Range, bool)

	// StringCursor returns a bidirectional cursor over the UTF-16 code
	// units in s, starting at the given code-unit index, yielding
	// (codePoint, value) pairs bound to this map.
	StringCursor(s []uint16, index int) *StringCursor
}
