package ucptrie

// Structural constants fixed by the ICU UCPTrie wire format. Names are
// spelled out rather than following ICU's C macro names, but the values
// and their relationships are identical bit-for-bit; see ucptrie.h in the
// ICU source for the canonical derivation this was ported from.
const (
	// MaxCodePoint is the highest valid Unicode code point, U+10FFFF.
	MaxCodePoint rune = 0x10FFFF

	fastShift int32 = 6

	// Fast-kind BMP lookup uses a 64-code-point data block.
	fastDataBlockLength int32 = 1 << fastShift
	fastDataMask        int32 = fastDataBlockLength - 1

	// Small-kind linear index covers only [0, 0x1000).
	smallLimit       int32 = 0x1000
	smallIndexLength int32 = smallLimit >> fastShift

	// Small data block: 16 code points.
	shift3               int32 = 4
	smallDataBlockLength int32 = 1 << shift3
	smallDataMask        int32 = smallDataBlockLength - 1

	// Index-3 block: spans 512 code points.
	shift2            int32 = 5 + shift3
	shift2Minus3      int32 = shift2 - shift3
	index3BlockLength int32 = 1 << shift2Minus3
	index3Mask        int32 = index3BlockLength - 1

	// Index-2 block: spans 16384 code points.
	shift1            int32 = 5 + shift2
	shift1Minus2      int32 = shift1 - shift2
	index2BlockLength int32 = 1 << shift1Minus2
	index2Mask        int32 = index2BlockLength - 1

	// Number of code points covered by one index-2 *entry* (not block):
	// one index-2 entry addresses one 512-cp index-3 block. highStart is
	// always rounded to a multiple of this.
	cpPerIndex2Entry int32 = 1 << shift2

	// 18-bit index-3 packing: 9 entries encode 8 data-block offsets plus a
	// shared high-bits word.
	index3_18BitBlockLength int32 = 36

	// Length of the BMP index table: 0x10000 >> fastShift.
	bmpIndexLength int32 = 0x10000 >> fastShift

	// Index-1 entries for the BMP are omitted from the serialized form.
	omittedBmpIndex1Length int32 = 0x10000 >> shift1

	// Sentinels marking "no null block".
	noIndex3NullOffset int32 = 0x7FFF
	noDataNullOffset   int32 = 0xFFFFF

	// Offsets (subtracted from dataLength) of the two synthetic trailing
	// data values every trie carries.
	errorValueNegDataOffset int32 = 1
	highValueNegDataOffset  int32 = 2

	// Number of small data blocks making up one fast data block.
	smallDataBlocksPerBMPBlock int32 = fastDataBlockLength / smallDataBlockLength

	// Upper bound on the *compacted* data array length: a data-block
	// offset plus the largest possible block length must still fit the
	// 18-bit index-3 packing scheme.
	maxDataLength int32 = 0x3FFFF + 16

	// Absolute ceiling on the builder's flat, uncompacted data array.
	maxBuilderDataLength int32 = 0x110000

	// Growth tiers for the builder's flat data array.
	initialBuilderDataLength int32 = 16 * 1024
	mediumBuilderDataLength  int32 = 128 * 1024

	// The final compacted index must leave the 15-bit index-3 offset
	// space unambiguous with noIndex3NullOffset.
	maxIndexLength int32 = noIndex3NullOffset + index3BlockLength
)

// Kind selects between UCPTrie's two trie shapes: a Fast trie indexes the
// whole BMP directly, trading index size for speed; a Small trie only
// direct-indexes the first 0x1000 code points, saving space at the cost of
// one more indirection for the rest of the BMP.
type Kind uint8

const (
	// Fast tries use a linear index over 64-cp blocks for the whole BMP.
	Fast Kind = iota
	// Small tries use a linear index only for [0, 0x1000).
	Small
)

func (k Kind) String() string {
	switch k {
	case Fast:
		return "fast"
	case Small:
		return "small"
	default:
		return "unknown"
	}
}

// fastLimit returns the last BMP-fast-indexed code point + 1 for the given
// kind: 0x10000 for Fast, 0x1000 for Small.
func (k Kind) fastLimit() int32 {
	if k == Fast {
		return 0x10000
	}
	return smallLimit
}
