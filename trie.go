package ucptrie

// Trie is the immutable, compacted code-point trie: a multi-stage index
// into a shared data array, ported from ICU's UCPTrie (ucptrie.h). Its
// zero value is not usable; construct one via Builder.BuildImmutable or
// FromBinary.
//
// A Trie never mutates after construction, so any number of goroutines may
// call its methods concurrently.
type Trie struct {
	kind  Kind
	width ValueWidth

	index []uint16
	data  valueArray

	index3NullOffset int32 // noIndex3NullOffset if there is no null index-3 block
	dataNullOffset   int32 // noDataNullOffset if there is no null data block

	highStart int32
	highValue uint32
	errorValue uint32

	// ascii mirrors Get(0)..Get(0x7F) for the unchecked AsciiGet fast
	// path; populated once at construction time.
	ascii [0x80]uint32
}

// Kind reports whether t is a Fast or Small trie.
func (t *Trie) Kind() Kind { return t.kind }

// ValueWidth reports the storage width of t's data array.
func (t *Trie) ValueWidth() ValueWidth { return t.width }

func (t *Trie) dataLength() int32 { return t.data.Len() }

// fastIndex computes the data index for a code point at or below fastMax,
// which is 0xFFFF for Fast tries and 0xFFF for Small tries.
func (t *Trie) fastIndex(cp rune) int32 {
	return int32(t.index[int32(cp)>>fastShift]) + (int32(cp) & fastDataMask)
}

// internalSmallIndex computes the data index for a code point in
// [fastMax+1, highStart), via the multi-stage index-1/index-2/index-3
// tables. This is the heart of the ported ICU lookup algorithm: one shift
// and one load to find the index-3 block, then either a direct 16-bit
// lookup or an 18-bit packed lookup, then one final load into data.
func (t *Trie) internalSmallIndex(cp rune) int32 {
	c := int32(cp)
	i1 := c >> shift1

	if t.kind == Fast {
		i1 += bmpIndexLength - omittedBmpIndex1Length
	} else {
		i1 += smallIndexLength
	}

	i3Block := int32(t.index[int32(t.index[i1])+((c>>shift2)&index2Mask)])
	i3 := (c >> shift3) & index3Mask

	var dataBlock int32
	if i3Block&0x8000 == 0 {
		// Plain 16-bit indexes.
		dataBlock = int32(t.index[i3Block+i3])
	} else {
		// 18-bit indexes, packed in groups of 9 entries encoding 8
		// data-block offsets plus a shared high-bits word. The 0x8000
		// bit just flagged this; it is not part of the offset.
		b := (i3Block & 0x7FFF) + (i3 &^ 7) + (i3 >> 3)
		k := i3 & 7

		dataBlock = (int32(t.index[b]) << (2 + 2*k)) & 0x30000
		dataBlock |= int32(t.index[b+1+k])
	}

	return dataBlock + (c & smallDataMask)
}

// smallIndex computes the data index for any code point above fastMax,
// including the highStart shortcut.
func (t *Trie) smallIndex(cp rune) int32 {
	if int32(cp) >= t.highStart {
		return t.dataLength() - highValueNegDataOffset
	}
	return t.internalSmallIndex(cp)
}

// codePointIndex computes the data index for any code point, including the
// out-of-Unicode-range case.
func (t *Trie) codePointIndex(cp rune) int32 {
	fastMax := t.kind.fastLimit() - 1

	if cp < 0 || cp > MaxCodePoint {
		return t.dataLength() - errorValueNegDataOffset
	}
	if int32(cp) <= fastMax {
		return t.fastIndex(cp)
	}
	return t.smallIndex(cp)
}

func (t *Trie) valueAt(index int32) uint32 {
	return t.width.mask(t.data.Get(index))
}

// Get returns the value mapped to cp, or the trie's error value if cp is
// outside [0, 0x10FFFF].
func (t *Trie) Get(cp rune) uint32 {
	return t.valueAt(t.codePointIndex(cp))
}

// AsciiGet is an unchecked fast path for cp in [0, 0x7F]. Behavior is
// undefined for cp outside that range.
func (t *Trie) AsciiGet(cp rune) uint32 {
	return t.ascii[cp]
}

// BmpGet is an unchecked fast path for cp in [0, 0xFFFF], valid only on Fast
// tries. It panics on a Small trie; behavior is undefined for cp outside
// that range.
func (t *Trie) BmpGet(cp rune) uint32 {
	if t.kind != Fast {
		panic("ucptrie: BmpGet called on a Small trie")
	}
	return t.valueAt(t.fastIndex(cp))
}

// SuppGet is an unchecked fast path for cp in [0x10000, 0x10FFFF], valid
// only on Fast tries. It panics on a Small trie; behavior is undefined for
// cp outside that range.
func (t *Trie) SuppGet(cp rune) uint32 {
	if t.kind != Fast {
		panic("ucptrie: SuppGet called on a Small trie")
	}
	return t.valueAt(t.smallIndex(cp))
}

// StringCursor returns a bidirectional UTF-16 cursor over s bound to t,
// starting at the given code-unit index. See StringCursor for semantics.
func (t *Trie) StringCursor(s []uint16, index int) *StringCursor {
	return newStringCursor(t, s, index)
}

var _ CodePointMap = (*Trie)(nil)
