package ucptrie

// compact.go turns a Builder's flat, per-code-point data into the
// compacted multi-stage structure a Trie reads, following ICU's UCPTrie
// compaction: mask, find the real highStart, collapse uniform blocks,
// write data, compact the index, finalize. Those steps are not separate
// passes here; data and index blocks are written once, with identical
// content reused as it is produced, which has the same effect as the
// separate dedup and write passes without a second pass over the array.
//
// One deliberate simplification from ICU's own compactor: block reuse
// below is an unbounded content-addressed map rather than a bounded
// 32-entry LRU. This changes how much duplicate content survives in the
// output (and therefore the output's size) but not any value a finished
// Trie reports, see DESIGN.md.

// blockCompactor accumulates uint32 data-block content with exact-content
// reuse.
type blockCompactor struct {
	values []uint32
	seen   map[string]int32
}

func newBlockCompactor() *blockCompactor {
	return &blockCompactor{seen: make(map[string]int32)}
}

func uint32Key(values []uint32) string {
	buf := make([]byte, 4*len(values))
	for i, v := range values {
		buf[4*i] = byte(v >> 24)
		buf[4*i+1] = byte(v >> 16)
		buf[4*i+2] = byte(v >> 8)
		buf[4*i+3] = byte(v)
	}
	return string(buf)
}

func (c *blockCompactor) write(values []uint32) int32 {
	key := uint32Key(values)
	if off, ok := c.seen[key]; ok {
		return off
	}
	off := int32(len(c.values))
	c.values = append(c.values, values...)
	c.seen[key] = off
	return off
}

// indexCompactor is the uint16 equivalent of blockCompactor, used for both
// index-3 and index-2 blocks.
type indexCompactor struct {
	entries []uint16
	seen    map[string]int32
}

func newIndexCompactor() *indexCompactor {
	return &indexCompactor{seen: make(map[string]int32)}
}

func uint16Key(values []uint16) string {
	buf := make([]byte, 2*len(values))
	for i, v := range values {
		buf[2*i] = byte(v >> 8)
		buf[2*i+1] = byte(v)
	}
	return string(buf)
}

func (c *indexCompactor) write(values []uint16) int32 {
	key := uint16Key(values)
	if off, ok := c.seen[key]; ok {
		return off
	}
	off := int32(len(c.entries))
	c.entries = append(c.entries, values...)
	c.seen[key] = off
	return off
}

func (c *indexCompactor) reserve(n int32) int32 {
	off := int32(len(c.entries))
	c.entries = append(c.entries, make([]uint16, n)...)
	return off
}

// shrinkHighStart undoes unnecessary growth: highStart only ever grows
// during Set/SetRange, rounded up to a whole index-3-block
// (cpPerIndex2Entry) boundary; this walks it back down while the trailing
// whole blocks all read as highValue, down to the bottom of the indexed
// (non-direct) range.
func (b *Builder) shrinkHighStart(fastLimit int32, highValue uint32, width ValueWidth) int32 {
	real := b.highStart
	for real > fastLimit {
		blockStart := real - cpPerIndex2Entry
		if blockStart < fastLimit {
			break
		}
		if !b.rangeIsUniform(blockStart, real, highValue, width) {
			break
		}
		real = blockStart
	}
	return real
}

func (b *Builder) rangeIsUniform(start, end int32, value uint32, width ValueWidth) bool {
	for cp := start; cp < end; cp += smallDataBlockLength {
		info := b.blockInfo(cp >> shift3)
		if info.allSame {
			if width.mask(info.value) != value {
				return false
			}
			continue
		}
		for i := int32(0); i < smallDataBlockLength; i++ {
			if width.mask(b.data[info.offset+uint32(i)]) != value {
				return false
			}
		}
	}
	return true
}

// blockValue reads a single code point's value as it should appear in the
// compacted trie: the builder's materialized value below realHighStart,
// highValue at or beyond it.
func (b *Builder) blockValue(cp, realHighStart int32, highValue uint32, width ValueWidth) uint32 {
	if cp >= realHighStart {
		return highValue
	}
	return width.mask(b.Get(rune(cp)))
}

// pack18 encodes one 32-entry index-3 block whose data offsets may exceed
// 16 bits, following ICU's 18-bit index-3 packing: groups of 8 offsets
// share one 16-bit header carrying each offset's top 2 bits, 2 bits per
// entry, at bit position 14-2k for group-local index k.
func pack18(offsets []int32) []uint16 {
	entries := make([]uint16, index3_18BitBlockLength)
	groups := index3BlockLength / 8
	for g := int32(0); g < groups; g++ {
		var header uint16
		for k := int32(0); k < 8; k++ {
			off := offsets[g*8+k]
			high := uint16((off >> 16) & 3)
			header |= high << uint(14-2*k)
			entries[1+g*9+k] = uint16(off & 0xFFFF)
		}
		entries[g*9] = header
	}
	return entries
}

// BuildImmutable compacts b's current contents, masked to width, into a
// new immutable Trie of the requested kind. b itself is left usable for
// further reads (Get/GetRange) but rejects further mutation.
func (b *Builder) BuildImmutable(kind Kind, width ValueWidth) (*Trie, error) {
	b.checkNotBuilt()

	fastLimit := kind.fastLimit()
	highValue := width.mask(b.Get(MaxCodePoint))
	errorValue := width.mask(b.errorValue)

	realHighStart := b.shrinkHighStart(fastLimit, highValue, width)

	data := newBlockCompactor()
	idx := newIndexCompactor()

	directLength := fastLimit >> fastShift
	directOffset := idx.reserve(directLength)
	if directOffset != 0 {
		panic("ucptrie: direct index table must start at offset 0")
	}

	for blk := int32(0); blk < directLength; blk++ {
		cpStart := blk << fastShift
		values := make([]uint32, fastDataBlockLength)
		for i := int32(0); i < fastDataBlockLength; i++ {
			values[i] = b.blockValue(cpStart+i, realHighStart, highValue, width)
		}
		off := data.write(values)
		if off > 0xFFFF {
			return nil, ErrStructuralLimit
		}
		idx.entries[blk] = uint16(off)
	}

	if realHighStart > fastLimit {
		i1Start := fastLimit >> shift1
		maxI1 := (realHighStart - 1) >> shift1
		numIndex1 := maxI1 - i1Start + 1

		index1Offset := idx.reserve(numIndex1)
		if index1Offset != directLength {
			panic("ucptrie: index-1 table must immediately follow the direct table")
		}

		buildIndex3Block := func(blockCpStart int32) (uint16, error) {
			offsets := make([]int32, index3BlockLength)
			maxOffset := int32(0)
			for i := int32(0); i < index3BlockLength; i++ {
				cpStart := blockCpStart + i*smallDataBlockLength
				values := make([]uint32, smallDataBlockLength)
				for j := int32(0); j < smallDataBlockLength; j++ {
					values[j] = b.blockValue(cpStart+j, realHighStart, highValue, width)
				}
				off := data.write(values)
				offsets[i] = off
				if off > maxOffset {
					maxOffset = off
				}
			}

			if maxOffset+smallDataBlockLength > maxDataLength {
				return 0, ErrStructuralLimit
			}

			if maxOffset <= 0xFFFF {
				entries := make([]uint16, index3BlockLength)
				for i, off := range offsets {
					entries[i] = uint16(off)
				}
				ptr := idx.write(entries)
				if ptr > noIndex3NullOffset {
					return 0, ErrStructuralLimit
				}
				return uint16(ptr), nil
			}

			ptr := idx.write(pack18(offsets))
			if ptr > noIndex3NullOffset {
				return 0, ErrStructuralLimit
			}
			return uint16(ptr) | 0x8000, nil
		}

		for li1 := int32(0); li1 < numIndex1; li1++ {
			blockIndexBase := li1 + i1Start
			i1CpStart := blockIndexBase << shift1

			index3Ptrs := make([]uint16, index2BlockLength)
			for sub := int32(0); sub < index2BlockLength; sub++ {
				blockCpStart := i1CpStart + sub*cpPerIndex2Entry
				ptr, err := buildIndex3Block(blockCpStart)
				if err != nil {
					return nil, err
				}
				index3Ptrs[sub] = ptr
			}

			ptr2 := idx.write(index3Ptrs)
			if ptr2 > 0xFFFF {
				return nil, ErrStructuralLimit
			}
			idx.entries[index1Offset+li1] = uint16(ptr2)
		}
	}

	if int32(len(idx.entries)) > maxIndexLength {
		return nil, ErrStructuralLimit
	}
	if int32(len(data.values))+2 > maxBuilderDataLength {
		return nil, ErrStructuralLimit
	}

	finalData := append(append([]uint32(nil), data.values...), highValue, errorValue)

	var arr valueArray
	switch width {
	case Width8:
		out := make(data8, len(finalData))
		for i, v := range finalData {
			out[i] = uint8(v)
		}
		arr = out
	case Width16:
		out := make(data16, len(finalData))
		for i, v := range finalData {
			out[i] = uint16(v)
		}
		arr = out
	default:
		arr = data32(finalData)
	}

	t := &Trie{
		kind:             kind,
		width:            width,
		index:            idx.entries,
		data:             arr,
		index3NullOffset: noIndex3NullOffset,
		dataNullOffset:   noDataNullOffset,
		highStart:        realHighStart,
		highValue:        highValue,
		errorValue:       errorValue,
	}
	for cp := rune(0); cp < 0x80; cp++ {
		t.ascii[cp] = t.Get(cp)
	}

	b.built = true
	return t, nil
}
