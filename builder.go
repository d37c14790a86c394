package ucptrie

// numSmallBlocks is the number of 16-code-point blocks spanning the entire
// Unicode range: 0x110000 / smallDataBlockLength.
const numSmallBlocks = int32(0x110000) / 16

type builderBlockFlag uint8

const (
	// blockAllSame is the zero value so newly allocated flag arrays
	// start every block uninitialized/ALL_SAME.
	blockAllSame builderBlockFlag = iota
	blockMixed
	// blockSameAs is never set: neither Set/SetRange nor the compactor
	// (compact.go) uses it, and blockInfo panics if it meets one.
	blockSameAs
)

// Builder is the mutable intermediate representation of a UCPTrie under
// construction: it accepts point and range assignments, grows an expandable
// flat data array on demand, and is finalized exactly once via
// BuildImmutable into a compacted, immutable Trie.
//
// A Builder is single-writer: no method is safe to call concurrently with
// another call on the same Builder. Use Clone to fork two builders that
// may then diverge independently.
type Builder struct {
	initialValue uint32
	errorValue   uint32

	// index[i] and flags[i] describe the 16-cp small block starting at
	// code point i*16. When flags[i] is blockAllSame, index[i] holds the
	// block's uniform value directly. When flags[i] is blockMixed,
	// index[i] holds an offset into data.
	index []uint32
	flags []builderBlockFlag

	data       []uint32
	dataLength int32

	// highStart monotonically advances as assignments are made; code
	// points at or above it have never been touched and still read as
	// initialValue.
	highStart int32

	built bool
}

// NewBuilder constructs a Builder whose every code point initially maps to
// initialValue. errorValue is the value Get/GetRange return for code
// points outside [0, 0x10FFFF].
func NewBuilder(initialValue, errorValue uint32) *Builder {
	index := make([]uint32, numSmallBlocks)
	for i := range index {
		index[i] = initialValue
	}

	return &Builder{
		initialValue: initialValue,
		errorValue:   errorValue,
		index:        index,
		flags:        make([]builderBlockFlag, numSmallBlocks),
		data:         make([]uint32, 0, initialBuilderDataLength),
	}
}

// Clone deep-copies b so the two builders may be mutated independently.
func (b *Builder) Clone() *Builder {
	clone := &Builder{
		initialValue: b.initialValue,
		errorValue:   b.errorValue,
		highStart:    b.highStart,
		dataLength:   b.dataLength,
	}
	clone.index = append([]uint32(nil), b.index...)
	clone.flags = append([]builderBlockFlag(nil), b.flags...)
	clone.data = append([]uint32(nil), b.data...)
	return clone
}

func (b *Builder) checkNotBuilt() {
	if b.built {
		panic("ucptrie: builder used after BuildImmutable")
	}
}

type builderBlockInfo struct {
	allSame bool
	value   uint32 // valid when allSame
	offset  uint32 // valid when !allSame
}

func (b *Builder) blockInfo(blockIndex int32) builderBlockInfo {
	switch b.flags[blockIndex] {
	case blockAllSame:
		return builderBlockInfo{allSame: true, value: b.index[blockIndex]}
	case blockMixed:
		return builderBlockInfo{allSame: false, offset: b.index[blockIndex]}
	default:
		panic("ucptrie: unexpected SAME_AS block flag outside compaction")
	}
}

func (b *Builder) valueAtBlock(info builderBlockInfo, pos int32) uint32 {
	if info.allSame {
		return info.value
	}
	return b.data[info.offset+uint32(pos)]
}

func sameBlockContent(a, c builderBlockInfo) bool {
	if a.allSame != c.allSame {
		return false
	}
	if a.allSame {
		return a.value == c.value
	}
	return a.offset == c.offset
}

// ensureCapacity grows b.data, following ICU's builder growth tiers (16 Ki,
// then 128 Ki, then the absolute 0x110000 ceiling), and returns
// ErrAllocationExhausted if needed exceeds that ceiling.
func (b *Builder) ensureCapacity(needed int32) error {
	if needed > maxBuilderDataLength {
		return ErrAllocationExhausted
	}
	if int32(len(b.data)) >= needed {
		return nil
	}

	newCap := int32(len(b.data))
	if newCap == 0 {
		newCap = initialBuilderDataLength
	}
	for newCap < needed {
		switch {
		case newCap < mediumBuilderDataLength:
			newCap = mediumBuilderDataLength
		default:
			newCap = maxBuilderDataLength
		}
	}

	grown := make([]uint32, newCap)
	copy(grown, b.data)
	b.data = grown
	return nil
}

func (b *Builder) allocDataBlock(length int32) (uint32, error) {
	needed := b.dataLength + length
	if err := b.ensureCapacity(needed); err != nil {
		return 0, err
	}
	offset := b.dataLength
	b.dataLength = needed
	return uint32(offset), nil
}

// materialize ensures blockIndex is stored as blockMixed with a writable
// data sub-block, allocating and pre-filling one from the prior uniform
// value if it was still blockAllSame.
func (b *Builder) materialize(blockIndex int32) (uint32, error) {
	if b.flags[blockIndex] == blockMixed {
		return b.index[blockIndex], nil
	}

	value := b.index[blockIndex]
	offset, err := b.allocDataBlock(smallDataBlockLength)
	if err != nil {
		return 0, err
	}
	for i := int32(0); i < smallDataBlockLength; i++ {
		b.data[offset+uint32(i)] = value
	}

	b.flags[blockIndex] = blockMixed
	b.index[blockIndex] = offset
	return offset, nil
}

func (b *Builder) growHighStart(cp int32) {
	target := roundUpToMultiple(cp+1, cpPerIndex2Entry)
	if target > b.highStart {
		b.highStart = target
	}
}

func roundUpToMultiple(value, multiple int32) int32 {
	return ((value + multiple - 1) / multiple) * multiple
}

// Set maps cp to value. cp must be in [0, 0x10FFFF].
func (b *Builder) Set(cp rune, value uint32) error {
	b.checkNotBuilt()
	if cp < 0 || cp > MaxCodePoint {
		return ErrOutOfRange
	}

	c := int32(cp)
	b.growHighStart(c)

	blockIndex := c >> shift3
	offset, err := b.materialize(blockIndex)
	if err != nil {
		return err
	}
	b.data[offset+uint32(c&smallDataMask)] = value
	return nil
}

// SetRange maps every code point in [start, end] to value. 0 <= start <=
// end <= 0x10FFFF is required.
func (b *Builder) SetRange(start, end rune, value uint32) error {
	b.checkNotBuilt()
	if start < 0 || end > MaxCodePoint || start > end {
		return ErrOutOfRange
	}

	b.growHighStart(int32(end))

	startBlock := int32(start) >> shift3
	startOffsetInBlock := int32(start) & smallDataMask
	endBlock := int32(end) >> shift3
	endOffsetInBlock := int32(end) & smallDataMask

	if startBlock == endBlock {
		offset, err := b.materialize(startBlock)
		if err != nil {
			return err
		}
		for i := startOffsetInBlock; i <= endOffsetInBlock; i++ {
			b.data[offset+uint32(i)] = value
		}
		return nil
	}

	if startOffsetInBlock != 0 {
		offset, err := b.materialize(startBlock)
		if err != nil {
			return err
		}
		for i := startOffsetInBlock; i < smallDataBlockLength; i++ {
			b.data[offset+uint32(i)] = value
		}
		startBlock++
	}

	if endOffsetInBlock != smallDataBlockLength-1 {
		offset, err := b.materialize(endBlock)
		if err != nil {
			return err
		}
		for i := int32(0); i <= endOffsetInBlock; i++ {
			b.data[offset+uint32(i)] = value
		}
		endBlock--
	}

	for i := startBlock; i <= endBlock; i++ {
		b.flags[i] = blockAllSame
		b.index[i] = value
	}
	return nil
}

// Get reads cp as if the builder were finalized now: it returns the
// builder's error value for out-of-range code points.
func (b *Builder) Get(cp rune) uint32 {
	if cp < 0 || cp > MaxCodePoint {
		return b.errorValue
	}

	c := int32(cp)
	if c >= b.highStart {
		return b.initialValue
	}

	return b.valueAtBlock(b.blockInfo(c>>shift3), c&smallDataMask)
}

// getRangeFiltered is the Builder-side counterpart of Trie.getRangeFiltered,
// walking 16-cp builder blocks instead of the compacted multi-stage index.
func (b *Builder) getRangeFiltered(start rune, filter ValueFilter) (rune, uint32, bool) {
	if start < 0 || start > MaxCodePoint {
		return 0, 0, false
	}

	c := int32(start)
	if c >= b.highStart {
		return MaxCodePoint, applyFilter(filter, b.initialValue), true
	}

	blockStart := c &^ smallDataMask
	info := b.blockInfo(blockStart >> shift3)
	value := applyFilter(filter, b.valueAtBlock(info, c-blockStart))

	prevBlockStart := blockStart
	prevInfo := info

	c++
	for c < b.highStart {
		curBlockStart := c &^ smallDataMask

		var curInfo builderBlockInfo
		if curBlockStart != prevBlockStart {
			curInfo = b.blockInfo(curBlockStart >> shift3)
			if sameBlockContent(curInfo, prevInfo) {
				prevBlockStart = curBlockStart
				prevInfo = curInfo
				c = curBlockStart + smallDataBlockLength
				continue
			}
			prevBlockStart = curBlockStart
			prevInfo = curInfo
		} else {
			curInfo = prevInfo
		}

		v := applyFilter(filter, b.valueAtBlock(curInfo, c-curBlockStart))
		if v != value {
			return rune(c - 1), value, true
		}
		c++
	}

	if applyFilter(filter, b.initialValue) == value {
		return MaxCodePoint, value, true
	}
	return rune(b.highStart - 1), value, true
}

// GetRange implements the CodePointMap contract against the builder's
// current (unfinalized) state.
func (b *Builder) GetRange(start rune, filter ValueFilter, option RangeOption, surrogateValue uint32) (Range, bool) {
	return applySurrogatePolicy(b.getRangeFiltered, start, filter, option, surrogateValue)
}

// StringCursor returns a bidirectional UTF-16 cursor over s bound to b, as
// if the builder were finalized now.
func (b *Builder) StringCursor(s []uint16, index int) *StringCursor {
	return newStringCursor(b, s, index)
}

// FromMap populates a fresh Builder by replaying every range src produces.
// The new builder's initial value is src.Get(0x10FFFF), so its highStart
// can shrink immediately rather than only after a later BuildImmutable;
// its error value is src.Get(-1).
func FromMap(src CodePointMap) *Builder {
	initialValue := src.Get(MaxCodePoint)
	b := NewBuilder(initialValue, src.Get(-1))

	var start rune
	for start <= MaxCodePoint {
		r, ok := src.GetRange(start, nil, RangeNormal, 0)
		if !ok {
			break
		}
		if r.Value != initialValue {
			// SetRange cannot fail here: r is itself a valid sub-range
			// of [0, 0x10FFFF].
			_ = b.SetRange(r.Start, r.End, r.Value)
		}
		if r.End >= MaxCodePoint {
			break
		}
		start = r.End + 1
	}

	return b
}

// FromTrie is a thin wrapper over FromMap letting an immutable Trie be
// reopened for editing: a Trie is itself read-only, but it can be used to
// reconstruct a Builder that resumes mutation.
func FromTrie(t *Trie) *Builder {
	return FromMap(t)
}

var _ CodePointMap = (*Builder)(nil)
