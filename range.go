package ucptrie

// Lead- and all-surrogates block boundaries, per the Unicode surrogate
// range U+D800..U+DFFF.
const (
	surrogateStart   rune = 0xD800
	surrogateLeadEnd rune = 0xDBFF
	surrogateAllEnd  rune = 0xDFFF
)

// blockSpan describes the data-array window one fixed-size trie block
// (a 64-cp fast block or a 16-cp small block) resolves to.
type blockSpan struct {
	dataOffset int32
	length     int32
}

// blockAt returns the block covering cp. cp must be below t.highStart.
func (t *Trie) blockAt(cp rune) blockSpan {
	c := int32(cp)
	fastMax := t.kind.fastLimit() - 1

	if c <= fastMax {
		return blockSpan{dataOffset: int32(t.index[c>>fastShift]), length: fastDataBlockLength}
	}

	blockStart := c &^ smallDataMask
	return blockSpan{dataOffset: t.internalSmallIndex(rune(blockStart)), length: smallDataBlockLength}
}

// getRangeFiltered finds the largest same-(filtered)-value run starting at
// start, by walking whole index blocks rather than calling Get per code
// point. Consecutive
// blocks that resolve to the identical data offset as the block just fully
// matched are skipped without rescanning, since identical content can only
// occur where the run has already been confirmed to cover the whole
// previous block.
func (t *Trie) getRangeFiltered(start rune, filter ValueFilter) (rune, uint32, bool) {
	if start < 0 || start > MaxCodePoint {
		return 0, 0, false
	}

	c := int32(start)
	if c >= t.highStart {
		return MaxCodePoint, applyFilter(filter, t.highValue), true
	}

	span := t.blockAt(rune(c))
	blockStart := c &^ (span.length - 1)
	value := applyFilter(filter, t.valueAt(span.dataOffset+(c-blockStart)))

	prevBlockStart := blockStart
	prevDataOffset := span.dataOffset
	if c != blockStart {
		// The first block was only checked from start onward, so it does
		// not vouch for an identical following block.
		prevDataOffset = -1
	}

	c++
	for c < t.highStart {
		curSpan := t.blockAt(rune(c))
		curBlockStart := c &^ (curSpan.length - 1)

		if curBlockStart != prevBlockStart {
			if curSpan.dataOffset == prevDataOffset {
				// Byte-identical to a block we already know matches
				// value throughout: skip straight past it.
				prevBlockStart = curBlockStart
				c = curBlockStart + curSpan.length
				continue
			}
			prevBlockStart = curBlockStart
			prevDataOffset = curSpan.dataOffset
		}

		v := applyFilter(filter, t.valueAt(curSpan.dataOffset+(c-curBlockStart)))
		if v != value {
			return rune(c - 1), value, true
		}
		c++
	}

	if applyFilter(filter, t.highValue) == value {
		return MaxCodePoint, value, true
	}
	return rune(t.highStart - 1), value, true
}

// GetRange implements the CodePointMap contract, including the
// surrogate-block override described by option.
func (t *Trie) GetRange(start rune, filter ValueFilter, option RangeOption, surrogateValue uint32) (Range, bool) {
	return applySurrogatePolicy(t.getRangeFiltered, start, filter, option, surrogateValue)
}

// surrogateEndFor returns the inclusive end of the overridden surrogate
// block for option, or -1 if option performs no override.
func surrogateEndFor(option RangeOption) rune {
	switch option {
	case RangeFixedLeadSurrogates:
		return surrogateLeadEnd
	case RangeFixedAllSurrogates:
		return surrogateAllEnd
	default:
		return -1
	}
}

// rawRangeFunc is the shape shared by Trie.getRangeFiltered and
// Builder.getRangeFiltered: the surrogate-block override logic below is
// identical over either backing store, so it is written once against this
// function type instead of duplicated per type.
type rawRangeFunc func(start rune, filter ValueFilter) (end rune, value uint32, ok bool)

// applySurrogatePolicy implements the surrogate RangeOption handling on
// top of a plain (unfiltered-by-surrogates) range function, shared by
// Trie and Builder.
func applySurrogatePolicy(raw rawRangeFunc, start rune, filter ValueFilter, option RangeOption, surrogateValue uint32) (Range, bool) {
	end, value, ok := raw(start, filter)
	if !ok {
		return Range{}, false
	}

	surrEnd := surrogateEndFor(option)
	if surrEnd < 0 {
		return Range{Start: start, End: end, Value: value}, true
	}

	// No overlap between [start, end] and [surrogateStart, surrEnd], and
	// the run does not end right before the block (where it may merge
	// with the overridden surrogates).
	if end < surrogateStart-1 || start > surrEnd {
		return Range{Start: start, End: end, Value: value}, true
	}

	if start < surrogateStart {
		// The run reaches the surrogate block (or ends right before it)
		// using real trie values. If those real values already equal
		// surrogateValue, the override changes nothing as long as the
		// run doesn't end strictly inside the block (it can't, because
		// the override would force it to continue to surrEnd).
		if value == surrogateValue {
			if end >= surrEnd {
				return Range{Start: start, End: end, Value: value}, true
			}
			// Real run ended before surrEnd but the override forces
			// everything up to surrEnd to read as surrogateValue too.
			return extendOverriddenRun(raw, start, surrEnd, value, filter), true
		}

		// Real value differs from the override: the run is truncated
		// at the surrogate boundary.
		return Range{Start: start, End: surrogateStart - 1, Value: value}, true
	}

	// start is inside [surrogateStart, surrEnd]: the override applies
	// from start through at least surrEnd.
	return extendOverriddenRun(raw, start, surrEnd, surrogateValue, filter), true
}

// extendOverriddenRun builds the Range [start, surrEnd] reporting value,
// then probes once past surrEnd to merge with a following real range that
// happens to carry the same (filtered) value.
func extendOverriddenRun(raw rawRangeFunc, start, surrEnd rune, value uint32, filter ValueFilter) Range {
	if surrEnd >= MaxCodePoint {
		return Range{Start: start, End: MaxCodePoint, Value: value}
	}

	nextEnd, nextValue, ok := raw(surrEnd+1, filter)
	if ok && nextValue == value {
		return Range{Start: start, End: nextEnd, Value: value}
	}
	return Range{Start: start, End: surrEnd, Value: value}
}
