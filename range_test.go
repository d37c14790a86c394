package ucptrie

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetRangeBasicRuns(t *testing.T) {
	b := NewBuilder(0, 0xFFFFFFFF)
	require.NoError(t, b.SetRange(0x41, 0x5A, 1))
	trie, err := b.BuildImmutable(Fast, Width32)
	require.NoError(t, err)

	r, ok := trie.GetRange(0, nil, RangeNormal, 0)
	require.True(t, ok)
	require.Equal(t, Range{Start: 0, End: 0x40, Value: 0}, r)

	r, ok = trie.GetRange(0x41, nil, RangeNormal, 0)
	require.True(t, ok)
	require.Equal(t, Range{Start: 0x41, End: 0x5A, Value: 1}, r)

	r, ok = trie.GetRange(0x5B, nil, RangeNormal, 0)
	require.True(t, ok)
	require.Equal(t, rune(0x5B), r.Start)
	require.Equal(t, uint32(0), r.Value)
	require.Equal(t, MaxCodePoint, r.End)
}

func TestGetRangeOutOfRange(t *testing.T) {
	b := NewBuilder(0, 0xFFFFFFFF)
	trie, err := b.BuildImmutable(Fast, Width32)
	require.NoError(t, err)

	_, ok := trie.GetRange(-1, nil, RangeNormal, 0)
	require.False(t, ok)
	_, ok = trie.GetRange(0x110000, nil, RangeNormal, 0)
	require.False(t, ok)
}

func TestGetRangeSurrogateFixedLead(t *testing.T) {
	b := NewBuilder(0, 0xFFFFFFFF)
	// A real value distinct from the surrogate override spans across the
	// lead-surrogate block.
	require.NoError(t, b.SetRange(0xD000, 0xDBFF, 5))
	trie, err := b.BuildImmutable(Fast, Width32)
	require.NoError(t, err)

	r, ok := trie.GetRange(0xD000, nil, RangeFixedLeadSurrogates, 3)
	require.True(t, ok)
	require.Equal(t, rune(0xD000), r.Start)
	require.Equal(t, uint32(5), r.Value)
	require.Less(t, r.End, rune(0xD800))
}

func TestGetRangeSurrogateMergeAcrossOverride(t *testing.T) {
	b := NewBuilder(0, 0xFFFFFFFF)
	require.NoError(t, b.SetRange(0xD800, 0xDFFF, 3))
	require.NoError(t, b.SetRange(0xE000, 0xE010, 3))
	trie, err := b.BuildImmutable(Fast, Width32)
	require.NoError(t, err)

	r, ok := trie.GetRange(0xD800, nil, RangeFixedAllSurrogates, 3)
	require.True(t, ok)
	require.Equal(t, rune(0xD800), r.Start)
	require.Equal(t, uint32(3), r.Value)
	require.GreaterOrEqual(t, r.End, rune(0xE010))
}

func TestGetRangeWithFilter(t *testing.T) {
	b := NewBuilder(0, 0xFFFFFFFF)
	require.NoError(t, b.Set(0x41, 100))
	require.NoError(t, b.Set(0x42, 200))
	trie, err := b.BuildImmutable(Fast, Width32)
	require.NoError(t, err)

	isNonZero := func(v uint32) uint32 {
		if v == 0 {
			return 0
		}
		return 1
	}

	r, ok := trie.GetRange(0x41, isNonZero, RangeNormal, 0)
	require.True(t, ok)
	require.Equal(t, rune(0x41), r.Start)
	require.Equal(t, rune(0x42), r.End)
	require.Equal(t, uint32(1), r.Value)
}
