package ucptrie

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShrinkHighStartNeverExceedsBuilderHighStart(t *testing.T) {
	b := NewBuilder(0, 0)
	require.NoError(t, b.Set(0x41, 1))

	fastLimit := Fast.fastLimit()
	real := b.shrinkHighStart(fastLimit, 0, Width32)
	require.LessOrEqual(t, real, b.highStart)
	require.LessOrEqual(t, real, fastLimit)
}

func TestShrinkHighStartKeepsNonUniformTail(t *testing.T) {
	b := NewBuilder(0, 0)
	require.NoError(t, b.SetRange(0x20000, 0x20100, 1))

	fastLimit := Fast.fastLimit()
	real := b.shrinkHighStart(fastLimit, 0, Width32)
	require.Greater(t, real, fastLimit)
	require.LessOrEqual(t, int32(0x20100), real)
}

func TestPack18RoundTripsThroughTrieLookup(t *testing.T) {
	// Force index-3 blocks whose data offsets exceed 16 bits by writing a
	// large number of distinct 16-cp blocks before the region under test,
	// so this exercises the 18-bit packed index-3 path end to end via
	// ordinary lookups rather than unpacking by hand.
	b := NewBuilder(0, 0)
	for i := 0; i < 5000; i++ {
		cp := rune(0x20000 + i*16)
		require.NoError(t, b.SetRange(cp, cp+15, uint32(i+1)))
	}

	trie, err := b.BuildImmutable(Fast, Width32)
	require.NoError(t, err)

	for i := 0; i < 5000; i += 137 {
		cp := rune(0x20000 + i*16)
		require.Equal(t, uint32(i+1), trie.Get(cp))
	}
}

func TestBuildImmutableBothKindsAgree(t *testing.T) {
	b := NewBuilder(0, 0xFFFFFFFF)
	require.NoError(t, b.SetRange(0x10, 0x50, 9))
	require.NoError(t, b.SetRange(0x500, 0x600, 3))
	require.NoError(t, b.SetRange(0x10000, 0x10050, 2))

	fast, err := b.Clone().BuildImmutable(Fast, Width32)
	require.NoError(t, err)
	small, err := b.Clone().BuildImmutable(Small, Width32)
	require.NoError(t, err)

	for _, cp := range []rune{0, 0x10, 0x30, 0x50, 0x51, 0x500, 0x600, 0xFFF, 0x1000, 0x10000, 0x10050, MaxCodePoint} {
		require.Equal(t, fast.Get(cp), small.Get(cp), "cp=%#x", cp)
	}
}
