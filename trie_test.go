package ucptrie

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func buildSimpleTrie(t *testing.T, kind Kind, width ValueWidth) *Trie {
	t.Helper()
	b := NewBuilder(0, 0xFFFFFFFF)
	require.NoError(t, b.SetRange(0x41, 0x5A, 1))       // 'A'..'Z'
	require.NoError(t, b.SetRange(0x10000, 0x10010, 7)) // supplementary run
	require.NoError(t, b.Set(0x10FFFF, 9))

	trie, err := b.BuildImmutable(kind, width)
	require.NoError(t, err)
	return trie
}

func TestGetMatchesAssignments(t *testing.T) {
	for _, kind := range []Kind{Fast, Small} {
		for _, width := range []ValueWidth{Width8, Width16, Width32} {
			trie := buildSimpleTrie(t, kind, width)

			require.Equal(t, uint32(0), trie.Get(0x40))
			require.Equal(t, uint32(1), trie.Get(0x41))
			require.Equal(t, uint32(1), trie.Get(0x5A))
			require.Equal(t, uint32(0), trie.Get(0x5B))
			require.Equal(t, uint32(7), trie.Get(0x10000))
			require.Equal(t, uint32(7), trie.Get(0x10010))
			require.Equal(t, uint32(0), trie.Get(0x10011))
			require.Equal(t, uint32(9), trie.Get(0x10FFFF))
		}
	}
}

func TestGetOutOfRangeReturnsErrorValue(t *testing.T) {
	trie := buildSimpleTrie(t, Fast, Width32)
	require.Equal(t, uint32(0xFFFFFFFF), trie.Get(-1))
	require.Equal(t, uint32(0xFFFFFFFF), trie.Get(0x110000))
}

func TestAsciiGetMatchesGet(t *testing.T) {
	trie := buildSimpleTrie(t, Fast, Width32)
	for cp := rune(0); cp < 0x80; cp++ {
		require.Equal(t, trie.Get(cp), trie.AsciiGet(cp))
	}
}

func TestBmpAndSuppGetOnlyOnFastTrie(t *testing.T) {
	trie := buildSimpleTrie(t, Fast, Width32)
	require.Equal(t, uint32(1), trie.BmpGet(0x41))
	require.Equal(t, uint32(7), trie.SuppGet(0x10000))

	small := buildSimpleTrie(t, Small, Width32)
	require.Panics(t, func() { small.BmpGet(0x41) })
	require.Panics(t, func() { small.SuppGet(0x10000) })
}

func TestWidthMasking(t *testing.T) {
	b := NewBuilder(0, 0)
	require.NoError(t, b.Set(0x100, 0x1FFFF))
	trie, err := b.BuildImmutable(Fast, Width8)
	require.NoError(t, err)
	require.Equal(t, uint32(0x1FFFF&0xFF), trie.Get(0x100))
}

func TestEmptyTrieAllInitialValue(t *testing.T) {
	b := NewBuilder(42, 99)
	trie, err := b.BuildImmutable(Fast, Width32)
	require.NoError(t, err)

	require.Equal(t, int32(0), trie.highStart)
	for _, cp := range []rune{0, 1, 0x41, 0xFFFF, 0x10000, MaxCodePoint} {
		require.Equal(t, uint32(42), trie.Get(cp))
	}
}
