package ucptrie

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func buildCursorTestMap(t *testing.T) CodePointMap {
	t.Helper()
	b := NewBuilder(0, 0xFFFFFFFF)
	require.NoError(t, b.Set(0x41, 1))         // 'A'
	require.NoError(t, b.Set(0x1F600, 2))      // an emoji, supplementary
	trie, err := b.BuildImmutable(Fast, Width32)
	require.NoError(t, err)
	return trie
}

func TestStringCursorForwardOverSurrogatePair(t *testing.T) {
	m := buildCursorTestMap(t)
	// "A" + U+1F600 encoded as a surrogate pair.
	text := []uint16{0x0041, 0xD83D, 0xDE00}
	c := m.StringCursor(text, 0)

	cp, ok := c.Next()
	require.True(t, ok)
	require.Equal(t, rune(0x41), cp)
	require.Equal(t, uint32(1), c.Value())
	require.Equal(t, 1, c.Position())

	cp, ok = c.Next()
	require.True(t, ok)
	require.Equal(t, rune(0x1F600), cp)
	require.Equal(t, uint32(2), c.Value())
	require.Equal(t, 3, c.Position())

	_, ok = c.Next()
	require.False(t, ok)
}

func TestStringCursorBackwardOverSurrogatePair(t *testing.T) {
	m := buildCursorTestMap(t)
	text := []uint16{0x0041, 0xD83D, 0xDE00}
	c := m.StringCursor(text, len(text))

	cp, ok := c.Previous()
	require.True(t, ok)
	require.Equal(t, rune(0x1F600), cp)
	require.Equal(t, 1, c.Position())

	cp, ok = c.Previous()
	require.True(t, ok)
	require.Equal(t, rune(0x41), cp)
	require.Equal(t, 0, c.Position())

	_, ok = c.Previous()
	require.False(t, ok)
}

func TestStringCursorUnpairedSurrogate(t *testing.T) {
	m := buildCursorTestMap(t)
	text := []uint16{0xD83D, 0x0041} // lead surrogate with no trail
	c := m.StringCursor(text, 0)

	cp, ok := c.Next()
	require.True(t, ok)
	require.Equal(t, rune(0xD83D), cp)
	require.Equal(t, uint32(0xFFFFFFFF), c.Value())
	require.Equal(t, 1, c.Position())

	cp, ok = c.Next()
	require.True(t, ok)
	require.Equal(t, rune(0x41), cp)
	require.Equal(t, uint32(1), c.Value())
}

func TestStringCursorSetPositionBounds(t *testing.T) {
	m := buildCursorTestMap(t)
	c := m.StringCursor([]uint16{0x41, 0x42}, 0)

	require.Error(t, c.SetPosition(-1))
	require.Error(t, c.SetPosition(3))
	require.NoError(t, c.SetPosition(2))
	_, ok := c.Next()
	require.False(t, ok)
}
