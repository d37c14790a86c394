package ucptrie

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func buildCodecTestTrie(t *testing.T, kind Kind, width ValueWidth) *Trie {
	t.Helper()
	b := NewBuilder(0, width.mask(0xFFFFFFFF))
	require.NoError(t, b.SetRange(0x41, 0x5A, 1))
	require.NoError(t, b.SetRange(0x10000, 0x10010, 7))
	require.NoError(t, b.Set(0x10FFFF, 9))

	trie, err := b.BuildImmutable(kind, width)
	require.NoError(t, err)
	return trie
}

func TestRoundTripAllKindsAndWidths(t *testing.T) {
	sample := []rune{0, 0x40, 0x41, 0x5A, 0x5B, 0xFFF, 0x1000, 0xFFFF,
		0x10000, 0x10010, 0x10011, 0x10FFFF, -1, 0x110000}

	for _, kind := range []Kind{Fast, Small} {
		for _, width := range []ValueWidth{Width8, Width16, Width32} {
			trie := buildCodecTestTrie(t, kind, width)
			blob := trie.ToBinary()

			back, err := FromBinary(blob, nil, nil)
			require.NoError(t, err)

			for _, cp := range sample {
				require.Equal(t, trie.Get(cp), back.Get(cp), "kind=%v width=%v cp=%#x", kind, width, cp)
			}
		}
	}
}

func TestRoundTripAcrossByteOrders(t *testing.T) {
	trie := buildCodecTestTrie(t, Fast, Width16)

	be := trie.toBinary(binary.BigEndian)
	le := trie.toBinary(binary.LittleEndian)

	fromBE, err := FromBinary(be, nil, nil)
	require.NoError(t, err)
	fromLE, err := FromBinary(le, nil, nil)
	require.NoError(t, err)

	for _, cp := range []rune{0, 0x41, 0x5A, 0x10000, 0x10FFFF} {
		require.Equal(t, trie.Get(cp), fromBE.Get(cp))
		require.Equal(t, trie.Get(cp), fromLE.Get(cp))
	}
}

func TestFromBinaryRejectsBadSignature(t *testing.T) {
	blob := make([]byte, wireHeaderBytes)
	_, err := FromBinary(blob, nil, nil)
	require.ErrorIs(t, err, ErrInvalidBinary)
}

func TestFromBinaryRejectsTruncatedPayload(t *testing.T) {
	trie := buildCodecTestTrie(t, Fast, Width32)
	blob := trie.ToBinary()
	_, err := FromBinary(blob[:len(blob)-4], nil, nil)
	require.ErrorIs(t, err, ErrInvalidBinary)
}

func TestFromBinaryRejectsKindMismatch(t *testing.T) {
	trie := buildCodecTestTrie(t, Fast, Width32)
	blob := trie.ToBinary()

	want := Small
	_, err := FromBinary(blob, &want, nil)
	require.ErrorIs(t, err, ErrInvalidBinary)
}

func TestFromBinaryRejectsWidthMismatch(t *testing.T) {
	trie := buildCodecTestTrie(t, Fast, Width32)
	blob := trie.ToBinary()

	want := Width8
	_, err := FromBinary(blob, nil, &want)
	require.ErrorIs(t, err, ErrInvalidBinary)
}

func TestFromBinaryRejectsReservedBits(t *testing.T) {
	trie := buildCodecTestTrie(t, Fast, Width32)
	blob := trie.ToBinary()

	opts := binary.BigEndian.Uint16(blob[4:6])
	binary.BigEndian.PutUint16(blob[4:6], opts|(1<<3))

	_, err := FromBinary(blob, nil, nil)
	require.ErrorIs(t, err, ErrInvalidBinary)
}
