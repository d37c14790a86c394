package ucptrie

import "encoding/binary"

// ValueWidth selects the concrete storage width of a trie's data array.
type ValueWidth uint8

const (
	// Note: this ordering matches ICU's UCPTrieValueWidth (ucptrie.h),
	// which numbers 16/32/8 rather than the more obvious 8/16/32, since
	// the wire format's "options" field depends on it.
	Width16 ValueWidth = iota
	Width32
	Width8
)

func (w ValueWidth) String() string {
	switch w {
	case Width8:
		return "8-bit"
	case Width16:
		return "16-bit"
	case Width32:
		return "32-bit"
	default:
		return "unknown"
	}
}

// mask returns value truncated to the given width. Width32 is a no-op.
func (w ValueWidth) mask(value uint32) uint32 {
	switch w {
	case Width8:
		return value & 0xFF
	case Width16:
		return value & 0xFFFF
	default:
		return value
	}
}

// valueArray is the uniform read/length/serialize view over the three
// concrete data payload shapes a Trie may hold. It exists so compaction and
// lookup are parametric over the narrow width without duplicating logic.
type valueArray interface {
	Len() int32
	Get(i int32) uint32
	Width() ValueWidth

	// writeTo appends the array's wire-format bytes (in order) to dst,
	// returning the extended slice.
	writeTo(dst []byte, order binary.ByteOrder) []byte
}

type data8 []uint8

func (d data8) Len() int32          { return int32(len(d)) }
func (d data8) Get(i int32) uint32  { return uint32(d[i]) }
func (d data8) Width() ValueWidth   { return Width8 }
func (d data8) writeTo(dst []byte, _ binary.ByteOrder) []byte {
	return append(dst, d...)
}

type data16 []uint16

func (d data16) Len() int32         { return int32(len(d)) }
func (d data16) Get(i int32) uint32 { return uint32(d[i]) }
func (d data16) Width() ValueWidth  { return Width16 }

func (d data16) writeTo(dst []byte, order binary.ByteOrder) []byte {
	for _, v := range d {
		var buf [2]byte
		order.PutUint16(buf[:], v)
		dst = append(dst, buf[:]...)
	}
	return dst
}

type data32 []uint32

func (d data32) Len() int32         { return int32(len(d)) }
func (d data32) Get(i int32) uint32 { return d[i] }
func (d data32) Width() ValueWidth  { return Width32 }

func (d data32) writeTo(dst []byte, order binary.ByteOrder) []byte {
	for _, v := range d {
		var buf [4]byte
		order.PutUint32(buf[:], v)
		dst = append(dst, buf[:]...)
	}
	return dst
}
