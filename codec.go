package ucptrie

import "encoding/binary"

// Wire header layout, 16 bytes, all multi-byte fields in the trie's own
// byte order, big-endian unless FromBinary observes a byte-swapped
// signature, matching ICU's UCPTrie serialized form (ucptrie.h):
//
//	offset 0  uint32  signature, ASCII "Tri3" (0x54726933)
//	offset 4  uint16  options
//	offset 6  uint16  indexLength, in uint16 units
//	offset 8  uint16  dataLength low 16 bits (high bits in options 15..12)
//	offset 10 uint16  index3NullOffset
//	offset 12 uint16  dataNullOffset low 16 bits (high bits in options 11..8)
//	offset 14 uint16  shiftedHighStart = highStart >> 9
//
// options: bits 15..12 dataLength bits 19..16; bits 11..8 dataNullOffset
// bits 19..16; bits 7..6 kind (0 Fast, 1 Small); bits 5..3 reserved, must
// be 0; bits 2..0 width (0=16, 1=32, 2=8, matching ValueWidth's iota
// order).
const (
	wireSignature   uint32 = 0x54726933
	wireHeaderBytes int    = 16

	optWidthShift        = 0
	optWidthMask         = 0x7 << optWidthShift
	optKindShift         = 6
	optKindMask          = 0x1 << optKindShift
	optDataNullHiShift   = 8
	optDataNullHiMask    = 0xF << optDataNullHiShift
	optDataLengthHiShift = 12
	optDataLengthHiMask  = 0xF << optDataLengthHiShift

	highStartShift = 9
)

func encodeOptions(kind Kind, width ValueWidth, dataLength, dataNullOffset int32) uint16 {
	var opts uint16
	opts |= (uint16(width) & 0x7) << optWidthShift
	if kind == Small {
		opts |= optKindMask
	}
	opts |= uint16((dataNullOffset>>16)&0xF) << optDataNullHiShift
	opts |= uint16((dataLength>>16)&0xF) << optDataLengthHiShift
	return opts
}

func decodeKind(opts uint16) Kind {
	if opts&optKindMask != 0 {
		return Small
	}
	return Fast
}

func decodeWidth(opts uint16) (ValueWidth, bool) {
	w := ValueWidth((opts & optWidthMask) >> optWidthShift)
	switch w {
	case Width8, Width16, Width32:
		return w, true
	default:
		return 0, false
	}
}

// ToBinary serializes t in the package's native (big-endian) wire order.
func (t *Trie) ToBinary() []byte {
	return t.toBinary(binary.BigEndian)
}

func (t *Trie) toBinary(order binary.ByteOrder) []byte {
	indexLength := int32(len(t.index))
	dataLength := t.data.Len()

	out := make([]byte, wireHeaderBytes)
	order.PutUint32(out[0:4], wireSignature)
	order.PutUint16(out[4:6], encodeOptions(t.kind, t.width, dataLength, t.dataNullOffset))
	order.PutUint16(out[6:8], uint16(indexLength))
	order.PutUint16(out[8:10], uint16(dataLength&0xFFFF))
	order.PutUint16(out[10:12], uint16(t.index3NullOffset))
	order.PutUint16(out[12:14], uint16(t.dataNullOffset&0xFFFF))
	order.PutUint16(out[14:16], uint16(t.highStart>>highStartShift))

	for _, v := range t.index {
		var buf [2]byte
		order.PutUint16(buf[:], v)
		out = append(out, buf[:]...)
	}

	out = t.data.writeTo(out, order)

	for len(out)%4 != 0 {
		out = append(out, 0)
	}

	return out
}

// FromBinary parses a trie previously produced by ToBinary. If expectKind
// or expectWidth is non-nil, the decoded trie must match it or
// ErrInvalidBinary is returned; pass nil for either to accept whatever the
// payload declares.
func FromBinary(raw []byte, expectKind *Kind, expectWidth *ValueWidth) (*Trie, error) {
	if len(raw) < wireHeaderBytes {
		return nil, ErrInvalidBinary
	}

	order, err := detectByteOrder(raw)
	if err != nil {
		return nil, err
	}

	opts := order.Uint16(raw[4:6])
	if opts&(0x7<<3) != 0 {
		return nil, ErrInvalidBinary
	}

	indexLength := int32(order.Uint16(raw[6:8]))
	dataLengthLo := int32(order.Uint16(raw[8:10]))
	index3NullOffset := int32(order.Uint16(raw[10:12]))
	dataNullLo := int32(order.Uint16(raw[12:14]))
	shiftedHighStart := int32(order.Uint16(raw[14:16]))

	kind := decodeKind(opts)
	width, ok := decodeWidth(opts)
	if !ok {
		return nil, ErrInvalidBinary
	}
	if expectKind != nil && *expectKind != kind {
		return nil, ErrInvalidBinary
	}
	if expectWidth != nil && *expectWidth != width {
		return nil, ErrInvalidBinary
	}

	dataLength := dataLengthLo | (int32((opts&optDataLengthHiMask)>>optDataLengthHiShift) << 16)
	dataNullOffset := dataNullLo | (int32((opts&optDataNullHiMask)>>optDataNullHiShift) << 16)
	highStart := shiftedHighStart << highStartShift

	pos := wireHeaderBytes
	indexBytes := int(indexLength) * 2
	if len(raw) < pos+indexBytes {
		return nil, ErrInvalidBinary
	}
	index := make([]uint16, indexLength)
	for i := range index {
		index[i] = order.Uint16(raw[pos : pos+2])
		pos += 2
	}
	widthBytes := 2
	switch width {
	case Width8:
		widthBytes = 1
	case Width32:
		widthBytes = 4
	}
	dataBytes := int(dataLength) * widthBytes
	if len(raw) < pos+dataBytes {
		return nil, ErrInvalidBinary
	}

	var arr valueArray
	switch width {
	case Width8:
		d := make(data8, dataLength)
		copy(d, raw[pos:pos+dataBytes])
		arr = d
	case Width16:
		d := make(data16, dataLength)
		for i := range d {
			d[i] = order.Uint16(raw[pos+2*i : pos+2*i+2])
		}
		arr = d
	default:
		d := make(data32, dataLength)
		for i := range d {
			d[i] = order.Uint32(raw[pos+4*i : pos+4*i+4])
		}
		arr = d
	}

	if dataLength < 2 {
		return nil, ErrInvalidBinary
	}
	highValue := width.mask(arr.Get(dataLength - highValueNegDataOffset))
	errorValue := width.mask(arr.Get(dataLength - errorValueNegDataOffset))

	t := &Trie{
		kind:             kind,
		width:            width,
		index:            index,
		data:             arr,
		index3NullOffset: index3NullOffset,
		dataNullOffset:   dataNullOffset,
		highStart:        highStart,
		highValue:        highValue,
		errorValue:       errorValue,
	}
	for cp := rune(0); cp < 0x80; cp++ {
		t.ascii[cp] = t.Get(cp)
	}
	return t, nil
}

// detectByteOrder reads the 4-byte signature both ways and picks whichever
// order makes it match wireSignature, ICU's standard byte-order-detection
// trick for self-describing binary formats.
func detectByteOrder(raw []byte) (binary.ByteOrder, error) {
	if binary.BigEndian.Uint32(raw[0:4]) == wireSignature {
		return binary.BigEndian, nil
	}
	if binary.LittleEndian.Uint32(raw[0:4]) == wireSignature {
		return binary.LittleEndian, nil
	}
	return nil, ErrInvalidBinary
}
