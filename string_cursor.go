package ucptrie

import "errors"

const (
	leadSurrogateMin  = 0xD800
	leadSurrogateMax  = 0xDBFF
	trailSurrogateMin = 0xDC00
	trailSurrogateMax = 0xDFFF
)

func isLeadSurrogate(u uint16) bool  { return u >= leadSurrogateMin && u <= leadSurrogateMax }
func isTrailSurrogate(u uint16) bool { return u >= trailSurrogateMin && u <= trailSurrogateMax }

// combineSurrogatePair decodes a lead/trail surrogate pair into its
// supplementary code point, per the standard UTF-16 formula.
func combineSurrogatePair(lead, trail uint16) rune {
	return ((rune(lead) - leadSurrogateMin) << 10) + (rune(trail) - trailSurrogateMin) + 0x10000
}

// StringCursor is a bidirectional, code-point-aware cursor over a UTF-16
// sequence, bound to a CodePointMap. Each step yields the decoded code
// point together with the map's value for it. The position it reports
// and accepts is a UTF-16 code-unit offset into the backing slice.
//
// On encountering a high (lead) surrogate, the cursor probes the next code
// unit and only forms a supplementary code point when a low (trail)
// surrogate follows; an unpaired surrogate decodes to the map's error
// value, consuming exactly one code unit. Backward iteration applies the
// mirror-image rule.
type StringCursor struct {
	m        CodePointMap
	text     []uint16
	position int

	lastCp    rune
	lastValue uint32
}

func newStringCursor(m CodePointMap, text []uint16, index int) *StringCursor {
	return &StringCursor{
		m:        m,
		text:     text,
		position: index,
	}
}

// Position returns the current code-unit offset into the backing UTF-16
// slice.
func (c *StringCursor) Position() int {
	return c.position
}

// SetPosition moves the cursor to the given code-unit offset. A value
// equal to len(text) is legal and represents the end of the sequence. An
// error is returned for negative offsets or offsets beyond the end.
func (c *StringCursor) SetPosition(position int) error {
	if position < 0 {
		return errors.New("ucptrie: cursor position cannot be negative")
	}
	if position > len(c.text) {
		return errors.New("ucptrie: cursor position cannot be beyond the end of the text")
	}

	c.position = position
	return nil
}

// Value returns the value paired with the code point most recently
// returned by Next or Previous. Its result is undefined before the first
// call to either.
func (c *StringCursor) Value() uint32 {
	return c.lastValue
}

// Next decodes the code point at the current position, advances the
// cursor past it, and returns it. ok is false at the end of the sequence.
func (c *StringCursor) Next() (cp rune, ok bool) {
	if c.position >= len(c.text) {
		return -1, false
	}

	u := c.text[c.position]

	switch {
	case isLeadSurrogate(u) && c.position+1 < len(c.text) && isTrailSurrogate(c.text[c.position+1]):
		cp = combineSurrogatePair(u, c.text[c.position+1])
		c.position += 2
	case isLeadSurrogate(u) || isTrailSurrogate(u):
		// Unpaired surrogate.
		c.position++
		c.lastCp = rune(u)
		c.lastValue = c.m.Get(-1) // any out-of-range cp yields errorValue
		return rune(u), true
	default:
		cp = rune(u)
		c.position++
	}

	c.lastCp = cp
	c.lastValue = c.m.Get(cp)
	return cp, true
}

// Previous decodes the code point immediately before the current position,
// retreats the cursor past it, and returns it. ok is false at the start of
// the sequence.
func (c *StringCursor) Previous() (cp rune, ok bool) {
	if c.position <= 0 {
		return -1, false
	}

	u := c.text[c.position-1]

	switch {
	case isTrailSurrogate(u) && c.position-2 >= 0 && isLeadSurrogate(c.text[c.position-2]):
		cp = combineSurrogatePair(c.text[c.position-2], u)
		c.position -= 2
	case isLeadSurrogate(u) || isTrailSurrogate(u):
		c.position--
		c.lastCp = rune(u)
		c.lastValue = c.m.Get(-1)
		return rune(u), true
	default:
		cp = rune(u)
		c.position--
	}

	c.lastCp = cp
	c.lastValue = c.m.Get(cp)
	return cp, true
}

var _ Cursor = (*StringCursor)(nil)
