package codec

// --- 8-bit form ------------------------------------------------------------

// Masks which fold the marker bits of a lead byte and its continuation bytes
// out of a code point, indexed by sequence width.
var utf8Fold = [5]rune{
	0,
	0,
	0xC0<<6 ^ 0x80,
	0xE0<<12 ^ 0x80<<6 ^ 0x80,
	0xF0<<18 ^ 0x80<<12 ^ 0x80<<6 ^ 0x80,
}

// Width8 returns the width in bytes of a UTF-8 sequence starting with lead.
// It is a pure function of the high bits of lead and does not check whether
// lead is a legal lead byte.
func Width8(lead byte) int {
	switch {
	case lead < 0x80:
		return 1
	case lead < 0xE0:
		return 2
	case lead < 0xF0:
		return 3
	}
	return 4
}

// Len8 returns the number of bytes needed to encode r in the 8-bit form.
// Values above MaxRune up to 0x1FFFFF still take 4 bytes; larger or negative
// values are encoded as ReplacementChar.
func Len8(r rune) int {
	switch {
	case r < 0:
		return 3
	case r < 0x80:
		return 1
	case r < 0x800:
		return 2
	case r < 0x10000:
		return 3
	case r < 0x200000:
		return 4
	}
	return 3
}

// Decode8 decodes the code point starting at b[off] and returns it together
// with the width of its encoding.
//
// Decode8 is the unchecked fast path: continuation bytes are not validated.
// It never panics for 0 <= off < len(b); a sequence truncated by the end of b
// is decoded as if the missing bytes were empty continuation bytes.
// If off is out of range, (0, 0) is returned.
func Decode8(b []byte, off int) (rune, int) {
	if off < 0 || off >= len(b) {
		return 0, 0
	}
	c := rune(b[off])
	if c < 0x80 {
		return c, 1
	}
	w := Width8(b[off])
	n := w
	if off+n > len(b) {
		n = len(b) - off
	}
	for i := 1; i < w; i++ {
		c <<= 6
		if i < n {
			c ^= rune(b[off+i])
		} else {
			c ^= 0x80
		}
	}
	return c ^ utf8Fold[w], n
}

// Decode8Checked decodes the code point starting at b[off] and validates it.
// It rejects stray continuation bytes, illegal lead bytes, overlong encodings,
// surrogates, values above MaxRune and truncated sequences. On failure it
// returns (ReplacementChar, 1, false), so callers may skip exactly one byte.
func Decode8Checked(b []byte, off int) (rune, int, bool) {
	if off < 0 || off >= len(b) {
		return ReplacementChar, 0, false
	}
	c := b[off]
	if c < 0x80 {
		return rune(c), 1, true
	}
	w := validSequence8(b[off:])
	if w == 0 {
		return ReplacementChar, 1, false
	}
	r, _ := Decode8(b, off)
	return r, w, true
}

// validSequence8 returns the width of the well-formed UTF-8 sequence at the
// start of b, or 0 if the sequence is malformed.
func validSequence8(b []byte) int {
	c := b[0]
	lo, hi := byte(0x80), byte(0xBF)
	var w int
	switch {
	case c < 0x80:
		return 1
	case c < 0xC2: // stray continuation or overlong 2-byte lead
		return 0
	case c < 0xE0:
		w = 2
	case c < 0xF0:
		w = 3
		if c == 0xE0 {
			lo = 0xA0
		} else if c == 0xED {
			hi = 0x9F
		}
	case c < 0xF5:
		w = 4
		if c == 0xF0 {
			lo = 0x90
		} else if c == 0xF4 {
			hi = 0x8F
		}
	default:
		return 0
	}
	if len(b) < w {
		return 0
	}
	if b[1] < lo || b[1] > hi {
		return 0
	}
	for i := 2; i < w; i++ {
		if b[i] < 0x80 || b[i] > 0xBF {
			return 0
		}
	}
	return w
}

// ValidSequence8 returns the width of the well-formed UTF-8 sequence starting
// at b[off], or 0 if there is none.
func ValidSequence8(b []byte, off int) int {
	if off < 0 || off >= len(b) {
		return 0
	}
	return validSequence8(b[off:])
}

// Valid8 reports whether b consists entirely of well-formed UTF-8.
func Valid8(b []byte) bool {
	for i := 0; i < len(b); {
		if b[i] < 0x80 {
			i++
			continue
		}
		w := validSequence8(b[i:])
		if w == 0 {
			return false
		}
		i += w
	}
	return true
}

// Encode8 writes the 8-bit form of r into dst and returns the number of bytes
// written, which always equals Len8(r). dst must be large enough.
// Surrogates are written as 3-byte sequences, so that lone surrogates survive
// a round trip through the unchecked decoder.
func Encode8(dst []byte, r rune) int {
	if r < 0 || r >= 0x200000 {
		r = ReplacementChar
	}
	switch {
	case r < 0x80:
		dst[0] = byte(r)
		return 1
	case r < 0x800:
		_ = dst[1]
		dst[0] = 0xC0 | byte(r>>6)
		dst[1] = 0x80 | byte(r)&0x3F
		return 2
	case r < 0x10000:
		_ = dst[2]
		dst[0] = 0xE0 | byte(r>>12)
		dst[1] = 0x80 | byte(r>>6)&0x3F
		dst[2] = 0x80 | byte(r)&0x3F
		return 3
	}
	_ = dst[3]
	dst[0] = 0xF0 | byte(r>>18)&0x07
	dst[1] = 0x80 | byte(r>>12)&0x3F
	dst[2] = 0x80 | byte(r>>6)&0x3F
	dst[3] = 0x80 | byte(r)&0x3F
	return 4
}

// IsContinuation8 reports whether c is a UTF-8 continuation byte.
func IsContinuation8(c byte) bool {
	return c&0xC0 == 0x80
}

// Advance8 returns the offset of the code point following the one starting at
// off. The result never exceeds len(b).
func Advance8(b []byte, off int) int {
	if off < 0 {
		return 0
	}
	if off >= len(b) {
		return len(b)
	}
	off += Width8(b[off])
	if off > len(b) {
		return len(b)
	}
	return off
}

// Retreat8 returns the offset of the code point preceding position off. It
// steps back over at most three continuation bytes. The result is never
// negative.
func Retreat8(b []byte, off int) int {
	if off > len(b) {
		off = len(b)
	}
	if off <= 0 {
		return 0
	}
	off--
	for i := 0; i < 3 && off > 0 && IsContinuation8(b[off]); i++ {
		off--
	}
	return off
}

// Count8 returns the number of code points in b, as seen by Advance8.
func Count8(b []byte) int {
	n := 0
	for i := 0; i < len(b); i = Advance8(b, i) {
		n++
	}
	return n
}
