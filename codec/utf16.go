package codec

// --- 16-bit form -----------------------------------------------------------

// Len16 returns the number of 16-bit units needed to encode r: 2 for code
// points at or above U+10000, 1 otherwise. Values the 16-bit form cannot
// represent are encoded as ReplacementChar and count as 1.
func Len16(r rune) int {
	if r >= surrSelf && r <= MaxRune {
		return 2
	}
	return 1
}

// Encode16 writes the 16-bit form of r into dst and returns the number of
// units written, which always equals Len16(r). dst must be large enough.
// Code points below U+10000, including lone surrogates, are written verbatim.
func Encode16(dst []uint16, r rune) int {
	switch {
	case r < 0 || r > MaxRune:
		dst[0] = ReplacementChar
		return 1
	case r < surrSelf:
		dst[0] = uint16(r)
		return 1
	}
	_ = dst[1]
	dst[0] = uint16(LeadOffset + (r >> 10))
	dst[1] = uint16(TailOffset + (r & 0x3FF))
	return 2
}

// Decode16 decodes the code point starting at u[off] and returns it together
// with the number of units consumed. A lead surrogate followed by a tail
// surrogate is folded into one code point; any other surrogate is returned
// as is with width 1. If off is out of range, (0, 0) is returned.
func Decode16(u []uint16, off int) (rune, int) {
	if off < 0 || off >= len(u) {
		return 0, 0
	}
	c := u[off]
	if IsLeadSurrogate(c) && off+1 < len(u) && IsTailSurrogate(u[off+1]) {
		return rune(c)<<10 + rune(u[off+1]) + SurrogateOffset, 2
	}
	return rune(c), 1
}

// Advance16 returns the offset of the code point following the one starting
// at off. The result never exceeds len(u).
func Advance16(u []uint16, off int) int {
	if off < 0 {
		return 0
	}
	if off >= len(u) {
		return len(u)
	}
	if IsLeadSurrogate(u[off]) && off+1 < len(u) && IsTailSurrogate(u[off+1]) {
		return off + 2
	}
	return off + 1
}

// Retreat16 returns the offset of the code point preceding position off.
// The result is never negative.
func Retreat16(u []uint16, off int) int {
	if off > len(u) {
		off = len(u)
	}
	if off <= 0 {
		return 0
	}
	off--
	if off > 0 && IsTailSurrogate(u[off]) && IsLeadSurrogate(u[off-1]) {
		off--
	}
	return off
}

// --- 32-bit form -----------------------------------------------------------

// Advance32 returns off+1, clamped to [0, len(r)].
func Advance32(r []rune, off int) int {
	if off < 0 {
		return 0
	}
	if off >= len(r) {
		return len(r)
	}
	return off + 1
}

// Retreat32 returns off-1, clamped to [0, len(r)].
func Retreat32(r []rune, off int) int {
	if off > len(r) {
		off = len(r)
	}
	if off <= 0 {
		return 0
	}
	return off - 1
}
