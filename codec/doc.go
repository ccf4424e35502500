/*
Package codec converts between the three Unicode encoding forms used throughout
utext: the 8-bit form (UTF-8), the 16-bit form (UTF-16 with surrogate pairs)
and single 32-bit code points.

All functions are stateless. Single code points are decoded with [Decode8] and
[Decode16] and encoded with [Encode8] and [Encode16]. Bulk conversions are split
into a measure pass and a write pass:

	n := codec.Measure16From8(src)   // exact number of 16-bit units
	dst := make([]uint16, n)
	codec.Write16From8(dst, src)     // fills dst completely

Clients should never size-guess and re-copy; measure, allocate once, then
write once. The convenience functions [ToUTF16], [FromUTF16], [ToRunes] and
[FromRunes] do exactly that.

[Decode8] is an unchecked fast path for trusted, self-produced data. It never
panics, but malformed input yields unspecified code points. Use
[Decode8Checked] for untrusted input.

Cursor movement without decoding is available as Advance/Retreat functions for
each of the three forms.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package codec

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'utext.codec'
func tracer() tracing.Trace {
	return tracing.Select("utext.codec")
}

// MaxRune is the largest valid Unicode code point.
const MaxRune = 0x10FFFF

// ReplacementChar is emitted by the 16-bit encoder for values it cannot
// represent.
const ReplacementChar = 0xFFFD

// Surrogate constants for the 16-bit form.
const (
	surrLo   = 0xD800 // first lead surrogate
	surrMid  = 0xDC00 // first tail surrogate
	surrHi   = 0xE000 // one past the last tail surrogate
	surrSelf = 0x10000

	// LeadOffset is added to (cp >> 10) to get the lead surrogate of cp.
	LeadOffset = surrLo - (surrSelf >> 10)
	// TailOffset is added to (cp & 0x3FF) to get the tail surrogate of cp.
	TailOffset = surrMid
	// SurrogateOffset folds a surrogate pair back into a code point:
	// cp = (lead << 10) + tail + SurrogateOffset.
	SurrogateOffset = surrSelf - (surrLo << 10) - surrMid
)

// IsSurrogate returns true if r lies in the surrogate range U+D800..U+DFFF.
func IsSurrogate(r rune) bool {
	return surrLo <= r && r < surrHi
}

// IsLeadSurrogate returns true if u is the first half of a surrogate pair.
func IsLeadSurrogate(u uint16) bool {
	return surrLo <= u && u < surrMid
}

// IsTailSurrogate returns true if u is the second half of a surrogate pair.
func IsTailSurrogate(u uint16) bool {
	return surrMid <= u && u < surrHi
}

// ValidRune reports whether r is a Unicode scalar value, i.e. in range and not
// a surrogate.
func ValidRune(r rune) bool {
	return r >= 0 && r <= MaxRune && !IsSurrogate(r)
}
