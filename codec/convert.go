package codec

import (
	"fmt"

	xunicode "golang.org/x/text/encoding/unicode"
)

// Bulk conversions follow a strict two-pass rule: MeasureXFromY returns the
// exact number of destination units, WriteXFromY fills a destination of at
// least that size and returns the number of units written. Both passes walk
// the source identically, so their results always agree.

// --- 16 -> 8 ---

// Measure8From16 returns the number of bytes needed for the 8-bit form of src.
func Measure8From16(src []uint16) int {
	n := 0
	for i := 0; i < len(src); {
		r, w := Decode16(src, i)
		n += Len8(r)
		i += w
	}
	return n
}

// Write8From16 writes the 8-bit form of src into dst.
func Write8From16(dst []byte, src []uint16) int {
	n := 0
	for i := 0; i < len(src); {
		r, w := Decode16(src, i)
		n += Encode8(dst[n:], r)
		i += w
	}
	return n
}

// --- 8 -> 16 ---

// Measure16From8 returns the number of 16-bit units needed for src.
func Measure16From8(src []byte) int {
	n := 0
	for i := 0; i < len(src); {
		r, w := Decode8(src, i)
		n += Len16(r)
		i += w
	}
	return n
}

// Write16From8 writes the 16-bit form of src into dst.
func Write16From8(dst []uint16, src []byte) int {
	n := 0
	for i := 0; i < len(src); {
		r, w := Decode8(src, i)
		n += Encode16(dst[n:], r)
		i += w
	}
	return n
}

// --- 8 -> 32 ---

// Measure32From8 returns the number of code points in src.
func Measure32From8(src []byte) int {
	n := 0
	for i := 0; i < len(src); {
		_, w := Decode8(src, i)
		n++
		i += w
	}
	return n
}

// Write32From8 decodes src into dst.
func Write32From8(dst []rune, src []byte) int {
	n := 0
	for i := 0; i < len(src); {
		r, w := Decode8(src, i)
		dst[n] = r
		n++
		i += w
	}
	return n
}

// --- 32 -> 8 ---

// Measure8From32 returns the number of bytes needed for the 8-bit form of src.
func Measure8From32(src []rune) int {
	n := 0
	for _, r := range src {
		n += Len8(r)
	}
	return n
}

// Write8From32 writes the 8-bit form of src into dst.
func Write8From32(dst []byte, src []rune) int {
	n := 0
	for _, r := range src {
		n += Encode8(dst[n:], r)
	}
	return n
}

// --- 32 -> 16 ---

// Measure16From32 returns the number of 16-bit units needed for src.
func Measure16From32(src []rune) int {
	n := 0
	for _, r := range src {
		n += Len16(r)
	}
	return n
}

// Write16From32 writes the 16-bit form of src into dst.
func Write16From32(dst []uint16, src []rune) int {
	n := 0
	for _, r := range src {
		n += Encode16(dst[n:], r)
	}
	return n
}

// --- 16 -> 32 ---

// Measure32From16 returns the number of code points in src.
func Measure32From16(src []uint16) int {
	n := 0
	for i := 0; i < len(src); i = Advance16(src, i) {
		n++
	}
	return n
}

// Write32From16 decodes src into dst.
func Write32From16(dst []rune, src []uint16) int {
	n := 0
	for i := 0; i < len(src); {
		r, w := Decode16(src, i)
		dst[n] = r
		n++
		i += w
	}
	return n
}

// --- Allocating conveniences ---

// ToUTF16 returns the 16-bit form of b.
func ToUTF16(b []byte) []uint16 {
	u := make([]uint16, Measure16From8(b))
	Write16From8(u, b)
	return u
}

// FromUTF16 returns the 8-bit form of u.
func FromUTF16(u []uint16) []byte {
	b := make([]byte, Measure8From16(u))
	Write8From16(b, u)
	return b
}

// ToRunes returns the code points of b.
func ToRunes(b []byte) []rune {
	r := make([]rune, Measure32From8(b))
	Write32From8(r, b)
	return r
}

// FromRunes returns the 8-bit form of r.
func FromRunes(r []rune) []byte {
	b := make([]byte, Measure8From32(r))
	Write8From32(b, r)
	return b
}

// RunesToUTF16 returns the 16-bit form of r.
func RunesToUTF16(r []rune) []uint16 {
	u := make([]uint16, Measure16From32(r))
	Write16From32(u, r)
	return u
}

// UTF16ToRunes returns the code points of u.
func UTF16ToRunes(u []uint16) []rune {
	r := make([]rune, Measure32From16(u))
	Write32From16(r, u)
	return r
}

// --- 16-bit form as bytes --------------------------------------------------

// ByteOrder selects the serialization of 16-bit units.
type ByteOrder int

// Byte orders for EncodeUTF16Bytes and DecodeUTF16Bytes.
const (
	BigEndian ByteOrder = iota
	LittleEndian
)

func (o ByteOrder) String() string {
	if o == LittleEndian {
		return "UTF-16LE"
	}
	return "UTF-16BE"
}

func (o ByteOrder) endianness() xunicode.Endianness {
	if o == LittleEndian {
		return xunicode.LittleEndian
	}
	return xunicode.BigEndian
}

// EncodeUTF16Bytes serializes the 8-bit text b as 16-bit units in the given
// byte order, optionally preceded by a byte order mark. This is the form
// platform text collaborators consume. Ill-formed UTF-8 is replaced by
// U+FFFD.
func EncodeUTF16Bytes(b []byte, order ByteOrder, bom bool) ([]byte, error) {
	policy := xunicode.IgnoreBOM
	if bom {
		policy = xunicode.UseBOM
	}
	out, err := xunicode.UTF16(order.endianness(), policy).NewEncoder().Bytes(b)
	if err != nil {
		tracer().Errorf("encoding %s: %v", order, err)
		return nil, fmt.Errorf("codec: cannot encode %s: %w", order, err)
	}
	return out, nil
}

// DecodeUTF16Bytes deserializes 16-bit units to 8-bit text. If sniffBOM is set,
// a leading byte order mark overrides order and is removed.
func DecodeUTF16Bytes(raw []byte, order ByteOrder, sniffBOM bool) ([]byte, error) {
	policy := xunicode.IgnoreBOM
	if sniffBOM {
		policy = xunicode.UseBOM
	}
	out, err := xunicode.UTF16(order.endianness(), policy).NewDecoder().Bytes(raw)
	if err != nil {
		tracer().Errorf("decoding %s: %v", order, err)
		return nil, fmt.Errorf("codec: cannot decode %s: %w", order, err)
	}
	return out, nil
}
