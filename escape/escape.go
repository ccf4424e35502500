package escape

import (
	"github.com/npillmayer/utext/codec"
	"github.com/npillmayer/utext/text"
)

// named maps control bytes with a mnemonic escape to their escape letter.
var named = [0x20]byte{
	'\a': 'a', '\b': 'b', '\t': 't', '\n': 'n', '\v': 'v', '\f': 'f', '\r': 'r',
}

// unnamed is the reverse of named.
var unnamed = map[byte]byte{
	'a': '\a', 'b': '\b', 't': '\t', 'n': '\n', 'v': '\v', 'f': '\f', 'r': '\r',
}

// --- Escaping --------------------------------------------------------------

// EscapedLen returns the exact length of the escaped form of src, including
// quotes.
func EscapedLen(src []byte, q Quotes, p Policy) int {
	w := sink{}
	escape(&w, src, q, p)
	return w.n
}

// EscapeTo writes the escaped form of src to dst and returns the number of
// bytes written. dst must hold at least EscapedLen(src, q, p) bytes.
func EscapeTo(dst []byte, src []byte, q Quotes, p Policy) int {
	if dst == nil {
		dst = []byte{}
	}
	w := sink{dst: dst}
	escape(&w, src, q, p)
	return w.n
}

// Escape returns the escaped form of src, enclosed in q.
// An error is returned only if the result cannot be allocated.
func Escape(src []byte, q Quotes, p Policy) (text.Text, error) {
	t := text.New()
	if err := t.Resize(EscapedLen(src, q, p)); err != nil {
		return t, err
	}
	EscapeTo(t.Bytes(), src, q, p)
	return t, nil
}

// EscapeString is Escape for strings.
func EscapeString(s string, q Quotes, p Policy) string {
	src := []byte(s)
	dst := make([]byte, EscapedLen(src, q, p))
	EscapeTo(dst, src, q, p)
	return string(dst)
}

// escape is the common scan of the measure and the write pass.
func escape(w *sink, src []byte, q Quotes, p Policy) {
	if q.Open != 0 {
		w.put(q.Open)
	}
	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == '\\':
			w.esc('\\')
		case c < 0x20 && named[c] != 0:
			w.esc(named[c])
		case q.isQuote(c):
			w.esc(c)
		case c < 0x20 || c == 0x7F:
			w.hex(c)
		case c < 0x80:
			w.put(c)
		default:
			n := codec.ValidSequence8(src, i)
			if n == 0 { // stray continuation or broken sequence
				w.hex(c)
				break
			}
			switch p {
			case HexBytes:
				for _, b := range src[i : i+n] {
					w.hex(b)
				}
			case UnicodeEscapes:
				r, _ := codec.Decode8(src, i)
				var u [2]uint16
				for _, unit := range u[:codec.Encode16(u[:], r)] {
					w.unit(unit)
				}
			default:
				w.putBytes(src[i : i+n])
			}
			i += n
			continue
		}
		i++
	}
	if q.Close != 0 {
		w.put(q.Close)
	}
}

// ShouldEscape is a fast check whether Escape would change src (apart from
// adding quotes) or whether src needs quoting because of leading or trailing
// blanks. Callers may skip escaping if it returns false.
func ShouldEscape(src []byte, q Quotes, p Policy) bool {
	if len(src) == 0 {
		return false
	}
	if src[0] == ' ' || src[len(src)-1] == ' ' {
		return true
	}
	ascii := true
	for _, c := range src {
		switch {
		case c < 0x20 || c == 0x7F || c == '\\' || q.isQuote(c):
			return true
		case c >= 0x80:
			if p != PassUTF8 {
				return true
			}
			ascii = false
		}
	}
	return !ascii && !codec.Valid8(src)
}

// --- Unescaping ------------------------------------------------------------

// UnescapedLen returns the exact length of the unescaped form of src.
func UnescapedLen(src []byte, q Quotes) int {
	w := sink{}
	unescape(&w, src, q)
	return w.n
}

// UnescapeTo writes the unescaped form of src to dst and returns the number of
// bytes written. dst must hold at least UnescapedLen(src, q) bytes.
func UnescapeTo(dst []byte, src []byte, q Quotes) int {
	if dst == nil {
		dst = []byte{}
	}
	w := sink{dst: dst}
	unescape(&w, src, q)
	return w.n
}

// Unescape returns the unescaped form of src. If src starts with q.Open, the
// quote is skipped; an unescaped q.Close ends the scan. Neither quote is
// part of the result.
// An error is returned only if the result cannot be allocated.
func Unescape(src []byte, q Quotes) (text.Text, error) {
	t := text.New()
	if err := t.Resize(UnescapedLen(src, q)); err != nil {
		return t, err
	}
	UnescapeTo(t.Bytes(), src, q)
	return t, nil
}

// UnescapeString is Unescape for strings.
func UnescapeString(s string, q Quotes) string {
	src := []byte(s)
	dst := make([]byte, UnescapedLen(src, q))
	UnescapeTo(dst, src, q)
	return string(dst)
}

// unescape is the common scan of the measure and the write pass.
func unescape(w *sink, src []byte, q Quotes) {
	i := 0
	if q.Open != 0 && len(src) > 0 && src[0] == q.Open {
		i = 1
	}
	for i < len(src) {
		c := src[i]
		if q.Close != 0 && c == q.Close {
			return
		}
		i++
		if c != '\\' {
			w.put(c)
			continue
		}
		if i == len(src) { // dangling backslash
			w.put('\\')
			return
		}
		e := src[i]
		i++
		if ctrl, ok := unnamed[e]; ok {
			w.put(ctrl)
			continue
		}
		switch {
		case e == 'x':
			v, n := hexValue(src[i:], 2)
			if n == 0 {
				w.put('\\')
				w.put('x')
				break
			}
			w.put(byte(v))
			i += n
		case e == 'u':
			v, n := hexValue(src[i:], 4)
			if n < 4 {
				w.put('\\')
				w.put('u')
				break
			}
			i += n
			r := rune(v)
			if codec.IsLeadSurrogate(uint16(v)) {
				if tail, ok := tailEscape(src[i:]); ok {
					r = r<<10 + rune(tail) + codec.SurrogateOffset
					i += 6
				}
			}
			w.putRune(r)
		case '0' <= e && e <= '7':
			v := uint(e - '0')
			for k := 0; k < 2 && i < len(src) && isOctal(src[i]); k++ {
				next := v<<3 | uint(src[i]-'0')
				if next > 0xFF {
					break
				}
				v = next
				i++
			}
			w.put(byte(v))
		case e == '\r':
			if i < len(src) && src[i] == '\n' {
				i++
			}
		case e == '\n':
			// line continuation
		default:
			w.put(e)
		}
	}
}

// tailEscape checks whether b starts with \uHHHH denoting a tail surrogate.
func tailEscape(b []byte) (uint16, bool) {
	if len(b) < 6 || b[0] != '\\' || b[1] != 'u' {
		return 0, false
	}
	v, n := hexValue(b[2:], 4)
	if n < 4 || !codec.IsTailSurrogate(uint16(v)) {
		return 0, false
	}
	return uint16(v), true
}

// hexValue parses up to max hex digits at the start of b.
func hexValue(b []byte, max int) (uint32, int) {
	var v uint32
	n := 0
	for n < max && n < len(b) {
		d, ok := hexDigit(b[n])
		if !ok {
			break
		}
		v = v<<4 | uint32(d)
		n++
	}
	return v, n
}

func hexDigit(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

func isOctal(c byte) bool {
	return '0' <= c && c <= '7'
}
