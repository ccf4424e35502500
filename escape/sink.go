package escape

import "github.com/npillmayer/utext/codec"

const hexDigits = "0123456789ABCDEF"

// sink is the output of a scan. In the measure pass dst is nil and only n
// advances; in the write pass dst has been sized by the measure pass.
type sink struct {
	dst []byte
	n   int
}

func (w *sink) put(c byte) {
	if w.dst != nil {
		w.dst[w.n] = c
	}
	w.n++
}

func (w *sink) putBytes(b []byte) {
	if w.dst != nil {
		copy(w.dst[w.n:], b)
	}
	w.n += len(b)
}

// esc emits a backslash followed by c.
func (w *sink) esc(c byte) {
	if w.dst != nil {
		w.dst[w.n] = '\\'
		w.dst[w.n+1] = c
	}
	w.n += 2
}

// hex emits \xHH.
func (w *sink) hex(c byte) {
	if w.dst != nil {
		d := w.dst[w.n : w.n+4]
		d[0], d[1] = '\\', 'x'
		d[2], d[3] = hexDigits[c>>4], hexDigits[c&0xF]
	}
	w.n += 4
}

// unit emits \uHHHH.
func (w *sink) unit(u uint16) {
	if w.dst != nil {
		d := w.dst[w.n : w.n+6]
		d[0], d[1] = '\\', 'u'
		d[2], d[3] = hexDigits[u>>12], hexDigits[u>>8&0xF]
		d[4], d[5] = hexDigits[u>>4&0xF], hexDigits[u&0xF]
	}
	w.n += 6
}

// putRune emits the UTF-8 form of r.
func (w *sink) putRune(r rune) {
	if w.dst != nil {
		w.n += codec.Encode8(w.dst[w.n:], r)
		return
	}
	w.n += codec.Len8(r)
}
