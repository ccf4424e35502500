package normalize

import (
	"bytes"
	"fmt"

	"github.com/npillmayer/utext/codec"
	"github.com/npillmayer/utext/text"
)

// MaxExpansion is the maximum number of code points a single code point may
// decompose to, over all levels of recursion. The deepest chain in the
// Unicode data is the compatibility decomposition of U+FDFA.
const MaxExpansion = 18

// rawByte is the base of the code values standing in for bytes which are not
// part of well-formed UTF-8. rawByte+b is negative for every byte b, so it
// never collides with a code point and never has normalization data.
const rawByte = -0x100

// Engine normalizes text using the character data of a Source.
// An Engine is stateless apart from its source and may be used concurrently.
type Engine struct {
	src Source
}

var defaultEngine = &Engine{src: XTextSource{}}

// New creates an engine reading from src. A nil src selects XTextSource.
func New(src Source) *Engine {
	if src == nil {
		return defaultEngine
	}
	tracer().Debugf("normalization engine with source %T", src)
	return &Engine{src: src}
}

// Default returns the engine backed by XTextSource.
func Default() *Engine {
	return defaultEngine
}

// Source returns the character data source of e.
func (e *Engine) Source() Source {
	return e.src
}

// --- Decomposition ----------------------------------------------------------

// expansion is the scratch space for the decomposition of one code point.
type expansion struct {
	buf [MaxExpansion]rune
	n   int
}

func (x *expansion) push(r rune) {
	if x.n == MaxExpansion {
		tracer().Errorf("decomposition exceeds %d code points", MaxExpansion)
		panic(fmt.Sprintf("normalize: decomposition exceeds MaxExpansion (%d)", MaxExpansion))
	}
	x.buf[x.n] = r
	x.n++
}

// expand appends the full decomposition of r to x. Compatibility mappings are
// applied only if compat is set.
func (e *Engine) expand(x *expansion, r rune, compat bool, depth int) {
	if depth > MaxExpansion {
		panic(fmt.Sprintf("normalize: cyclic decomposition of %U", r))
	}
	if r >= 0 {
		if d, ok := e.src.Decomposition(r); ok && (d.Kind == Canonical || compat) {
			for _, m := range d.Mapping {
				e.expand(x, m, compat, depth+1)
			}
			return
		}
		if l, v, t, ok := DecomposeHangul(r); ok {
			x.push(l)
			x.push(v)
			if t != 0 {
				x.push(t)
			}
			return
		}
	}
	x.push(r)
}

// DecomposeRunes returns the fully decomposed and canonically ordered form of
// rs. rs is not modified.
func (e *Engine) DecomposeRunes(rs []rune, canonicalOnly bool) []rune {
	out, _ := e.decompose(rs, canonicalOnly)
	return out
}

// decompose returns the decomposition of rs together with the combining
// classes of the result.
func (e *Engine) decompose(rs []rune, canonicalOnly bool) ([]rune, []uint8) {
	out := make([]rune, 0, len(rs)+len(rs)/2)
	var x expansion
	for _, r := range rs {
		x.n = 0
		e.expand(&x, r, !canonicalOnly, 0)
		out = append(out, x.buf[:x.n]...)
	}
	classes := make([]uint8, len(out))
	for i, r := range out {
		classes[i] = e.class(r)
	}
	reorder(out, classes)
	return out, classes
}

func (e *Engine) class(r rune) uint8 {
	if r < 0 {
		return 0
	}
	return e.src.CombiningClass(r)
}

// reorder puts runs of non-starters into ascending order of their combining
// class. Marks of equal class keep their relative order, and no mark moves
// across a starter.
func reorder(rs []rune, classes []uint8) {
	for i := 1; i < len(rs); {
		cc, prev := classes[i], classes[i-1]
		if cc > 0 && prev > cc {
			rs[i], rs[i-1] = rs[i-1], rs[i]
			classes[i], classes[i-1] = prev, cc
			if i > 1 {
				i--
			}
			continue
		}
		i++
	}
}

// --- Composition ------------------------------------------------------------

// ComposeRunes returns the canonical composition of the decomposition of rs.
func (e *Engine) ComposeRunes(rs []rune, canonicalOnly bool) []rune {
	out, classes := e.decompose(rs, canonicalOnly)
	return e.compose(out, classes)
}

// compose combines decomposed, canonically ordered rs in place and returns
// the shortened slice.
func (e *Engine) compose(rs []rune, classes []uint8) []rune {
	starter := -1
	var block uint8 // highest class seen since the starter
	w := 0
	for i, r := range rs {
		cc := classes[i]
		if starter >= 0 && (block == 0 || cc > block) {
			if c, ok := e.lookup(rs[starter], r); ok {
				rs[starter] = c
				continue
			}
		}
		rs[w] = r
		if cc == 0 {
			starter, block = w, 0
		} else {
			block = cc
		}
		w++
	}
	return rs[:w]
}

func (e *Engine) lookup(a, b rune) (rune, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if c, ok := ComposeHangul(a, b); ok {
		return c, true
	}
	return e.src.Compose(a, b)
}

// --- Bytes ------------------------------------------------------------------

// Decompose returns the NFD (canonicalOnly) or NFKD form of b.
func (e *Engine) Decompose(b []byte, canonicalOnly bool) []byte {
	if isASCII(b) {
		return bytes.Clone(b)
	}
	out, _ := e.decompose(decode(b), canonicalOnly)
	return encode(out)
}

// Compose returns the NFC (canonicalOnly) or NFKC form of b.
func (e *Engine) Compose(b []byte, canonicalOnly bool) []byte {
	if isASCII(b) {
		return bytes.Clone(b)
	}
	out, classes := e.decompose(decode(b), canonicalOnly)
	return encode(e.compose(out, classes))
}

// Normalize returns b in normalization form f.
func (e *Engine) Normalize(b []byte, f Form) []byte {
	if f.composed() {
		return e.Compose(b, f.canonicalOnly())
	}
	return e.Decompose(b, f.canonicalOnly())
}

// NormalizeText returns t in normalization form f as a new Text. An error is
// returned only if the result cannot be allocated.
func (e *Engine) NormalizeText(t text.Text, f Form) (text.Text, error) {
	src := t.Bytes()
	if isASCII(src) {
		return t.Clone(), nil
	}
	out, classes := e.decompose(decode(src), f.canonicalOnly())
	if f.composed() {
		out = e.compose(out, classes)
	}
	r := text.New()
	if err := r.Resize(measure(out)); err != nil {
		return t, err
	}
	write(r.Bytes(), out)
	return r, nil
}

// IsNormalized reports whether b is in normalization form f.
func (e *Engine) IsNormalized(b []byte, f Form) bool {
	if isASCII(b) {
		return true
	}
	return bytes.Equal(e.Normalize(b, f), b)
}

// --- Package level ----------------------------------------------------------

// Decompose is Decompose of the default engine.
func Decompose(b []byte, canonicalOnly bool) []byte {
	return defaultEngine.Decompose(b, canonicalOnly)
}

// Compose is Compose of the default engine.
func Compose(b []byte, canonicalOnly bool) []byte {
	return defaultEngine.Compose(b, canonicalOnly)
}

// Normalize is Normalize of the default engine.
func Normalize(b []byte, f Form) []byte {
	return defaultEngine.Normalize(b, f)
}

// String returns s in normalization form f, using the default engine.
func String(s string, f Form) string {
	return string(defaultEngine.Normalize([]byte(s), f))
}

// IsNormalized is IsNormalized of the default engine.
func IsNormalized(b []byte, f Form) bool {
	return defaultEngine.IsNormalized(b, f)
}

// --- Helpers ----------------------------------------------------------------

func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 {
			return false
		}
	}
	return true
}

// decode converts b to code points. Bytes not belonging to well-formed UTF-8
// are mapped to rawByte+b.
func decode(b []byte) []rune {
	rs := make([]rune, 0, len(b))
	for i := 0; i < len(b); {
		r, w, ok := codec.Decode8Checked(b, i)
		if !ok {
			r = rawByte + rune(b[i])
		}
		rs = append(rs, r)
		i += w
	}
	return rs
}

// measure returns the length of the 8-bit form of rs.
func measure(rs []rune) int {
	n := 0
	for _, r := range rs {
		if r < 0 {
			n++
			continue
		}
		n += codec.Len8(r)
	}
	return n
}

// write writes the 8-bit form of rs to dst, which must have been sized by
// measure.
func write(dst []byte, rs []rune) int {
	n := 0
	for _, r := range rs {
		if r < 0 {
			dst[n] = byte(r - rawByte)
			n++
			continue
		}
		n += codec.Encode8(dst[n:], r)
	}
	return n
}

func encode(rs []rune) []byte {
	dst := make([]byte, measure(rs))
	write(dst, rs)
	return dst
}
