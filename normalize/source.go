package normalize

import (
	"unicode/utf8"

	"github.com/npillmayer/utext/codec"
	"golang.org/x/text/unicode/norm"
)

// Kind tags a decomposition mapping.
type Kind uint8

// Decomposition kinds.
const (
	Canonical Kind = iota
	Compatibility
)

func (k Kind) String() string {
	if k == Canonical {
		return "canonical"
	}
	return "compatibility"
}

// Decomposition is the decomposition descriptor of a code point: a mapping
// to one or more code points and whether the mapping is canonical.
type Decomposition struct {
	Kind    Kind
	Mapping []rune
}

// Source supplies the character data for normalization.
//
// Implementations must be safe for concurrent reads.
type Source interface {
	// Decomposition returns the decomposition descriptor of r, if any.
	// The mapping may itself contain decomposable code points.
	Decomposition(r rune) (Decomposition, bool)
	// CombiningClass returns the canonical combining class of r.
	CombiningClass(r rune) uint8
	// Compose returns the primary composite of the pair (a, b), if any.
	Compose(a, b rune) (rune, bool)
}

// --- x/text -----------------------------------------------------------------

// XTextSource reads character data from the tables of
// golang.org/x/text/unicode/norm.
type XTextSource struct{}

var _ Source = XTextSource{}

// Decomposition returns the canonical decomposition of r if there is one,
// the compatibility decomposition otherwise. Hangul syllables are left to the
// arithmetic decomposition of the engine.
func (XTextSource) Decomposition(r rune) (Decomposition, bool) {
	if !codec.ValidRune(r) || r < 0x80 || IsHangulSyllable(r) {
		return Decomposition{}, false
	}
	s := string(r)
	if dec := norm.NFD.PropertiesString(s).Decomposition(); len(dec) > 0 {
		return Decomposition{Kind: Canonical, Mapping: []rune(string(dec))}, true
	}
	if dec := norm.NFKD.PropertiesString(s).Decomposition(); len(dec) > 0 {
		return Decomposition{Kind: Compatibility, Mapping: []rune(string(dec))}, true
	}
	return Decomposition{}, false
}

// CombiningClass returns the canonical combining class of r, 0 for code points
// which are not valid scalar values.
func (XTextSource) CombiningClass(r rune) uint8 {
	if r < 0x300 || !codec.ValidRune(r) {
		return 0
	}
	return norm.NFD.PropertiesString(string(r)).CCC()
}

// Compose asks x/text to compose the pair and accepts the result only if it
// is a single code point.
func (XTextSource) Compose(a, b rune) (rune, bool) {
	if !codec.ValidRune(a) || !codec.ValidRune(b) {
		return 0, false
	}
	if norm.NFC.PropertiesString(string(b)).BoundaryBefore() {
		return 0, false // b never combines with a preceding code point
	}
	composed := norm.NFC.String(string([]rune{a, b}))
	c, n := utf8.DecodeRuneInString(composed)
	if c == utf8.RuneError || n != len(composed) {
		return 0, false
	}
	return c, true
}

// --- Tables -----------------------------------------------------------------

// TableSource is a Source holding its data in maps. The zero value is an empty
// source in which every code point is a starter without mappings. Fill it
// before use; it must not be modified while an engine reads from it.
type TableSource struct {
	classes        map[rune]uint8
	decompositions map[rune]Decomposition
	compositions   map[[2]rune]rune
}

var _ Source = (*TableSource)(nil)

// NewTableSource creates an empty table source.
func NewTableSource() *TableSource {
	return &TableSource{
		classes:        make(map[rune]uint8),
		decompositions: make(map[rune]Decomposition),
		compositions:   make(map[[2]rune]rune),
	}
}

// SetClass sets the canonical combining class of r.
func (ts *TableSource) SetClass(r rune, ccc uint8) *TableSource {
	ts.classes[r] = ccc
	return ts
}

// AddDecomposition sets the decomposition descriptor of r.
func (ts *TableSource) AddDecomposition(r rune, kind Kind, mapping ...rune) *TableSource {
	assert(len(mapping) > 0, "TableSource: empty decomposition mapping")
	ts.decompositions[r] = Decomposition{Kind: kind, Mapping: mapping}
	return ts
}

// AddComposition registers c as the primary composite of (a, b).
func (ts *TableSource) AddComposition(a, b, c rune) *TableSource {
	ts.compositions[[2]rune{a, b}] = c
	return ts
}

// AddPair registers a canonical two-element decomposition of c together with
// the inverse composition.
func (ts *TableSource) AddPair(c, a, b rune) *TableSource {
	return ts.AddDecomposition(c, Canonical, a, b).AddComposition(a, b, c)
}

func (ts *TableSource) Decomposition(r rune) (Decomposition, bool) {
	d, ok := ts.decompositions[r]
	return d, ok
}

func (ts *TableSource) CombiningClass(r rune) uint8 {
	return ts.classes[r]
}

func (ts *TableSource) Compose(a, b rune) (rune, bool) {
	c, ok := ts.compositions[[2]rune{a, b}]
	return c, ok
}
