/*
Package normalize implements Unicode normalization (NFD, NFC, NFKD, NFKC) for
UTF-8 encoded text.

Normalization is split into the algorithm and its data. The algorithm lives in
[Engine]: recursive decomposition, canonical ordering of combining marks and
canonical composition. The data is supplied by a [Source], which answers three
questions for a code point: its decomposition descriptor, its canonical
combining class and, for a pair of code points, their primary composite.
[XTextSource] answers them from the tables of golang.org/x/text/unicode/norm
and is the default. [TableSource] is a map-backed source for custom data and
for tests.

Hangul syllables are decomposed and composed arithmetically, independent of
the source in use.

A single code point never expands to more than [MaxExpansion] code points.
Decomposition data violating this bound makes the engine panic.

Normalization never fails. Code points without data pass through unchanged,
as do bytes which are not part of well-formed UTF-8.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package normalize

import (
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'utext.normalize'
func tracer() tracing.Trace {
	return tracing.Select("utext.normalize")
}

// Form is a Unicode normalization form.
type Form int

// Normalization forms.
const (
	NFC Form = iota
	NFD
	NFKC
	NFKD
)

var formNames = [...]string{"NFC", "NFD", "NFKC", "NFKD"}

func (f Form) String() string {
	if f < 0 || int(f) >= len(formNames) {
		return fmt.Sprintf("Form(%d)", int(f))
	}
	return formNames[f]
}

// ParseForm returns the form named by s, e.g. "nfc" or "NFKD".
func ParseForm(s string) (Form, error) {
	for i, name := range formNames {
		if strings.EqualFold(s, name) {
			return Form(i), nil
		}
	}
	tracer().Errorf("unknown normalization form %q", s)
	return NFC, fmt.Errorf("normalize: unknown form %q", s)
}

// canonicalOnly is true for forms which do not apply compatibility mappings.
func (f Form) canonicalOnly() bool {
	return f == NFC || f == NFD
}

func (f Form) composed() bool {
	return f == NFC || f == NFKC
}

// assert panics when condition is false.
func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
