/*
Package escape converts raw text bytes to an ASCII-safe, optionally quoted
representation and back.

Control bytes, the backslash and the caller's quote characters are always
escaped. Non-ASCII bytes are handled according to a [Policy]:

	PassUTF8        well-formed UTF-8 sequences are copied unchanged
	HexBytes        every byte of a UTF-8 sequence becomes \xHH
	UnicodeEscapes  every code point becomes \uHHHH (a surrogate pair of
	                two \uHHHH for code points beyond U+FFFF)

Bytes which are not part of a well-formed UTF-8 sequence are emitted as \xHH
under every policy, including PassUTF8. PassUTF8 is therefore not a strict
no-op on input containing truncated sequences.

[Unescape] is the exact inverse of [Escape]. It additionally understands octal
escapes \0 to \377 and backslash line continuations. Neither direction ever
fails on malformed input: escape sequences which cannot be decoded are copied
literally.

Both directions measure the exact output length first and then write the
output once into a precisely sized [text.Text].

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package escape

import (
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'utext.escape'
func tracer() tracing.Trace {
	return tracing.Select("utext.escape")
}

// Policy selects how well-formed non-ASCII UTF-8 is escaped.
type Policy int

// Escaping policies.
const (
	PassUTF8 Policy = iota
	HexBytes
	UnicodeEscapes
)

var policyNames = [...]string{"utf8", "hex", "unicode"}

func (p Policy) String() string {
	if p < 0 || int(p) >= len(policyNames) {
		return fmt.Sprintf("Policy(%d)", int(p))
	}
	return policyNames[p]
}

// ParsePolicy returns the policy named by s ("utf8", "hex" or "unicode",
// case-insensitive).
func ParsePolicy(s string) (Policy, error) {
	for i, name := range policyNames {
		if strings.EqualFold(s, name) {
			return Policy(i), nil
		}
	}
	tracer().Errorf("unknown escape policy %q", s)
	return PassUTF8, fmt.Errorf("escape: unknown policy %q", s)
}

// Quotes holds the opening and closing quote characters. A zero byte means
// "no quote". Quote characters should be ASCII.
type Quotes struct {
	Open, Close byte
}

// Frequently used quote pairs.
var (
	NoQuotes     = Quotes{}
	DoubleQuotes = Quotes{'"', '"'}
	SingleQuotes = Quotes{'\'', '\''}
)

func (q Quotes) isQuote(c byte) bool {
	return c != 0 && (c == q.Open || c == q.Close)
}
