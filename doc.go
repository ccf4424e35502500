/*
Package utext is a compact toolkit for UTF-8 text values.

The toolkit consists of four components, each in its own package:

  - text: a growable text value with O(1) length, 16-byte rounded storage,
    NUL termination and a shared, allocation-free empty value.
  - codec: conversions between the 8-, 16- and 32-bit Unicode encoding forms,
    all following a measure-then-write discipline.
  - escape: an escape/unescape transform producing ASCII-safe, optionally
    quoted representations of arbitrary bytes.
  - normalize: Unicode normalization (NFD, NFC, NFKD, NFKC) over pluggable
    character data.

This package ties the components together for the most frequent use: storing
text values in key/value configuration files. A [Config] selects the quote
characters, the escape policy and an optional normalization form. It may be
read from a schuko configuration with [ConfigFrom].

	conf, _ := utext.ConfigFrom(appConfig)
	stored, _ := conf.Encode([]byte(" leading blank"))   // `" leading blank"`
	value, _ := conf.Decode(stored.Bytes())

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package utext

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'utext'
func tracer() tracing.Trace {
	return tracing.Select("utext")
}
