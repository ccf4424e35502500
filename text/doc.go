/*
Package text provides Text, a compact, growable text value holding UTF-8
encoded bytes.

A Text keeps its byte length next to its data, so Len is O(1). Storage is
allocated in units of 16 bytes and always holds one extra terminator byte
(0) behind the content, so the content may be handed to APIs expecting a
NUL-terminated run without copying (see [Text.CBytes]). Embedded NUL bytes
are permitted and counted.

All empty values share one immutable, process-wide sentinel. Creating,
copying or clearing an empty Text never allocates. The sentinel is never
written through; the first mutation producing content allocates private
storage.

Text is a value type. A copy made by assignment shares storage with its
source until one of them is mutated: mutators never write to storage a Text
already holds, they allocate the new content and leave other copies as they
were. [Text.Clone] returns a value with storage of its own right away.

Comparison is byte-wise. [CompareFold] folds ASCII letters only, and
[CompareNatural] compares runs of decimal digits by numeric value, so that
"file2" sorts before "file10".

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package text

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'utext.text'
func tracer() tracing.Trace {
	return tracing.Select("utext.text")
}

// assert panics when condition is false.
func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
