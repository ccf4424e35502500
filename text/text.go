package text

import (
	"bytes"

	"github.com/npillmayer/utext/codec"
	"github.com/rivo/uniseg"
)

// RoundUnit is the granularity of storage allocations in bytes.
const RoundUnit = 16

// MaxLen is the maximum content length of a Text. Requests beyond it fail
// with ErrOutOfMemory.
const MaxLen = 1<<31 - 1 - RoundUnit

// store is the storage of a non-empty Text. Copies of a Text share their
// store, so a store is not changed by mutators once it has been handed to a
// Text; every mutation builds a new one.
//
// Invariants: len(buf) is a multiple of RoundUnit and len(buf) > n;
// buf[n] == 0.
type store struct {
	n   int
	buf []byte
}

// emptyStore is shared by all empty Text values. It must never be written.
var emptyStore = &store{buf: []byte{0}}

// Text is a growable, NUL-terminated run of UTF-8 bytes. The zero value is an
// empty Text, ready to use.
type Text struct {
	s *store
}

// roundedSize returns the allocation size for content length n, including
// the terminator.
func roundedSize(n int) int {
	return (n + RoundUnit) &^ (RoundUnit - 1)
}

func (t Text) st() *store {
	if t.s == nil {
		return emptyStore
	}
	return t.s
}

// allocate returns a zeroed buffer of size bytes. Runtime allocation panics
// are turned into errors.
func allocate(size int) (buf []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
			} else {
				err = ErrOutOfMemory
			}
			buf = nil
		}
	}()
	tracer().Debugf("text: allocating %d bytes", size)
	buf = make([]byte, size)
	return
}

// --- Construction ----------------------------------------------------------

// New returns an empty Text referring to the shared sentinel.
func New() Text {
	return Text{s: emptyStore}
}

// Make returns a Text of n zero bytes.
func Make(n int) (Text, error) {
	t := New()
	err := t.Resize(n)
	return t, err
}

// FromBytes returns a Text holding a copy of b.
// It panics with a *BufferError if len(b) exceeds MaxLen.
func FromBytes(b []byte) Text {
	return mustFrom(b)
}

// FromString returns a Text holding s.
// It panics with a *BufferError if len(s) exceeds MaxLen.
func FromString(s string) Text {
	return mustFrom(s)
}

// FromCString returns a Text holding the bytes of b up to, not including, the
// first NUL byte. If b contains no NUL, all of b is used.
func FromCString(b []byte) Text {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return mustFrom(b)
}

// FromUTF16 returns a Text holding the UTF-8 form of u. The length is measured
// first and the content is written once, directly into the Text's storage.
func FromUTF16(u []uint16) Text {
	t := New()
	if err := t.Resize(codec.Measure8From16(u)); err != nil {
		panic(err)
	}
	codec.Write8From16(t.Bytes(), u)
	return t
}

// FromRunes returns a Text holding the UTF-8 form of r.
func FromRunes(r []rune) Text {
	t := New()
	if err := t.Resize(codec.Measure8From32(r)); err != nil {
		panic(err)
	}
	codec.Write8From32(t.Bytes(), r)
	return t
}

func mustFrom[B []byte | string](b B) Text {
	t := New()
	if err := splice(&t, "assign", 0, 0, b); err != nil {
		panic(err)
	}
	return t
}

// --- Access ----------------------------------------------------------------

// Len returns the content length in bytes.
func (t Text) Len() int {
	return t.st().n
}

// Cap returns the size of the storage allocation, including room for the
// terminator. It is 0 for empty values.
func (t Text) Cap() int {
	s := t.st()
	if s == emptyStore {
		return 0
	}
	return len(s.buf)
}

// IsEmpty returns true if t has no content.
func (t Text) IsEmpty() bool {
	return t.st().n == 0
}

// Bytes returns the content of t. The slice aliases t's storage, which is
// shared with copies of t. Writing through it is meant for filling a Text
// right after Make or Resize, before the value is copied.
func (t Text) Bytes() []byte {
	s := t.st()
	return s.buf[:s.n:s.n]
}

// CBytes returns the content of t followed by its NUL terminator, without
// copying. The slice must be treated as read-only.
func (t Text) CBytes() []byte {
	s := t.st()
	return s.buf[: s.n+1 : s.n+1]
}

// String returns the content of t as a string.
func (t Text) String() string {
	return string(t.Bytes())
}

// At returns the byte at position i. It panics if i is out of range.
func (t Text) At(i int) byte {
	return t.Bytes()[i]
}

// Runes returns the code points of t.
func (t Text) Runes() []rune {
	return codec.ToRunes(t.Bytes())
}

// UTF16 returns the 16-bit form of t.
func (t Text) UTF16() []uint16 {
	return codec.ToUTF16(t.Bytes())
}

// RuneCount returns the number of code points in t.
func (t Text) RuneCount() int {
	return codec.Measure32From8(t.Bytes())
}

// GraphemeCount returns the number of user-perceived characters in t.
func (t Text) GraphemeCount() int {
	return uniseg.GraphemeClusterCount(t.String())
}

// DisplayWidth returns the width of t in monospace cells.
func (t Text) DisplayWidth() int {
	return uniseg.StringWidth(t.String())
}

// Clone returns an independent copy of t.
func (t Text) Clone() Text {
	if t.IsEmpty() {
		return New()
	}
	return FromBytes(t.Bytes())
}

// Substr returns a copy of at most n bytes of t starting at pos. pos and n are
// clamped to the content.
func (t Text) Substr(pos, n int) Text {
	pos, n = clampSpan(t.Len(), pos, n)
	return FromBytes(t.Bytes()[pos : pos+n])
}

// Index returns the byte position of the first occurrence of sub in t, or -1.
func (t Text) Index(sub string) int {
	return bytes.Index(t.Bytes(), []byte(sub))
}

// LastIndex returns the byte position of the last occurrence of sub in t, or -1.
func (t Text) LastIndex(sub string) int {
	return bytes.LastIndex(t.Bytes(), []byte(sub))
}

// HasPrefix tests whether t begins with prefix.
func (t Text) HasPrefix(prefix string) bool {
	return bytes.HasPrefix(t.Bytes(), []byte(prefix))
}

// HasSuffix tests whether t ends with suffix.
func (t Text) HasSuffix(suffix string) bool {
	return bytes.HasSuffix(t.Bytes(), []byte(suffix))
}

// --- Mutation --------------------------------------------------------------

// Resize sets the content length of t to n. New bytes are zero. t gets private
// storage of the smallest rounded size holding n bytes and the terminator;
// copies of t keep their content. n == 0 releases the storage and reverts t
// to the shared sentinel.
//
// If storage cannot be allocated, Resize returns an error wrapping
// ErrOutOfMemory and t is unchanged.
func (t *Text) Resize(n int) error {
	if n < 0 || n > MaxLen {
		return errAlloc("resize", n, nil)
	}
	if n == 0 {
		t.s = emptyStore
		return nil
	}
	s := t.st()
	buf, err := allocate(roundedSize(n))
	if err != nil {
		return errAlloc("resize", n, err)
	}
	copy(buf, s.buf[:min(s.n, n)])
	t.s = &store{n: n, buf: buf}
	return nil
}

// Clear makes t empty.
func (t *Text) Clear() {
	t.s = emptyStore
}

// Truncate shortens t to n bytes. It does nothing if n >= t.Len().
func (t *Text) Truncate(n int) error {
	if n < 0 {
		n = 0
	}
	if n >= t.Len() {
		return nil
	}
	return t.Resize(n)
}

// Assign replaces the content of t with b.
func (t *Text) Assign(b []byte) error {
	return splice(t, "assign", 0, t.Len(), b)
}

// AssignString replaces the content of t with s.
func (t *Text) AssignString(s string) error {
	return splice(t, "assign", 0, t.Len(), s)
}

// Insert inserts b at byte position pos. pos is clamped to [0, t.Len()].
func (t *Text) Insert(pos int, b []byte) error {
	pos, _ = clampSpan(t.Len(), pos, 0)
	return splice(t, "insert", pos, 0, b)
}

// InsertString inserts s at byte position pos. pos is clamped to [0, t.Len()].
func (t *Text) InsertString(pos int, s string) error {
	pos, _ = clampSpan(t.Len(), pos, 0)
	return splice(t, "insert", pos, 0, s)
}

// Erase removes up to n bytes starting at pos. pos and n are clamped to the
// content.
func (t *Text) Erase(pos, n int) error {
	pos, n = clampSpan(t.Len(), pos, n)
	if n == 0 {
		return nil
	}
	return splice(t, "erase", pos, n, "")
}

// Append appends b to t.
func (t *Text) Append(b []byte) error {
	return splice(t, "append", t.Len(), 0, b)
}

// AppendString appends s to t.
func (t *Text) AppendString(s string) error {
	return splice(t, "append", t.Len(), 0, s)
}

// AppendRune appends the UTF-8 form of r to t.
func (t *Text) AppendRune(r rune) error {
	var buf [4]byte
	n := codec.Encode8(buf[:], r)
	return splice(t, "append", t.Len(), 0, buf[:n])
}

// Replace replaces count bytes starting at pos with b.
// It panics unless 0 <= pos, 0 <= count and pos+count <= t.Len().
func (t *Text) Replace(pos, count int, b []byte) error {
	if pos < 0 || count < 0 || pos+count > t.Len() {
		panic("Text.Replace: invalid replace span")
	}
	return splice(t, "replace", pos, count, b)
}

// ReplaceString replaces count bytes starting at pos with s.
// It panics unless 0 <= pos, 0 <= count and pos+count <= t.Len().
func (t *Text) ReplaceString(pos, count int, s string) error {
	if pos < 0 || count < 0 || pos+count > t.Len() {
		panic("Text.ReplaceString: invalid replace span")
	}
	return splice(t, "replace", pos, count, s)
}

// splice replaces del bytes at pos with ins. pos and del must already be
// valid. The new length is established first, then head, ins and tail are
// copied into fresh storage of that length. ins may point into t's own
// storage, which stays untouched.
func splice[B []byte | string](t *Text, op string, pos, del int, ins B) error {
	s := t.st()
	oldN := s.n
	assert(pos >= 0 && del >= 0 && pos+del <= oldN, "Text: invalid splice span")
	n := oldN - del + len(ins)
	if n < 0 || n > MaxLen {
		return errAlloc(op, n, nil)
	}
	if n == 0 {
		t.s = emptyStore
		return nil
	}
	buf, err := allocate(roundedSize(n))
	if err != nil {
		return errAlloc(op, n, err)
	}
	copy(buf, s.buf[:pos])
	copy(buf[pos:], ins)
	copy(buf[pos+len(ins):], s.buf[pos+del:oldN])
	t.s = &store{n: n, buf: buf}
	return nil
}

// clampSpan clamps pos to [0, length] and n to [0, length-pos].
func clampSpan(length, pos, n int) (int, int) {
	if pos < 0 {
		pos = 0
	} else if pos > length {
		pos = length
	}
	if n < 0 {
		n = 0
	} else if n > length-pos {
		n = length - pos
	}
	return pos, n
}
