package text

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Preparation ------------------------------------------------

type TextTestEnviron struct {
	suite.Suite
}

// listen for 'go test' command --> run test methods
func TestTextFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "utext.text")
	defer teardown()
	suite.Run(t, new(TextTestEnviron))
}

// run once, before test suite methods
func (env *TextTestEnviron) SetupSuite() {
	env.T().Log("Setting up test suite")
	tracing.Select("utext.text").SetTraceLevel(tracing.LevelInfo)
}

// checkTerminated asserts the storage invariants of t.
func (env *TextTestEnviron) checkTerminated(t Text) {
	c := t.CBytes()
	env.Require().Equal(t.Len()+1, len(c), "CBytes must include the terminator")
	env.Equal(byte(0), c[len(c)-1], "content must be followed by NUL")
	if !t.IsEmpty() {
		env.Equal(0, t.Cap()%RoundUnit, "capacity must be a multiple of the rounding unit")
		env.Greater(t.Cap(), t.Len())
		env.Less(t.Cap(), t.Len()+1+RoundUnit, "capacity must be the smallest rounded size")
	} else {
		env.True(t.st() == emptyStore, "empty text must use the sentinel")
	}
}

// --- Tests -----------------------------------------------------------------

func (env *TextTestEnviron) TestSentinelSharing() {
	a, b := New(), New()
	var z Text
	env.True(a.st() == b.st(), "two empty texts must share storage")
	env.True(a.st() == z.st(), "zero value must share storage with New()")
	env.Equal(0, a.Cap())
	//
	allocs := testing.AllocsPerRun(100, func() {
		x := New()
		y := x
		y.Clear()
		var w Text
		w.Clear()
		_ = x.Len() + y.Len() + w.Len()
		_ = x.Bytes()
		_ = w.IsEmpty()
	})
	env.Equal(0.0, allocs, "empty values must never allocate")
}

func (env *TextTestEnviron) TestSentinelNeverWritten() {
	t := New()
	env.Require().NoError(t.AppendString("x"))
	env.False(t.st() == emptyStore, "first mutation must copy out of the sentinel")
	env.Equal([]byte{0}, emptyStore.buf, "sentinel must stay untouched")
	t.Clear()
	env.True(t.st() == emptyStore)
	env.Require().NoError(t.Resize(3))
	env.Equal([]byte{0, 0, 0}, t.Bytes())
	env.Equal([]byte{0}, emptyStore.buf)
}

func (env *TextTestEnviron) TestRoundedGrowth() {
	t := New()
	env.Require().NoError(t.Resize(1))
	env.Equal(16, t.Cap())
	env.Require().NoError(t.Resize(15)) // 15 + terminator fits in 16
	env.Equal(16, t.Cap())
	env.Require().NoError(t.Resize(16))
	env.Equal(32, t.Cap(), "crossing a size class must grow by one unit")
	env.Require().NoError(t.Resize(3))
	env.Equal(16, t.Cap(), "shrinking must re-derive the size class")
	env.checkTerminated(t)
	env.Require().NoError(t.Resize(0))
	env.checkTerminated(t)
}

func (env *TextTestEnviron) TestResizeZeroFill() {
	t := FromString("abcdef")
	env.Require().NoError(t.Resize(2))
	env.Require().NoError(t.Resize(6))
	env.Equal([]byte{'a', 'b', 0, 0, 0, 0}, t.Bytes(), "grown bytes must be zero")
	env.checkTerminated(t)
}

func (env *TextTestEnviron) TestOutOfMemory() {
	t := FromString("keep me")
	s := t.st()
	err := t.Resize(MaxLen + 1)
	env.Require().Error(err)
	env.True(errors.Is(err, ErrOutOfMemory))
	var berr *BufferError
	env.Require().True(errors.As(err, &berr))
	env.Equal("resize", berr.Op)
	env.Equal(MaxLen+1, berr.Requested)
	env.True(s == t.st(), "failed resize must leave the text unmodified")
	env.Equal("keep me", t.String())
	env.True(errors.Is(t.Resize(-1), ErrOutOfMemory))
	env.Equal("keep me", t.String())
}

func (env *TextTestEnviron) TestConstruction() {
	env.Equal("hello", FromString("hello").String())
	env.Equal("hello", FromBytes([]byte("hello")).String())
	env.Equal("abc", FromCString([]byte("abc\x00def")).String())
	env.Equal("abc", FromCString([]byte("abc")).String())
	env.True(FromCString([]byte{0, 'x'}).st() == emptyStore)
	env.Equal("a€😀", FromUTF16([]uint16{'a', 0x20AC, 0xD83D, 0xDE00}).String())
	env.Equal("a€😀", FromRunes([]rune{'a', 0x20AC, 0x1F600}).String())
	t, err := Make(20)
	env.Require().NoError(err)
	env.Equal(20, t.Len())
	env.checkTerminated(t)
	//
	nul := FromString("a\x00b")
	env.Equal(3, nul.Len(), "embedded NUL bytes are content")
	env.checkTerminated(nul)
}

func (env *TextTestEnviron) TestInsertEraseAppend() {
	t := New()
	env.Require().NoError(t.AppendString("world"))
	env.Require().NoError(t.InsertString(0, "hello "))
	env.Equal("hello world", t.String())
	env.checkTerminated(t)
	env.Require().NoError(t.Insert(100, []byte("!"))) // clamped to end
	env.Equal("hello world!", t.String())
	env.Require().NoError(t.InsertString(-5, ">")) // clamped to start
	env.Equal(">hello world!", t.String())
	env.Require().NoError(t.Erase(0, 1))
	env.Equal("hello world!", t.String())
	env.Require().NoError(t.Erase(5, 100)) // count clamped
	env.Equal("hello", t.String())
	env.Require().NoError(t.Erase(10, 1)) // position clamped, nothing to erase
	env.Equal("hello", t.String())
	env.checkTerminated(t)
	env.Require().NoError(t.AppendRune('ü'))
	env.Require().NoError(t.AppendRune(0x1F600))
	env.Equal("helloü😀", t.String())
	env.Require().NoError(t.Erase(0, t.Len()))
	env.checkTerminated(t)
}

func (env *TextTestEnviron) TestReplace() {
	t := FromString("the quick brown fox")
	env.Require().NoError(t.ReplaceString(4, 5, "slow"))
	env.Equal("the slow brown fox", t.String())
	env.Require().NoError(t.Replace(0, 3, []byte("a very")))
	env.Equal("a very slow brown fox", t.String())
	env.checkTerminated(t)
	env.Panics(func() { _ = t.ReplaceString(20, 5, "x") })
	env.Panics(func() { _ = t.Replace(-1, 1, nil) })
	env.NotPanics(func() { _ = t.ReplaceString(t.Len(), 0, "!") })
	env.Equal("a very slow brown fox!", t.String())
}

func (env *TextTestEnviron) TestSelfAliasing() {
	t := FromString("abcdef")
	env.Require().NoError(t.Insert(3, t.Bytes()))
	env.Equal("abcabcdefdef", t.String())
	u := FromString("0123456789")
	env.Require().NoError(u.Assign(u.Bytes()[2:6]))
	env.Equal("2345", u.String())
	env.checkTerminated(u)
	w := FromString("xyz")
	env.Require().NoError(w.Append(w.Bytes()))
	env.Equal("xyzxyz", w.String())
}

func (env *TextTestEnviron) TestCopiesAreIndependent() {
	a := FromString("abc")
	b := a
	env.Require().NoError(a.AppendString("x"))
	env.Equal("abcx", a.String())
	env.Equal("abc", b.String(), "appending to a must not change its copy")
	env.Equal(3, b.Len())
	env.checkTerminated(b)
	env.Require().NoError(b.AppendString("y"))
	env.Equal("abcy", b.String())
	env.Equal("abcx", a.String(), "appending to the copy must not change a")
	//
	c := FromString("hello")
	d, e := c, c
	env.Require().NoError(c.Truncate(2))
	env.Require().NoError(e.Resize(0))
	env.Equal("he", c.String())
	env.Equal("hello", d.String())
	env.checkTerminated(d)
	env.True(e.IsEmpty())
	//
	for _, mutate := range []func(t *Text) error{
		func(t *Text) error { return t.InsertString(1, "--") },
		func(t *Text) error { return t.Erase(0, 2) },
		func(t *Text) error { return t.ReplaceString(1, 3, "ELL") },
		func(t *Text) error { return t.AssignString("other") },
		func(t *Text) error { return t.Resize(7) },
		func(t *Text) error { return t.AppendRune('!') },
	} {
		x := FromString("hello")
		y := x
		env.Require().NoError(mutate(&x))
		env.NotEqual("hello", x.String())
		env.Equal("hello", y.String(), "mutation must leave copies unchanged")
		env.checkTerminated(x)
		env.checkTerminated(y)
	}
}

func (env *TextTestEnviron) TestCloneAndSubstr() {
	t := FromString("independent")
	c := t.Clone()
	c.Bytes()[0] = 'I'
	env.Equal("independent", t.String())
	env.Equal("Independent", c.String())
	env.Equal("pen", t.Substr(4, 3).String())
	env.Equal("dent", t.Substr(7, 100).String())
	env.True(t.Substr(50, 2).IsEmpty())
	env.Equal(2, t.Index("dep"))
	env.Equal(8, t.LastIndex("e"))
	env.True(t.HasPrefix("inde"))
	env.True(t.HasSuffix("dent"))
	env.Equal(byte('p'), t.At(4))
	env.NoError(t.Truncate(2))
	env.Equal("in", t.String())
}

func (env *TextTestEnviron) TestUnicodeViews() {
	t := FromString("e\u0301🇩🇪日本")
	env.Equal(6, t.RuneCount())
	env.Equal(4, t.GraphemeCount())
	env.Equal(7, t.DisplayWidth())
	env.Equal([]rune{'e', 0x301, 0x1F1E9, 0x1F1EA, 0x65E5, 0x672C}, t.Runes())
	env.Equal(8, len(t.UTF16()))
}
