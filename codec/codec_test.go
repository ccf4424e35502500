package codec

import (
	"bytes"
	"testing"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWidth8(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "utext.codec")
	defer teardown()
	//
	for _, x := range []struct {
		lead  byte
		width int
	}{
		{0x00, 1}, {'A', 1}, {0x7F, 1},
		{0xC2, 2}, {0xDF, 2},
		{0xE0, 3}, {0xEF, 3},
		{0xF0, 4}, {0xF4, 4}, {0xFF, 4},
	} {
		if w := Width8(x.lead); w != x.width {
			t.Errorf("expected width of lead byte %#02x to be %d, is %d", x.lead, x.width, w)
		}
	}
}

func TestRoundTrip8(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "utext.codec")
	defer teardown()
	//
	var buf [4]byte
	var ref [4]byte
	for r := rune(0); r <= MaxRune; r++ {
		if IsSurrogate(r) {
			continue
		}
		n := Encode8(buf[:], r)
		if n != Len8(r) {
			t.Fatalf("U+%04X: Encode8 wrote %d bytes, Len8 says %d", r, n, Len8(r))
		}
		m := utf8.EncodeRune(ref[:], r)
		if !bytes.Equal(buf[:n], ref[:m]) {
			t.Fatalf("U+%04X: encoded as % x, expected % x", r, buf[:n], ref[:m])
		}
		d, w := Decode8(buf[:n], 0)
		if d != r || w != n {
			t.Fatalf("U+%04X: decoded as U+%04X/%d", r, d, w)
		}
		c, w, ok := Decode8Checked(buf[:n], 0)
		if !ok || c != r || w != n {
			t.Fatalf("U+%04X: checked decode returned U+%04X/%d/%v", r, c, w, ok)
		}
	}
}

func TestRoundTrip16(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "utext.codec")
	defer teardown()
	//
	var buf [2]uint16
	for r := rune(0); r <= MaxRune; r++ {
		if IsSurrogate(r) {
			continue
		}
		n := Encode16(buf[:], r)
		if n != Len16(r) {
			t.Fatalf("U+%04X: Encode16 wrote %d units, Len16 says %d", r, n, Len16(r))
		}
		if n == 2 {
			r1, r2 := utf16.EncodeRune(r)
			if rune(buf[0]) != r1 || rune(buf[1]) != r2 {
				t.Fatalf("U+%04X: encoded as %04X %04X, expected %04X %04X", r, buf[0], buf[1], r1, r2)
			}
		}
		d, w := Decode16(buf[:n], 0)
		if d != r || w != n {
			t.Fatalf("U+%04X: decoded as U+%04X/%d", r, d, w)
		}
	}
}

func TestLoneSurrogates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "utext.codec")
	defer teardown()
	//
	u := []uint16{'a', 0xD800, 'b', 0xDC00}
	r := UTF16ToRunes(u)
	assert.Equal(t, []rune{'a', 0xD800, 'b', 0xDC00}, r)
	b := FromUTF16(u)
	assert.Equal(t, 8, len(b), "lone surrogates take 3 bytes each")
	assert.Equal(t, u, ToUTF16(b), "lone surrogates must survive the unchecked path")
	_, _, ok := Decode8Checked(b, 1)
	assert.False(t, ok, "checked decoder must reject an encoded surrogate")
}

func TestDecode8Checked(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "utext.codec")
	defer teardown()
	//
	for _, bad := range [][]byte{
		{0x80},                   // stray continuation
		{0xC0, 0x80},             // overlong NUL
		{0xC1, 0xBF},             // overlong
		{0xE0, 0x80, 0x80},       // overlong 3-byte
		{0xED, 0xA0, 0x80},       // surrogate
		{0xF0, 0x80, 0x80, 0x80}, // overlong 4-byte
		{0xF4, 0x90, 0x80, 0x80}, // above U+10FFFF
		{0xF5, 0x80, 0x80, 0x80}, // illegal lead
		{0xE2, 0x82},             // truncated
		{0xE2, 0x41, 0x41},       // bad continuation
	} {
		r, w, ok := Decode8Checked(bad, 0)
		if ok || w != 1 || r != ReplacementChar {
			t.Errorf("expected % x to be rejected, got U+%04X/%d/%v", bad, r, w, ok)
		}
		if Valid8(bad) {
			t.Errorf("expected % x to be invalid UTF-8", bad)
		}
	}
	assert.True(t, Valid8([]byte("Grüße, 世界 😀")))
}

func TestDecode8Unchecked(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "utext.codec")
	defer teardown()
	//
	// must not panic on truncated or garbage input
	for _, bad := range [][]byte{{0xE2}, {0xF0, 0x9F}, {0xFF}, {0x80, 0x80}} {
		for i := range bad {
			_, w := Decode8(bad, i)
			if w < 1 || i+w > len(bad) {
				t.Errorf("width %d out of bounds for % x at %d", w, bad, i)
			}
		}
	}
	r, w := Decode8(nil, 0)
	assert.Equal(t, rune(0), r)
	assert.Equal(t, 0, w)
}

var samples = []string{
	"",
	"ascii only",
	"Grüße",
	"€ 100",
	"日本語のテキスト",
	"emoji 😀👍🏽 mix",
	"\x00embedded\x00nul",
	"𝔘𝔫𝔦𝔠𝔬𝔡𝔢",
}

func TestMeasureWriteAgreement(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "utext.codec")
	defer teardown()
	//
	for _, s := range samples {
		b := []byte(s)
		// 8 -> 16 -> 8
		n16 := Measure16From8(b)
		u := make([]uint16, n16)
		require.Equal(t, n16, Write16From8(u, b), "8->16 of %q", s)
		assert.Equal(t, len(utf16.Encode([]rune(s))), n16, "8->16 of %q", s)
		assert.Equal(t, s, string(utf16.Decode(u)), "8->16 of %q", s)
		n8 := Measure8From16(u)
		b2 := make([]byte, n8)
		require.Equal(t, n8, Write8From16(b2, u), "16->8 of %q", s)
		assert.Equal(t, s, string(b2))
		// 8 -> 32 -> 8
		n32 := Measure32From8(b)
		r := make([]rune, n32)
		require.Equal(t, n32, Write32From8(r, b), "8->32 of %q", s)
		assert.Equal(t, s, string(r))
		n8 = Measure8From32(r)
		b3 := make([]byte, n8)
		require.Equal(t, n8, Write8From32(b3, r), "32->8 of %q", s)
		assert.Equal(t, s, string(b3))
		// 32 -> 16 -> 32
		n16 = Measure16From32(r)
		u2 := make([]uint16, n16)
		require.Equal(t, n16, Write16From32(u2, r), "32->16 of %q", s)
		n32 = Measure32From16(u2)
		r2 := make([]rune, n32)
		require.Equal(t, n32, Write32From16(r2, u2), "16->32 of %q", s)
		assert.Equal(t, s, string(r2))
	}
}

func TestAdvanceRetreat(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "utext.codec")
	defer teardown()
	//
	for _, s := range samples {
		b := []byte(s)
		var fwd []int
		for i := 0; i < len(b); i = Advance8(b, i) {
			fwd = append(fwd, i)
		}
		var bwd []int
		for i := len(b); i > 0; {
			i = Retreat8(b, i)
			bwd = append([]int{i}, bwd...)
		}
		assert.Equal(t, fwd, bwd, "8-bit cursor positions for %q", s)
		assert.Equal(t, utf8.RuneCountInString(s), Count8(b))
		//
		u := ToUTF16(b)
		fwd = fwd[:0]
		for i := 0; i < len(u); i = Advance16(u, i) {
			fwd = append(fwd, i)
		}
		bwd = bwd[:0]
		for i := len(u); i > 0; {
			i = Retreat16(u, i)
			bwd = append([]int{i}, bwd...)
		}
		assert.Equal(t, fwd, bwd, "16-bit cursor positions for %q", s)
		assert.Equal(t, len(fwd), Measure32From16(u))
	}
	r := []rune("abc")
	assert.Equal(t, 3, Advance32(r, 5))
	assert.Equal(t, 2, Retreat32(r, 5))
	assert.Equal(t, 0, Retreat32(r, 0))
	assert.Equal(t, 0, Retreat32(nil, 3))
	assert.Equal(t, 0, Retreat8(nil, 3))
	assert.Equal(t, 0, Advance8([]byte("a"), -1))
}

func TestUTF16Bytes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "utext.codec")
	defer teardown()
	//
	raw, err := EncodeUTF16Bytes([]byte("a€😀"), LittleEndian, true)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0xFE, 0x61, 0x00, 0xAC, 0x20, 0x3D, 0xD8, 0x00, 0xDE}, raw)
	back, err := DecodeUTF16Bytes(raw, BigEndian, true)
	require.NoError(t, err)
	assert.Equal(t, "a€😀", string(back), "BOM must override the default byte order")
	//
	raw, err = EncodeUTF16Bytes([]byte("a€"), BigEndian, false)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x61, 0x20, 0xAC}, raw)
	back, err = DecodeUTF16Bytes(raw, BigEndian, false)
	require.NoError(t, err)
	assert.Equal(t, "a€", string(back))
}
