package normalize

// Hangul syllables are composed algorithmically from leading consonants (L),
// vowels (V) and optional trailing consonants (T).
const (
	sBase  = 0xAC00
	lBase  = 0x1100
	vBase  = 0x1161
	tBase  = 0x11A7
	lCount = 19
	vCount = 21
	tCount = 28
	nCount = vCount * tCount // 588
	sCount = lCount * nCount // 11172
)

// IsHangulSyllable is true for the precomposed syllables U+AC00..U+D7A3.
func IsHangulSyllable(r rune) bool {
	return r >= sBase && r < sBase+sCount
}

// DecomposeHangul splits a precomposed Hangul syllable into its jamo.
// t is 0 for syllables without a trailing consonant. If r is not a syllable,
// ok is false.
func DecomposeHangul(r rune) (l, v, t rune, ok bool) {
	if !IsHangulSyllable(r) {
		return r, 0, 0, false
	}
	s := r - sBase
	l = lBase + s/nCount
	v = vBase + (s%nCount)/tCount
	if ti := s % tCount; ti != 0 {
		t = tBase + ti
	}
	return l, v, t, true
}

// ComposeHangul composes L+V to an LV syllable and LV+T to an LVT syllable.
func ComposeHangul(a, b rune) (rune, bool) {
	if li := a - lBase; li >= 0 && li < lCount {
		if vi := b - vBase; vi >= 0 && vi < vCount {
			return sBase + (li*vCount+vi)*tCount, true
		}
		return 0, false
	}
	if s := a - sBase; s >= 0 && s < sCount && s%tCount == 0 {
		if ti := b - tBase; ti > 0 && ti < tCount {
			return a + ti, true
		}
	}
	return 0, false
}
