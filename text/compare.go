package text

import (
	"bytes"
	"slices"
)

// Equal reports whether t and o hold the same bytes.
func (t Text) Equal(o Text) bool {
	return bytes.Equal(t.Bytes(), o.Bytes())
}

// Compare compares t and o byte-wise and returns -1, 0 or +1.
func (t Text) Compare(o Text) int {
	return bytes.Compare(t.Bytes(), o.Bytes())
}

// CompareFold compares t and o with ASCII letters folded to lower case.
func (t Text) CompareFold(o Text) int {
	return CompareFold(t.Bytes(), o.Bytes())
}

// EqualFold reports whether t and o are equal under ASCII case folding.
func (t Text) EqualFold(o Text) bool {
	return CompareFold(t.Bytes(), o.Bytes()) == 0
}

// CompareNatural compares t and o in natural order; see CompareNatural.
func (t Text) CompareNatural(o Text) int {
	return CompareNatural(t.Bytes(), o.Bytes())
}

// CompareFold compares a and b byte-wise, mapping 'A'..'Z' to 'a'..'z'. Bytes
// outside ASCII compare literally.
func CompareFold(a, b []byte) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		ca, cb := lowerASCII(a[i]), lowerASCII(b[i])
		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
	}
	return sign(len(a) - len(b))
}

// CompareNatural compares a and b, treating maximal runs of ASCII digits as
// decimal numbers. Numbers are compared by value, regardless of their number
// of digits, so "img2.png" < "img10.png". If two inputs differ only in the
// number of leading zeros of some number, the first such difference decides,
// with fewer zeros sorting first; thus "img2.png" < "img02.png".
func CompareNatural(a, b []byte) int {
	i, j := 0, 0
	zeros := 0 // deferred tie-break from leading zeros
	for i < len(a) && j < len(b) {
		ca, cb := a[i], b[j]
		if isDigit(ca) && isDigit(cb) {
			za, zb := i, j
			for i < len(a) && a[i] == '0' {
				i++
			}
			for j < len(b) && b[j] == '0' {
				j++
			}
			za, zb = i-za, j-zb
			sa, sb := i, j
			for i < len(a) && isDigit(a[i]) {
				i++
			}
			for j < len(b) && isDigit(b[j]) {
				j++
			}
			if la, lb := i-sa, j-sb; la != lb {
				return sign(la - lb) // more significant digits is larger
			}
			if c := bytes.Compare(a[sa:i], b[sb:j]); c != 0 {
				return c
			}
			if zeros == 0 {
				zeros = sign(za - zb)
			}
			continue
		}
		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
		i++
		j++
	}
	if c := sign((len(a) - i) - (len(b) - j)); c != 0 {
		return c
	}
	return zeros
}

// CompareNaturalString is CompareNatural for strings.
func CompareNaturalString(a, b string) int {
	return CompareNatural([]byte(a), []byte(b))
}

// NaturalLess reports whether a sorts before b in natural order.
func NaturalLess(a, b string) bool {
	return CompareNaturalString(a, b) < 0
}

// SortNatural sorts s in natural order.
func SortNatural(s []string) {
	slices.SortStableFunc(s, CompareNaturalString)
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func lowerASCII(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

func sign(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}
