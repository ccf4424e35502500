package utext

import (
	"github.com/npillmayer/utext/escape"
	"github.com/npillmayer/utext/normalize"
	"github.com/npillmayer/utext/text"
)

// Quote returns the stored form of value: normalized if c asks for it,
// escaped with c.Policy and enclosed in c.Quotes.
func (c Config) Quote(value []byte) (text.Text, error) {
	v, err := c.prepare(value)
	if err != nil {
		return v, err
	}
	return escape.Escape(v.Bytes(), c.Quotes, c.Policy)
}

// Unquote reverses Quote. Normalization is not reversed.
func (c Config) Unquote(stored []byte) (text.Text, error) {
	return escape.Unescape(stored, c.Quotes)
}

// Encode is like Quote, but returns values which are safe to store unchanged
// as they are. A value is safe if escaping would not change it and it has no
// leading or trailing blanks. Without quote characters every value is escaped,
// as plain and escaped values could not be told apart.
func (c Config) Encode(value []byte) (text.Text, error) {
	v, err := c.prepare(value)
	if err != nil {
		return v, err
	}
	if c.Quotes.Open != 0 && !escape.ShouldEscape(v.Bytes(), c.Quotes, c.Policy) {
		tracer().Debugf("value stored verbatim")
		return v, nil
	}
	return escape.Escape(v.Bytes(), c.Quotes, c.Policy)
}

// Decode reverses Encode. A stored value starting with the opening quote is
// unescaped, other values are returned as they are.
func (c Config) Decode(stored []byte) (text.Text, error) {
	if c.Quotes.Open == 0 || (len(stored) > 0 && stored[0] == c.Quotes.Open) {
		return escape.Unescape(stored, c.Quotes)
	}
	t := text.New()
	err := t.Assign(stored)
	return t, err
}

// prepare copies value into a Text, normalizing it if configured.
func (c Config) prepare(value []byte) (text.Text, error) {
	if c.Normalize {
		return normalize.Default().NormalizeText(text.FromBytes(value), c.Form)
	}
	t := text.New()
	err := t.Assign(value)
	return t, err
}

// Normalize returns t in normalization form f, using the default character
// data. An error is returned only if the result cannot be allocated.
func Normalize(t text.Text, f normalize.Form) (text.Text, error) {
	return normalize.Default().NormalizeText(t, f)
}

// Equivalent reports whether a and b are canonically equivalent, i.e. have
// equal NFD forms.
func Equivalent(a, b text.Text) bool {
	if a.Equal(b) {
		return true
	}
	na := normalize.Decompose(a.Bytes(), true)
	nb := normalize.Decompose(b.Bytes(), true)
	return string(na) == string(nb)
}
