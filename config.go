package utext

import (
	"fmt"
	"strings"

	"github.com/npillmayer/schuko"
	"github.com/npillmayer/utext/escape"
	"github.com/npillmayer/utext/normalize"
)

// Configuration keys read by ConfigFrom.
const (
	KeyQuote     = "utext.quote"     // "double", "single", "none", or 1-2 quote characters
	KeyEscape    = "utext.escape"    // "utf8", "hex" or "unicode"
	KeyNormalize = "utext.normalize" // "none", "nfc", "nfd", "nfkc" or "nfkd"
)

// Config controls how text values are stored.
type Config struct {
	Quotes    escape.Quotes
	Policy    escape.Policy
	Normalize bool           // normalize values before storing them
	Form      normalize.Form // used if Normalize is set
}

// DefaultConfig stores values in double quotes, passes well-formed UTF-8
// through and does not normalize.
func DefaultConfig() Config {
	return Config{
		Quotes: escape.DoubleQuotes,
		Policy: escape.PassUTF8,
		Form:   normalize.NFC,
	}
}

// ConfigFrom reads a Config from conf. Keys which are not set keep their
// default value (see DefaultConfig). A nil conf yields the default.
func ConfigFrom(conf schuko.Configuration) (Config, error) {
	c := DefaultConfig()
	if conf == nil {
		return c, nil
	}
	if v := conf.GetString(KeyQuote); v != "" {
		q, err := parseQuotes(v)
		if err != nil {
			return c, configError(KeyQuote, v, err)
		}
		c.Quotes = q
	}
	if v := conf.GetString(KeyEscape); v != "" {
		p, err := escape.ParsePolicy(v)
		if err != nil {
			return c, configError(KeyEscape, v, err)
		}
		c.Policy = p
	}
	if v := conf.GetString(KeyNormalize); v != "" && !strings.EqualFold(v, "none") {
		f, err := normalize.ParseForm(v)
		if err != nil {
			return c, configError(KeyNormalize, v, err)
		}
		c.Normalize, c.Form = true, f
	}
	tracer().Debugf("text config: quotes=%q policy=%s normalize=%v", []byte{c.Quotes.Open, c.Quotes.Close},
		c.Policy, c.Normalize)
	return c, nil
}

func parseQuotes(v string) (escape.Quotes, error) {
	switch strings.ToLower(v) {
	case "double":
		return escape.DoubleQuotes, nil
	case "single":
		return escape.SingleQuotes, nil
	case "none":
		return escape.NoQuotes, nil
	}
	if len(v) > 2 {
		return escape.NoQuotes, fmt.Errorf("expected at most 2 quote characters")
	}
	for i := 0; i < len(v); i++ {
		if c := v[i]; c <= ' ' || c >= 0x7F || c == '\\' {
			return escape.NoQuotes, fmt.Errorf("quote character %q is not printable ASCII", c)
		}
	}
	return escape.Quotes{Open: v[0], Close: v[len(v)-1]}, nil
}

func configError(key, value string, err error) error {
	tracer().Errorf("configuration %s = %q: %v", key, value, err)
	return fmt.Errorf("utext: invalid value %q for %s: %w", value, key, err)
}
