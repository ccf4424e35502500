package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	help(op.option)
	return nil, false
}

func help(topic string) {
	tracer().Infof("help %v", topic)
	t := strings.ToLower(topic)
	switch t {
	case "escape", "unescape", "policy", "policies":
		pterm.Info.Println("escape[:policy] <text> / unescape <text>")
		pterm.Println(`
	Escaping produces an ASCII-safe form of arbitrary bytes, enclosed in the
	configured quotes. Control bytes, the backslash and quotes are always
	escaped. Non-ASCII UTF-8 depends on the policy:
	+---------+-----------------------------------------+
	| utf8    | well-formed UTF-8 is copied unchanged    |
	| hex     | every byte becomes \xHH                  |
	| unicode | every code point becomes \uHHHH          |
	+---------+-----------------------------------------+
	Malformed UTF-8 is always written as \xHH.
	Unescaping additionally understands octal escapes and line continuations.
	`)
	case "nfd", "nfc", "nfkd", "nfkc", "normalize", "normalization":
		pterm.Info.Println("nfd | nfc | nfkd | nfkc <text>")
		pterm.Println(`
	Prints the text in the given Unicode normalization form, followed by its
	code points. D forms decompose, C forms decompose and recompose, K forms
	apply compatibility mappings as well.
	`)
	case "runes":
		pterm.Info.Println("runes <text>")
		pterm.Println(`
	Lists the code points of the text with their combining class, their
	UTF-8 and UTF-16 encodings and their Unicode names.
	`)
	case "cmp", "compare":
		pterm.Info.Println("cmp <a> <b>")
		pterm.Println(`
	Compares two texts byte-wise, with ASCII case folding, and naturally
	(runs of digits by numeric value). Separate the texts by a blank; quote
	a text to include blanks.
	`)
	case "store", "quote", "quotes":
		pterm.Info.Println("store <text>")
		pterm.Println(`
	Shows how the text would be stored in a configuration file. Values which
	are safe are stored as they are, all others are escaped and quoted.
	Arguments of all commands but unescape starting with the opening quote
	are read in this stored form.
	`)
	default:
		pterm.Info.Println("Commands")
		pterm.Println(`
	escape[:policy] <text>   escape text (policy: utf8, hex, unicode)
	unescape <text>          unescape text
	store <text>             show the stored form of text
	nfd|nfc|nfkd|nfkc <text> normalize text
	runes <text>             list code points
	cmp <a> <b>              compare two texts
	help[:topic]             help on a topic
	quit                     leave
	`)
	}
}
