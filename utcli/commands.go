package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/utext"
	"github.com/npillmayer/utext/codec"
	"github.com/npillmayer/utext/escape"
	"github.com/npillmayer/utext/normalize"
	"github.com/pterm/pterm"
	"golang.org/x/text/unicode/runenames"
)

func escapeOp(intp *Intp, op *Op) (error, bool) {
	p := intp.conf.Policy
	if op.option != "" {
		var err error
		if p, err = escape.ParsePolicy(op.option); err != nil {
			return err, false
		}
	}
	src := op.text.Bytes()
	esc, err := escape.Escape(src, intp.conf.Quotes, p)
	if err != nil {
		return err, false
	}
	intp.last = esc
	pterm.Printf("%s\n", esc.String())
	pterm.Printf("policy %s: %d bytes -> %d bytes, escaping needed: %v\n", p, len(src),
		escape.EscapedLen(src, intp.conf.Quotes, p), escape.ShouldEscape(src, intp.conf.Quotes, p))
	return nil, false
}

func unescapeOp(intp *Intp, op *Op) (error, bool) {
	t, err := escape.Unescape(op.text.Bytes(), intp.conf.Quotes)
	if err != nil {
		return err, false
	}
	intp.last = t
	pterm.Printf("%q\n", t.String())
	pterm.Printf("% X\n", t.Bytes())
	return nil, false
}

func storeOp(intp *Intp, op *Op) (error, bool) {
	stored, err := intp.conf.Encode(op.text.Bytes())
	if err != nil {
		return err, false
	}
	intp.last = stored
	pterm.Printf("%s\n", stored.String())
	return nil, false
}

var opForms = map[int]normalize.Form{
	NFD:  normalize.NFD,
	NFC:  normalize.NFC,
	NFKD: normalize.NFKD,
	NFKC: normalize.NFKC,
}

func normalizeOp(intp *Intp, op *Op) (error, bool) {
	f := opForms[op.code]
	t, err := utext.Normalize(op.text, f)
	if err != nil {
		return err, false
	}
	intp.last = t
	pterm.Printf("%s  (%s)\n", t.String(), runeList(t.Runes()))
	pterm.Printf("input is %s: %v, canonically equivalent to result: %v\n", f,
		normalize.IsNormalized(op.text.Bytes(), f), utext.Equivalent(op.text, t))
	return nil, false
}

func runesOp(intp *Intp, op *Op) (error, bool) {
	t := op.text
	data := [][]string{
		{"Offset", "Code Point", "Char", "CCC", "UTF-8", "UTF-16", "Name"},
	}
	src := t.Bytes()
	for i := 0; i < len(src); {
		r, w, ok := codec.Decode8Checked(src, i)
		if !ok {
			data = append(data, []string{fmt.Sprintf("%d", i), "-", "", "",
				fmt.Sprintf("%02X", src[i]), "", "<malformed>"})
			i++
			continue
		}
		var u [2]uint16
		n := codec.Encode16(u[:], r)
		data = append(data, []string{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%U", r),
			printable(r),
			fmt.Sprintf("%d", normalize.Default().Source().CombiningClass(r)),
			fmt.Sprintf("% X", src[i:i+w]),
			fmt.Sprintf("%04X", u[:n]),
			runenames.Name(r),
		})
		i += w
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	pterm.Printf("%d bytes, %d code points, %d UTF-16 units, %d grapheme clusters, width %d\n",
		t.Len(), t.RuneCount(), len(t.UTF16()), t.GraphemeCount(), t.DisplayWidth())
	return nil, false
}

func cmpOp(intp *Intp, op *Op) (error, bool) {
	a, b := op.args[0], op.args[1]
	data := [][]string{
		{"Comparison", "Result"},
		{"bytes", fmt.Sprintf("%d", a.Compare(b))},
		{"ASCII case folded", fmt.Sprintf("%d", a.CompareFold(b))},
		{"natural", fmt.Sprintf("%d", a.CompareNatural(b))},
		{"canonically equivalent", fmt.Sprintf("%v", utext.Equivalent(a, b))},
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

// --- Helpers ----------------------------------------------------------

func runeList(rs []rune) string {
	sb := strings.Builder{}
	for i, r := range rs {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(fmt.Sprintf("%U", r))
	}
	return sb.String()
}

// printable returns r as a string if it can be shown in a table cell.
// Combining marks are shown on a dotted circle.
func printable(r rune) string {
	switch {
	case r < 0x20 || r == 0x7F:
		return ""
	case normalize.Default().Source().CombiningClass(r) > 0:
		return string([]rune{0x25CC, r})
	}
	return string(r)
}
