package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/utext"
	"github.com/npillmayer/utext/text"
	"github.com/pterm/pterm"
)

// tracer traces with key 'utext.cli'
func tracer() tracing.Trace {
	return tracing.Select("utext.cli")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter": "go",
		"trace.utext.cli": "Info",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	policy := flag.String("policy", "utf8", "Escape policy [utf8|hex|unicode]")
	quote := flag.String("quote", "double", "Quote characters [double|single|none|<chars>]")
	form := flag.String("normalize", "none", "Normalize stored values [none|nfc|nfd|nfkc|nfkd]")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelError) // will set the correct level later
	pterm.Info.Println("Welcome to the utext CLI")
	//
	textconf, err := utext.ConfigFrom(testconfig.Conf{
		utext.KeyQuote:     *quote,
		utext.KeyEscape:    *policy,
		utext.KeyNormalize: *form,
	})
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(2)
	}
	//
	// set up REPL
	repl, err := readline.New("utext > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{repl: repl, conf: textconf}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	switch *tlevel {
	case "Debug":
		tracer().SetTraceLevel(tracing.LevelDebug)
	case "Info":
		tracer().SetTraceLevel(tracing.LevelInfo)
	case "Error":
		tracer().SetTraceLevel(tracing.LevelError)
	default:
		tracer().Errorf("Invalid trace level: %s", *tlevel)
		os.Exit(5)
	}
	tracer().Infof("Trace level is %s", *tlevel)
	intp.REPL() // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	repl *readline.Instance
	conf utext.Config
	last text.Text // result of the last command
}

func (intp *Intp) String() string {
	q := intp.conf.Quotes
	return fmt.Sprintf("( quotes=%q policy=%s last=%d bytes )", []byte{q.Open, q.Close},
		intp.conf.Policy, intp.last.Len())
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		pterm.Println(intp.String())
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := intp.parseCommand(line)
		if err != nil {
			pterm.Error.Println(err)
			continue
		}
		err, quit := intp.execute(cmd)
		if err != nil {
			tracer().Errorf(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// Op is a parsed command: an op-code, an optional option (the part after a
// colon, as in "escape:hex") and the text the command works on.
type Op struct {
	code   int
	option string
	text   text.Text
	args   []text.Text
}

const (
	// op-codes QUIT and HELP do not work on text
	QUIT int = iota
	HELP
	// op-codes below take a text argument
	ESCAPE
	UNESCAPE
	STORE
	NFD
	NFC
	NFKD
	NFKC
	RUNES
	CMP
)

var opMap = map[string]int{
	"quit":     QUIT,
	"help":     HELP,
	"escape":   ESCAPE,
	"unescape": UNESCAPE,
	"store":    STORE,
	"nfd":      NFD,
	"nfc":      NFC,
	"nfkd":     NFKD,
	"nfkc":     NFKC,
	"runes":    RUNES,
	"cmp":      CMP,
}

var opNames = []string{
	"quit",
	"help",
	"escape",
	"unescape",
	"store",
	"nfd",
	"nfc",
	"nfkd",
	"nfkc",
	"runes",
	"cmp",
}

// parseCommand splits line into the command word and its text. A text
// starting with the configured opening quote is decoded as a stored value,
// so escapes may be used to enter arbitrary code points:
//
//	nfd "e\xCC\x81 and \101"
//
// cmp takes two texts separated by blanks.
func (intp *Intp) parseCommand(line string) (*Op, error) {
	word, rest, _ := strings.Cut(line, " ")
	c := strings.SplitN(word, ":", 2) // e.g.  "escape:hex" or "help:escape"
	code, ok := opMap[strings.ToLower(c[0])]
	if !ok {
		return nil, fmt.Errorf("unknown command: %s", c[0])
	}
	op := &Op{code: code, option: getOptArg(c, 1)}
	tracer().Debugf("parsed command: %s %q", opNames[code], op.option)
	if code <= HELP {
		return op, nil
	}
	rest = strings.TrimLeft(rest, " ")
	if code == CMP {
		fields := intp.splitArgs(rest)
		if len(fields) != 2 {
			return nil, fmt.Errorf("cmp needs two arguments, have %d", len(fields))
		}
		for _, f := range fields {
			t, err := intp.conf.Decode([]byte(f))
			if err != nil {
				return nil, err
			}
			op.args = append(op.args, t)
		}
		return op, nil
	}
	if code == UNESCAPE {
		op.text = text.FromString(rest)
		return op, nil
	}
	var err error
	op.text, err = intp.conf.Decode([]byte(rest))
	return op, err
}

// splitArgs splits s at blanks outside of quotes.
func (intp *Intp) splitArgs(s string) []string {
	q := intp.conf.Quotes
	var fields []string
	start, quoted := -1, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quoted && c == '\\':
			i++
		case quoted && c == q.Close:
			quoted = false
		case c == ' ' && !quoted:
			if start >= 0 {
				fields = append(fields, s[start:i])
				start = -1
			}
		default:
			if start < 0 {
				start = i
				quoted = q.Open != 0 && c == q.Open
			}
		}
	}
	if start >= 0 {
		fields = append(fields, s[start:])
	}
	return fields
}

var commandFn = map[int]func(*Intp, *Op) (error, bool){
	QUIT:     quitOp,
	HELP:     helpOp,
	ESCAPE:   escapeOp,
	UNESCAPE: unescapeOp,
	STORE:    storeOp,
	NFD:      normalizeOp,
	NFC:      normalizeOp,
	NFKD:     normalizeOp,
	NFKC:     normalizeOp,
	RUNES:    runesOp,
	CMP:      cmpOp,
}

func (intp *Intp) execute(op *Op) (err error, stop bool) {
	f, ok := commandFn[op.code]
	if !ok {
		pterm.Error.Printf("unknown command code: %d\n", op.code)
		return nil, false
	}
	if err, stop = f(intp, op); err != nil {
		pterm.Error.Println(err)
	}
	return
}

func quitOp(intp *Intp, op *Op) (error, bool) {
	pterm.Println("Goodbye!")
	return nil, true
}

func getOptArg(s []string, inx int) string {
	if len(s) > inx {
		return s[inx]
	}
	return ""
}
