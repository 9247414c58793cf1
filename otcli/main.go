/*
Command otcli is an interactive inspector for the layout tables of a font.

It loads a font (a fontTools TTX dump, or a binary TTF/OTF for glyph order and
cmap only), and lets the user list lookups and coverages, canonicalize the
tables and look at the layout features suggested by the glyph names.

Commands may be chained on a line, separated by blanks. Arguments follow the
command name, separated by colons:

	load:testdata/ttx/sample.ttx canon coverage:GPOS:0

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/otfeat"
	"github.com/npillmayer/otfeat/classify"
	"github.com/npillmayer/otfeat/otgraph"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'otfeat'
func tracer() tracing.Trace {
	return tracing.Select("otfeat")
}

func main() {
	initDisplay()

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	fontname := flag.String("font", "", "Font to load (.ttx or binary)")
	marks := flag.String("marks", "", "Comma separated regular expressions for mark glyph names")
	flag.Parse()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":        "go",
		"trace.otfeat":           "Info",
		"trace.otfeat.canon":     "Info",
		"trace.otfeat.classify":  "Info",
		"trace.otfeat.ttx":       "Info",
		"trace.otfeat.fonts":     "Info",
		classify.MarkPatternsKey: *marks,
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	tracer().SetTraceLevel(tracing.LevelError) // will set the correct level later
	pterm.Info.Println("Welcome to the OpenType feature CLI")
	//
	classConf, err := classify.ConfigFrom(conf)
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(2)
	}
	//
	// set up REPL
	repl, err := readline.New("otfeat > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{repl: repl, conf: classConf}
	//
	// load font to use
	if *fontname != "" {
		if err := intp.loadFont(*fontname); err != nil { // font name provided by flag
			tracer().Errorf(err.Error())
			os.Exit(4)
		}
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	level, ok := traceLevels[*tlevel]
	if !ok {
		tracer().Errorf("Invalid trace level: %s", *tlevel)
		os.Exit(5)
	}
	for _, key := range []string{"otfeat", "otfeat.canon", "otfeat.classify", "otfeat.ttx", "otfeat.fonts"} {
		tracing.Select(key).SetTraceLevel(level)
	}
	tracer().Infof("Trace level is %s", *tlevel)
	intp.REPL() // go into interactive mode
}

var traceLevels = map[string]tracing.TraceLevel{
	"Debug": tracing.LevelDebug,
	"Info":  tracing.LevelInfo,
	"Error": tracing.LevelError,
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
	font *otgraph.Font
	path string
	conf classify.Config
	repl *readline.Instance
}

func (intp *Intp) String() string {
	if intp == nil || intp.font == nil {
		return "( no font )"
	}
	return fmt.Sprintf("( font=%q glyphs=%d tables=%v )", intp.font.Name, intp.font.NumGlyphs(), intp.font.TableTags())
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
		cmd, err := parseCommand(line)
		if err != nil {
			tracer().Errorf(err.Error())
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

type Op struct {
	code   int
	arg    string
	format string
}

type Command struct {
	ops []Op
}

const (
	// op-code QUIT will not have arguments
	QUIT int = iota
	// op-codes below may have arguments
	HELP
	LOAD
	ORDER
	LOOKUPS
	COVERAGE
	CANON
	CLASSIFY
	FEATURES
	EXISTING
	MARKS
)

var opMap = map[string]int{
	"quit":     QUIT,
	"help":     HELP,
	"load":     LOAD,
	"order":    ORDER,
	"lookups":  LOOKUPS,
	"coverage": COVERAGE,
	"canon":    CANON,
	"classify": CLASSIFY,
	"features": FEATURES,
	"existing": EXISTING,
	"marks":    MARKS,
}

var opNames = []string{
	"quit",
	"help",
	"load",
	"order",
	"lookups",
	"coverage",
	"canon",
	"classify",
	"features",
	"existing",
	"marks",
}

// parseCommand splits a line into operations, e.g. "lookups:GSUB" or
// "coverage:GPOS:3". Unknown operations turn into help requests.
func parseCommand(line string) (*Command, error) {
	cmd := &Command{}
	for _, step := range strings.Fields(line) {
		c := strings.SplitN(step, ":", 3)
		code, ok := opMap[strings.ToLower(c[0])]
		if !ok {
			code = HELP
		}
		op := Op{code: code}
		if code == QUIT {
			cmd.ops = append(cmd.ops, op)
			return cmd, nil
		}
		op.arg = getOptArg(c, 1)
		op.format = getOptArg(c, 2)
		if op.arg == "" {
			tracer().Debugf("%s", opNames[op.code])
		} else {
			tracer().Debugf("%s: looking for '%s'", opNames[op.code], op.arg)
		}
		cmd.ops = append(cmd.ops, op)
	}
	if len(cmd.ops) == 0 {
		return nil, errors.New("empty command")
	}
	return cmd, nil
}

var commandFn = map[int]func(*Intp, *Op) (error, bool){
	QUIT:     quitOp,
	HELP:     helpOp,
	LOAD:     loadOp,
	ORDER:    orderOp,
	LOOKUPS:  lookupsOp,
	COVERAGE: coverageOp,
	CANON:    canonOp,
	CLASSIFY: classifyOp,
	FEATURES: featuresOp,
	EXISTING: existingOp,
	MARKS:    marksOp,
}

func (intp *Intp) execute(cmd *Command) (err error, stop bool) {
	tracer().Debugf("cmd = %v", cmd.ops)
	for _, c := range cmd.ops {
		f, ok := commandFn[c.code]
		if !ok {
			pterm.Error.Printf("unknown command code: %d\n", c.code)
			return nil, false
		}
		err, stop = f(intp, &c)
		if err != nil {
			pterm.Error.Println(err)
			return
		}
		if stop {
			return
		}
	}
	return
}

func quitOp(intp *Intp, op *Op) (error, bool) {
	pterm.Println("Goodbye!")
	return nil, true
}

// --- Font Loading -----------------------------------------------------

func loadOp(intp *Intp, op *Op) (error, bool) {
	path, ok := op.hasArg()
	if !ok {
		return errors.New("usage: load:<font file>"), false
	}
	return intp.loadFont(path), false
}

func (intp *Intp) loadFont(path string) error {
	f, err := otfeat.LoadFont(path)
	if err != nil {
		tracer().Errorf("cannot load font %s: %s", path, err)
		return err
	}
	intp.font, intp.path = f, path
	pterm.Printf("font tables: %v\n", f.TableTags())
	return nil
}

// ----------------------------------------------------------------------

var ErrNoFont = errors.New("no font loaded")

func (intp *Intp) checkFont() error {
	if intp.font == nil {
		return ErrNoFont
	}
	return nil
}

func getOptArg(s []string, inx int) string {
	if len(s) > inx {
		return s[inx]
	}
	return ""
}

func (op *Op) hasArg() (string, bool) {
	if op.arg == "" {
		return "", false
	}
	return op.arg, true
}
