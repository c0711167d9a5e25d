/*
File    : ember/internal/replloop/replloop.go
Package : replloop
*/

// Package replloop implements Ember's interactive REPL (spec.md §6): a
// readline-backed prompt that lexes, parses, and evaluates one line at a
// time against a single Interpreter whose environment persists across
// lines, printing bare expression results (spec.md's REPL-mode flag) and
// never exiting on a compile or runtime error — only EOF (Ctrl-D), an
// interrupt (Ctrl-C), or the "/exit" meta-command ends the loop. Results and
// the "/ast" tree dump go to stdout; every lex/parse/runtime error line
// goes to stderr (spec.md §6: "All go to stderr"), matching file mode's
// split in internal/cli. Grounded on the teacher's repl/repl.go Start loop:
// same readline.New/Readline/SaveHistory shape, same colorized
// stdout/stderr split via fatih/color.
package replloop

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/emberscript/ember/internal/ast"
	"github.com/emberscript/ember/internal/interpreter"
	"github.com/emberscript/ember/internal/lexer"
	"github.com/emberscript/ember/internal/parser"
)

// Repl holds the configuration for one interactive session.
type Repl struct {
	Prompt       string
	ColorEnabled bool
	MaxCallDepth int
}

// New creates a Repl with the given prompt string, color setting, and call
// depth limit (all sourced from internal/config, falling back to its
// Default()).
func New(prompt string, colorEnabled bool, maxCallDepth int) *Repl {
	return &Repl{Prompt: prompt, ColorEnabled: colorEnabled, MaxCallDepth: maxCallDepth}
}

// Run starts the read-eval-print loop, writing results to out and every
// lex/parse/runtime error line to errOut (spec.md §6). It returns when the
// user types "/exit", presses Ctrl-D (EOF from readline), or presses Ctrl-C
// (readline's interrupt error). spec.md §6: the
// REPL never exits on a compile or runtime error; each line is independent,
// so the "compile error" flag is implicitly reset between lines simply by
// re-lexing/re-parsing fresh each time.
func (r *Repl) Run(out, errOut io.Writer) error {
	errColor := colorOrPlain(color.FgRed, r.ColorEnabled)
	infoColor := colorOrPlain(color.FgCyan, r.ColorEnabled)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		return err
	}
	defer rl.Close()

	it := interpreter.New(out, true, r.MaxCallDepth)

	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF on Ctrl-D, or readline.ErrInterrupt on Ctrl-C
			fmt.Fprintln(out, "Good bye!")
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "/exit" {
			fmt.Fprintln(out, "Good bye!")
			return nil
		}
		rl.SaveHistory(line)

		if strings.HasPrefix(line, "/ast ") {
			r.runAst(out, errOut, infoColor, errColor, strings.TrimPrefix(line, "/ast "))
			continue
		}

		r.evalLine(out, errOut, errColor, it, line)
	}
}

// evalLine lexes, parses, and evaluates a single line against the shared
// Interpreter it, writing compile or runtime errors to errOut in red
// (spec.md §6: "All go to stderr") and letting expression-statement results
// print themselves to out (Interpreter.Repl == true handles that, spec.md §6).
func (r *Repl) evalLine(out, errOut io.Writer, errColor *color.Color, it *interpreter.Interpreter, line string) {
	lx := lexer.New(line)
	tokens := lx.ScanTokens()
	p := parser.New(tokens)
	stmts := p.Parse()

	if len(lx.Errors()) > 0 || p.Errors().HasErrors() {
		for _, msg := range lx.Errors() {
			errColor.Fprintln(errOut, msg)
		}
		for _, msg := range p.Errors().Messages() {
			errColor.Fprintln(errOut, msg)
		}
		return
	}

	if rerr := it.Interpret(stmts); rerr != nil {
		errColor.Fprintln(errOut, rerr.Error())
	}
}

// runAst is the "/ast <source>" meta-command (SPEC_FULL §4): parse source
// and pretty-print its statement list without evaluating it, the REPL
// stand-in for the teacher's standalone PrintingVisitor debug tool. The
// tree dump itself is debug output and stays on out; a lex/parse error
// encountered while getting there is still one of spec.md §6's error
// lines, so it goes to errOut like everywhere else.
func (r *Repl) runAst(out, errOut io.Writer, infoColor, errColor *color.Color, source string) {
	lx := lexer.New(source)
	p := parser.New(lx.ScanTokens())
	stmts := p.Parse()
	if len(lx.Errors()) > 0 || p.Errors().HasErrors() {
		for _, msg := range lx.Errors() {
			errColor.Fprintln(errOut, msg)
		}
		for _, msg := range p.Errors().Messages() {
			errColor.Fprintln(errOut, msg)
		}
		return
	}
	infoColor.Fprint(out, ast.Print(stmts))
}

func colorOrPlain(attr color.Attribute, enabled bool) *color.Color {
	c := color.New(attr)
	if !enabled {
		c.DisableColor()
	}
	return c
}
