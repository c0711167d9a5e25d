/*
File    : ember/internal/cli/cli.go
Package : cli
*/

// Package cli implements Ember's file-mode driver: read a script, run the
// full lex -> parse -> interpret pipeline, and map the outcome to spec.md
// §6's exit codes (0 success, 65 compile error, 70 runtime error). Error
// lines on stderr are colored red in the teacher's style (main/main.go's
// redColor); Print output on stdout is written uncolored.
package cli

import (
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/emberscript/ember/internal/interpreter"
	"github.com/emberscript/ember/internal/lexer"
	"github.com/emberscript/ember/internal/parser"
)

// Exit codes beyond spec.md §6's closed set (0/64/65/70): spec.md treats
// file reading as an external collaborator outside the core's scope, but
// cmd/ember owns it end to end, so an unreadable path needs some code.
// 66 follows the sysexits.h convention (EX_NOINPUT) the 64/65/70 set is
// itself drawn from.
const ExitNoInput = 66

// Run executes the Ember source file at path, writing Print output to
// stdout and error/diagnostic lines to stderr, and returns the process
// exit code spec.md §6 mandates for the outcome.
func Run(path string, stdout, stderr io.Writer, colorEnabled bool, maxCallDepth int) int {
	errColor := newColor(color.FgRed, colorEnabled)

	src, err := os.ReadFile(path)
	if err != nil {
		errColor.Fprintf(stderr, "Could not read file '%s': %v\n", path, err)
		return ExitNoInput
	}

	lx := lexer.New(string(src))
	tokens := lx.ScanTokens()

	p := parser.New(tokens)
	stmts := p.Parse()

	hasCompileErrors := len(lx.Errors()) > 0 || p.Errors().HasErrors()
	if hasCompileErrors {
		for _, msg := range lx.Errors() {
			errColor.Fprintln(stderr, msg)
		}
		for _, msg := range p.Errors().Messages() {
			errColor.Fprintln(stderr, msg)
		}
		return 65
	}

	it := interpreter.New(stdout, false, maxCallDepth)
	if rerr := it.Interpret(stmts); rerr != nil {
		errColor.Fprintln(stderr, rerr.Error())
		return 70
	}
	return 0
}

// newColor returns a color.Color that renders attr when enabled is true,
// or plain text otherwise — fatih/color already supports this via
// DisableColor, but an explicit wrapper keeps cli's callers from reaching
// into the color package's global state.
func newColor(attr color.Attribute, enabled bool) *color.Color {
	c := color.New(attr)
	if !enabled {
		c.DisableColor()
	}
	return c
}
