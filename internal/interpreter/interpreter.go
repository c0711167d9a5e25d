/*
File    : ember/internal/interpreter/interpreter.go
Package : interpreter
*/

// Package interpreter walks Ember's AST and executes it against a
// lexically-scoped environment (spec.md §4.3-4.6). It threads its state
// explicitly (current environment, output writer, REPL-mode flag) rather
// than relying on any package-level mutable state (spec.md §9's "Global
// mutable interpreter state" note). Return/Break/Continue are carried as
// internal/value signal variants through ordinary return values, never as
// Go panics or errors — a *errs.RuntimeError is reserved for genuine
// language-level failures.
package interpreter

import (
	"io"
	"time"

	"github.com/emberscript/ember/internal/ast"
	"github.com/emberscript/ember/internal/environment"
	"github.com/emberscript/ember/internal/errs"
	"github.com/emberscript/ember/internal/value"
)

// defaultMaxCallDepth bounds recursion so a runaway recursive Ember program
// fails with a catchable runtime error instead of overflowing the Go stack
// (SPEC_FULL §3's configuration ambient concern). internal/config can
// override this via Config.MaxCallDepth.
const defaultMaxCallDepth = 1000

// Interpreter holds all state needed to evaluate a program: the global
// environment (preloaded with host natives), the environment currently in
// scope, the output writer print statements write to, and whether bare
// expression statements should print their value (REPL mode, spec.md §6).
type Interpreter struct {
	Global  *environment.Environment
	current *environment.Environment

	Out  io.Writer
	Repl bool

	maxCallDepth int
	callDepth    int
}

// New creates an Interpreter writing Print output to out. repl selects
// whether bare expression statements print their value. maxCallDepth <= 0
// falls back to defaultMaxCallDepth.
func New(out io.Writer, repl bool, maxCallDepth int) *Interpreter {
	global := environment.New()
	if maxCallDepth <= 0 {
		maxCallDepth = defaultMaxCallDepth
	}
	it := &Interpreter{
		Global:       global,
		current:      global,
		Out:          out,
		Repl:         repl,
		maxCallDepth: maxCallDepth,
	}
	it.defineNatives()
	return it
}

// defineNatives preloads the global environment with the one host native
// spec.md §6 names: clock(), arity 0, returning seconds since the Unix
// epoch as a Number.
func (it *Interpreter) defineNatives() {
	it.Global.DefineInitialized("clock", &value.Native{
		Name: "clock",
		Arg:  0,
		Fn: func(args []value.Value) (value.Value, error) {
			return value.Number{Value: float64(time.Now().UnixNano()) / 1e9}, nil
		},
	})
}

// Interpret runs a statement list to completion. A single runtime error
// aborts this call (spec.md §7) — it does not panic and does not corrupt
// interpreter state for a subsequent call (the REPL reuses one Interpreter
// across lines). A Break or Continue signal that escapes every enclosing
// loop is re-raised here as the runtime error spec.md §4.4 describes,
// since by definition nothing inside the statement list absorbed it.
func (it *Interpreter) Interpret(stmts []ast.Stmt) *errs.RuntimeError {
	for _, s := range stmts {
		sig, rerr := it.execStmt(s)
		if rerr != nil {
			return rerr
		}
		if rerr := it.rejectEscapedSignal(sig); rerr != nil {
			return rerr
		}
	}
	return nil
}

// rejectEscapedSignal converts a Break/Continue signal that reached the
// top level or a function's call boundary (outside any loop) into the
// runtime error spec.md §4.4 mandates. Any other signal yields nil: a
// Return inside a function body is absorbed by the call boundary first,
// and a `return` outside any function reaches Interpret as a ReturnSignal
// that is ignored, so execution continues with the next statement.
func (it *Interpreter) rejectEscapedSignal(sig value.Value) *errs.RuntimeError {
	switch s := sig.(type) {
	case value.BreakSignal:
		return errs.NewRuntimeError(s.Line, "Usage of keyword 'break' outside of loop context.")
	case value.ContinueSignal:
		return errs.NewRuntimeError(s.Line, "Usage of keyword 'continue' outside of loop context.")
	default:
		return nil
	}
}

// executeBlock runs stmts in a fresh child environment of enclosing,
// restoring it.current to whatever it was on entry on every exit path —
// normal completion, a propagating signal, or a runtime error (spec.md §5,
// §8's environment-restoration invariant). This is the single choke point
// all block-shaped execution (block statements, including a for-loop's
// desugared init-and-loop block, and function bodies) funnels through.
func (it *Interpreter) executeBlock(stmts []ast.Stmt, enclosing *environment.Environment) (value.Value, *errs.RuntimeError) {
	previous := it.current
	it.current = environment.NewChild(enclosing)
	defer func() { it.current = previous }()

	for _, s := range stmts {
		sig, rerr := it.execStmt(s)
		if rerr != nil {
			return nil, rerr
		}
		if sig != nil {
			return sig, nil
		}
	}
	return nil, nil
}
