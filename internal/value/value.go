/*
File    : ember/internal/value/value.go
Package : value
*/

// Package value defines Ember's runtime value model: the tagged variant
// from spec.md §3 (Nil, Bool, Number, Str, Callable) plus the Native host
// function case and the internal control-flow signal values the
// interpreter threads through statement execution. Every concrete type
// implements Value, whose String method is the `stringify` function from
// spec.md §6.
package value

import (
	"strconv"

	"github.com/emberscript/ember/internal/ast"
)

// Type names returned by Value.Type(), used only for diagnostics — the
// language itself has no reflection/typeof operator.
const (
	TypeNil      = "nil"
	TypeBool     = "bool"
	TypeNumber   = "number"
	TypeString   = "string"
	TypeFunction = "function"
	TypeNative   = "native"
)

// Value is any runtime value, or one of the internal control-flow signals
// (ReturnSignal/BreakSignal/ContinueSignal) the interpreter uses to unwind
// frames. Signals are never observable from the language: no stringify
// call or equality comparison is ever performed against them by the
// interpreter.
type Value interface {
	// Type reports the dynamic type tag, for error messages.
	Type() string
	// String is `stringify`: the canonical textual rendering from spec.md §6.
	String() string
}

// Nil is the sole absent value.
type Nil struct{}

func (Nil) Type() string   { return TypeNil }
func (Nil) String() string { return "nil" }

// Bool wraps a boolean.
type Bool struct{ Value bool }

func (Bool) Type() string { return TypeBool }
func (b Bool) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// Number wraps an IEEE-754 double.
type Number struct{ Value float64 }

func (Number) Type() string { return TypeNumber }

// String implements spec.md §6's numeric display law: integer-valued
// doubles drop the trailing ".0" (e.g. 3.0 -> "3"); everything else is
// rendered with Go's shortest round-tripping decimal form.
func (n Number) String() string {
	if n.Value == float64(int64(n.Value)) {
		return strconv.FormatInt(int64(n.Value), 10)
	}
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

// Str wraps an immutable string. Its String() is the bare contents, with
// no surrounding quotes (spec.md §6).
type Str struct{ Value string }

func (Str) Type() string     { return TypeString }
func (s Str) String() string { return s.Value }

// Scope is an opaque capture of an *environment.Environment, letting
// Function hold a closure without this package importing
// internal/environment (which must import value for its name-to-Value
// map — importing it back here would cycle). internal/interpreter is the
// only code that unwraps a Scope, via a type assertion back to
// *environment.Environment, when it builds the environment for a call.
type Scope interface {
	embersScope()
}

// Function is a first-class, user-defined callable: its declared
// parameter names, its body, the environment captured at the point of
// definition (its closure — a live reference, never a snapshot; see
// DESIGN.md's Open Question #4), and a display name ("" for lambdas).
type Function struct {
	Name    string
	Params  []string
	Body    []ast.Stmt
	Closure Scope
}

func (*Function) Type() string { return TypeFunction }

// String is `<fn name>` for named functions, `<fn>` for lambdas.
func (f *Function) String() string {
	if f.Name == "" {
		return "<fn>"
	}
	return "<fn " + f.Name + ">"
}

// Arity is the number of parameters this function declares.
func (f *Function) Arity() int { return len(f.Params) }

// NativeFunc is the Go function signature a Native value wraps.
type NativeFunc func(args []Value) (Value, error)

// Native is a host-supplied callable with fixed arity (spec.md §3, §6).
type Native struct {
	Name string
	Arg  int
	Fn   NativeFunc
}

func (*Native) Type() string   { return TypeNative }
func (*Native) String() string { return "<native fn>" }

// Arity is the native function's fixed parameter count.
func (n *Native) Arity() int { return n.Arg }

// Callable is the method set Function and Native share (a Value with an
// Arity). internal/interpreter dispatches calls with a type switch on the
// concrete *Function or *Native, not through this interface.
type Callable interface {
	Value
	Arity() int
}

var (
	_ Callable = (*Function)(nil)
	_ Callable = (*Native)(nil)
)

// ReturnSignal unwinds frames back to the nearest enclosing call (spec.md
// §4.4). It is never exposed to user code.
type ReturnSignal struct{ Value Value }

func (ReturnSignal) Type() string   { return "return-signal" }
func (ReturnSignal) String() string { return "<return>" }

// BreakSignal aborts the nearest enclosing loop (spec.md §4.4). Line is the
// "break" keyword's source line, carried so that a break escaping every
// enclosing loop can be re-raised as a line-anchored runtime error (§4.4,
// §7) at the boundary that finally notices nothing absorbed it.
type BreakSignal struct {
	Keyword string
	Line    int
}

func (BreakSignal) Type() string   { return "break-signal" }
func (BreakSignal) String() string { return "<break>" }

// ContinueSignal skips to the next iteration of the nearest enclosing loop
// (SPEC_FULL §4, supplementing spec.md's break).
type ContinueSignal struct {
	Keyword string
	Line    int
}

func (ContinueSignal) Type() string   { return "continue-signal" }
func (ContinueSignal) String() string { return "<continue>" }

// Truthy implements spec.md §4.3: nil and false are falsey, everything
// else (including 0 and "") is truthy.
func Truthy(v Value) bool {
	switch t := v.(type) {
	case Nil:
		return false
	case Bool:
		return t.Value
	default:
		return true
	}
}

// Equal implements spec.md §4.3's equality rule: nil == nil is true, nil
// compared to anything else is false, otherwise structural equality by
// tag then value (NaN != NaN falls out of Go's float64 == for free).
func Equal(a, b Value) bool {
	_, aNil := a.(Nil)
	_, bNil := b.(Nil)
	if aNil || bNil {
		return aNil && bNil
	}
	switch av := a.(type) {
	case Bool:
		bv, ok := b.(Bool)
		return ok && av.Value == bv.Value
	case Number:
		bv, ok := b.(Number)
		return ok && av.Value == bv.Value
	case Str:
		bv, ok := b.(Str)
		return ok && av.Value == bv.Value
	default:
		return a == b
	}
}
