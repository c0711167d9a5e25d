/*
File    : ember/internal/environment/environment.go
Package : environment
*/

// Package environment implements Ember's lexically-nested name-to-value
// scope chain (spec.md §3, §4.7, §4.8): a singly-linked chain of frames
// toward an outer scope, each tracking which of its names have actually
// been initialized since declaration, so that reading a declared-but-
// uninitialized variable is a runtime error — except when the value
// already stored there is a Function, which lets mutually recursive or
// forward-referenced function declarations resolve (spec.md §4.7).
package environment

import (
	"fmt"

	"github.com/emberscript/ember/internal/value"
)

// Environment is one lexical scope frame.
type Environment struct {
	values      map[string]value.Value
	initialized map[string]bool
	enclosing   *Environment
}

// New creates a scope with no enclosing frame — the global scope.
func New() *Environment {
	return &Environment{
		values:      make(map[string]value.Value),
		initialized: make(map[string]bool),
	}
}

// NewChild creates a scope whose enclosing frame is parent — used for
// block entry and for the environment created on every function call.
func NewChild(parent *Environment) *Environment {
	e := New()
	e.enclosing = parent
	return e
}

// Define creates or overwrites a binding in the current frame only,
// without marking it initialized. Redefinition in the same scope is
// permitted (spec.md §3: "define does not require the name to be absent").
// Use DefineInitialized for bindings that are immediately given a value
// (var with an initializer, function declarations, parameter binding).
func (e *Environment) Define(name string, v value.Value) {
	e.values[name] = v
}

// DefineInitialized creates or overwrites a binding in the current frame
// and immediately marks it initialized.
func (e *Environment) DefineInitialized(name string, v value.Value) {
	e.values[name] = v
	e.initialized[name] = true
}

// Get resolves name by walking outward through the scope chain, applying
// the uninitialized-read rule at the frame where the name is found.
func (e *Environment) Get(name string) (value.Value, error) {
	if v, ok := e.values[name]; ok {
		if !e.initialized[name] {
			if _, isFn := v.(*value.Function); isFn {
				return v, nil
			}
			return nil, &uninitializedError{Name: name}
		}
		return v, nil
	}
	if e.enclosing != nil {
		return e.enclosing.Get(name)
	}
	return nil, &undefinedError{Name: name}
}

// Assign walks outward until a frame contains name, then sets and marks it
// initialized there. If no frame contains name, it is an undefined-variable
// error (spec.md §4.8).
func (e *Environment) Assign(name string, v value.Value) error {
	if _, ok := e.values[name]; ok {
		e.values[name] = v
		e.initialized[name] = true
		return nil
	}
	if e.enclosing != nil {
		return e.enclosing.Assign(name, v)
	}
	return &undefinedError{Name: name}
}

// embersScope makes *Environment satisfy value.Scope, so a *value.Function
// can carry one as its Closure without internal/value importing this
// package. internal/interpreter is the only code that unwraps a Scope,
// via a type assertion back to *Environment.
func (*Environment) embersScope() {}

// Names returns every binding name visible from this scope outward,
// nearest scope first — used only for the fuzzy "did you mean" suggestion
// in internal/errs, never for language semantics.
func (e *Environment) Names() []string {
	var names []string
	for scope := e; scope != nil; scope = scope.enclosing {
		for name := range scope.values {
			names = append(names, name)
		}
	}
	return names
}

var _ value.Scope = (*Environment)(nil)

// undefinedError and uninitializedError are environment-local sentinel
// errors; internal/interpreter maps them to spec.md's exact runtime error
// text and line anchoring (the environment itself has no token/line to
// anchor with).
type undefinedError struct{ Name string }

func (e *undefinedError) Error() string { return fmt.Sprintf("undefined variable %q", e.Name) }

type uninitializedError struct{ Name string }

func (e *uninitializedError) Error() string {
	return fmt.Sprintf("uninitialized variable %q", e.Name)
}

// IsUndefined reports whether err is an undefined-variable sentinel and
// returns the offending name.
func IsUndefined(err error) (string, bool) {
	if e, ok := err.(*undefinedError); ok {
		return e.Name, true
	}
	return "", false
}

// IsUninitialized reports whether err is an uninitialized-variable
// sentinel and returns the offending name.
func IsUninitialized(err error) (string, bool) {
	if e, ok := err.(*uninitializedError); ok {
		return e.Name, true
	}
	return "", false
}
