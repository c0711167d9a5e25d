/*
File    : ember/internal/interpreter/expressions.go
Package : interpreter
*/

package interpreter

import (
	"github.com/emberscript/ember/internal/ast"
	"github.com/emberscript/ember/internal/environment"
	"github.com/emberscript/ember/internal/errs"
	"github.com/emberscript/ember/internal/token"
	"github.com/emberscript/ember/internal/value"
)

// evalExpr evaluates an expression to a runtime value. It never returns a
// control-flow signal — only Return/Break/Continue statements produce
// those, and an expression can't contain a statement.
func (it *Interpreter) evalExpr(e ast.Expr) (value.Value, *errs.RuntimeError) {
	switch n := e.(type) {
	case *ast.Literal:
		return literalValue(n.Value), nil
	case *ast.Unary:
		return it.evalUnary(n)
	case *ast.Binary:
		return it.evalBinary(n)
	case *ast.Logical:
		return it.evalLogical(n)
	case *ast.Ternary:
		return it.evalTernary(n)
	case *ast.Grouping:
		return it.evalExpr(n.Inner)
	case *ast.Variable:
		return it.evalVariable(n)
	case *ast.Assign:
		return it.evalAssign(n)
	case *ast.Call:
		return it.evalCall(n)
	case *ast.Lambda:
		return &value.Function{Params: paramNames(n.Params), Body: n.Body, Closure: it.current}, nil
	default:
		return nil, errs.NewRuntimeError(0, "Unknown expression type %T.", e)
	}
}

// literalValue converts the raw Go value the parser stashed in an
// ast.Literal (nil, bool, float64, or string) into its internal/value
// counterpart.
func literalValue(v interface{}) value.Value {
	switch t := v.(type) {
	case nil:
		return value.Nil{}
	case bool:
		return value.Bool{Value: t}
	case float64:
		return value.Number{Value: t}
	case string:
		return value.Str{Value: t}
	default:
		return value.Nil{}
	}
}

func paramNames(params []token.Token) []string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Lexeme
	}
	return names
}

// evalUnary implements `!x` and `-x` (spec.md §4.3).
func (it *Interpreter) evalUnary(n *ast.Unary) (value.Value, *errs.RuntimeError) {
	operand, rerr := it.evalExpr(n.Operand)
	if rerr != nil {
		return nil, rerr
	}
	switch n.Op.Kind {
	case token.Bang:
		return value.Bool{Value: !value.Truthy(operand)}, nil
	case token.Minus:
		num, ok := operand.(value.Number)
		if !ok {
			return nil, errs.NewRuntimeError(n.Op.Line, "Operand must be a number.")
		}
		return value.Number{Value: -num.Value}, nil
	default:
		return nil, errs.NewRuntimeError(n.Op.Line, "Unknown unary operator '%s'.", n.Op.Lexeme)
	}
}

// evalBinary implements arithmetic, comparison, equality, and "+" (whose
// string-concatenation overload is special-cased per spec.md §4.3).
func (it *Interpreter) evalBinary(n *ast.Binary) (value.Value, *errs.RuntimeError) {
	left, rerr := it.evalExpr(n.Left)
	if rerr != nil {
		return nil, rerr
	}
	right, rerr := it.evalExpr(n.Right)
	if rerr != nil {
		return nil, rerr
	}

	switch n.Op.Kind {
	case token.Comma:
		return right, nil
	case token.EqualEqual:
		return value.Bool{Value: value.Equal(left, right)}, nil
	case token.BangEqual:
		return value.Bool{Value: !value.Equal(left, right)}, nil
	case token.Plus:
		return evalPlus(left, right, n.Op.Line)
	case token.Minus, token.Star, token.Slash, token.Greater, token.GreaterEqual, token.Less, token.LessEqual:
		ln, lok := left.(value.Number)
		rn, rok := right.(value.Number)
		if !lok || !rok {
			return nil, errs.NewRuntimeError(n.Op.Line, "Operands must be numbers.")
		}
		return evalNumeric(n.Op.Kind, ln.Value, rn.Value, n.Op.Line)
	default:
		return nil, errs.NewRuntimeError(n.Op.Line, "Unknown binary operator '%s'.", n.Op.Lexeme)
	}
}

// evalPlus implements spec.md §4.3's "+": string concatenation (coercing
// the other side via stringify) if either operand is a Str, numeric
// addition if both are Number, otherwise a type error.
func evalPlus(left, right value.Value, line int) (value.Value, *errs.RuntimeError) {
	_, leftStr := left.(value.Str)
	_, rightStr := right.(value.Str)
	if leftStr || rightStr {
		return value.Str{Value: left.String() + right.String()}, nil
	}
	ln, lok := left.(value.Number)
	rn, rok := right.(value.Number)
	if lok && rok {
		return value.Number{Value: ln.Value + rn.Value}, nil
	}
	return nil, errs.NewRuntimeError(line, "Operands must be two numbers or two strings.")
}

// evalNumeric implements the remaining numeric binary operators. Division
// by exactly zero is a runtime error rather than IEEE infinity (spec.md
// §4.3's explicit "implementations must not produce IEEE infinity" rule).
func evalNumeric(op token.Kind, l, r float64, line int) (value.Value, *errs.RuntimeError) {
	switch op {
	case token.Minus:
		return value.Number{Value: l - r}, nil
	case token.Star:
		return value.Number{Value: l * r}, nil
	case token.Slash:
		if r == 0.0 {
			return nil, errs.NewRuntimeError(line, "Division by zero error.")
		}
		return value.Number{Value: l / r}, nil
	case token.Greater:
		return value.Bool{Value: l > r}, nil
	case token.GreaterEqual:
		return value.Bool{Value: l >= r}, nil
	case token.Less:
		return value.Bool{Value: l < r}, nil
	case token.LessEqual:
		return value.Bool{Value: l <= r}, nil
	default:
		return nil, errs.NewRuntimeError(line, "Unknown numeric operator.")
	}
}

// evalLogical implements short-circuiting `and`/`or`, returning the
// determining operand itself rather than a coerced bool (spec.md §4.3).
func (it *Interpreter) evalLogical(n *ast.Logical) (value.Value, *errs.RuntimeError) {
	left, rerr := it.evalExpr(n.Left)
	if rerr != nil {
		return nil, rerr
	}
	if n.Op.Kind == token.Or {
		if value.Truthy(left) {
			return left, nil
		}
		return it.evalExpr(n.Right)
	}
	// "and"
	if !value.Truthy(left) {
		return left, nil
	}
	return it.evalExpr(n.Right)
}

// evalTernary evaluates only the chosen branch (spec.md §4.3).
func (it *Interpreter) evalTernary(n *ast.Ternary) (value.Value, *errs.RuntimeError) {
	cond, rerr := it.evalExpr(n.Cond)
	if rerr != nil {
		return nil, rerr
	}
	if value.Truthy(cond) {
		return it.evalExpr(n.Then)
	}
	return it.evalExpr(n.Else)
}

// evalVariable resolves a name against the current scope chain, mapping
// the environment package's sentinel errors to spec.md §6's exact runtime
// error text (with a fuzzy "did you mean" suggestion on undefined names,
// SPEC_FULL §3).
func (it *Interpreter) evalVariable(n *ast.Variable) (value.Value, *errs.RuntimeError) {
	v, err := it.current.Get(n.Name.Lexeme)
	if err == nil {
		return v, nil
	}
	if _, ok := environment.IsUninitialized(err); ok {
		return nil, errs.NewRuntimeError(n.Name.Line, "Accessing uninitialized variable '%s'.", n.Name.Lexeme)
	}
	if name, ok := environment.IsUndefined(err); ok {
		return nil, errs.UndefinedVariableError(n.Name.Line, name, it.current.Names())
	}
	return nil, errs.NewRuntimeError(n.Name.Line, "%s", err.Error())
}

// evalAssign evaluates its right-hand side, then walks the scope chain to
// assign it to an existing binding (spec.md §4.8).
func (it *Interpreter) evalAssign(n *ast.Assign) (value.Value, *errs.RuntimeError) {
	v, rerr := it.evalExpr(n.Value)
	if rerr != nil {
		return nil, rerr
	}
	if err := it.current.Assign(n.Name.Lexeme, v); err != nil {
		if name, ok := environment.IsUndefined(err); ok {
			return nil, errs.UndefinedVariableError(n.Name.Line, name, it.current.Names())
		}
		return nil, errs.NewRuntimeError(n.Name.Line, "%s", err.Error())
	}
	return v, nil
}

// evalCall evaluates the callee and each argument left-to-right (spec.md
// §4.5), then dispatches to a user Function or a Native.
func (it *Interpreter) evalCall(n *ast.Call) (value.Value, *errs.RuntimeError) {
	callee, rerr := it.evalExpr(n.Callee)
	if rerr != nil {
		return nil, rerr
	}
	args := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		v, rerr := it.evalExpr(a)
		if rerr != nil {
			return nil, rerr
		}
		args[i] = v
	}

	switch fn := callee.(type) {
	case *value.Function:
		return it.callFunction(fn, args, n.Paren.Line)
	case *value.Native:
		if len(args) != fn.Arity() {
			return nil, errs.NewRuntimeError(n.Paren.Line, "Expected %d arguments but got %d.", fn.Arity(), len(args))
		}
		result, err := fn.Fn(args)
		if err != nil {
			return nil, errs.NewRuntimeError(n.Paren.Line, "%s", err.Error())
		}
		return result, nil
	default:
		return nil, errs.NewRuntimeError(n.Paren.Line, "Can only call functions and classes.")
	}
}

// callFunction invokes a user-defined Function: a new environment is
// created whose enclosing link is the closure captured at declaration
// (not the caller's environment — lexical scoping, spec.md §4.5),
// parameters are bound there marked initialized, and the body runs as a
// block in that environment. A Return signal's value becomes the call's
// result; running off the end yields Nil; a Break or Continue that no loop
// inside the body absorbed is the outside-of-loop runtime error, the same
// as at top level. maxCallDepth bounds recursion
// (SPEC_FULL §3) so runaway recursion fails as a runtime error instead of
// crashing the host process.
func (it *Interpreter) callFunction(fn *value.Function, args []value.Value, callLine int) (value.Value, *errs.RuntimeError) {
	if len(args) != fn.Arity() {
		return nil, errs.NewRuntimeError(callLine, "Expected %d arguments but got %d.", fn.Arity(), len(args))
	}
	if it.callDepth >= it.maxCallDepth {
		return nil, errs.NewRuntimeError(callLine, "Stack overflow: exceeded maximum call depth of %d.", it.maxCallDepth)
	}

	closure, ok := fn.Closure.(*environment.Environment)
	if !ok {
		return nil, errs.NewRuntimeError(callLine, "Corrupt closure for function '%s'.", fn.Name)
	}
	callEnv := environment.NewChild(closure)
	for i, p := range fn.Params {
		callEnv.DefineInitialized(p, args[i])
	}

	it.callDepth++
	sig, rerr := it.executeBlock(fn.Body, callEnv)
	it.callDepth--
	if rerr != nil {
		return nil, rerr
	}
	if ret, ok := sig.(value.ReturnSignal); ok {
		return ret.Value, nil
	}
	if rerr := it.rejectEscapedSignal(sig); rerr != nil {
		return nil, rerr
	}
	return value.Nil{}, nil
}
