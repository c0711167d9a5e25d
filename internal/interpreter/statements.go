/*
File    : ember/internal/interpreter/statements.go
Package : interpreter
*/

package interpreter

import (
	"fmt"

	"github.com/emberscript/ember/internal/ast"
	"github.com/emberscript/ember/internal/errs"
	"github.com/emberscript/ember/internal/value"
)

// execStmt executes a single statement. Its first return value is nil on
// normal completion, or one of value.ReturnSignal/BreakSignal/
// ContinueSignal when the statement caused non-local control flow that the
// caller (executeBlock, a loop, or Interpret itself) must propagate or
// absorb. The second return value is non-nil only for a genuine runtime
// error, which always takes priority over any signal.
func (it *Interpreter) execStmt(s ast.Stmt) (value.Value, *errs.RuntimeError) {
	switch n := s.(type) {
	case *ast.ExpressionStmt:
		return it.execExpressionStmt(n)
	case *ast.PrintStmt:
		return it.execPrintStmt(n)
	case *ast.VarStmt:
		return it.execVarStmt(n)
	case *ast.BlockStmt:
		return it.executeBlock(n.Stmts, it.current)
	case *ast.IfStmt:
		return it.execIfStmt(n)
	case *ast.WhileStmt:
		return it.execWhileStmt(n)
	case *ast.FunctionStmt:
		return it.execFunctionStmt(n)
	case *ast.ReturnStmt:
		return it.execReturnStmt(n)
	case *ast.BreakStmt:
		return value.BreakSignal{Keyword: n.Keyword.Lexeme, Line: n.Keyword.Line}, nil
	case *ast.ContinueStmt:
		return value.ContinueSignal{Keyword: n.Keyword.Lexeme, Line: n.Keyword.Line}, nil
	default:
		return nil, errs.NewRuntimeError(0, "Unknown statement type %T.", s)
	}
}

// execExpressionStmt evaluates its operand for effect. In REPL mode
// (spec.md §6) the result is also printed, stringify-formatted; in file
// mode it is silent.
func (it *Interpreter) execExpressionStmt(n *ast.ExpressionStmt) (value.Value, *errs.RuntimeError) {
	v, rerr := it.evalExpr(n.Expr)
	if rerr != nil {
		return nil, rerr
	}
	if it.Repl {
		fmt.Fprintln(it.Out, v.String())
	}
	return nil, nil
}

// execPrintStmt writes stringify(value) + "\n" to standard output
// (spec.md §4.4).
func (it *Interpreter) execPrintStmt(n *ast.PrintStmt) (value.Value, *errs.RuntimeError) {
	v, rerr := it.evalExpr(n.Expr)
	if rerr != nil {
		return nil, rerr
	}
	fmt.Fprintln(it.Out, v.String())
	return nil, nil
}

// execVarStmt evaluates an optional initializer and defines the name in
// the current frame. `var name = expr;` marks it initialized; bare
// `var name;` defines it with Nil and leaves it uninitialized, so a read
// before assignment fails per spec.md §3 (except the Callable exception,
// which can't apply here since nothing has been assigned yet).
func (it *Interpreter) execVarStmt(n *ast.VarStmt) (value.Value, *errs.RuntimeError) {
	if n.Init == nil {
		it.current.Define(n.Name.Lexeme, value.Nil{})
		return nil, nil
	}
	v, rerr := it.evalExpr(n.Init)
	if rerr != nil {
		return nil, rerr
	}
	it.current.DefineInitialized(n.Name.Lexeme, v)
	return nil, nil
}

func (it *Interpreter) execIfStmt(n *ast.IfStmt) (value.Value, *errs.RuntimeError) {
	cond, rerr := it.evalExpr(n.Cond)
	if rerr != nil {
		return nil, rerr
	}
	if value.Truthy(cond) {
		return it.execStmt(n.Then)
	}
	if n.Else != nil {
		return it.execStmt(n.Else)
	}
	return nil, nil
}

// execWhileStmt loops while its condition is truthy, absorbing a Break
// signal from the body (ending the loop) and a Continue signal (running
// Increment, if present, then skipping straight to the next condition
// check). A Return signal or runtime error propagates past the loop
// unchanged, to be absorbed by the enclosing call frame or Interpret
// respectively. for-loops desugar to this at parse time (spec.md §4.2),
// carrying their increment clause on Increment rather than folding it into
// Body, so that `continue` — which unwinds the body block immediately —
// still runs the increment before the condition is re-tested.
func (it *Interpreter) execWhileStmt(n *ast.WhileStmt) (value.Value, *errs.RuntimeError) {
	for {
		cond, rerr := it.evalExpr(n.Cond)
		if rerr != nil {
			return nil, rerr
		}
		if !value.Truthy(cond) {
			return nil, nil
		}
		sig, rerr := it.execStmt(n.Body)
		if rerr != nil {
			return nil, rerr
		}
		switch sig.(type) {
		case nil:
			// fell off the end of the body; run the increment and re-check
		case value.BreakSignal:
			return nil, nil
		case value.ContinueSignal:
			// run the increment and re-check, same as falling off the end
		default:
			return sig, nil
		}
		if n.Increment != nil {
			if _, rerr := it.evalExpr(n.Increment); rerr != nil {
				return nil, rerr
			}
		}
	}
}

// execFunctionStmt defines name in the current environment bound to a
// Function capturing that same environment as its closure — defined
// before capture completes, which is what makes the function visible to
// calls from inside its own body (recursion) and to sibling functions
// declared in the same block before it (mutual recursion, spec.md §4.5).
func (it *Interpreter) execFunctionStmt(n *ast.FunctionStmt) (value.Value, *errs.RuntimeError) {
	params := make([]string, len(n.Params))
	for i, p := range n.Params {
		params[i] = p.Lexeme
	}
	fn := &value.Function{
		Name:    n.Name.Lexeme,
		Params:  params,
		Body:    n.Body,
		Closure: it.current,
	}
	it.current.DefineInitialized(n.Name.Lexeme, fn)
	return nil, nil
}

// execReturnStmt evaluates its optional expression (Nil if absent) and
// wraps it in a ReturnSignal for the enclosing call frame to unwrap
// (spec.md §4.4).
func (it *Interpreter) execReturnStmt(n *ast.ReturnStmt) (value.Value, *errs.RuntimeError) {
	if n.Value == nil {
		return value.ReturnSignal{Value: value.Nil{}}, nil
	}
	v, rerr := it.evalExpr(n.Value)
	if rerr != nil {
		return nil, rerr
	}
	return value.ReturnSignal{Value: v}, nil
}
