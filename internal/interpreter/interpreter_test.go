package interpreter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberscript/ember/internal/lexer"
	"github.com/emberscript/ember/internal/parser"
)

// run lexes, parses, and interprets src against a fresh Interpreter,
// returning everything it printed and any runtime error.
func run(t *testing.T, src string) (string, *Interpreter, error) {
	t.Helper()
	l := lexer.New(src)
	tokens := l.ScanTokens()
	require.Empty(t, l.Errors(), "unexpected lex errors for %q", src)

	p := parser.New(tokens)
	stmts := p.Parse()
	require.False(t, p.Errors().HasErrors(), "unexpected parse errors for %q: %v", src, p.Errors().Messages())

	var out bytes.Buffer
	it := New(&out, false, 0)
	rerr := it.Interpret(stmts)
	if rerr != nil {
		return out.String(), it, rerr
	}
	return out.String(), it, nil
}

func TestInterpret_ArithmeticPrecedence(t *testing.T) {
	out, _, err := run(t, "print 1 + 2 * 3;")
	require.NoError(t, err)
	assert.Equal(t, "7\n", out)
}

func TestInterpret_StringConcatCoercesNumber(t *testing.T) {
	out, _, err := run(t, `print "count: " + 5;`)
	require.NoError(t, err)
	assert.Equal(t, "count: 5\n", out)
}

func TestInterpret_DivisionByZero(t *testing.T) {
	_, _, err := run(t, "print 1 / 0;")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Division by zero error.")
}

func TestInterpret_UninitializedVariableRead(t *testing.T) {
	_, _, err := run(t, "var x; print x;")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Accessing uninitialized variable 'x'.")
}

func TestInterpret_UndefinedVariable(t *testing.T) {
	_, _, err := run(t, "print nope;")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Undefined variable 'nope'.")
}

func TestInterpret_UndefinedVariableSuggestion(t *testing.T) {
	_, _, err := run(t, "var count = 1; print counnt;")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Did you mean 'count'?")
}

func TestInterpret_BlockShadowing(t *testing.T) {
	out, _, err := run(t, `
		var x = "outer";
		{
			var x = "inner";
			print x;
		}
		print x;
	`)
	require.NoError(t, err)
	assert.Equal(t, "inner\nouter\n", out)
}

func TestInterpret_Fibonacci(t *testing.T) {
	out, _, err := run(t, `
		fun fib(n) {
			if (n < 2) return n;
			return fib(n - 1) + fib(n - 2);
		}
		print fib(10);
	`)
	require.NoError(t, err)
	assert.Equal(t, "55\n", out)
}

func TestInterpret_MakeCounterClosure(t *testing.T) {
	out, _, err := run(t, `
		fun makeCounter() {
			var count = 0;
			fun increment() {
				count = count + 1;
				return count;
			}
			return increment;
		}
		var counter = makeCounter();
		print counter();
		print counter();
		print counter();
	`)
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n3\n", out)
}

func TestInterpret_IndependentClosuresDoNotShareState(t *testing.T) {
	out, _, err := run(t, `
		fun makeCounter() {
			var count = 0;
			fun increment() {
				count = count + 1;
				return count;
			}
			return increment;
		}
		var a = makeCounter();
		var b = makeCounter();
		print a();
		print a();
		print b();
	`)
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n1\n", out)
}

func TestInterpret_WhileBreak(t *testing.T) {
	out, _, err := run(t, `
		var i = 0;
		while (true) {
			if (i == 3) break;
			print i;
			i = i + 1;
		}
	`)
	require.NoError(t, err)
	assert.Equal(t, "0\n1\n2\n", out)
}

func TestInterpret_WhileContinue(t *testing.T) {
	out, _, err := run(t, `
		var i = 0;
		while (i < 5) {
			i = i + 1;
			if (i == 3) continue;
			print i;
		}
	`)
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n4\n5\n", out)
}

func TestInterpret_BreakOutsideLoopIsRuntimeError(t *testing.T) {
	_, _, err := run(t, "break;")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Usage of keyword 'break' outside of loop context.")
}

func TestInterpret_ContinueOutsideLoopIsRuntimeError(t *testing.T) {
	_, _, err := run(t, "continue;")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Usage of keyword 'continue' outside of loop context.")
}

func TestInterpret_ForLoop(t *testing.T) {
	out, _, err := run(t, `
		for (var i = 0; i < 3; i = i + 1) {
			print i;
		}
	`)
	require.NoError(t, err)
	assert.Equal(t, "0\n1\n2\n", out)
}

// A continue inside a desugared for-loop must still run the increment
// clause before the condition is re-tested; otherwise the loop variable
// never advances past the continued iteration and the loop never ends.
func TestInterpret_ForLoopContinueStillRunsIncrement(t *testing.T) {
	out, _, err := run(t, `
		for (var i = 0; i < 5; i = i + 1) {
			if (i == 2) continue;
			print i;
		}
	`)
	require.NoError(t, err)
	assert.Equal(t, "0\n1\n3\n4\n", out)
}

func TestInterpret_LogicalShortCircuitReturnsOperand(t *testing.T) {
	out, _, err := run(t, `
		print 0 or "fallback";
		print "truthy" and "last";
		print false or "fallback";
	`)
	require.NoError(t, err)
	// 0 is truthy (only nil/false are falsey), so `or` never reaches its
	// right side; `and` with a truthy left returns its right operand.
	assert.Equal(t, "0\nlast\nfallback\n", out)
}

func TestInterpret_TernaryEvaluatesOnlyChosenBranch(t *testing.T) {
	// The else branch names an undefined variable, so evaluating it would
	// be a runtime error.
	out, _, err := run(t, `print true ? "yes" : nope;`)
	require.NoError(t, err)
	assert.Equal(t, "yes\n", out)
}

func TestInterpret_NumberStringifyDropsTrailingZero(t *testing.T) {
	out, _, err := run(t, "print 6.0;")
	require.NoError(t, err)
	assert.Equal(t, "6\n", out)
}

func TestInterpret_ReplModePrintsBareExpressions(t *testing.T) {
	l := lexer.New("1 + 1;")
	p := parser.New(l.ScanTokens())
	stmts := p.Parse()
	require.False(t, p.Errors().HasErrors())

	var out bytes.Buffer
	it := New(&out, true, 0)
	rerr := it.Interpret(stmts)
	require.Nil(t, rerr)
	assert.Equal(t, "2\n", out.String())
}

func TestInterpret_FileModeDoesNotPrintBareExpressions(t *testing.T) {
	l := lexer.New("1 + 1;")
	p := parser.New(l.ScanTokens())
	stmts := p.Parse()
	require.False(t, p.Errors().HasErrors())

	var out bytes.Buffer
	it := New(&out, false, 0)
	rerr := it.Interpret(stmts)
	require.Nil(t, rerr)
	assert.Equal(t, "", out.String())
}

func TestInterpret_ClockNativeReturnsNumber(t *testing.T) {
	out, _, err := run(t, `
		var t = clock();
		print t >= 0;
	`)
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
}

func TestInterpret_CallArityMismatch(t *testing.T) {
	_, _, err := run(t, `
		fun add(a, b) { return a + b; }
		add(1);
	`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Expected 2 arguments but got 1.")
}

func TestInterpret_CallingNonFunction(t *testing.T) {
	_, _, err := run(t, `
		var x = 5;
		x();
	`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can only call functions and classes.")
}

func TestInterpret_StackOverflowIsCatchableRuntimeError(t *testing.T) {
	l := lexer.New(`
		fun recurse() { return recurse(); }
		recurse();
	`)
	p := parser.New(l.ScanTokens())
	stmts := p.Parse()
	require.False(t, p.Errors().HasErrors())

	var out bytes.Buffer
	it := New(&out, false, 50)
	rerr := it.Interpret(stmts)
	require.NotNil(t, rerr)
	assert.Contains(t, rerr.Error(), "Stack overflow")
}

func TestInterpret_LambdaAssignedAndCalled(t *testing.T) {
	out, _, err := run(t, `
		var square = fun (x) { return x * x; };
		print square(5);
	`)
	require.NoError(t, err)
	assert.Equal(t, "25\n", out)
}

func TestInterpret_ReusedInterpreterPersistsBindingsAcrossCalls(t *testing.T) {
	var out bytes.Buffer
	it := New(&out, true, 0)

	l1 := lexer.New("var x = 1;")
	p1 := parser.New(l1.ScanTokens())
	require.Nil(t, it.Interpret(p1.Parse()))

	l2 := lexer.New("x = x + 1; print x;")
	p2 := parser.New(l2.ScanTokens())
	require.Nil(t, it.Interpret(p2.Parse()))

	// REPL mode echoes the bare assignment's value before print writes it.
	assert.Equal(t, "2\n2\n", out.String())
}
