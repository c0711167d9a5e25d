package replloop

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/emberscript/ember/internal/interpreter"
)

// evalLine and runAst are exercised directly rather than through Run, since
// Run drives a real readline.Instance that needs a terminal.

func TestEvalLine_PrintsBareExpressionResult(t *testing.T) {
	var out, errOut bytes.Buffer
	r := New("> ", false, 0)
	it := interpreter.New(&out, true, r.MaxCallDepth)
	errColor := colorOrPlain(color.FgRed, false)

	r.evalLine(&out, &errOut, errColor, it, "1 + 2;")
	assert.Equal(t, "3\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestEvalLine_PersistsBindingsAcrossCalls(t *testing.T) {
	var out, errOut bytes.Buffer
	r := New("> ", false, 0)
	it := interpreter.New(&out, true, r.MaxCallDepth)
	errColor := colorOrPlain(color.FgRed, false)

	r.evalLine(&out, &errOut, errColor, it, "var x = 1;")
	r.evalLine(&out, &errOut, errColor, it, "x = x + 1;")
	out.Reset()
	r.evalLine(&out, &errOut, errColor, it, "print x;")
	assert.Equal(t, "2\n", out.String())
}

func TestEvalLine_PrintsCompileErrorToErrOutWithoutAborting(t *testing.T) {
	var out, errOut bytes.Buffer
	r := New("> ", false, 0)
	it := interpreter.New(&out, true, r.MaxCallDepth)
	errColor := colorOrPlain(color.FgRed, false)

	r.evalLine(&out, &errOut, errColor, it, "var = ;")
	assert.Empty(t, out.String(), "compile errors must not be written to out")
	assert.Contains(t, errOut.String(), "Error at")

	out.Reset()
	errOut.Reset()
	r.evalLine(&out, &errOut, errColor, it, "print 1;")
	assert.Equal(t, "1\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestEvalLine_PrintsRuntimeErrorToErrOut(t *testing.T) {
	var out, errOut bytes.Buffer
	r := New("> ", false, 0)
	it := interpreter.New(&out, true, r.MaxCallDepth)
	errColor := colorOrPlain(color.FgRed, false)

	r.evalLine(&out, &errOut, errColor, it, "print 1 / 0;")
	assert.Empty(t, out.String(), "runtime errors must not be written to out")
	assert.Contains(t, errOut.String(), "Division by zero error.")
}

func TestRunAst_PrintsWithoutEvaluating(t *testing.T) {
	var out, errOut bytes.Buffer
	r := New("> ", false, 0)
	infoColor := colorOrPlain(color.FgCyan, false)
	errColor := colorOrPlain(color.FgRed, false)

	r.runAst(&out, &errOut, infoColor, errColor, "1 + 2;")
	assert.NotEmpty(t, out.String())
	assert.NotContains(t, out.String(), "3", "runAst must print structure, not the evaluated result")
	assert.Empty(t, errOut.String())
}

func TestRunAst_PrintsParseErrorToErrOut(t *testing.T) {
	var out, errOut bytes.Buffer
	r := New("> ", false, 0)
	infoColor := colorOrPlain(color.FgCyan, false)
	errColor := colorOrPlain(color.FgRed, false)

	r.runAst(&out, &errOut, infoColor, errColor, "var = ;")
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "Error at")
}
