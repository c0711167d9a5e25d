package ast

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/emberscript/ember/internal/token"
)

func TestPrint_ExpressionStmt(t *testing.T) {
	stmts := []Stmt{
		&ExpressionStmt{Expr: &Binary{
			Left:  &Literal{Value: 1.0},
			Op:    token.New(token.Plus, "+", 1),
			Right: &Literal{Value: 2.0},
		}},
	}
	out := Print(stmts)
	assert.True(t, strings.HasPrefix(out, "ExpressionStmt\n"))
	assert.Contains(t, out, "Binary(+)")
	assert.Contains(t, out, "Literal(1)")
	assert.Contains(t, out, "Literal(2)")
}

func TestPrint_NestedBlockIndents(t *testing.T) {
	stmts := []Stmt{
		&BlockStmt{Stmts: []Stmt{
			&VarStmt{Name: token.New(token.Identifier, "x", 1)},
		}},
	}
	out := Print(stmts)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, "BlockStmt", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "  VarStmt"))
}

func TestPrint_FunctionAndReturn(t *testing.T) {
	stmts := []Stmt{
		&FunctionStmt{
			Name:   token.New(token.Identifier, "f", 1),
			Params: nil,
			Body: []Stmt{
				&ReturnStmt{Value: &Literal{Value: true}},
			},
		},
	}
	out := Print(stmts)
	assert.Contains(t, out, "FunctionStmt(f)")
	assert.Contains(t, out, "ReturnStmt")
	assert.Contains(t, out, "Literal(true)")
}
