package ast

import (
	"fmt"
	"strings"
)

// Print renders a statement list as an indented tree, in the spirit of the
// teacher's PrintingVisitor debug tool but using a tag switch instead of
// double dispatch (per spec.md §9). Used by the REPL's /ast meta-command
// (SPEC_FULL §4) — it never evaluates anything.
func Print(stmts []Stmt) string {
	var b strings.Builder
	for _, s := range stmts {
		printStmt(&b, s, 0)
	}
	return b.String()
}

func printStmt(b *strings.Builder, s Stmt, depth int) {
	pad := strings.Repeat("  ", depth)
	switch n := s.(type) {
	case *ExpressionStmt:
		fmt.Fprintf(b, "%sExpressionStmt\n", pad)
		printExpr(b, n.Expr, depth+1)
	case *PrintStmt:
		fmt.Fprintf(b, "%sPrintStmt\n", pad)
		printExpr(b, n.Expr, depth+1)
	case *VarStmt:
		fmt.Fprintf(b, "%sVarStmt(%s)\n", pad, n.Name.Lexeme)
		if n.Init != nil {
			printExpr(b, n.Init, depth+1)
		}
	case *BlockStmt:
		fmt.Fprintf(b, "%sBlockStmt\n", pad)
		for _, stmt := range n.Stmts {
			printStmt(b, stmt, depth+1)
		}
	case *IfStmt:
		fmt.Fprintf(b, "%sIfStmt\n", pad)
		printExpr(b, n.Cond, depth+1)
		printStmt(b, n.Then, depth+1)
		if n.Else != nil {
			printStmt(b, n.Else, depth+1)
		}
	case *WhileStmt:
		fmt.Fprintf(b, "%sWhileStmt\n", pad)
		printExpr(b, n.Cond, depth+1)
		printStmt(b, n.Body, depth+1)
		if n.Increment != nil {
			printExpr(b, n.Increment, depth+1)
		}
	case *FunctionStmt:
		fmt.Fprintf(b, "%sFunctionStmt(%s)\n", pad, n.Name.Lexeme)
		for _, stmt := range n.Body {
			printStmt(b, stmt, depth+1)
		}
	case *ReturnStmt:
		fmt.Fprintf(b, "%sReturnStmt\n", pad)
		if n.Value != nil {
			printExpr(b, n.Value, depth+1)
		}
	case *BreakStmt:
		fmt.Fprintf(b, "%sBreakStmt\n", pad)
	case *ContinueStmt:
		fmt.Fprintf(b, "%sContinueStmt\n", pad)
	default:
		fmt.Fprintf(b, "%s<unknown stmt>\n", pad)
	}
}

func printExpr(b *strings.Builder, e Expr, depth int) {
	pad := strings.Repeat("  ", depth)
	switch n := e.(type) {
	case *Literal:
		fmt.Fprintf(b, "%sLiteral(%v)\n", pad, n.Value)
	case *Unary:
		fmt.Fprintf(b, "%sUnary(%s)\n", pad, n.Op.Lexeme)
		printExpr(b, n.Operand, depth+1)
	case *Binary:
		fmt.Fprintf(b, "%sBinary(%s)\n", pad, n.Op.Lexeme)
		printExpr(b, n.Left, depth+1)
		printExpr(b, n.Right, depth+1)
	case *Logical:
		fmt.Fprintf(b, "%sLogical(%s)\n", pad, n.Op.Lexeme)
		printExpr(b, n.Left, depth+1)
		printExpr(b, n.Right, depth+1)
	case *Ternary:
		fmt.Fprintf(b, "%sTernary\n", pad)
		printExpr(b, n.Cond, depth+1)
		printExpr(b, n.Then, depth+1)
		printExpr(b, n.Else, depth+1)
	case *Grouping:
		fmt.Fprintf(b, "%sGrouping\n", pad)
		printExpr(b, n.Inner, depth+1)
	case *Variable:
		fmt.Fprintf(b, "%sVariable(%s)\n", pad, n.Name.Lexeme)
	case *Assign:
		fmt.Fprintf(b, "%sAssign(%s)\n", pad, n.Name.Lexeme)
		printExpr(b, n.Value, depth+1)
	case *Call:
		fmt.Fprintf(b, "%sCall\n", pad)
		printExpr(b, n.Callee, depth+1)
		for _, a := range n.Args {
			printExpr(b, a, depth+2)
		}
	case *Lambda:
		fmt.Fprintf(b, "%sLambda\n", pad)
		for _, stmt := range n.Body {
			printStmt(b, stmt, depth+1)
		}
	default:
		fmt.Fprintf(b, "%s<unknown expr>\n", pad)
	}
}
