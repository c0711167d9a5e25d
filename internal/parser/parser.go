/*
File    : ember/internal/parser/parser.go
Package : parser
*/

// Package parser implements Ember's recursive-descent, precedence-climbing
// parser (spec.md §4.2). It turns a token stream into a statement list,
// reporting — rather than panicking on — malformed input, so a single pass
// can surface every syntax error in a source file via synchronization.
package parser

import (
	"github.com/emberscript/ember/internal/ast"
	"github.com/emberscript/ember/internal/errs"
	"github.com/emberscript/ember/internal/token"
)

const maxArgs = 255 // call arguments and function parameters both cap here

// Parser holds the token stream and accumulated compile errors.
type Parser struct {
	tokens  []token.Token
	current int
	errors  errs.CompileErrorFormatter
}

// New creates a Parser over tokens (expected to end with an EOF token, as
// produced by internal/lexer.Lexer.ScanTokens).
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Errors returns the accumulated compile-error formatter. Check
// HasErrors() before evaluating the result of Parse.
func (p *Parser) Errors() *errs.CompileErrorFormatter {
	return &p.errors
}

// Parse consumes the entire token stream and returns the resulting
// statement list: program -> declaration* EOF.
func (p *Parser) Parse() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.isAtEnd() {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	return stmts
}

// ---- token-stream primitives -------------------------------------------

func (p *Parser) isAtEnd() bool { return p.peek().Kind == token.EOF }

func (p *Parser) peek() token.Token { return p.tokens[p.current] }

func (p *Parser) previous() token.Token { return p.tokens[p.current-1] }

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(kind token.Kind) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Kind == kind
}

// checkNext reports whether the token after the current one has kind.
func (p *Parser) checkNext(kind token.Kind) bool {
	if p.current+1 >= len(p.tokens) {
		return false
	}
	return p.tokens[p.current+1].Kind == kind
}

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

// consume advances past an expected token kind, or reports a parse error
// anchored at the current token.
func (p *Parser) consume(kind token.Kind, msg string) (token.Token, bool) {
	if p.check(kind) {
		return p.advance(), true
	}
	p.reportAt(p.peek(), msg)
	return token.Token{}, false
}

// reportAt records a parse error per spec.md §6's two formats.
func (p *Parser) reportAt(t token.Token, msg string) {
	if t.Kind == token.EOF {
		p.errors.Parse(t.Line, "", msg)
	} else {
		p.errors.Parse(t.Line, t.Lexeme, msg)
	}
}

// synchronize discards tokens after a parse error until a declaration or
// statement boundary, so the next call to declaration() starts clean
// (spec.md §4.2).
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Kind == token.Semicolon {
			return
		}
		switch p.peek().Kind {
		case token.Fun, token.Var, token.For, token.If, token.While, token.Print, token.Return:
			return
		}
		p.advance()
	}
}

// ---- declarations and statements ---------------------------------------

func (p *Parser) declaration() ast.Stmt {
	switch {
	case p.check(token.Fun) && p.checkNext(token.Identifier):
		p.advance() // consume "fun"
		return p.funDecl()
	case p.match(token.Var):
		return p.varDecl()
	default:
		return p.statement()
	}
}

// funDecl parses `"fun" IDENTIFIER "(" params? ")" block`, the "fun" token
// itself already consumed by the caller's lookahead.
func (p *Parser) funDecl() ast.Stmt {
	name, ok := p.consume(token.Identifier, "Expect function name.")
	if !ok {
		p.synchronize()
		return nil
	}
	params, ok := p.parameterList()
	if !ok {
		p.synchronize()
		return nil
	}
	if _, ok := p.consume(token.LeftBrace, "Expect '{' before function body."); !ok {
		p.synchronize()
		return nil
	}
	body := p.block()
	return &ast.FunctionStmt{Name: name, Params: params, Body: body}
}

// parameterList parses `"(" (IDENTIFIER ("," IDENTIFIER)*)? ")"`, reporting
// (but not aborting on) more than 255 parameters.
func (p *Parser) parameterList() ([]token.Token, bool) {
	if _, ok := p.consume(token.LeftParen, "Expect '(' after function name."); !ok {
		return nil, false
	}
	var params []token.Token
	if !p.check(token.RightParen) {
		for {
			if len(params) >= maxArgs {
				p.reportAt(p.peek(), "Can't have more than 255 parameters.")
			}
			name, ok := p.consume(token.Identifier, "Expect parameter name.")
			if !ok {
				return nil, false
			}
			params = append(params, name)
			if !p.match(token.Comma) {
				break
			}
		}
	}
	if _, ok := p.consume(token.RightParen, "Expect ')' after parameters."); !ok {
		return nil, false
	}
	return params, true
}

func (p *Parser) varDecl() ast.Stmt {
	name, ok := p.consume(token.Identifier, "Expect variable name.")
	if !ok {
		p.synchronize()
		return nil
	}
	var init ast.Expr
	if p.match(token.Equal) {
		init = p.expression()
	}
	if _, ok := p.consume(token.Semicolon, "Expect ';' after variable declaration."); !ok {
		p.synchronize()
		return nil
	}
	return &ast.VarStmt{Name: name, Init: init}
}

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(token.If):
		return p.ifStmt()
	case p.match(token.Print):
		return p.printStmt()
	case p.match(token.Return):
		return p.returnStmt()
	case p.match(token.While):
		return p.whileStmt()
	case p.match(token.For):
		return p.forStmt()
	case p.match(token.Break):
		kw := p.previous()
		p.consume(token.Semicolon, "Expect ';' after 'break'.")
		return &ast.BreakStmt{Keyword: kw}
	case p.match(token.Continue):
		kw := p.previous()
		p.consume(token.Semicolon, "Expect ';' after 'continue'.")
		return &ast.ContinueStmt{Keyword: kw}
	case p.match(token.LeftBrace):
		return &ast.BlockStmt{Stmts: p.block()}
	default:
		return p.exprStmt()
	}
}

// block parses statements up to (and consuming) the closing "}".
func (p *Parser) block() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.RightBrace) && !p.isAtEnd() {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	p.consume(token.RightBrace, "Expect '}' after block.")
	return stmts
}

func (p *Parser) ifStmt() ast.Stmt {
	p.consume(token.LeftParen, "Expect '(' after 'if'.")
	cond := p.expression()
	p.consume(token.RightParen, "Expect ')' after if condition.")
	then := p.statement()
	var els ast.Stmt
	if p.match(token.Else) {
		els = p.statement()
	}
	return &ast.IfStmt{Cond: cond, Then: then, Else: els}
}

func (p *Parser) printStmt() ast.Stmt {
	expr := p.expression()
	p.consume(token.Semicolon, "Expect ';' after value.")
	return &ast.PrintStmt{Expr: expr}
}

func (p *Parser) returnStmt() ast.Stmt {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(token.Semicolon) {
		value = p.expression()
	}
	p.consume(token.Semicolon, "Expect ';' after return value.")
	return &ast.ReturnStmt{Keyword: keyword, Value: value}
}

func (p *Parser) whileStmt() ast.Stmt {
	p.consume(token.LeftParen, "Expect '(' after 'while'.")
	cond := p.expression()
	p.consume(token.RightParen, "Expect ')' after condition.")
	body := p.statement()
	return &ast.WhileStmt{Cond: cond, Body: body}
}

// forStmt desugars `for (init; cond; incr) body` into
// `{ init; while (cond) body }` with incr carried on the WhileStmt's own
// Increment field (run after every iteration of body, including one that
// exits via `continue`, and before cond is re-tested — see execWhileStmt).
// The for's own "for" token is carried for readability; every synthesized
// node reuses the sub-expressions' own tokens, which already carry the
// for-header's source line since nothing was re-lexed (spec.md §4.2).
func (p *Parser) forStmt() ast.Stmt {
	forTok := p.previous()
	p.consume(token.LeftParen, "Expect '(' after 'for'.")

	var init ast.Stmt
	switch {
	case p.match(token.Semicolon):
		init = nil
	case p.check(token.Var):
		p.advance()
		init = p.varDecl()
	default:
		init = p.exprStmt()
	}

	var cond ast.Expr
	if !p.check(token.Semicolon) {
		cond = p.expression()
	}
	p.consume(token.Semicolon, "Expect ';' after loop condition.")

	var incr ast.Expr
	if !p.check(token.RightParen) {
		incr = p.expression()
	}
	p.consume(token.RightParen, "Expect ')' after for clauses.")

	body := p.statement()

	if cond == nil {
		cond = &ast.Literal{Value: true}
	}
	// Increment is threaded onto WhileStmt itself, not folded into the body
	// as a trailing statement: a `continue` inside body must still run the
	// increment before the condition is re-tested, and a body-wrapping
	// block would have its increment skipped by continue's block-unwind
	// (see execWhileStmt in internal/interpreter/statements.go).
	loop := ast.Stmt(&ast.WhileStmt{Cond: cond, Body: body, Increment: incr})

	if init != nil {
		loop = &ast.BlockStmt{Stmts: []ast.Stmt{init, loop}}
	}
	_ = forTok // kept for readability of the desugaring; all synthesized
	// nodes reuse the sub-expressions' own tokens, which already carry
	// the for-header's source line since nothing was re-lexed.
	return loop
}

func (p *Parser) exprStmt() ast.Stmt {
	expr := p.expression()
	p.consume(token.Semicolon, "Expect ';' after expression.")
	return &ast.ExpressionStmt{Expr: expr}
}

// ---- expressions --------------------------------------------------------

func (p *Parser) expression() ast.Expr {
	return p.comma()
}

// comma -> assignment ("," assignment)*, left-associative: evaluate left
// for effect, keep the rightmost value (spec.md §4.3).
func (p *Parser) comma() ast.Expr {
	expr := p.assignment()
	for p.match(token.Comma) {
		op := p.previous()
		right := p.assignment()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

// assignment -> IDENTIFIER "=" assignment | ternary, right-associative on
// "=". Only a Variable may be assigned to; anything else is "Invalid
// assignment target" but parsing continues (spec.md §4.2).
func (p *Parser) assignment() ast.Expr {
	expr := p.ternary()

	if p.match(token.Equal) {
		equals := p.previous()
		value := p.assignment()

		if v, ok := expr.(*ast.Variable); ok {
			return &ast.Assign{Name: v.Name, Value: value}
		}
		p.reportAt(equals, "Invalid assignment target.")
		return expr
	}
	return expr
}

// ternary -> logic_or ("?" expression ":" ternary)?, right-associative.
func (p *Parser) ternary() ast.Expr {
	expr := p.logicOr()
	if p.match(token.Question) {
		then := p.expression()
		p.consume(token.Colon, "Expect ':' after then branch of ternary expression.")
		els := p.ternary()
		return &ast.Ternary{Cond: expr, Then: then, Else: els}
	}
	return expr
}

func (p *Parser) logicOr() ast.Expr {
	expr := p.logicAnd()
	for p.match(token.Or) {
		op := p.previous()
		right := p.logicAnd()
		expr = &ast.Logical{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) logicAnd() ast.Expr {
	expr := p.equality()
	for p.match(token.And) {
		op := p.previous()
		right := p.equality()
		expr = &ast.Logical{Left: expr, Op: op, Right: right}
	}
	return expr
}

// equality, comparison, term, and factor each begin with an error
// production: a leading binary operator with no left-hand operand is
// diagnosed, its right side is still parsed (and discarded) at the
// correct precedence so parsing can continue, and a placeholder literal
// stands in for the malformed expression (spec.md §4.2's "missing
// left-hand operand" diagnostic feature).
func (p *Parser) equality() ast.Expr {
	if p.match(token.BangEqual, token.EqualEqual) {
		op := p.previous()
		p.reportAt(op, "Missing left-hand operand.")
		p.comparison()
		return &ast.Literal{Value: nil}
	}
	expr := p.comparison()
	for p.match(token.BangEqual, token.EqualEqual) {
		op := p.previous()
		right := p.comparison()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) comparison() ast.Expr {
	if p.match(token.Greater, token.GreaterEqual, token.Less, token.LessEqual) {
		op := p.previous()
		p.reportAt(op, "Missing left-hand operand.")
		p.term()
		return &ast.Literal{Value: nil}
	}
	expr := p.term()
	for p.match(token.Greater, token.GreaterEqual, token.Less, token.LessEqual) {
		op := p.previous()
		right := p.term()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) term() ast.Expr {
	// Only "+" is an error production here: a leading "-" is valid unary
	// negation and must fall through to factor/unary instead.
	if p.match(token.Plus) {
		op := p.previous()
		p.reportAt(op, "Missing left-hand operand.")
		p.factor()
		return &ast.Literal{Value: nil}
	}
	expr := p.factor()
	for p.match(token.Minus, token.Plus) {
		op := p.previous()
		right := p.factor()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) factor() ast.Expr {
	if p.match(token.Slash, token.Star) {
		op := p.previous()
		p.reportAt(op, "Missing left-hand operand.")
		p.unary()
		return &ast.Literal{Value: nil}
	}
	expr := p.unary()
	for p.match(token.Slash, token.Star) {
		op := p.previous()
		right := p.unary()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) unary() ast.Expr {
	if p.match(token.Bang, token.Minus) {
		op := p.previous()
		operand := p.unary()
		return &ast.Unary{Op: op, Operand: operand}
	}
	return p.call()
}

// call -> primary ("(" args? ")")*, consuming "(" greedily so that
// `f()()` chains. Arguments are assignment-level expressions, so the
// comma operator does not swallow argument separators.
func (p *Parser) call() ast.Expr {
	expr := p.primary()
	for {
		if p.match(token.LeftParen) {
			expr = p.finishCall(expr)
		} else {
			break
		}
	}
	return expr
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RightParen) {
		for {
			if len(args) >= maxArgs {
				p.reportAt(p.peek(), "Can't have more than 255 arguments.")
			}
			args = append(args, p.assignment())
			if !p.match(token.Comma) {
				break
			}
		}
	}
	paren, _ := p.consume(token.RightParen, "Expect ')' after arguments.")
	return &ast.Call{Callee: callee, Paren: paren, Args: args}
}

// primary -> NUMBER | STRING | "true" | "false" | "nil"
//          | "(" expression ")" | IDENTIFIER | lambda
func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(token.Number, token.String):
		return &ast.Literal{Value: p.previous().Literal}
	case p.match(token.True):
		return &ast.Literal{Value: true}
	case p.match(token.False):
		return &ast.Literal{Value: false}
	case p.match(token.Nil):
		return &ast.Literal{Value: nil}
	case p.match(token.Identifier):
		return &ast.Variable{Name: p.previous()}
	case p.match(token.LeftParen):
		inner := p.expression()
		p.consume(token.RightParen, "Expect ')' after expression.")
		return &ast.Grouping{Inner: inner}
	case p.match(token.Fun):
		return p.lambda()
	default:
		p.reportAt(p.peek(), "Expect expression.")
		p.advance()
		return &ast.Literal{Value: nil}
	}
}

// lambda -> "fun" "(" params? ")" block, the "fun" token already consumed.
func (p *Parser) lambda() ast.Expr {
	params, ok := p.parameterList()
	if !ok {
		return &ast.Literal{Value: nil}
	}
	p.consume(token.LeftBrace, "Expect '{' before lambda body.")
	body := p.block()
	return &ast.Lambda{Params: params, Body: body}
}
