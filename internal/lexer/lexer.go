/*
File    : ember/internal/lexer/lexer.go
Package : lexer
*/

// Package lexer turns Ember source text into a stream of tokens. It walks
// the source one byte at a time (two bytes of lookahead for "//" and for
// the digit that must follow a decimal point), tracking line numbers for
// error reporting. Lexing never aborts on an unexpected character: it
// records a compile error and continues, so a single pass can report every
// lexical problem in a source file.
package lexer

import (
	"fmt"
	"strconv"

	"github.com/emberscript/ember/internal/token"
)

// Lexer holds the scanning state for one source string.
type Lexer struct {
	src     string
	start   int // start of the lexeme currently being scanned
	current int // index of the next unread byte
	line    int

	errors []string // compile-time lex errors, "[line L] Error: msg"
}

// New creates a Lexer ready to scan src.
func New(src string) *Lexer {
	return &Lexer{src: src, line: 1}
}

// Errors returns every lex error recorded so far, in source order.
func (l *Lexer) Errors() []string {
	return l.errors
}

// ScanTokens tokenizes the entire source and returns the resulting token
// list, always terminated by a synthetic EOF token carrying the final line.
func (l *Lexer) ScanTokens() []token.Token {
	var tokens []token.Token
	for {
		tok, ok := l.scanToken()
		if ok {
			tokens = append(tokens, tok)
		}
		if l.isAtEnd() {
			tokens = append(tokens, token.New(token.EOF, "", l.line))
			return tokens
		}
	}
}

func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.src)
}

func (l *Lexer) advance() byte {
	b := l.src[l.current]
	l.current++
	return b
}

func (l *Lexer) peek() byte {
	if l.isAtEnd() {
		return 0
	}
	return l.src[l.current]
}

func (l *Lexer) peekNext() byte {
	if l.current+1 >= len(l.src) {
		return 0
	}
	return l.src[l.current+1]
}

// match consumes the next byte only if it equals want, and reports whether
// it did.
func (l *Lexer) match(want byte) bool {
	if l.isAtEnd() || l.src[l.current] != want {
		return false
	}
	l.current++
	return true
}

func (l *Lexer) errorf(format string, a ...interface{}) {
	l.errors = append(l.errors, formatLexError(l.line, format, a...))
}

// scanToken scans a single token starting at l.current, skipping leading
// whitespace and comments first. The bool result is false when nothing
// should be emitted (whitespace/comment run, or an unexpected character
// that was recorded as an error rather than a token).
func (l *Lexer) scanToken() (token.Token, bool) {
	l.skipWhitespaceAndComments()
	l.start = l.current
	if l.isAtEnd() {
		return token.Token{}, false
	}

	c := l.advance()
	switch c {
	case '(':
		return l.simple(token.LeftParen), true
	case ')':
		return l.simple(token.RightParen), true
	case '{':
		return l.simple(token.LeftBrace), true
	case '}':
		return l.simple(token.RightBrace), true
	case ',':
		return l.simple(token.Comma), true
	case '.':
		return l.simple(token.Dot), true
	case ';':
		return l.simple(token.Semicolon), true
	case '?':
		return l.simple(token.Question), true
	case ':':
		return l.simple(token.Colon), true
	case '-':
		return l.simple(token.Minus), true
	case '+':
		return l.simple(token.Plus), true
	case '*':
		return l.simple(token.Star), true
	case '/':
		return l.simple(token.Slash), true
	case '!':
		if l.match('=') {
			return l.simple(token.BangEqual), true
		}
		return l.simple(token.Bang), true
	case '=':
		if l.match('=') {
			return l.simple(token.EqualEqual), true
		}
		return l.simple(token.Equal), true
	case '<':
		if l.match('=') {
			return l.simple(token.LessEqual), true
		}
		return l.simple(token.Less), true
	case '>':
		if l.match('=') {
			return l.simple(token.GreaterEqual), true
		}
		return l.simple(token.Greater), true
	case '"':
		return l.scanString()
	default:
		if isDigit(c) {
			return l.scanNumber(), true
		}
		if isAlpha(c) {
			return l.scanIdentifier(), true
		}
		l.errorf("Unexpected character '%c'.", c)
		return token.Token{}, false
	}
}

func (l *Lexer) simple(kind token.Kind) token.Token {
	return token.New(kind, l.src[l.start:l.current], l.line)
}

// skipWhitespaceAndComments advances past spaces, tabs, CRs, newlines
// (bumping the line counter), and "//" line comments.
func (l *Lexer) skipWhitespaceAndComments() {
	for !l.isAtEnd() {
		c := l.peek()
		switch {
		case c == '\n':
			l.line++
			l.current++
		case c == ' ' || c == '\r' || c == '\t':
			l.current++
		case c == '/' && l.peekNext() == '/':
			for !l.isAtEnd() && l.peek() != '\n' {
				l.current++
			}
		default:
			return
		}
	}
}

// scanString consumes a "..." literal. Strings may span multiple lines
// (the embedded newlines bump the line counter) and do not support escape
// sequences. An unterminated string is a compile error anchored at the
// line the string started on.
func (l *Lexer) scanString() (token.Token, bool) {
	startLine := l.line
	for !l.isAtEnd() && l.peek() != '"' {
		if l.peek() == '\n' {
			l.line++
		}
		l.current++
	}
	if l.isAtEnd() {
		l.errors = append(l.errors, formatLexError(startLine, "Unterminated string."))
		return token.Token{}, false
	}
	l.current++ // closing quote
	value := l.src[l.start+1 : l.current-1]
	return token.NewLiteral(token.String, l.src[l.start:l.current], value, startLine), true
}

// scanNumber consumes DIGIT+ ("." DIGIT+)?. A trailing "." not followed by
// a digit is left unconsumed (not part of the number).
func (l *Lexer) scanNumber() token.Token {
	for isDigit(l.peek()) {
		l.current++
	}
	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.current++ // consume "."
		for isDigit(l.peek()) {
			l.current++
		}
	}
	lexeme := l.src[l.start:l.current]
	value, _ := strconv.ParseFloat(lexeme, 64)
	return token.NewLiteral(token.Number, lexeme, value, l.line)
}

// scanIdentifier consumes [A-Za-z_][A-Za-z_0-9]* and resolves it against
// the keyword table.
func (l *Lexer) scanIdentifier() token.Token {
	for isAlphaNumeric(l.peek()) {
		l.current++
	}
	lexeme := l.src[l.start:l.current]
	return token.New(token.LookupIdentifier(lexeme), lexeme, l.line)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlphaNumeric(c byte) bool { return isAlpha(c) || isDigit(c) }

func formatLexError(line int, format string, a ...interface{}) string {
	msg := fmt.Sprintf(format, a...)
	return fmt.Sprintf("[line %d] Error: %s", line, msg)
}
