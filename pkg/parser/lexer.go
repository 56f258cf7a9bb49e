package parser

import "unicode/utf8"

const eof = -1

// Lexer converts an arithmetic expression into a sequence of tokens.
// The implementation is based on Rob Pike's "Lexical Scanning in Go" technique.
type Lexer struct {
	input   string // Input string being scanned
	length  int    // Length of input string
	start   int    // Start position of current token
	current int    // Current position in input
	width   int    // Width of last rune read
}

// NewLexer creates a new lexer from the provided input string.
// The input is tokenized by successive calls to the Next method.
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:  input,
		length: len(input),
	}
}

// Next returns the next token from the input.
// When the end of the input is reached, Next returns TokenEOF for all subsequent calls.
//
// A run of ASCII digits is returned as a single TokenNumber regardless of
// its length; every other rune is returned as its own token.
func (l *Lexer) Next() Token {
	ch := l.nextRune()
	if ch == eof {
		return l.eof()
	}

	if isDigit(ch) {
		l.acceptAll(isDigit)
		return l.newToken(TokenNumber)
	}

	if tt := lookupSymbol(ch); tt > 0 {
		return l.newToken(tt)
	}

	return l.newToken(TokenOther)
}

// All drains the lexer and returns every token up to, but not including,
// TokenEOF.
func (l *Lexer) All() []Token {
	var tokens []Token
	for {
		t := l.Next()
		if t.Type == TokenEOF {
			return tokens
		}
		tokens = append(tokens, t)
	}
}

// Helper methods

func (l *Lexer) eof() Token {
	return Token{
		Type:     TokenEOF,
		Position: l.current,
	}
}

func (l *Lexer) newToken(tt TokenType) Token {
	t := Token{
		Type:     tt,
		Value:    l.input[l.start:l.current],
		Position: l.start,
	}
	l.width = 0
	l.start = l.current
	return t
}

func (l *Lexer) nextRune() rune {
	if l.current >= l.length {
		l.width = 0
		return eof
	}

	r, w := utf8.DecodeRuneInString(l.input[l.current:])
	l.width = w
	l.current += w
	return r
}

func (l *Lexer) backup() {
	l.current -= l.width
}

func (l *Lexer) accept(isValid func(rune) bool) bool {
	if isValid(l.nextRune()) {
		return true
	}
	l.backup()
	return false
}

func (l *Lexer) acceptAll(isValid func(rune) bool) bool {
	var matched bool
	for l.accept(isValid) {
		matched = true
	}
	return matched
}

// Character classification functions

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
