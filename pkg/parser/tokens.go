package parser

import "github.com/sandrolain/gocalc/pkg/types"

// TokenType represents the type of a lexical token.
type TokenType uint8

const (
	// Special tokens
	TokenEOF TokenType = iota

	// Literals
	TokenNumber // 123

	// Arithmetic operators
	TokenPlus  // +
	TokenMinus // -
	TokenMult  // *
	TokenDiv   // /

	// Anything else: whitespace, letters, punctuation
	TokenOther
)

// String returns a string representation of the token type.
func (tt TokenType) String() string {
	switch tt {
	case TokenEOF:
		return "(eof)"
	case TokenNumber:
		return "(number)"
	case TokenPlus:
		return "+"
	case TokenMinus:
		return "-"
	case TokenMult:
		return "*"
	case TokenDiv:
		return "/"
	case TokenOther:
		return "(other)"
	default:
		return "(unknown)"
	}
}

// Token represents a lexical token in an arithmetic expression.
type Token struct {
	Type     TokenType // Type of the token
	Value    string    // Literal value of the token
	Position int       // Starting position in the input string
}

// symbols maps operator characters to token types.
var symbols = [...]TokenType{
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenMult,
	'/': TokenDiv,
}

const symbolCount = rune(len(symbols))

// lookupSymbol returns the token type for an operator character.
// Returns 0 if the rune is not an operator.
func lookupSymbol(r rune) TokenType {
	if r < 0 || r >= symbolCount {
		return 0
	}
	return symbols[r]
}

// operatorFor maps an operator token to the operator it records. Tokens
// that are not operators map to addition.
func operatorFor(tt TokenType) types.Operator {
	switch tt {
	case TokenMinus:
		return types.OpSub
	case TokenMult:
		return types.OpMul
	case TokenDiv:
		return types.OpDiv
	default:
		return types.OpAdd
	}
}
