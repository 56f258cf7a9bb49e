// Package parser implements the gocalc expression tokenizer.
//
// Tokenization turns a raw expression such as "12+3*-4" into two parallel
// sequences: the operands [12 3 -4] and the operators [+ *]. The rules
// mirror a simple pocket calculator:
//
//   - a run of digits is one operand
//   - after an operand, + - * / record that operator and any other
//     character records +
//   - after an operator, or at the start, - negates the next operand;
//     other operators are coalesced into the one already recorded
//   - + * / at the very start, a trailing operator and an empty
//     expression are malformed
//
// # Example
//
//	expr, err := parser.Parse("2+3*4")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(expr.Operands(), expr.Operators()) // [2 3 4] [+ *]
package parser

import (
	"fmt"

	"github.com/sandrolain/gocalc/pkg/arith"
	"github.com/sandrolain/gocalc/pkg/types"
)

// DefaultMaxLength is the maximum number of operators accepted when no
// WithMaxLength option is given.
const DefaultMaxLength = 100

// Parse tokenizes an expression and returns the compiled Expression.
func Parse(query string) (*types.Expression, error) {
	p := NewParser(query)
	return p.Parse()
}

// Compile is an alias for Parse that accepts options.
func Compile(query string, opts ...CompileOption) (*types.Expression, error) {
	p := NewParser(query, opts...)
	return p.Parse()
}

// CompileOption configures compilation behavior.
type CompileOption func(*CompileOptions)

// CompileOptions holds parser configuration.
type CompileOptions struct {
	// MaxLength bounds the operator sequence; the operand sequence may hold
	// one more entry. Values <= 0 select DefaultMaxLength.
	MaxLength int
}

// WithMaxLength sets the maximum expression length in operators.
func WithMaxLength(n int) CompileOption {
	return func(opts *CompileOptions) {
		opts.MaxLength = n
	}
}

// state records what the previously consumed token was.
type state uint8

const (
	stateStart state = iota
	stateOperand
	stateOperator
)

// Parser tokenizes a single expression.
type Parser struct {
	lexer *Lexer
	query string
	opts  CompileOptions
}

// NewParser creates a parser for query.
func NewParser(query string, opts ...CompileOption) *Parser {
	options := CompileOptions{MaxLength: DefaultMaxLength}
	for _, opt := range opts {
		opt(&options)
	}
	if options.MaxLength <= 0 {
		options.MaxLength = DefaultMaxLength
	}
	return &Parser{
		lexer: NewLexer(query),
		query: query,
		opts:  options,
	}
}

// Parse runs the tokenizer over the whole input.
func (p *Parser) Parse() (*types.Expression, error) {
	operands := newBounded[int64](p.opts.MaxLength+1, "operands")
	operators := newBounded[types.Operator](p.opts.MaxLength, "operators")

	last := stateStart
	negate := false

	for {
		tok := p.lexer.Next()
		if tok.Type == TokenEOF {
			break
		}

		switch {
		case tok.Type == TokenNumber:
			v, err := parseLiteral(tok)
			if err != nil {
				return nil, err
			}
			if negate {
				v = -v
				negate = false
			}
			if err := operands.push(v, tok.Position); err != nil {
				return nil, err
			}
			last = stateOperand

		case last == stateOperand:
			if err := operators.push(operatorFor(tok.Type), tok.Position); err != nil {
				return nil, err
			}
			last = stateOperator

		case tok.Type == TokenMinus:
			negate = !negate

		case last == stateStart && tok.Type != TokenOther:
			return nil, types.NewError(types.ErrMalformedExpression,
				fmt.Sprintf("expression cannot start with %q", tok.Value), tok.Position).WithToken(tok.Value)
		}
	}

	switch {
	case operands.len() == 0:
		return nil, types.NewError(types.ErrMalformedExpression, "expression has no operands", -1)
	case last == stateOperator:
		return nil, types.NewError(types.ErrMalformedExpression, "expression ends with an operator", len(p.query))
	case operands.len() != operators.len()+1:
		return nil, types.NewError(types.ErrMalformedExpression,
			fmt.Sprintf("%d operands for %d operators", operands.len(), operators.len()), -1)
	}

	return types.NewExpression(operands.items, operators.items, p.query), nil
}

// parseLiteral accumulates a digit run with value = value*10 + digit.
func parseLiteral(tok Token) (int64, error) {
	var v int64
	for i := 0; i < len(tok.Value); i++ {
		var ok bool
		if v, ok = arith.Mul(v, 10); ok {
			v, ok = arith.Add(v, int64(tok.Value[i]-'0'))
		}
		if !ok {
			return 0, types.NewError(types.ErrArithmeticOverflow, "number literal out of range", tok.Position).WithToken(tok.Value)
		}
	}
	return v, nil
}
