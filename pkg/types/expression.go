// Package types defines the core types shared by the gocalc packages.
//
// This package contains type definitions for:
//   - Expression: a tokenized expression (operand and operator sequences)
//   - Operator: the four arithmetic operators
//   - Error types: Structured errors with codes
package types

import "strconv"

// Operator is one of the four arithmetic operators.
type Operator byte

// Supported operators.
const (
	OpAdd Operator = '+'
	OpSub Operator = '-'
	OpMul Operator = '*'
	OpDiv Operator = '/'
)

// String returns the operator symbol.
func (op Operator) String() string {
	return string(rune(op))
}

// HighPrecedence reports whether op belongs to the multiplicative tier.
func (op Operator) HighPrecedence() bool {
	return op == OpMul || op == OpDiv
}

// Expression represents a tokenized arithmetic expression.
//
// Operands and operators are kept in two parallel sequences in source
// order; a well-formed expression has exactly one more operand than it
// has operators. An Expression is immutable once built and is safe for
// concurrent use by multiple goroutines.
type Expression struct {
	operands  []int64
	operators []Operator
	source    string
}

// NewExpression creates a new Expression from its operand and operator
// sequences. The slices are owned by the Expression after the call.
func NewExpression(operands []int64, operators []Operator, source string) *Expression {
	return &Expression{
		operands:  operands,
		operators: operators,
		source:    source,
	}
}

// Operands returns a copy of the operand sequence.
func (e *Expression) Operands() []int64 {
	return append([]int64(nil), e.operands...)
}

// Operators returns a copy of the operator sequence.
func (e *Expression) Operators() []Operator {
	return append([]Operator(nil), e.operators...)
}

// Len returns the number of operands.
func (e *Expression) Len() int {
	return len(e.operands)
}

// Source returns the original source text of the expression.
func (e *Expression) Source() string {
	return e.source
}

// Canonical renders the tokenized form, e.g. "2+-3*4".
func (e *Expression) Canonical() string {
	buf := make([]byte, 0, len(e.source)+len(e.operands))
	for i, v := range e.operands {
		if i > 0 && i-1 < len(e.operators) {
			buf = append(buf, byte(e.operators[i-1]))
		}
		buf = strconv.AppendInt(buf, v, 10)
	}
	return string(buf)
}

// String returns the original source of the expression.
func (e *Expression) String() string {
	return e.source
}
