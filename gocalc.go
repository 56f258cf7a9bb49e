// Package gocalc provides an integer calculator core: an infix expression
// evaluator with two precedence tiers and a positional base converter.
//
// # Quick Start
//
//	// Evaluate an expression (* and / bind tighter than + and -)
//	result, err := gocalc.Eval("2+3*4") // 14
//
//	// Compile once, evaluate many times
//	expr, err := gocalc.Compile("10-2-3")
//	v, _ := evaluator.New().Eval(ctx, expr) // 5
//
//	// Read 101 as binary and print it in decimal
//	digits, err := gocalc.ConvertBase(101, 2, 10) // "5"
//
// # Errors
//
// Every failure is a *types.Error carrying one of the codes in package
// types (division by zero, overflow, malformed expression, capacity,
// invalid base). Use types.CodeOf to inspect it.
//
// # More Information
//
//   - Tokenizer: github.com/sandrolain/gocalc/pkg/parser
//   - Evaluator: github.com/sandrolain/gocalc/pkg/evaluator
//   - Base conversion: github.com/sandrolain/gocalc/pkg/baseconv
//   - Types: github.com/sandrolain/gocalc/pkg/types
package gocalc

import (
	"context"
	"fmt"

	"github.com/sandrolain/gocalc/pkg/baseconv"
	"github.com/sandrolain/gocalc/pkg/evaluator"
	"github.com/sandrolain/gocalc/pkg/parser"
	"github.com/sandrolain/gocalc/pkg/types"
)

// Name is the application name used by the command line front ends.
const Name = "gocalc"

// Version returns the current version of gocalc.
func Version() string {
	return "v2.0.0"
}

// Compile tokenizes an expression for repeated evaluation.
// The compiled expression is safe for concurrent use.
func Compile(query string, opts ...parser.CompileOption) (*types.Expression, error) {
	return parser.Compile(query, opts...)
}

// Eval is a convenience function that compiles and evaluates an expression
// in a single call.
//
// Example:
//
//	result, err := gocalc.Eval("10-2-3") // 5
func Eval(query string, opts ...EvalOption) (int64, error) {
	return EvalWithContext(context.Background(), query, opts...)
}

// EvalWithContext evaluates an expression with a custom context.
func EvalWithContext(ctx context.Context, query string, opts ...EvalOption) (int64, error) {
	return evaluator.New(opts...).EvalString(ctx, query)
}

// MustCompile is like Compile but panics if the expression cannot be compiled.
// It simplifies safe initialization of global variables.
func MustCompile(query string) *types.Expression {
	expr, err := Compile(query)
	if err != nil {
		panic(fmt.Sprintf("gocalc: Compile(%q): %v", query, err))
	}
	return expr
}

// ConvertBase reads the decimal digits of number as a numeral in
// sourceBase and returns the same value written in targetBase.
//
// Example:
//
//	gocalc.ConvertBase(25, 10, 2) // "11001"
func ConvertBase(number, sourceBase, targetBase int64) (string, error) {
	return baseconv.Convert(number, sourceBase, targetBase)
}
