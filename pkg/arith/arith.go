// Package arith provides overflow-checked int64 arithmetic.
//
// Each function returns the result together with a flag that is false
// when the exact result does not fit in an int64. Div additionally
// reports false for a zero divisor; callers that need to distinguish the
// two cases check the divisor first.
package arith

import "math"

// Add returns a+b.
func Add(a, b int64) (int64, bool) {
	c := a + b
	if (c > a) != (b > 0) {
		return c, false
	}
	return c, true
}

// Sub returns a-b.
func Sub(a, b int64) (int64, bool) {
	c := a - b
	if (c < a) != (b > 0) {
		return c, false
	}
	return c, true
}

// Mul returns a*b.
func Mul(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	c := a * b
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return c, false
	}
	if c/b != a {
		return c, false
	}
	return c, true
}

// Div returns a/b truncated toward zero.
func Div(a, b int64) (int64, bool) {
	if b == 0 {
		return 0, false
	}
	if a == math.MinInt64 && b == -1 {
		return a, false
	}
	return a / b, true
}
