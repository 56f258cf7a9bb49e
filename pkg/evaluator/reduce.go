package evaluator

import (
	"fmt"

	"github.com/sandrolain/gocalc/pkg/arith"
	"github.com/sandrolain/gocalc/pkg/types"
)

// reduce folds operands and operators into a single value.
//
// Pass one walks the operators once, folding every * and / into the
// running tail operand and moving + and - (with their right operand) to
// the low-precedence output. Pass two folds that output from the front.
// Both slices are owned by the caller and are reused as scratch space.
func reduce(operands []int64, operators []types.Operator) (int64, error) {
	if len(operands) == 0 || len(operands) != len(operators)+1 {
		return 0, types.NewError(types.ErrMalformedExpression,
			fmt.Sprintf("%d operands for %d operators", len(operands), len(operators)), -1)
	}

	// vals[:n] and low[:n-1] are the low-precedence sequences built so far.
	vals := operands
	low := operators
	n := 1
	for i, op := range operators {
		rhs := operands[i+1]
		if op.HighPrecedence() {
			v, err := apply(vals[n-1], op, rhs)
			if err != nil {
				return 0, err
			}
			vals[n-1] = v
			continue
		}
		low[n-1] = op
		vals[n] = rhs
		n++
	}

	acc := vals[0]
	for i := 1; i < n; i++ {
		v, err := apply(acc, low[i-1], vals[i])
		if err != nil {
			return 0, err
		}
		acc = v
	}
	return acc, nil
}

// apply computes lhs op rhs. Anything that is not -, * or / adds.
func apply(lhs int64, op types.Operator, rhs int64) (int64, error) {
	var (
		v  int64
		ok bool
	)
	switch op {
	case types.OpSub:
		v, ok = arith.Sub(lhs, rhs)
	case types.OpMul:
		v, ok = arith.Mul(lhs, rhs)
	case types.OpDiv:
		if rhs == 0 {
			return 0, types.NewError(types.ErrDivisionByZero,
				fmt.Sprintf("%d / 0", lhs), -1).WithToken(op.String())
		}
		v, ok = arith.Div(lhs, rhs)
	default:
		v, ok = arith.Add(lhs, rhs)
	}
	if !ok {
		return 0, types.NewError(types.ErrArithmeticOverflow,
			fmt.Sprintf("%d %s %d overflows int64", lhs, op, rhs), -1).WithToken(op.String())
	}
	return v, nil
}
