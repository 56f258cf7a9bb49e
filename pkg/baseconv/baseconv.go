// Package baseconv converts the digit pattern of an integer between
// positional numeral bases.
//
// The input number is always written in decimal; its decimal digits are
// read as the digits of a numeral in the source base. For example
// Convert(101, 2, 10) reads "101" as binary and returns "5". Digits are
// not validated against the source base: Convert(25, 2, 10) reads the
// digits 2 and 5 as-is and returns "9".
//
// Output digits are written in decimal, one after another, so a base-16
// digit 15 appears as "15". There are no letter digits.
package baseconv

import (
	"fmt"
	"strconv"

	"github.com/sandrolain/gocalc/pkg/arith"
	"github.com/sandrolain/gocalc/pkg/types"
)

// MinBase is the smallest supported base.
const MinBase = 2

// Convert reinterprets number in sourceBase and renders it in targetBase.
func Convert(number, sourceBase, targetBase int64) (string, error) {
	digits, err := Digits(number, sourceBase, targetBase)
	if err != nil {
		return "", err
	}
	return Format(digits), nil
}

// Digits is like Convert but returns the target digits, most significant
// first.
func Digits(number, sourceBase, targetBase int64) ([]int64, error) {
	if err := checkBase(targetBase, "target"); err != nil {
		return nil, err
	}
	value, err := Reinterpret(number, sourceBase)
	if err != nil {
		return nil, err
	}
	return Render(value, targetBase), nil
}

// Reinterpret returns Σ digit_i * base^i over the decimal digits of
// number, least significant first.
func Reinterpret(number, base int64) (int64, error) {
	if err := checkBase(base, "source"); err != nil {
		return 0, err
	}
	if number < 0 {
		return 0, types.NewError(types.ErrInvalidNumber,
			fmt.Sprintf("number must not be negative, got %d", number), -1)
	}

	var value int64
	weight := int64(1)
	for n := number; n != 0; n /= 10 {
		term, ok := arith.Mul(n%10, weight)
		if ok {
			value, ok = arith.Add(value, term)
		}
		if ok && n >= 10 {
			weight, ok = arith.Mul(weight, base)
		}
		if !ok {
			return 0, types.NewError(types.ErrArithmeticOverflow,
				fmt.Sprintf("%d read in base %d does not fit in int64", number, base), -1)
		}
	}
	return value, nil
}

// Render returns the digits of a non-negative value in base, most
// significant first. Zero renders as a single 0 digit. base must be
// at least MinBase.
func Render(value, base int64) []int64 {
	if value == 0 {
		return []int64{0}
	}
	var rests []int64
	for v := value; v != 0; v /= base {
		rests = append(rests, v%base)
	}
	for i, j := 0, len(rests)-1; i < j; i, j = i+1, j-1 {
		rests[i], rests[j] = rests[j], rests[i]
	}
	return rests
}

// Format concatenates the decimal form of each digit.
func Format(digits []int64) string {
	buf := make([]byte, 0, len(digits))
	for _, d := range digits {
		buf = strconv.AppendInt(buf, d, 10)
	}
	return string(buf)
}

func checkBase(base int64, which string) error {
	if base < MinBase {
		return types.NewError(types.ErrInvalidBase,
			fmt.Sprintf("%s base must be at least %d, got %d", which, MinBase, base), -1)
	}
	return nil
}
