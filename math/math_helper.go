// Package math includes important helpers for overflow-checked arithmetic
// over the unsigned integers used in consensus.
package math

import (
	"errors"
	stdmath "math"
	"math/bits"

	"github.com/thomaso-mirodin/intmath/u64"
)

var (
	// ErrOverflow occurs when an operation exceeds max or minimum values.
	ErrOverflow = errors.New("integer overflow")
	// ErrDivByZero occurs when an operation divides by zero.
	ErrDivByZero = errors.New("integer divide by zero")
	// ErrMulOverflow occurs when a multiplication overflows.
	ErrMulOverflow = errors.New("multiplication overflows")
	// ErrAddOverflow occurs when an addition overflows.
	ErrAddOverflow = errors.New("addition overflows")
	// ErrSubUnderflow occurs when a subtraction underflows.
	ErrSubUnderflow = errors.New("subtraction underflows")
)

// IntegerSquareRoot defines a function that returns the
// largest possible integer root of a number.
func IntegerSquareRoot(n uint64) uint64 {
	return u64.Sqrt(n)
}

// Mul64 multiples 2 64-bit unsigned integers and checks if they
// lead to an overflow. If they do not, it returns the result
// without an error.
func Mul64(a, b uint64) (uint64, error) {
	overflows, val := bits.Mul64(a, b)
	if overflows > 0 {
		return 0, ErrMulOverflow
	}
	return val, nil
}

// Div64 divides two 64-bit unsigned integers and checks for division by zero.
func Div64(a, b uint64) (uint64, error) {
	if b == 0 {
		return 0, ErrDivByZero
	}
	val, _ := bits.Div64(0, a, b)
	return val, nil
}

// Add64 adds 2 64-bit unsigned integers and checks if they
// lead to an overflow. If they do not, it returns the result
// without an error.
func Add64(a, b uint64) (uint64, error) {
	res, carry := bits.Add64(a, b, 0 /* carry */)
	if carry > 0 {
		return 0, ErrAddOverflow
	}
	return res, nil
}

// Sub64 subtracts two 64-bit unsigned integers and checks for errors.
func Sub64(a, b uint64) (uint64, error) {
	res, borrow := bits.Sub64(a, b, 0 /* borrow */)
	if borrow > 0 {
		return 0, ErrSubUnderflow
	}
	return res, nil
}

// Mod64 finds remainder of division of two 64-bit unsigned integers and checks for errors.
func Mod64(a, b uint64) (uint64, error) {
	if b == 0 {
		return 0, ErrDivByZero
	}
	_, val := bits.Div64(0, a, b)
	return val, nil
}

// SaturatingSub returns a - b, or 0 when b > a.
func SaturatingSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}

// MaxUint64 is the largest representable uint64, used as a sentinel for far-future values.
const MaxUint64 = uint64(stdmath.MaxUint64)
