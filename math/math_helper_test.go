package math_test

import (
	stdmath "math"
	"testing"

	"github.com/sgryphon/cortex/math"
	"github.com/sgryphon/cortex/testing/assert"
	"github.com/sgryphon/cortex/testing/require"
)

func TestIntegerSquareRoot(t *testing.T) {
	tt := []struct {
		number uint64
		root   uint64
	}{
		{number: 20, root: 4},
		{number: 200, root: 14},
		{number: 1987, root: 44},
		{number: 34989843, root: 5915},
		{number: 97282, root: 311},
		{number: 32, root: 5},
		{number: 8, root: 2},
	}
	for _, testVals := range tt {
		assert.Equal(t, testVals.root, math.IntegerSquareRoot(testVals.number))
	}
}

func TestMath_Mul64(t *testing.T) {
	type args struct {
		a uint64
		b uint64
	}
	tests := []struct {
		args args
		res  uint64
		err  bool
	}{
		{args: args{0, 1}, res: 0, err: false},
		{args: args{1 << 32, 1}, res: 1 << 32, err: false},
		{args: args{1 << 32, 100}, res: 429496729600, err: false},
		{args: args{1 << 32, 1 << 31}, res: 9223372036854775808, err: false},
		{args: args{1 << 32, 1 << 32}, res: 0, err: true},
		{args: args{1 << 62, 2}, res: 9223372036854775808, err: false},
		{args: args{1 << 62, 4}, res: 0, err: true},
		{args: args{1 << 63, 1}, res: 9223372036854775808, err: false},
		{args: args{1 << 63, 2}, res: 0, err: true},
	}
	for _, tt := range tests {
		got, err := math.Mul64(tt.args.a, tt.args.b)
		if tt.err && err == nil {
			t.Errorf("Mul64() Expected Error = %v, want error", tt.err)
			continue
		}
		if tt.res != got {
			t.Errorf("Mul64() %v, want %v", got, tt.res)
		}
	}
}

func TestMath_Add64(t *testing.T) {
	_, err := math.Add64(stdmath.MaxUint64, 1)
	require.ErrorIs(t, err, math.ErrAddOverflow)
	res, err := math.Add64(1<<63, 1<<62)
	require.NoError(t, err)
	assert.Equal(t, uint64(13835058055282163712), res)
}

func TestMath_Sub64(t *testing.T) {
	_, err := math.Sub64(1, 2)
	require.ErrorIs(t, err, math.ErrSubUnderflow)
	res, err := math.Sub64(10, 3)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), res)
}

func TestMath_DivMod64(t *testing.T) {
	_, err := math.Div64(10, 0)
	require.ErrorIs(t, err, math.ErrDivByZero)
	_, err = math.Mod64(10, 0)
	require.ErrorIs(t, err, math.ErrDivByZero)
	q, err := math.Div64(17, 5)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), q)
	r, err := math.Mod64(17, 5)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), r)
}

func TestSaturatingSub(t *testing.T) {
	assert.Equal(t, uint64(0), math.SaturatingSub(3, 5))
	assert.Equal(t, uint64(2), math.SaturatingSub(5, 3))
}
