package bytesutil_test

import (
	"fmt"
	"testing"

	"github.com/sgryphon/cortex/encoding/bytesutil"
	"github.com/sgryphon/cortex/testing/assert"
)

func TestToBytes(t *testing.T) {
	tests := []struct {
		a uint64
		b []byte
	}{
		{0, []byte{0}},
		{255, []byte{255}},
		{256, []byte{0, 1}},
		{65535, []byte{255, 255, 0}},
		{16777217, []byte{1, 0, 0, 1}},
		{4294967297, []byte{1, 0, 0, 0, 1, 0, 0, 0}},
		{9223372036854775807, []byte{255, 255, 255, 255, 255, 255, 255, 127}},
		{1, []byte{1, 0, 0, 0, 0, 0, 0, 0, 0, 0}},
	}
	for _, tt := range tests {
		b := bytesutil.ToBytes(tt.a, len(tt.b))
		assert.DeepEqual(t, tt.b, b)
	}
}

func TestBytes32(t *testing.T) {
	want := make([]byte, 32)
	want[0], want[4] = 1, 1
	assert.DeepEqual(t, want, bytesutil.Bytes32(4294967297))
	assert.DeepEqual(t, []byte{1}, bytesutil.Bytes1(257))
	assert.DeepEqual(t, []byte{0, 0, 0, 1, 0, 0, 0, 0}, bytesutil.Bytes8(16777216))
}

func TestFromBytes(t *testing.T) {
	for _, tt := range []uint64{0, 1776, 96726, 4290997, 4294967295} {
		assert.Equal(t, tt, bytesutil.FromBytes4(bytesutil.ToBytes(tt, 4)))
	}
	for _, tt := range []uint64{0, 922376854775806, 18446744073709551615} {
		assert.Equal(t, tt, bytesutil.FromBytes8(bytesutil.ToBytes(tt, 8)))
	}
	assert.Equal(t, uint64(0), bytesutil.FromBytes8([]byte{1, 2}))
}

func TestUint32ToBytes4(t *testing.T) {
	tests := []struct {
		value uint32
		want  [4]byte
	}{
		{value: 0x01000000, want: [4]byte{1, 0, 0, 0}},
		{value: 0x00000001, want: [4]byte{0, 0, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("0x%08x", tt.value), func(t *testing.T) {
			assert.Equal(t, tt.want, bytesutil.Uint32ToBytes4(tt.value))
		})
	}
}

func TestReverseByteOrder(t *testing.T) {
	input := []byte{1, 2, 3}
	assert.DeepEqual(t, []byte{3, 2, 1}, bytesutil.ReverseByteOrder(input))
	assert.DeepEqual(t, []byte{1, 2, 3}, input, "Input was modified")
}

func TestPadTo(t *testing.T) {
	assert.DeepEqual(t, []byte{1, 0, 0, 0}, bytesutil.PadTo([]byte{1}, 4))
	assert.DeepEqual(t, []byte{1, 2, 3}, bytesutil.PadTo([]byte{1, 2, 3}, 2))
}

func TestSafeCopyBytes(t *testing.T) {
	assert.DeepEqual(t, []byte(nil), bytesutil.SafeCopyBytes(nil))
	orig := []byte{9, 9}
	cp := bytesutil.SafeCopyBytes(orig)
	cp[0] = 1
	assert.Equal(t, byte(9), orig[0])
}
