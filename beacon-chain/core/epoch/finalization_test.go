package epoch

import (
	"testing"

	"github.com/prysmaticlabs/go-bitfield"
	types "github.com/sgryphon/cortex/consensus-types/primitives"
	ethpb "github.com/sgryphon/cortex/proto/prysm/v1alpha1"
	"github.com/sgryphon/cortex/testing/assert"
)

func TestFinalizedCheckpoint_Rules(t *testing.T) {
	cp := func(e types.Epoch, tag byte) *ethpb.Checkpoint {
		return &ethpb.Checkpoint{Epoch: e, Root: []byte{tag, 31: 0}}
	}
	tests := []struct {
		name         string
		bits         byte
		currentEpoch types.Epoch
		oldPrev      *ethpb.Checkpoint
		oldCurr      *ethpb.Checkpoint
		want         *ethpb.Checkpoint
	}{
		{
			name:         "rule A: bits 1-3, previous justified three back",
			bits:         0x0E,
			currentEpoch: 5,
			oldPrev:      cp(2, 'p'),
			oldCurr:      cp(0, 'c'),
			want:         cp(2, 'p'),
		},
		{
			name:         "rule B: bits 1-2, previous justified two back",
			bits:         0x06,
			currentEpoch: 5,
			oldPrev:      cp(3, 'p'),
			oldCurr:      cp(0, 'c'),
			want:         cp(3, 'p'),
		},
		{
			name:         "rule C: bits 0-2, current justified two back",
			bits:         0x07,
			currentEpoch: 5,
			oldPrev:      cp(0, 'p'),
			oldCurr:      cp(3, 'c'),
			want:         cp(3, 'c'),
		},
		{
			name:         "rule D: bits 0-1, current justified one back",
			bits:         0x03,
			currentEpoch: 5,
			oldPrev:      cp(0, 'p'),
			oldCurr:      cp(4, 'c'),
			want:         cp(4, 'c'),
		},
		{
			name:         "rule B and D both fire, D wins",
			bits:         0x07,
			currentEpoch: 5,
			oldPrev:      cp(3, 'p'),
			oldCurr:      cp(4, 'c'),
			want:         cp(4, 'c'),
		},
		{
			name:         "rule A and C both fire, C wins",
			bits:         0x0F,
			currentEpoch: 5,
			oldPrev:      cp(2, 'p'),
			oldCurr:      cp(3, 'c'),
			want:         cp(3, 'c'),
		},
		{
			name:         "epoch offsets match but bits missing",
			bits:         0x01,
			currentEpoch: 5,
			oldPrev:      cp(3, 'p'),
			oldCurr:      cp(4, 'c'),
			want:         nil,
		},
		{
			name:         "bits set but offsets do not match",
			bits:         0x0F,
			currentEpoch: 9,
			oldPrev:      cp(3, 'p'),
			oldCurr:      cp(4, 'c'),
			want:         nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := finalizedCheckpoint(bitfield.Bitvector4{tt.bits}, tt.currentEpoch, tt.oldPrev, tt.oldCurr)
			assert.DeepEqual(t, tt.want, got)
		})
	}
}

func TestAllSet(t *testing.T) {
	bits := bitfield.Bitvector4{0x06}
	assert.Equal(t, true, allSet(bits, 1, 3))
	assert.Equal(t, false, allSet(bits, 0, 2))
	assert.Equal(t, false, allSet(bits, 1, 4))
	assert.Equal(t, true, allSet(bits, 2, 2))
}
