package helpers

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/go-bitfield"
	types "github.com/sgryphon/cortex/consensus-types/primitives"
)

// ErrBitsDifferentLen is returned when the aggregation bits do not cover the committee exactly.
var ErrBitsDifferentLen = errors.New("aggregation bits length does not match committee size")

// AttestingIndices returns the attesting participants indices from the attestation data. The
// committee is provided as an argument so a beacon committee can be reused across attestations.
//
// Pseudocode definition:
//
//	def get_attesting_indices(state: BeaconState,
//	                          data: AttestationData,
//	                          bits: Bitlist[MAX_VALIDATORS_PER_COMMITTEE]) -> Set[ValidatorIndex]:
//	  """
//	  Return the set of attesting indices corresponding to ``data`` and ``bits``.
//	  """
//	  committee = get_beacon_committee(state, data.slot, data.index)
//	  return set(index for i, index in enumerate(committee) if bits[i])
func AttestingIndices(bf bitfield.Bitlist, committee []types.ValidatorIndex) ([]types.ValidatorIndex, error) {
	if bf.Len() != uint64(len(committee)) {
		return nil, errors.Wrapf(ErrBitsDifferentLen, "%d bits for %d members", bf.Len(), len(committee))
	}
	indices := make([]types.ValidatorIndex, 0, bf.Count())
	for _, idx := range bf.BitIndices() {
		if idx < len(committee) {
			indices = append(indices, committee[idx])
		}
	}
	return indices, nil
}
