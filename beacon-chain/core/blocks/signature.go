package blocks

import (
	"github.com/pkg/errors"
	"github.com/sgryphon/cortex/beacon-chain/core/helpers"
	"github.com/sgryphon/cortex/beacon-chain/core/signing"
	"github.com/sgryphon/cortex/beacon-chain/state"
	"github.com/sgryphon/cortex/config/params"
	"github.com/sgryphon/cortex/crypto/bls"
	ethpb "github.com/sgryphon/cortex/proto/prysm/v1alpha1"
)

// BlockSignatureSet retrieves the block signature set from the provided block and its corresponding state.
// The state must be at the block's slot so the proposer can be resolved.
func BlockSignatureSet(
	cfg *params.BeaconChainConfig,
	beaconState state.ReadOnlyBeaconState,
	block *ethpb.BeaconBlock,
) (*bls.SignatureSet, error) {
	if block == nil {
		return nil, ErrNilBlock
	}
	idx, err := helpers.BeaconProposerIndex(cfg, beaconState)
	if err != nil {
		return nil, errors.Wrap(err, "could not get beacon proposer index")
	}
	proposer, err := beaconState.ValidatorAtIndex(idx)
	if err != nil {
		return nil, err
	}
	publicKey, err := bls.PublicKeyFromBytes(proposer.PublicKey)
	if err != nil {
		return nil, errors.Wrap(err, "could not convert bytes to public key")
	}
	domain, err := blockDomain(cfg, beaconState, block.Slot)
	if err != nil {
		return nil, err
	}
	root, err := signing.ComputeSigningRoot(block, domain)
	if err != nil {
		return nil, errors.Wrap(err, "could not compute signing root")
	}
	return &bls.SignatureSet{
		Signatures:   [][]byte{block.Signature},
		PublicKeys:   []bls.PublicKey{publicKey},
		Messages:     [][32]byte{root},
		Descriptions: []string{"block signature"},
	}, nil
}
