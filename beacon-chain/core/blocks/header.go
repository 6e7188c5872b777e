package blocks

import (
	"bytes"
	"context"

	"github.com/pkg/errors"
	"github.com/sgryphon/cortex/beacon-chain/core/helpers"
	"github.com/sgryphon/cortex/beacon-chain/core/signing"
	"github.com/sgryphon/cortex/beacon-chain/state"
	"github.com/sgryphon/cortex/config/params"
	types "github.com/sgryphon/cortex/consensus-types/primitives"
	ethpb "github.com/sgryphon/cortex/proto/prysm/v1alpha1"
	"github.com/sirupsen/logrus"
	"go.opencensus.io/trace"
)

// ProcessBlockHeader validates a block by its header.
//
// Pseudocode definition:
//
//	def process_block_header(state: BeaconState, block: BeaconBlock) -> None:
//	  # Verify that the slots match
//	  assert block.slot == state.slot
//	  # Verify that the parent matches
//	  assert block.parent_root == signing_root(state.latest_block_header)
//	  # Save current block as the new latest block
//	  state.latest_block_header = BeaconBlockHeader(
//	      slot=block.slot,
//	      parent_root=block.parent_root,
//	      # state_root: zeroed, overwritten in the next `process_slot` call
//	      body_root=hash_tree_root(block.body),
//	      # signature is always zeroed
//	  )
//	  # Verify proposer is not slashed
//	  proposer = state.validators[get_beacon_proposer_index(state)]
//	  assert not proposer.slashed
//	  # Verify proposer signature
//	  assert bls_verify(proposer.pubkey, signing_root(block), block.signature, get_domain(state, DOMAIN_BEACON_PROPOSER))
//
// The new header is only written once every check has passed.
func ProcessBlockHeader(
	ctx context.Context,
	cfg *params.BeaconChainConfig,
	beaconState *state.BeaconState,
	block *ethpb.BeaconBlock,
) (*state.BeaconState, error) {
	return ProcessBlockHeaderWithVerifier(ctx, cfg, beaconState, block, signing.BLSVerifier{})
}

// ProcessBlockHeaderWithVerifier validates a block by its header, checking the
// proposer signature with the given verifier.
func ProcessBlockHeaderWithVerifier(
	ctx context.Context,
	cfg *params.BeaconChainConfig,
	beaconState *state.BeaconState,
	block *ethpb.BeaconBlock,
	verifier signing.Verifier,
) (*state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "core.ProcessBlockHeader")
	defer span.End()

	header, proposer, err := checkHeader(ctx, cfg, beaconState, block)
	if err != nil {
		return nil, err
	}
	if err := VerifyBlockSignature(cfg, beaconState, block, proposer, verifier); err != nil {
		return nil, err
	}
	if err := beaconState.SetLatestBlockHeader(header); err != nil {
		return nil, err
	}
	return beaconState, nil
}

// ProcessBlockHeaderNoVerify runs every header check except the proposer
// signature and writes the new header. It is used when building a block whose
// signature does not exist yet.
func ProcessBlockHeaderNoVerify(
	ctx context.Context,
	cfg *params.BeaconChainConfig,
	beaconState *state.BeaconState,
	block *ethpb.BeaconBlock,
) (*state.BeaconState, error) {
	header, _, err := checkHeader(ctx, cfg, beaconState, block)
	if err != nil {
		return nil, err
	}
	if err := beaconState.SetLatestBlockHeader(header); err != nil {
		return nil, err
	}
	return beaconState, nil
}

// checkHeader validates slot, parent root and proposer of the block, and
// returns the header that replaces the latest block header.
func checkHeader(
	ctx context.Context,
	cfg *params.BeaconChainConfig,
	beaconState *state.BeaconState,
	block *ethpb.BeaconBlock,
) (*ethpb.BeaconBlockHeader, *ethpb.Validator, error) {
	_, span := trace.StartSpan(ctx, "core.checkBlockHeader")
	defer span.End()

	if block == nil || block.Body == nil {
		return nil, nil, ErrNilBlock
	}
	if beaconState.Slot() != block.Slot {
		return nil, nil, errors.Wrapf(ErrSlotMismatch, "state slot %d, block slot %d", beaconState.Slot(), block.Slot)
	}
	parentRoot, err := beaconState.LatestBlockHeader().SigningRoot()
	if err != nil {
		return nil, nil, errors.Wrap(err, "could not compute latest block header signing root")
	}
	if !bytes.Equal(block.ParentRoot, parentRoot[:]) {
		return nil, nil, errors.Wrapf(ErrParentRootMismatch, "expected %#x, received %#x", parentRoot, block.ParentRoot)
	}

	bodyRoot, err := block.Body.HashTreeRoot()
	if err != nil {
		return nil, nil, errors.Wrap(err, "could not compute block body root")
	}
	header := &ethpb.BeaconBlockHeader{
		Slot:       block.Slot,
		ParentRoot: append([]byte{}, block.ParentRoot...),
		StateRoot:  make([]byte, 32),
		BodyRoot:   bodyRoot[:],
		Signature:  make([]byte, 96),
	}

	idx, err := helpers.BeaconProposerIndex(cfg, beaconState)
	if err != nil {
		return nil, nil, errors.Wrap(err, "could not get beacon proposer index")
	}
	proposer, err := beaconState.ValidatorAtIndex(idx)
	if err != nil {
		return nil, nil, err
	}
	if proposer.Slashed {
		return nil, nil, errors.Wrapf(ErrSlashedProposer, "proposer index %d", idx)
	}
	log.WithFields(logrus.Fields{
		"slot":          block.Slot,
		"proposerIndex": idx,
	}).Debug("Block header checks passed")
	return header, proposer, nil
}

// VerifyBlockSignature verifies the proposer signature of a beacon block
// under the beacon proposer domain of the block's epoch.
func VerifyBlockSignature(
	cfg *params.BeaconChainConfig,
	beaconState state.ReadOnlyBeaconState,
	block *ethpb.BeaconBlock,
	proposer *ethpb.Validator,
	verifier signing.Verifier,
) error {
	domain, err := blockDomain(cfg, beaconState, block.Slot)
	if err != nil {
		return err
	}
	err = signing.VerifySigningRootWith(verifier, block, proposer.PublicKey, block.Signature, domain)
	if errors.Is(err, signing.ErrSigFailedToVerify) {
		return ErrInvalidSignature
	}
	if err != nil {
		return errors.Wrap(ErrInvalidSignature, err.Error())
	}
	return nil
}

func blockDomain(cfg *params.BeaconChainConfig, beaconState state.ReadOnlyBeaconState, slot types.Slot) ([]byte, error) {
	domain, err := helpers.Domain(beaconState, helpers.SlotToEpoch(cfg, slot), cfg.DomainBeaconProposer)
	if err != nil {
		return nil, errors.Wrap(err, "could not get proposer domain")
	}
	return domain, nil
}
