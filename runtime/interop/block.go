package interop

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sgryphon/cortex/beacon-chain/core/helpers"
	"github.com/sgryphon/cortex/beacon-chain/core/signing"
	"github.com/sgryphon/cortex/beacon-chain/core/transition"
	"github.com/sgryphon/cortex/beacon-chain/state"
	"github.com/sgryphon/cortex/config/params"
	types "github.com/sgryphon/cortex/consensus-types/primitives"
	"github.com/sgryphon/cortex/crypto/bls"
	ethpb "github.com/sgryphon/cortex/proto/prysm/v1alpha1"
	"github.com/sirupsen/logrus"
	"go.opencensus.io/trace"
)

// NewSignedBlock builds an empty block for slot on top of st, fills in its
// post state root and signs it with the deterministic key of the proposer.
// The input state is not modified. privKeys must be indexed by validator index.
func NewSignedBlock(
	ctx context.Context,
	engine *transition.Engine,
	st *state.BeaconState,
	privKeys []bls.SecretKey,
	slot types.Slot,
) (*ethpb.BeaconBlock, error) {
	ctx, span := trace.StartSpan(ctx, "interop.NewSignedBlock")
	defer span.End()

	cfg := engine.Config()
	advanced := st.Copy()
	if err := engine.ProcessSlots(ctx, advanced, slot); err != nil {
		return nil, errors.Wrap(err, "could not advance state to block slot")
	}
	parentRoot, err := advanced.LatestBlockHeader().SigningRoot()
	if err != nil {
		return nil, errors.Wrap(err, "could not compute parent root")
	}
	proposerIdx, err := helpers.BeaconProposerIndex(cfg, advanced)
	if err != nil {
		return nil, errors.Wrap(err, "could not get beacon proposer index")
	}
	if uint64(proposerIdx) >= uint64(len(privKeys)) {
		return nil, errors.Errorf("no key for proposer %d, have %d keys", proposerIdx, len(privKeys))
	}

	block := &ethpb.BeaconBlock{
		Slot:       slot,
		ParentRoot: parentRoot[:],
		StateRoot:  make([]byte, 32),
		Body:       EmptyBlockBody(),
		Signature:  make([]byte, 96),
	}
	stateRoot, err := engine.CalculateStateRoot(ctx, advanced, block)
	if err != nil {
		return nil, errors.Wrap(err, "could not calculate post state root")
	}
	block.StateRoot = stateRoot[:]

	sig, err := SignBlock(cfg, advanced, block, privKeys[proposerIdx])
	if err != nil {
		return nil, err
	}
	block.Signature = sig
	log.WithFields(logrus.Fields{
		"slot":          slot,
		"proposerIndex": proposerIdx,
	}).Debug("Built signed block")
	return block, nil
}

// SignBlock signs the block under the proposer domain of its epoch.
func SignBlock(cfg *params.BeaconChainConfig, st state.ReadOnlyBeaconState, block *ethpb.BeaconBlock, key bls.SecretKey) ([]byte, error) {
	domain, err := helpers.Domain(st, helpers.SlotToEpoch(cfg, block.Slot), cfg.DomainBeaconProposer)
	if err != nil {
		return nil, errors.Wrap(err, "could not get proposer domain")
	}
	root, err := signing.ComputeSigningRoot(block, domain)
	if err != nil {
		return nil, errors.Wrap(err, "could not compute block signing root")
	}
	return key.Sign(root[:]).Marshal(), nil
}
