package interop

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sgryphon/cortex/beacon-chain/state"
	"github.com/sgryphon/cortex/config/params"
	"github.com/sgryphon/cortex/crypto/bls"
	ethpb "github.com/sgryphon/cortex/proto/prysm/v1alpha1"
	"github.com/sirupsen/logrus"
	"go.opencensus.io/trace"
)

var log = logrus.WithField("prefix", "interop")

// GenerateGenesisState deterministically derives numValidators keys and
// builds the genesis state that activates all of them at the genesis epoch.
func GenerateGenesisState(
	ctx context.Context,
	cfg *params.BeaconChainConfig,
	genesisTime, numValidators uint64,
) (*state.BeaconState, []bls.SecretKey, error) {
	privKeys, pubKeys, err := DeterministicallyGenerateKeys(0 /*startIndex*/, numValidators)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "could not deterministically generate keys for %d validators", numValidators)
	}
	st, err := GenesisBeaconState(ctx, cfg, genesisTime, pubKeys)
	if err != nil {
		return nil, nil, err
	}
	return st, privKeys, nil
}

// GenesisBeaconState builds a genesis state with one active validator per
// public key, each holding the maximum effective balance.
func GenesisBeaconState(
	ctx context.Context,
	cfg *params.BeaconChainConfig,
	genesisTime uint64,
	pubKeys []bls.PublicKey,
) (*state.BeaconState, error) {
	_, span := trace.StartSpan(ctx, "interop.GenesisBeaconState")
	defer span.End()

	st, err := state.New(cfg)
	if err != nil {
		return nil, err
	}
	st.SetGenesisTime(genesisTime)
	st.SetSlot(cfg.GenesisSlot)

	validators := make(ethpb.ValidatorList, len(pubKeys))
	for i, pk := range pubKeys {
		pub := pk.Marshal()
		validators[i] = &ethpb.Validator{
			PublicKey:                  pub,
			WithdrawalCredentials:      WithdrawalCredentialsHash(cfg.BLSWithdrawalPrefixByte, pub),
			EffectiveBalance:           cfg.MaxEffectiveBalance,
			ActivationEligibilityEpoch: cfg.GenesisEpoch,
			ActivationEpoch:            cfg.GenesisEpoch,
			ExitEpoch:                  cfg.FarFutureEpoch,
			WithdrawableEpoch:          cfg.FarFutureEpoch,
		}
		if err := st.AppendValidator(validators[i], cfg.MaxEffectiveBalance); err != nil {
			return nil, errors.Wrapf(err, "could not append validator %d", i)
		}
	}
	gvr, err := validators.HashTreeRoot()
	if err != nil {
		return nil, errors.Wrap(err, "could not compute genesis validators root")
	}
	if err := st.SetGenesisValidatorsRoot(gvr[:]); err != nil {
		return nil, err
	}

	body := EmptyBlockBody()
	bodyRoot, err := body.HashTreeRoot()
	if err != nil {
		return nil, errors.Wrap(err, "could not compute empty body root")
	}
	if err := st.SetLatestBlockHeader(&ethpb.BeaconBlockHeader{
		Slot:       cfg.GenesisSlot,
		ParentRoot: make([]byte, 32),
		StateRoot:  make([]byte, 32),
		BodyRoot:   bodyRoot[:],
		Signature:  make([]byte, 96),
	}); err != nil {
		return nil, err
	}
	if err := st.SetEth1Data(&ethpb.Eth1Data{
		DepositRoot:  make([]byte, 32),
		DepositCount: uint64(len(pubKeys)),
		BlockHash:    make([]byte, 32),
	}); err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"validators":  len(pubKeys),
		"genesisTime": genesisTime,
	}).Debug("Generated genesis state")
	return st, nil
}

// EmptyBlockBody returns a block body with every fixed-size field zeroed and
// no operations.
func EmptyBlockBody() *ethpb.BeaconBlockBody {
	return &ethpb.BeaconBlockBody{
		RandaoReveal: make([]byte, 96),
		Eth1Data: &ethpb.Eth1Data{
			DepositRoot: make([]byte, 32),
			BlockHash:   make([]byte, 32),
		},
		Graffiti:          make([]byte, 32),
		ProposerSlashings: []*ethpb.ProposerSlashing{},
		AttesterSlashings: []*ethpb.AttesterSlashing{},
		Attestations:      []*ethpb.Attestation{},
		Deposits:          []*ethpb.Deposit{},
		VoluntaryExits:    []*ethpb.VoluntaryExit{},
	}
}
