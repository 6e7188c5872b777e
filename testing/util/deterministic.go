package util

import (
	"context"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/sgryphon/cortex/beacon-chain/core/helpers"
	"github.com/sgryphon/cortex/beacon-chain/state"
	"github.com/sgryphon/cortex/config/params"
	"github.com/sgryphon/cortex/crypto/bls"
	"github.com/sgryphon/cortex/runtime/interop"
)

var lock sync.Mutex

// Caches
var cachedPrivKeys []bls.SecretKey
var cachedPubKeys []bls.PublicKey

// DeterministicKeys returns the first numKeys interop keys. Keys are derived
// once and cached across calls.
func DeterministicKeys(numKeys uint64) ([]bls.SecretKey, []bls.PublicKey, error) {
	lock.Lock()
	defer lock.Unlock()

	have := uint64(len(cachedPrivKeys))
	if numKeys > have {
		priv, pub, err := interop.DeterministicallyGenerateKeys(have, numKeys-have)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "could not create keys %d to %d", have, numKeys)
		}
		cachedPrivKeys = append(cachedPrivKeys, priv...)
		cachedPubKeys = append(cachedPubKeys, pub...)
	}
	return cachedPrivKeys[:numKeys], cachedPubKeys[:numKeys], nil
}

// DeterministicGenesisState returns a genesis state on the minimal preset
// made using the deterministic interop keys.
func DeterministicGenesisState(t testing.TB, numValidators uint64) (*state.BeaconState, []bls.SecretKey) {
	return DeterministicGenesisStateWithConfig(t, params.MinimalSpecConfig(), numValidators)
}

// DeterministicGenesisStateWithConfig returns a genesis state for cfg made
// using the deterministic interop keys.
func DeterministicGenesisStateWithConfig(
	t testing.TB,
	cfg *params.BeaconChainConfig,
	numValidators uint64,
) (*state.BeaconState, []bls.SecretKey) {
	privKeys, pubKeys, err := DeterministicKeys(numValidators)
	if err != nil {
		t.Fatal(errors.Wrapf(err, "failed to get %d keys", numValidators))
	}
	beaconState, err := interop.GenesisBeaconState(context.Background(), cfg, 0, pubKeys)
	if err != nil {
		t.Fatal(errors.Wrapf(err, "failed to get genesis beacon state of %d validators", numValidators))
	}
	resetCache()
	return beaconState, privKeys
}

// resetCache clears the committee and proposer caches so that states built
// by different tests never share entries.
func resetCache() {
	helpers.ClearCache()
}
