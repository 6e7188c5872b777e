package eth

import (
	ssz "github.com/ferranbt/fastssz"
	fieldparams "github.com/sgryphon/cortex/config/fieldparams"
)

// ValidatorList is the validator registry as a standalone list, hashed as
// List[Validator, VALIDATOR_REGISTRY_LIMIT]. Its root is the genesis
// validators root.
type ValidatorList []*Validator

// HashTreeRoot ssz hashes the ValidatorList object
func (l ValidatorList) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(l)
}

// HashTreeRootWith ssz hashes the ValidatorList object with a hasher
func (l ValidatorList) HashTreeRootWith(hh *ssz.Hasher) error {
	return putContainerList(hh, len(l), fieldparams.ValidatorRegistryLimit, func(i int) hashRootWith {
		return l[i]
	})
}
