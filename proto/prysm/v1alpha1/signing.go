package eth

import (
	ssz "github.com/ferranbt/fastssz"
)

// unsignedView hashes a container without its trailing signature field.
type unsignedView struct {
	put func(hh *ssz.Hasher) error
}

func (u unsignedView) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(u)
}

func (u unsignedView) HashTreeRootWith(hh *ssz.Hasher) error {
	indx := hh.Index()
	if err := u.put(hh); err != nil {
		return err
	}
	hh.Merkleize(indx)
	return nil
}

// SigningRoot is the root of the header with the signature field omitted.
// It equals the signing root of the block the header was built from.
func (b *BeaconBlockHeader) SigningRoot() ([32]byte, error) {
	return unsignedView{put: b.putUnsignedFields}.HashTreeRoot()
}

// SigningRoot is the root of the block with the signature field omitted.
func (b *BeaconBlock) SigningRoot() ([32]byte, error) {
	return unsignedView{put: b.putUnsignedFields}.HashTreeRoot()
}
