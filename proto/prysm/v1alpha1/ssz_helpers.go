package eth

import (
	ssz "github.com/ferranbt/fastssz"
	"github.com/pkg/errors"
)

// putFixedBytes writes a fixed-size byte vector. A nil slice hashes as the
// zero vector; any other length mismatch is an error.
func putFixedBytes(hh *ssz.Hasher, b []byte, size int) error {
	if b == nil {
		hh.PutBytes(make([]byte, size))
		return nil
	}
	if len(b) != size {
		return errors.Wrapf(ssz.ErrBytesLength, "want %d bytes, got %d", size, len(b))
	}
	hh.PutBytes(b)
	return nil
}

// putRootVector merkleizes a vector of 32 byte roots.
func putRootVector(hh *ssz.Hasher, roots [][]byte) error {
	if len(roots) == 0 {
		return ssz.ErrVectorLength
	}
	subIndx := hh.Index()
	for _, r := range roots {
		if len(r) != 32 {
			return ssz.ErrBytesLength
		}
		hh.Append(r)
	}
	hh.Merkleize(subIndx)
	return nil
}

// putRootList merkleizes a list of 32 byte roots with its length mixed in.
func putRootList(hh *ssz.Hasher, roots [][]byte, limit uint64) error {
	if uint64(len(roots)) > limit {
		return ssz.ErrIncorrectListSize
	}
	subIndx := hh.Index()
	for _, r := range roots {
		if len(r) != 32 {
			return ssz.ErrBytesLength
		}
		hh.Append(r)
	}
	hh.MerkleizeWithMixin(subIndx, uint64(len(roots)), limit)
	return nil
}

// putUint64List merkleizes a list of uint64 values packed 4 to a chunk.
func putUint64List(hh *ssz.Hasher, vals []uint64, limit uint64) error {
	if uint64(len(vals)) > limit {
		return ssz.ErrIncorrectListSize
	}
	subIndx := hh.Index()
	for _, v := range vals {
		hh.AppendUint64(v)
	}
	hh.FillUpTo32()
	numItems := uint64(len(vals))
	hh.MerkleizeWithMixin(subIndx, numItems, ssz.CalculateLimit(limit, numItems, 8))
	return nil
}

// putUint64Vector merkleizes a vector of uint64 values packed 4 to a chunk.
func putUint64Vector(hh *ssz.Hasher, vals []uint64) error {
	if len(vals) == 0 {
		return ssz.ErrVectorLength
	}
	subIndx := hh.Index()
	for _, v := range vals {
		hh.AppendUint64(v)
	}
	hh.FillUpTo32()
	hh.Merkleize(subIndx)
	return nil
}

// putBitlist hashes a bitlist, which must carry its length bit.
func putBitlist(hh *ssz.Hasher, b []byte, maxSize uint64) error {
	if len(b) == 0 || b[len(b)-1] == 0 {
		return errors.New("bitlist is missing its length bit")
	}
	hh.PutBitlist(b, maxSize)
	return nil
}

type hashRootWith interface {
	HashTreeRootWith(hh *ssz.Hasher) error
}

// putContainerList merkleizes a list of containers with its length mixed in.
func putContainerList(hh *ssz.Hasher, n int, limit uint64, elem func(i int) hashRootWith) error {
	if uint64(n) > limit {
		return ssz.ErrIncorrectListSize
	}
	subIndx := hh.Index()
	for i := 0; i < n; i++ {
		if err := elem(i).HashTreeRootWith(hh); err != nil {
			return err
		}
	}
	hh.MerkleizeWithMixin(subIndx, uint64(n), limit)
	return nil
}
