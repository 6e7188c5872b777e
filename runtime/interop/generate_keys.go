// Package interop builds deterministic validator keys, genesis states and
// signed blocks for local devnets and tests.
package interop

import (
	"math/big"
	"runtime"

	"github.com/pkg/errors"
	"github.com/sgryphon/cortex/crypto/bls"
	"github.com/sgryphon/cortex/crypto/hash"
	"github.com/sgryphon/cortex/encoding/bytesutil"
	"golang.org/x/sync/errgroup"
)

// DeterministicallyGenerateKeys creates BLS private keys using a fixed curve order according to
// the algorithm specified in the Eth2.0-Specs interop mock start section found here:
// https://github.com/ethereum/eth2.0-pm/blob/a085c9870f3956d6228ed2a40cd37f0c6580ecd7/interop/mocked_start/README.md
func DeterministicallyGenerateKeys(startIndex, numKeys uint64) ([]bls.SecretKey, []bls.PublicKey, error) {
	privKeys := make([]bls.SecretKey, numKeys)
	pubKeys := make([]bls.PublicKey, numKeys)

	workers := uint64(runtime.GOMAXPROCS(0))
	chunk := (numKeys + workers - 1) / workers
	if chunk == 0 {
		chunk = 1
	}
	var g errgroup.Group
	for offset := uint64(0); offset < numKeys; offset += chunk {
		start, end := offset, offset+chunk
		if end > numKeys {
			end = numKeys
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				priv, err := deterministicKey(startIndex + i)
				if err != nil {
					return err
				}
				privKeys[i] = priv
				pubKeys[i] = priv.PublicKey()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return privKeys, pubKeys, nil
}

func deterministicKey(index uint64) (bls.SecretKey, error) {
	enc := bytesutil.ToBytes(index, 32)
	h := hash.Hash(enc)
	// Reverse byte order to big endian for use with big ints.
	b := bytesutil.ReverseByteOrder(h[:])
	num := new(big.Int).SetBytes(b)
	priv, err := bls.SecretKeyFromBigNum(num)
	if err != nil {
		return nil, errors.Wrapf(err, "could not create bls secret key at index %d from raw bytes", index)
	}
	return priv, nil
}

// WithdrawalCredentialsHash forms a 32 byte hash of the withdrawal public
// address.
//
// The credentials are formed as:
//
//	withdrawal_credentials[:1] == BLS_WITHDRAWAL_PREFIX_BYTE
//	withdrawal_credentials[1:] == hash(withdrawal_pubkey)[1:]
//
// where withdrawal_credentials is of type bytes32.
func WithdrawalCredentialsHash(prefix byte, pubKey []byte) []byte {
	h := hash.Hash(pubKey)
	return append([]byte{prefix}, h[1:]...)
}
