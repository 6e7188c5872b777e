// Package bls implements a go-wrapper around a library implementing the
// the BLS12-381 curve and signature scheme. This package exposes a public API for
// verifying and aggregating BLS signatures used by Ethereum.
package bls

import (
	"math/big"

	"github.com/pkg/errors"
	fieldparams "github.com/sgryphon/cortex/config/fieldparams"
	"github.com/sgryphon/cortex/crypto/bls/blst"
	"github.com/sgryphon/cortex/crypto/bls/common"
)

// SecretKey represents a BLS secret or private key.
type SecretKey = common.SecretKey

// PublicKey represents a BLS public key.
type PublicKey = common.PublicKey

// Signature represents a BLS signature.
type Signature = common.Signature

// SecretKeyFromBytes creates a BLS private key from a BigEndian byte slice.
func SecretKeyFromBytes(privKey []byte) (SecretKey, error) {
	return blst.SecretKeyFromBytes(privKey)
}

// SecretKeyFromBigNum takes in a big number and reduces it modulo the curve
// order before creating a BLS private key from it.
func SecretKeyFromBigNum(n *big.Int) (SecretKey, error) {
	if n == nil || n.Sign() < 0 {
		return nil, errors.New("secret key must be a non-negative number")
	}
	order, ok := new(big.Int).SetString(common.CurveOrder, 10)
	if !ok {
		return nil, errors.New("could not parse curve order")
	}
	k := new(big.Int).Mod(n, order)
	b := k.Bytes()
	if len(b) > fieldparams.BLSSecretKeyLength {
		return nil, errors.New("secret key exceeds 32 bytes")
	}
	buf := make([]byte, fieldparams.BLSSecretKeyLength)
	copy(buf[fieldparams.BLSSecretKeyLength-len(b):], b)
	return SecretKeyFromBytes(buf)
}

// PublicKeyFromBytes creates a BLS public key from a  BigEndian byte slice.
func PublicKeyFromBytes(pubKey []byte) (PublicKey, error) {
	return blst.PublicKeyFromBytes(pubKey)
}

// SignatureFromBytes creates a BLS signature from a LittleEndian byte slice.
func SignatureFromBytes(sig []byte) (Signature, error) {
	return blst.SignatureFromBytes(sig)
}

// AggregatePublicKeys aggregates the provided raw public keys into a single key.
func AggregatePublicKeys(pubs [][]byte) (PublicKey, error) {
	return blst.AggregatePublicKeys(pubs)
}

// AggregateSignatures converts a list of signatures into a single, aggregated sig.
func AggregateSignatures(sigs []Signature) Signature {
	return blst.AggregateSignatures(sigs)
}

// VerifyMultipleSignatures verifies multiple signatures for distinct messages securely.
func VerifyMultipleSignatures(sigs [][]byte, msgs [][32]byte, pubKeys []PublicKey) (bool, error) {
	return blst.VerifyMultipleSignatures(sigs, msgs, pubKeys)
}

// RandKey creates a new private key using a random input.
func RandKey() (SecretKey, error) {
	return blst.RandKey()
}
