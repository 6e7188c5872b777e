package bls_test

import (
	"math/big"
	"testing"

	"github.com/sgryphon/cortex/crypto/bls"
	"github.com/sgryphon/cortex/crypto/bls/common"
	"github.com/sgryphon/cortex/testing/assert"
	"github.com/sgryphon/cortex/testing/require"
)

func TestSignVerify(t *testing.T) {
	priv, err := bls.RandKey()
	require.NoError(t, err)
	pub := priv.PublicKey()
	msg := []byte("hello")
	sig := priv.Sign(msg)
	assert.Equal(t, true, sig.Verify(pub, msg), "Signature did not verify")
	assert.Equal(t, false, sig.Verify(pub, []byte("other")), "Signature verified against wrong message")
}

func TestSecretKey_MarshalRoundTrip(t *testing.T) {
	priv, err := bls.RandKey()
	require.NoError(t, err)
	priv2, err := bls.SecretKeyFromBytes(priv.Marshal())
	require.NoError(t, err)
	assert.DeepEqual(t, priv.PublicKey().Marshal(), priv2.PublicKey().Marshal())
}

func TestSecretKeyFromBytes_Zero(t *testing.T) {
	_, err := bls.SecretKeyFromBytes(common.ZeroSecretKey[:])
	assert.ErrorIs(t, err, common.ErrZeroKey)
	_, err = bls.SecretKeyFromBytes([]byte{1, 2, 3})
	assert.ErrorContains(t, "secret key must be 32 bytes", err)
}

func TestSecretKeyFromBigNum_ReducesModOrder(t *testing.T) {
	order, ok := new(big.Int).SetString(common.CurveOrder, 10)
	require.Equal(t, true, ok)
	small, err := bls.SecretKeyFromBigNum(big.NewInt(7))
	require.NoError(t, err)
	wrapped, err := bls.SecretKeyFromBigNum(new(big.Int).Add(order, big.NewInt(7)))
	require.NoError(t, err)
	assert.DeepEqual(t, small.Marshal(), wrapped.Marshal())
}

func TestPublicKeyFromBytes(t *testing.T) {
	_, err := bls.PublicKeyFromBytes(common.InfinitePublicKey[:])
	assert.ErrorIs(t, err, common.ErrInfinitePubKey)

	priv, err := bls.RandKey()
	require.NoError(t, err)
	raw := priv.PublicKey().Marshal()
	pub, err := bls.PublicKeyFromBytes(raw)
	require.NoError(t, err)
	assert.Equal(t, true, pub.Equals(priv.PublicKey()))
}

func TestSignatureFromBytes(t *testing.T) {
	_, err := bls.SignatureFromBytes(make([]byte, 10))
	assert.ErrorContains(t, "signature must be 96 bytes", err)

	priv, err := bls.RandKey()
	require.NoError(t, err)
	sig := priv.Sign([]byte("msg"))
	sig2, err := bls.SignatureFromBytes(sig.Marshal())
	require.NoError(t, err)
	assert.Equal(t, true, sig2.Verify(priv.PublicKey(), []byte("msg")))
}

func TestFastAggregateVerify(t *testing.T) {
	msg := [32]byte{'a'}
	pubs := make([]bls.PublicKey, 0, 4)
	sigs := make([]bls.Signature, 0, 4)
	for i := 0; i < 4; i++ {
		priv, err := bls.RandKey()
		require.NoError(t, err)
		pubs = append(pubs, priv.PublicKey())
		sigs = append(sigs, priv.Sign(msg[:]))
	}
	agg := bls.AggregateSignatures(sigs)
	assert.Equal(t, true, agg.FastAggregateVerify(pubs, msg))
	assert.Equal(t, false, agg.FastAggregateVerify(pubs[:3], msg))
}

func TestSignatureSet_Verify(t *testing.T) {
	set := bls.NewSet()
	for i := 0; i < 3; i++ {
		priv, err := bls.RandKey()
		require.NoError(t, err)
		msg := [32]byte{byte(i)}
		set.Signatures = append(set.Signatures, priv.Sign(msg[:]).Marshal())
		set.PublicKeys = append(set.PublicKeys, priv.PublicKey())
		set.Messages = append(set.Messages, msg)
	}
	ok, err := set.Verify()
	require.NoError(t, err)
	assert.Equal(t, true, ok)

	bad := set.Copy()
	bad.Messages[1] = [32]byte{'x'}
	ok, err = bad.Verify()
	require.NoError(t, err)
	assert.Equal(t, false, ok)
}
