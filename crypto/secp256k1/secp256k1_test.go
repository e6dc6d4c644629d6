// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package secp256k1

import (
	"encoding/hex"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/movesdk/crypto"
)

func testKey(t *testing.T) PrivateKey {
	b, err := hex.DecodeString("306fa009600e27c09d2659145ce1785249360dd5fb992da01a578fe67ed607f4")
	require.NoError(t, err)
	k, err := PrivateKeyFromBytes(b)
	require.NoError(t, err)
	return k
}

func TestPublicKeyFormat(t *testing.T) {
	require := require.New(t)

	priv, err := GeneratePrivateKey()
	require.NoError(err)
	pub := priv.PublicKey()
	require.Equal(byte(0x04), pub[0])

	compressed := secp256k1.PrivKeyFromBytes(priv[:]).PubKey().SerializeCompressed()
	parsed, err := PublicKeyFromBytes(compressed)
	require.NoError(err)
	require.Equal(pub, parsed)

	_, err = PublicKeyFromBytes(pub[:64])
	require.ErrorIs(err, crypto.ErrInvalidPublicKey)
}

func TestPrivateKeyFromBytes(t *testing.T) {
	require := require.New(t)

	_, err := PrivateKeyFromBytes(make([]byte, PrivateKeyLen))
	require.ErrorIs(err, crypto.ErrInvalidPrivateKey)

	order := make([]byte, PrivateKeyLen)
	for i := range order {
		order[i] = 0xff
	}
	_, err = PrivateKeyFromBytes(order)
	require.ErrorIs(err, crypto.ErrInvalidPrivateKey)

	_, err = PrivateKeyFromBytes([]byte{1})
	require.ErrorIs(err, crypto.ErrInvalidPrivateKey)
}

func TestSignVerify(t *testing.T) {
	require := require.New(t)

	priv := testKey(t)
	msg := []byte("hello move")
	sig := priv.Sign(msg)

	require.Equal(sig, priv.Sign(msg), "signing is not deterministic")
	require.True(Verify(msg, priv.PublicKey(), sig))
	require.False(Verify([]byte("hello world"), priv.PublicKey(), sig))

	other, err := GeneratePrivateKey()
	require.NoError(err)
	require.False(Verify(msg, other.PublicKey(), sig))
}

func TestVerifyRejectsHighS(t *testing.T) {
	require := require.New(t)

	priv := testKey(t)
	msg := []byte("malleable")
	sig := priv.Sign(msg)

	// (r, n-s) verifies under plain ECDSA but is not low-s.
	var s secp256k1.ModNScalar
	s.SetByteSlice(sig[32:])
	s.Negate()
	high := sig
	s.PutBytesUnchecked(high[32:])

	require.False(Verify(msg, priv.PublicKey(), high))
}

func TestVerifyRejectsZero(t *testing.T) {
	priv := testKey(t)
	require.False(t, Verify([]byte("msg"), priv.PublicKey(), EmptySignature))
	require.False(t, Verify([]byte("msg"), EmptyPublicKey, priv.Sign([]byte("msg"))))
}
