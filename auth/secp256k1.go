// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"github.com/ava-labs/movesdk/codec"
	"github.com/ava-labs/movesdk/crypto"
	"github.com/ava-labs/movesdk/crypto/secp256k1"
)

var (
	_ PublicKey  = Secp256k1PublicKey{}
	_ Signature  = Secp256k1Signature{}
	_ PrivateKey = Secp256k1PrivateKey{}
)

// Secp256k1PublicKey is written as a length-prefixed 65 byte uncompressed
// point. It only has an authentication key when wrapped in an [AnyPublicKey].
type Secp256k1PublicKey secp256k1.PublicKey

func (k Secp256k1PublicKey) Bytes() []byte { return k[:] }

func (k Secp256k1PublicKey) String() string { return codec.ToHex(k[:]) }

func (k Secp256k1PublicKey) Serialize(e codec.Encoder) { e.SerializeBytes(k[:]) }

func (k Secp256k1PublicKey) Verify(msg []byte, sig Signature) bool {
	s, ok := sig.(Secp256k1Signature)
	if !ok {
		return false
	}
	return secp256k1.Verify(msg, secp256k1.PublicKey(k), secp256k1.Signature(s))
}

func DeserializeSecp256k1PublicKey(d codec.Decoder) Secp256k1PublicKey {
	var k Secp256k1PublicKey
	b := deserializeFixed(d, secp256k1.PublicKeyLen, crypto.ErrInvalidPublicKey)
	if b == nil {
		return k
	}
	if _, err := secp256k1.PublicKeyFromBytes(b); err != nil {
		d.AddErr(err)
		return k
	}
	copy(k[:], b)
	return k
}

// Secp256k1Signature is written as a length-prefixed 64 byte r|s string.
type Secp256k1Signature secp256k1.Signature

func (s Secp256k1Signature) Bytes() []byte { return s[:] }

func (s Secp256k1Signature) Serialize(e codec.Encoder) { e.SerializeBytes(s[:]) }

func DeserializeSecp256k1Signature(d codec.Decoder) Secp256k1Signature {
	var s Secp256k1Signature
	copy(s[:], deserializeFixed(d, secp256k1.SignatureLen, crypto.ErrInvalidSignature))
	return s
}

type Secp256k1PrivateKey secp256k1.PrivateKey

func GenerateSecp256k1PrivateKey() (Secp256k1PrivateKey, error) {
	k, err := secp256k1.GeneratePrivateKey()
	return Secp256k1PrivateKey(k), err
}

func (k Secp256k1PrivateKey) PublicKey() PublicKey {
	return Secp256k1PublicKey(secp256k1.PrivateKey(k).PublicKey())
}

func (k Secp256k1PrivateKey) Sign(msg []byte) (Signature, error) {
	return Secp256k1Signature(secp256k1.PrivateKey(k).Sign(msg)), nil
}

func (k Secp256k1PrivateKey) Bytes() []byte { return k[:] }
