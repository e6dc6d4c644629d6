// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"github.com/ava-labs/movesdk/codec"
	"github.com/ava-labs/movesdk/crypto"
	"github.com/ava-labs/movesdk/crypto/ed25519"
)

var (
	_ PublicKey  = Ed25519PublicKey{}
	_ Signature  = Ed25519Signature{}
	_ PrivateKey = Ed25519PrivateKey{}
)

// Ed25519PublicKey is written as a length-prefixed 32 byte string.
type Ed25519PublicKey ed25519.PublicKey

func (k Ed25519PublicKey) Bytes() []byte { return k[:] }

func (k Ed25519PublicKey) String() string { return codec.ToHex(k[:]) }

func (k Ed25519PublicKey) Serialize(e codec.Encoder) { e.SerializeBytes(k[:]) }

func (k Ed25519PublicKey) Verify(msg []byte, sig Signature) bool {
	s, ok := sig.(Ed25519Signature)
	if !ok {
		return false
	}
	return ed25519.Verify(msg, ed25519.PublicKey(k), ed25519.Signature(s))
}

// AuthenticationKey returns the legacy single-ed25519 authentication key.
func (k Ed25519PublicKey) AuthenticationKey() AuthenticationKey {
	return AuthenticationKeyFromSchemeAndBytes(Ed25519Scheme, k[:])
}

func DeserializeEd25519PublicKey(d codec.Decoder) Ed25519PublicKey {
	var k Ed25519PublicKey
	copy(k[:], deserializeFixed(d, ed25519.PublicKeyLen, crypto.ErrInvalidPublicKey))
	return k
}

// Ed25519Signature is written as a length-prefixed 64 byte string.
type Ed25519Signature ed25519.Signature

func (s Ed25519Signature) Bytes() []byte { return s[:] }

func (s Ed25519Signature) Serialize(e codec.Encoder) { e.SerializeBytes(s[:]) }

func DeserializeEd25519Signature(d codec.Decoder) Ed25519Signature {
	var s Ed25519Signature
	copy(s[:], deserializeFixed(d, ed25519.SignatureLen, crypto.ErrInvalidSignature))
	return s
}

// Ed25519PrivateKey signs deterministically.
type Ed25519PrivateKey ed25519.PrivateKey

func GenerateEd25519PrivateKey() (Ed25519PrivateKey, error) {
	k, err := ed25519.GeneratePrivateKey()
	return Ed25519PrivateKey(k), err
}

func (k Ed25519PrivateKey) PublicKey() PublicKey {
	return Ed25519PublicKey(ed25519.PrivateKey(k).PublicKey())
}

func (k Ed25519PrivateKey) Sign(msg []byte) (Signature, error) {
	return Ed25519Signature(ed25519.Sign(msg, ed25519.PrivateKey(k))), nil
}

// Bytes returns the 32 byte seed.
func (k Ed25519PrivateKey) Bytes() []byte { return ed25519.PrivateKey(k).Seed() }
