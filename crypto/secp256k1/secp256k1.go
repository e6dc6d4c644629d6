// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package secp256k1 signs and verifies ECDSA signatures over secp256k1.
// Messages are hashed with SHA3-256 before signing, and signatures are the
// 64 byte concatenation r|s with s in the lower half of the curve order.
package secp256k1

import (
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"golang.org/x/crypto/sha3"

	"github.com/ava-labs/movesdk/crypto"
)

const (
	PublicKeyLen  = 65 // uncompressed, 0x04|x|y
	PrivateKeyLen = 32
	SignatureLen  = 64 // r|s
)

type (
	PublicKey  [PublicKeyLen]byte
	PrivateKey [PrivateKeyLen]byte
	Signature  [SignatureLen]byte
)

var (
	EmptyPublicKey  = [PublicKeyLen]byte{}
	EmptyPrivateKey = [PrivateKeyLen]byte{}
	EmptySignature  = [SignatureLen]byte{}
)

// GeneratePrivateKey returns a secp256k1 private key.
func GeneratePrivateKey() (PrivateKey, error) {
	k, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return EmptyPrivateKey, err
	}
	return PrivateKey(k.Serialize()), nil
}

// PrivateKeyFromBytes checks that b is a non-zero scalar below the curve
// order.
func PrivateKeyFromBytes(b []byte) (PrivateKey, error) {
	if len(b) != PrivateKeyLen {
		return EmptyPrivateKey, fmt.Errorf("%w: %d bytes", crypto.ErrInvalidPrivateKey, len(b))
	}
	var scalar secp256k1.ModNScalar
	if overflow := scalar.SetByteSlice(b); overflow || scalar.IsZero() {
		return EmptyPrivateKey, fmt.Errorf("%w: scalar out of range", crypto.ErrInvalidPrivateKey)
	}
	return PrivateKey(b), nil
}

// PublicKeyFromBytes parses a public key in any SEC1 encoding and returns its
// uncompressed form.
func PublicKeyFromBytes(b []byte) (PublicKey, error) {
	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return EmptyPublicKey, fmt.Errorf("%w: %w", crypto.ErrInvalidPublicKey, err)
	}
	return PublicKey(pub.SerializeUncompressed()), nil
}

// SignatureFromBytes copies b into a Signature.
func SignatureFromBytes(b []byte) (Signature, error) {
	if len(b) != SignatureLen {
		return EmptySignature, fmt.Errorf("%w: %d bytes", crypto.ErrInvalidSignature, len(b))
	}
	return Signature(b), nil
}

// PublicKey returns the uncompressed public key of p.
func (p PrivateKey) PublicKey() PublicKey {
	return PublicKey(secp256k1.PrivKeyFromBytes(p[:]).PubKey().SerializeUncompressed())
}

// Sign returns a deterministic (RFC 6979) low-s signature of msg.
func (p PrivateKey) Sign(msg []byte) Signature {
	digest := sha3.Sum256(msg)
	sig := ecdsa.Sign(secp256k1.PrivKeyFromBytes(p[:]), digest[:])

	var (
		out  Signature
		r, s = sig.R(), sig.S()
	)
	r.PutBytesUnchecked(out[:32])
	s.PutBytesUnchecked(out[32:])
	return out
}

// Verify returns whether s is a valid low-s signature of msg by p.
func Verify(msg []byte, p PublicKey, s Signature) bool {
	pub, err := secp256k1.ParsePubKey(p[:])
	if err != nil {
		return false
	}
	var r, sScalar secp256k1.ModNScalar
	if overflow := r.SetByteSlice(s[:32]); overflow || r.IsZero() {
		return false
	}
	if overflow := sScalar.SetByteSlice(s[32:]); overflow || sScalar.IsZero() {
		return false
	}
	if sScalar.IsOverHalfOrder() {
		return false
	}
	digest := sha3.Sum256(msg)
	return ecdsa.NewSignature(&r, &sScalar).Verify(digest[:], pub)
}
