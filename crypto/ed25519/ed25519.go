// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ed25519

import (
	"crypto/ed25519"
	"fmt"

	"github.com/hdevalence/ed25519consensus"

	"github.com/ava-labs/movesdk/crypto"
)

type (
	PublicKey  [ed25519.PublicKeySize]byte
	PrivateKey [ed25519.PrivateKeySize]byte
	Signature  [ed25519.SignatureSize]byte
)

// Verification follows ZIP-215 (https://zips.z.cash/zip-0215) through
// ed25519consensus, and additionally requires the scalar half of every
// signature to be reduced modulo the group order.
const (
	PublicKeyLen  = ed25519.PublicKeySize
	PrivateKeyLen = ed25519.PrivateKeySize
	// PrivateKeySeedLen is defined because ed25519.PrivateKey
	// is formatted as privateKey = seed|publicKey.
	PrivateKeySeedLen = ed25519.SeedSize
	SignatureLen      = ed25519.SignatureSize
)

var (
	EmptyPublicKey  = [ed25519.PublicKeySize]byte{}
	EmptyPrivateKey = [ed25519.PrivateKeySize]byte{}
	EmptySignature  = [ed25519.SignatureSize]byte{}

	// groupOrder is L = 2^252 + 27742317777372353535851937790883648493,
	// little endian.
	groupOrder = [32]byte{
		0xed, 0xd3, 0xf5, 0x5c, 0x1a, 0x63, 0x12, 0x58,
		0xd6, 0x9c, 0xf7, 0xa2, 0xde, 0xf9, 0xde, 0x14,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10,
	}
)

// GeneratePrivateKey returns a Ed25519 PrivateKey.
func GeneratePrivateKey() (PrivateKey, error) {
	_, k, err := ed25519.GenerateKey(nil)
	if err != nil {
		return EmptyPrivateKey, err
	}
	return PrivateKey(k), nil
}

// PrivateKeyFromSeed derives the PrivateKey of a 32 byte seed.
func PrivateKeyFromSeed(seed []byte) (PrivateKey, error) {
	if len(seed) != PrivateKeySeedLen {
		return EmptyPrivateKey, fmt.Errorf("%w: seed is %d bytes", crypto.ErrInvalidPrivateKey, len(seed))
	}
	return PrivateKey(ed25519.NewKeyFromSeed(seed)), nil
}

// PrivateKeyFromBytes accepts either a 32 byte seed or a 64 byte
// seed|publicKey encoding. The public half of the latter is checked against
// the seed.
func PrivateKeyFromBytes(b []byte) (PrivateKey, error) {
	switch len(b) {
	case PrivateKeySeedLen:
		return PrivateKeyFromSeed(b)
	case PrivateKeyLen:
		p, err := PrivateKeyFromSeed(b[:PrivateKeySeedLen])
		if err != nil {
			return EmptyPrivateKey, err
		}
		if PrivateKey(b) != p {
			return EmptyPrivateKey, fmt.Errorf("%w: public half does not match seed", crypto.ErrInvalidPrivateKey)
		}
		return p, nil
	default:
		return EmptyPrivateKey, fmt.Errorf("%w: %d bytes", crypto.ErrInvalidPrivateKey, len(b))
	}
}

// PublicKeyFromBytes copies b into a PublicKey.
func PublicKeyFromBytes(b []byte) (PublicKey, error) {
	if len(b) != PublicKeyLen {
		return EmptyPublicKey, fmt.Errorf("%w: %d bytes", crypto.ErrInvalidPublicKey, len(b))
	}
	return PublicKey(b), nil
}

// SignatureFromBytes copies b into a Signature.
func SignatureFromBytes(b []byte) (Signature, error) {
	if len(b) != SignatureLen {
		return EmptySignature, fmt.Errorf("%w: %d bytes", crypto.ErrInvalidSignature, len(b))
	}
	return Signature(b), nil
}

// PublicKey returns a PublicKey associated with the Ed25519 PrivateKey p.
// The PublicKey is the last 32 bytes of p.
func (p PrivateKey) PublicKey() PublicKey {
	return PublicKey(p[PrivateKeySeedLen:])
}

// Seed returns the 32 byte seed p was derived from.
func (p PrivateKey) Seed() []byte {
	return p[:PrivateKeySeedLen]
}

// Sign returns a valid signature for msg using pk. Signing is deterministic.
func Sign(msg []byte, pk PrivateKey) Signature {
	sig := ed25519.Sign(pk[:], msg)
	return Signature(sig)
}

// IsCanonicalSignature reports whether the S half of s is strictly less than
// the group order.
func IsCanonicalSignature(s Signature) bool {
	scalar := s[32:]
	for i := 31; i >= 0; i-- {
		switch {
		case scalar[i] < groupOrder[i]:
			return true
		case scalar[i] > groupOrder[i]:
			return false
		}
	}
	// S == L
	return false
}

// Verify returns whether s is a canonical, valid signature of msg by p.
func Verify(msg []byte, p PublicKey, s Signature) bool {
	if !IsCanonicalSignature(s) {
		return false
	}
	return ed25519consensus.Verify(p[:], msg, s[:])
}

// Batch verifies many signatures at once. It is used for multi-signatures,
// where every signer signs the same message.
type Batch struct {
	bv        ed25519consensus.BatchVerifier
	canonical bool
}

func NewBatch(size int) *Batch {
	return &Batch{
		bv:        ed25519consensus.NewPreallocatedBatchVerifier(size),
		canonical: true,
	}
}

func (b *Batch) Add(msg []byte, p PublicKey, s Signature) {
	if !IsCanonicalSignature(s) {
		b.canonical = false
		return
	}
	b.bv.Add(p[:], msg, s[:])
}

func (b *Batch) Verify() bool {
	return b.canonical && b.bv.Verify()
}

func (b *Batch) VerifyAsync() func() error {
	return func() error {
		if !b.Verify() {
			return crypto.ErrInvalidSignature
		}
		return nil
	}
}
