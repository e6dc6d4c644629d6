// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"fmt"

	"github.com/ava-labs/movesdk/codec"
)

var (
	_ PublicKey = (*AnyPublicKey)(nil)
	_ Signature = (*AnySignature)(nil)
)

// AnyPublicKey carries a public key of any single-signer scheme behind a
// variant index.
type AnyPublicKey struct {
	Variant AnyVariant
	Key     PublicKey
}

// NewAnyPublicKey wraps k, which must be an ed25519 or secp256k1 key.
func NewAnyPublicKey(k PublicKey) (*AnyPublicKey, error) {
	switch k := k.(type) {
	case Ed25519PublicKey:
		return &AnyPublicKey{Variant: AnyEd25519, Key: k}, nil
	case Secp256k1PublicKey:
		return &AnyPublicKey{Variant: AnySecp256k1, Key: k}, nil
	case *AnyPublicKey:
		return k, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidKeyType, k)
	}
}

// Bytes returns the BCS encoding of the wrapper.
func (k *AnyPublicKey) Bytes() []byte {
	b, _ := codec.Marshal(k)
	return b
}

func (k *AnyPublicKey) String() string { return k.Key.String() }

func (k *AnyPublicKey) Serialize(e codec.Encoder) {
	e.SerializeVariantIndex(uint32(k.Variant))
	k.Key.Serialize(e)
}

// Verify accepts an [AnySignature] of the same variant.
func (k *AnyPublicKey) Verify(msg []byte, sig Signature) bool {
	s, ok := sig.(*AnySignature)
	if !ok || s.Variant != k.Variant {
		return false
	}
	return k.Key.Verify(msg, s.Signature)
}

// AuthenticationKey returns the single-key authentication key.
func (k *AnyPublicKey) AuthenticationKey() AuthenticationKey {
	return AuthenticationKeyFromSchemeAndBytes(SingleKeyScheme, k.Bytes())
}

func DeserializeAnyPublicKey(d codec.Decoder) *AnyPublicKey {
	variant := AnyVariant(d.DeserializeVariantIndex())
	if d.Err() != nil {
		return nil
	}
	var k PublicKey
	switch variant {
	case AnyEd25519:
		k = DeserializeEd25519PublicKey(d)
	case AnySecp256k1:
		k = DeserializeSecp256k1PublicKey(d)
	default:
		d.AddErr(fmt.Errorf("%w: public key %d", ErrUnknownAnyVariant, variant))
		return nil
	}
	if d.Err() != nil {
		return nil
	}
	return &AnyPublicKey{Variant: variant, Key: k}
}

// AnySignature carries a signature of any single-signer scheme behind a
// variant index.
type AnySignature struct {
	Variant   AnyVariant
	Signature Signature
}

func NewAnySignature(s Signature) (*AnySignature, error) {
	switch s := s.(type) {
	case Ed25519Signature:
		return &AnySignature{Variant: AnyEd25519, Signature: s}, nil
	case Secp256k1Signature:
		return &AnySignature{Variant: AnySecp256k1, Signature: s}, nil
	case *AnySignature:
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidKeyType, s)
	}
}

func (s *AnySignature) Bytes() []byte {
	b, _ := codec.Marshal(s)
	return b
}

func (s *AnySignature) Serialize(e codec.Encoder) {
	e.SerializeVariantIndex(uint32(s.Variant))
	s.Signature.Serialize(e)
}

func DeserializeAnySignature(d codec.Decoder) *AnySignature {
	variant := AnyVariant(d.DeserializeVariantIndex())
	if d.Err() != nil {
		return nil
	}
	var s Signature
	switch variant {
	case AnyEd25519:
		s = DeserializeEd25519Signature(d)
	case AnySecp256k1:
		s = DeserializeSecp256k1Signature(d)
	default:
		d.AddErr(fmt.Errorf("%w: signature %d", ErrUnknownAnyVariant, variant))
		return nil
	}
	if d.Err() != nil {
		return nil
	}
	return &AnySignature{Variant: variant, Signature: s}
}
