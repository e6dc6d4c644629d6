// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"fmt"

	"github.com/ava-labs/movesdk/codec"
	"github.com/ava-labs/movesdk/crypto"
)

// AccountAuthenticator proves that one account approved a signing message.
type AccountAuthenticator struct {
	Variant   AccountAuthenticatorVariant
	PublicKey PublicKey
	Signature Signature
}

func NewEd25519Authenticator(pub Ed25519PublicKey, sig Ed25519Signature) *AccountAuthenticator {
	return &AccountAuthenticator{
		Variant:   AccountAuthenticatorEd25519,
		PublicKey: pub,
		Signature: sig,
	}
}

func NewMultiEd25519Authenticator(pub *MultiEd25519PublicKey, sig *MultiEd25519Signature) *AccountAuthenticator {
	return &AccountAuthenticator{
		Variant:   AccountAuthenticatorMultiEd25519,
		PublicKey: pub,
		Signature: sig,
	}
}

func NewSingleKeyAuthenticator(pub *AnyPublicKey, sig *AnySignature) *AccountAuthenticator {
	return &AccountAuthenticator{
		Variant:   AccountAuthenticatorSingleKey,
		PublicKey: pub,
		Signature: sig,
	}
}

func NewMultiKeyAuthenticator(pub *MultiKey, sig *MultiKeySignature) *AccountAuthenticator {
	return &AccountAuthenticator{
		Variant:   AccountAuthenticatorMultiKey,
		PublicKey: pub,
		Signature: sig,
	}
}

// Verify returns [crypto.ErrInvalidSignature] unless the signature is a
// valid signature of msg by the public key.
func (a *AccountAuthenticator) Verify(msg []byte) error {
	if !a.PublicKey.Verify(msg, a.Signature) {
		return crypto.ErrInvalidSignature
	}
	return nil
}

// AuthenticationKey returns the authentication key of the signing account.
func (a *AccountAuthenticator) AuthenticationKey() (AuthenticationKey, error) {
	return AuthenticationKeyFromPublicKey(a.PublicKey)
}

func (a *AccountAuthenticator) Serialize(e codec.Encoder) {
	e.SerializeVariantIndex(uint32(a.Variant))
	a.PublicKey.Serialize(e)
	a.Signature.Serialize(e)
}

func DeserializeAccountAuthenticator(d codec.Decoder) *AccountAuthenticator {
	variant := AccountAuthenticatorVariant(d.DeserializeVariantIndex())
	if d.Err() != nil {
		return nil
	}
	var a *AccountAuthenticator
	switch variant {
	case AccountAuthenticatorEd25519:
		a = NewEd25519Authenticator(DeserializeEd25519PublicKey(d), DeserializeEd25519Signature(d))
	case AccountAuthenticatorMultiEd25519:
		a = NewMultiEd25519Authenticator(DeserializeMultiEd25519PublicKey(d), DeserializeMultiEd25519Signature(d))
	case AccountAuthenticatorSingleKey:
		a = NewSingleKeyAuthenticator(DeserializeAnyPublicKey(d), DeserializeAnySignature(d))
	case AccountAuthenticatorMultiKey:
		a = NewMultiKeyAuthenticator(DeserializeMultiKey(d), DeserializeMultiKeySignature(d))
	default:
		d.AddErr(fmt.Errorf("%w: %d", ErrUnknownAuthenticator, variant))
		return nil
	}
	if d.Err() != nil {
		return nil
	}
	return a
}
