// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"fmt"

	"github.com/ava-labs/movesdk/types"
)

// Signer is an account that can approve signing messages.
type Signer interface {
	Address() types.Address
	PublicKey() PublicKey
	SigningScheme() Scheme
	// Sign returns the raw signature of msg.
	Sign(msg []byte) (Signature, error)
	// SignWithAuthenticator wraps the signature of msg with the signer's
	// public key.
	SignWithAuthenticator(msg []byte) (*AccountAuthenticator, error)
}

var (
	_ Signer = (*Ed25519Account)(nil)
	_ Signer = (*SingleKeyAccount)(nil)
)

// Ed25519Account signs with the legacy single-ed25519 scheme.
type Ed25519Account struct {
	key     Ed25519PrivateKey
	address types.Address
}

// NewEd25519Account returns the account whose address is derived from key.
func NewEd25519Account(key Ed25519PrivateKey) *Ed25519Account {
	pub := key.PublicKey().(Ed25519PublicKey)
	return &Ed25519Account{key: key, address: pub.AuthenticationKey().DerivedAddress()}
}

// NewEd25519AccountWithAddress is used for accounts whose key was rotated
// after creation.
func NewEd25519AccountWithAddress(key Ed25519PrivateKey, address types.Address) *Ed25519Account {
	return &Ed25519Account{key: key, address: address}
}

func GenerateEd25519Account() (*Ed25519Account, error) {
	key, err := GenerateEd25519PrivateKey()
	if err != nil {
		return nil, err
	}
	return NewEd25519Account(key), nil
}

func (a *Ed25519Account) Address() types.Address { return a.address }

func (a *Ed25519Account) PublicKey() PublicKey { return a.key.PublicKey() }

func (*Ed25519Account) SigningScheme() Scheme { return Ed25519Scheme }

func (a *Ed25519Account) PrivateKey() Ed25519PrivateKey { return a.key }

func (a *Ed25519Account) Sign(msg []byte) (Signature, error) { return a.key.Sign(msg) }

func (a *Ed25519Account) SignWithAuthenticator(msg []byte) (*AccountAuthenticator, error) {
	sig, err := a.key.Sign(msg)
	if err != nil {
		return nil, err
	}
	return NewEd25519Authenticator(a.key.PublicKey().(Ed25519PublicKey), sig.(Ed25519Signature)), nil
}

// SingleKeyAccount signs with any single-signer scheme through the
// [AnyPublicKey] wrapper.
type SingleKeyAccount struct {
	key     PrivateKey
	pub     *AnyPublicKey
	address types.Address
}

// NewSingleKeyAccount returns the account whose address is derived from the
// wrapped public key of key.
func NewSingleKeyAccount(key PrivateKey) (*SingleKeyAccount, error) {
	pub, err := NewAnyPublicKey(key.PublicKey())
	if err != nil {
		return nil, err
	}
	return &SingleKeyAccount{
		key:     key,
		pub:     pub,
		address: pub.AuthenticationKey().DerivedAddress(),
	}, nil
}

// GenerateSingleKeyAccount creates a fresh key of keyType, either
// [ED25519Key] or [Secp256k1Key].
func GenerateSingleKeyAccount(keyType string) (*SingleKeyAccount, error) {
	var (
		key PrivateKey
		err error
	)
	switch keyType {
	case ED25519Key:
		key, err = GenerateEd25519PrivateKey()
	case Secp256k1Key:
		key, err = GenerateSecp256k1PrivateKey()
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidKeyType, keyType)
	}
	if err != nil {
		return nil, err
	}
	return NewSingleKeyAccount(key)
}

func (a *SingleKeyAccount) Address() types.Address { return a.address }

func (a *SingleKeyAccount) PublicKey() PublicKey { return a.pub }

func (*SingleKeyAccount) SigningScheme() Scheme { return SingleKeyScheme }

func (a *SingleKeyAccount) Sign(msg []byte) (Signature, error) {
	sig, err := a.key.Sign(msg)
	if err != nil {
		return nil, err
	}
	return NewAnySignature(sig)
}

func (a *SingleKeyAccount) SignWithAuthenticator(msg []byte) (*AccountAuthenticator, error) {
	sig, err := a.Sign(msg)
	if err != nil {
		return nil, err
	}
	return NewSingleKeyAuthenticator(a.pub, sig.(*AnySignature)), nil
}
