// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package authtest

import (
	"github.com/ava-labs/movesdk/auth"
	"github.com/ava-labs/movesdk/types"
)

var _ auth.Signer = (*MockSigner)(nil)

// MockSigner returns canned values. SignError, when set, is returned by
// both signing methods.
type MockSigner struct {
	AddressValue   types.Address
	PublicKeyValue auth.PublicKey
	SchemeValue    auth.Scheme
	Authenticator  *auth.AccountAuthenticator
	SignError      error

	// Messages records every message passed to a signing method.
	Messages [][]byte
}

func (m *MockSigner) Address() types.Address {
	return m.AddressValue
}

func (m *MockSigner) PublicKey() auth.PublicKey {
	return m.PublicKeyValue
}

func (m *MockSigner) SigningScheme() auth.Scheme {
	return m.SchemeValue
}

func (m *MockSigner) Sign(msg []byte) (auth.Signature, error) {
	m.Messages = append(m.Messages, msg)
	if m.SignError != nil {
		return nil, m.SignError
	}
	return m.Authenticator.Signature, nil
}

func (m *MockSigner) SignWithAuthenticator(msg []byte) (*auth.AccountAuthenticator, error) {
	m.Messages = append(m.Messages, msg)
	if m.SignError != nil {
		return nil, m.SignError
	}
	return m.Authenticator, nil
}
