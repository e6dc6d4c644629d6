// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package auth implements the account side of transaction authentication:
// key and signature capabilities for every supported scheme, authentication
// keys, account authenticators and signers.
package auth

import (
	"fmt"

	"github.com/ava-labs/movesdk/codec"
)

// PublicKey is implemented by every public key scheme, including the
// [AnyPublicKey] wrapper and multi-key sets.
type PublicKey interface {
	codec.Serializable

	// Bytes returns the raw key material, without a BCS length prefix.
	Bytes() []byte
	// Verify reports whether sig is a valid signature of msg by this key.
	// Signatures of another scheme never verify.
	Verify(msg []byte, sig Signature) bool
	String() string
}

// Signature is implemented by every signature scheme.
type Signature interface {
	codec.Serializable

	Bytes() []byte
}

// PrivateKey is implemented by the single-signer schemes.
type PrivateKey interface {
	PublicKey() PublicKey
	Sign(msg []byte) (Signature, error)
	Bytes() []byte
}

// deserializeFixed reads a length-prefixed byte string that must be exactly n
// bytes long.
func deserializeFixed(d codec.Decoder, n int, err error) []byte {
	b := d.DeserializeBytes()
	if d.Err() != nil {
		return nil
	}
	if len(b) != n {
		d.AddErr(fmt.Errorf("%w: %d bytes", err, len(b)))
		return nil
	}
	return b
}
