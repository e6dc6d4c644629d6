// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"fmt"

	"github.com/ava-labs/movesdk/crypto/ed25519"
	"github.com/ava-labs/movesdk/crypto/secp256k1"
)

// LoadSigner rebuilds a signer from stored key bytes. Ed25519 keys use the
// legacy scheme unless singleKey is set; secp256k1 keys always use the
// single-key scheme.
func LoadSigner(keyType string, key []byte, singleKey bool) (Signer, error) {
	switch keyType {
	case ED25519Key:
		k, err := ed25519.PrivateKeyFromBytes(key)
		if err != nil {
			return nil, err
		}
		if !singleKey {
			return NewEd25519Account(Ed25519PrivateKey(k)), nil
		}
		return NewSingleKeyAccount(Ed25519PrivateKey(k))
	case Secp256k1Key:
		k, err := secp256k1.PrivateKeyFromBytes(key)
		if err != nil {
			return nil, err
		}
		return NewSingleKeyAccount(Secp256k1PrivateKey(k))
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidKeyType, keyType)
	}
}
