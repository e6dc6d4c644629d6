// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package crypto holds the errors shared by the signature schemes under it.
package crypto

import "errors"

var (
	ErrInvalidPrivateKey     = errors.New("invalid private key")
	ErrInvalidPublicKey      = errors.New("invalid public key")
	ErrInvalidSignature      = errors.New("invalid signature")
	ErrNonCanonicalSignature = errors.New("non-canonical signature")
)
