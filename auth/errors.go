// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import "errors"

var (
	ErrInvalidKeyType               = errors.New("invalid key type")
	ErrUnknownAnyVariant            = errors.New("unknown any key variant")
	ErrUnknownAuthenticator         = errors.New("unknown account authenticator")
	ErrUnsupportedPublicKey         = errors.New("public key has no authentication key scheme")
	ErrInvalidThreshold             = errors.New("invalid signature threshold")
	ErrTooManyKeys                  = errors.New("too many keys")
	ErrInvalidBitmap                = errors.New("invalid signature bitmap")
	ErrInvalidMultiEd25519PublicKey = errors.New("invalid multi-ed25519 public key")
	ErrInvalidMultiEd25519Signature = errors.New("invalid multi-ed25519 signature")
)
