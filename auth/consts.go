// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

// Scheme is the discriminator byte appended to key material before hashing
// it into an authentication key or a derived address. The values are fixed
// by the chain.
type Scheme uint8

const (
	Ed25519Scheme      Scheme = 0
	MultiEd25519Scheme Scheme = 1
	SingleKeyScheme    Scheme = 2
	MultiKeyScheme     Scheme = 3

	DeriveAuidScheme                    Scheme = 0xFB
	DeriveObjectAddressFromObjectScheme Scheme = 0xFC
	DeriveObjectAddressFromGUIDScheme   Scheme = 0xFD
	DeriveObjectAddressFromSeedScheme   Scheme = 0xFE
	DeriveResourceAccountAddressScheme  Scheme = 0xFF
)

// AnyVariant tags the concrete scheme inside an [AnyPublicKey] or
// [AnySignature].
type AnyVariant uint32

const (
	AnyEd25519   AnyVariant = 0
	AnySecp256k1 AnyVariant = 1
)

// AccountAuthenticatorVariant tags the scheme of an [AccountAuthenticator].
type AccountAuthenticatorVariant uint32

const (
	AccountAuthenticatorEd25519      AccountAuthenticatorVariant = 0
	AccountAuthenticatorMultiEd25519 AccountAuthenticatorVariant = 1
	AccountAuthenticatorSingleKey    AccountAuthenticatorVariant = 2
	AccountAuthenticatorMultiKey     AccountAuthenticatorVariant = 3
)

const (
	// Key type names accepted by [GenerateSingleKeyAccount] and [LoadSigner].
	ED25519Key   = "ed25519"
	Secp256k1Key = "secp256k1"

	// MaxMultiEd25519Keys is the number of keys a multi-ed25519 bitmap can
	// address.
	MaxMultiEd25519Keys = 32
	// BitmapLen is the byte length of multi-signature bitmaps.
	BitmapLen = 4
)
