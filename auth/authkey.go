// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/sha3"

	"github.com/ava-labs/movesdk/codec"
	"github.com/ava-labs/movesdk/consts"
	"github.com/ava-labs/movesdk/types"
)

// AuthenticationKey is SHA3-256(key material | scheme). An account's address
// is the authentication key it was created with.
type AuthenticationKey [consts.HashLen]byte

// AuthenticationKeyFromSchemeAndBytes hashes b followed by the scheme byte.
func AuthenticationKeyFromSchemeAndBytes(scheme Scheme, b []byte) AuthenticationKey {
	h := sha3.New256()
	_, _ = h.Write(b)
	_, _ = h.Write([]byte{byte(scheme)})
	var k AuthenticationKey
	h.Sum(k[:0])
	return k
}

// AuthenticationKeyFromPublicKey picks the scheme that matches pk. A bare
// secp256k1 key has no scheme of its own and must be wrapped in an
// [AnyPublicKey] first.
func AuthenticationKeyFromPublicKey(pk PublicKey) (AuthenticationKey, error) {
	switch pk := pk.(type) {
	case Ed25519PublicKey:
		return pk.AuthenticationKey(), nil
	case *AnyPublicKey:
		return pk.AuthenticationKey(), nil
	case *MultiEd25519PublicKey:
		return pk.AuthenticationKey(), nil
	case *MultiKey:
		return pk.AuthenticationKey(), nil
	default:
		return AuthenticationKey{}, fmt.Errorf("%w: %T", ErrUnsupportedPublicKey, pk)
	}
}

// DerivedAddress returns the address of an account created with k.
func (k AuthenticationKey) DerivedAddress() types.Address {
	return types.Address(k)
}

func (k AuthenticationKey) String() string { return codec.ToHex(k[:]) }

func (k AuthenticationKey) Serialize(e codec.Encoder) { e.SerializeFixedBytes(k[:]) }

func deriveAddress(scheme Scheme, parts ...[]byte) types.Address {
	h := sha3.New256()
	for _, p := range parts {
		_, _ = h.Write(p)
	}
	_, _ = h.Write([]byte{byte(scheme)})
	var a types.Address
	h.Sum(a[:0])
	return a
}

// CreateObjectAddress derives the address of a named object created by
// creator from seed.
func CreateObjectAddress(creator types.Address, seed []byte) types.Address {
	return deriveAddress(DeriveObjectAddressFromSeedScheme, creator[:], seed)
}

// CreateResourceAddress derives the address of a resource account created
// by creator from seed.
func CreateResourceAddress(creator types.Address, seed []byte) types.Address {
	return deriveAddress(DeriveResourceAccountAddressScheme, creator[:], seed)
}

// CreateUserDerivedObjectAddress derives an object address from another
// object.
func CreateUserDerivedObjectAddress(source, derivedFrom types.Address) types.Address {
	return deriveAddress(DeriveObjectAddressFromObjectScheme, source[:], derivedFrom[:])
}

// CreateObjectAddressFromGUID derives the address of an object created from
// creator's GUID counter. The GUID is written as (creation number, address).
func CreateObjectAddressFromGUID(creator types.Address, creationNum uint64) types.Address {
	var num [consts.Uint64Len]byte
	binary.LittleEndian.PutUint64(num[:], creationNum)
	return deriveAddress(DeriveObjectAddressFromGUIDScheme, num[:], creator[:])
}

// CreateAUIDAddress derives the address of the counter-th unique id created
// by the transaction with hash txHash.
func CreateAUIDAddress(txHash [consts.HashLen]byte, counter uint64) types.Address {
	var num [consts.Uint64Len]byte
	binary.LittleEndian.PutUint64(num[:], counter)
	return deriveAddress(DeriveAuidScheme, txHash[:], num[:])
}
