// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ava-labs/movesdk/codec"
	"github.com/ava-labs/movesdk/consts"
)

const (
	AddressLen = consts.AddressLen

	// longHexLen is the number of hex characters of an unabbreviated address.
	longHexLen = AddressLen * 2
)

// Address is a 32 byte account address.
type Address [AddressLen]byte

var (
	_ EntryFunctionArgument  = Address{}
	_ ScriptFunctionArgument = Address{}

	AddressZero  = Address{}
	AddressOne   = specialAddress(1)
	AddressTwo   = specialAddress(2)
	AddressThree = specialAddress(3)
	AddressFour  = specialAddress(4)
)

func specialAddress(b byte) Address {
	var a Address
	a[AddressLen-1] = b
	return a
}

// ToAddress copies b into an Address. b must be exactly [AddressLen] bytes.
func ToAddress(b []byte) (Address, error) {
	if len(b) != AddressLen {
		return AddressZero, fmt.Errorf("%w: %d != %d", ErrInvalidAddressLength, len(b), AddressLen)
	}
	return Address(b), nil
}

// ParseAddress parses the canonical text form of an address: a 0x prefix
// followed by 64 hex characters, or a single hex character for the special
// addresses 0x0 through 0xf.
func ParseAddress(s string) (Address, error) {
	if !strings.HasPrefix(s, "0x") {
		return AddressZero, fmt.Errorf("%w: %q is missing the 0x prefix", ErrInvalidAddress, s)
	}
	// A single hex character can only name a special address.
	switch len(s) - 2 {
	case longHexLen, 1:
		return ParseAddressRelaxed(s)
	default:
		return AddressZero, fmt.Errorf("%w: %q must be 64 hex characters or a special address", ErrInvalidAddress, s)
	}
}

// ParseAddressRelaxed parses an address with an optional 0x prefix and
// between 1 and 64 hex characters, left padding with zeros.
func ParseAddressRelaxed(s string) (Address, error) {
	raw := strings.TrimPrefix(s, "0x")
	if len(raw) == 0 || len(raw) > longHexLen {
		return AddressZero, fmt.Errorf("%w: %q has %d hex characters", ErrInvalidAddress, s, len(raw))
	}
	if len(raw)%2 == 1 {
		raw = "0" + raw
	}
	b, err := hex.DecodeString(raw)
	if err != nil {
		return AddressZero, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	var a Address
	copy(a[AddressLen-len(b):], b)
	return a, nil
}

// MustParseAddress is ParseAddressRelaxed that panics on error. It is meant
// for constants.
func MustParseAddress(s string) Address {
	a, err := ParseAddressRelaxed(s)
	if err != nil {
		panic(err)
	}
	return a
}

// IsSpecial reports whether a is one of 0x0 through 0xf.
func (a Address) IsSpecial() bool {
	for _, b := range a[:AddressLen-1] {
		if b != 0 {
			return false
		}
	}
	return a[AddressLen-1] < 0x10
}

// String returns the short form for special addresses and the long form for
// everything else.
func (a Address) String() string {
	if a.IsSpecial() {
		return fmt.Sprintf("0x%x", a[AddressLen-1])
	}
	return a.StringLong()
}

// StringLong returns the 0x-prefixed 64 character form.
func (a Address) StringLong() string {
	return "0x" + hex.EncodeToString(a[:])
}

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText accepts any relaxed address form.
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := ParseAddressRelaxed(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

func (a Address) Serialize(e codec.Encoder) {
	e.SerializeFixedBytes(a[:])
}

func (a Address) SerializeForEntryFunction(e codec.Encoder) {
	serializeEntryArgument(e, a)
}

func (a Address) SerializeForScriptFunction(e codec.Encoder) {
	e.SerializeVariantIndex(uint32(ScriptArgumentAddress))
	a.Serialize(e)
}

func DeserializeAddress(d codec.Decoder) Address {
	var a Address
	copy(a[:], d.DeserializeFixedBytes(AddressLen))
	return a
}
