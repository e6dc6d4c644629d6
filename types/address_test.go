// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/movesdk/codec"
)

const longAddress = "0x2fa2a0f5b4e9a7a1b8ba0d7c4d98f0c2a1c5b3e7d9f1a3c5e7b9d1f3a5c7e9f1"

func TestAddressString(t *testing.T) {
	tests := []struct {
		addr     Address
		expected string
	}{
		{AddressZero, "0x0"},
		{AddressOne, "0x1"},
		{specialAddress(0xf), "0xf"},
		{specialAddress(0x10), "0x" + strings.Repeat("0", 62) + "10"},
		{MustParseAddress(longAddress), longAddress},
	}
	for _, tt := range tests {
		require.Equal(t, tt.expected, tt.addr.String())
	}
}

func TestAddressIsSpecial(t *testing.T) {
	require := require.New(t)

	require.True(AddressZero.IsSpecial())
	require.True(specialAddress(0xf).IsSpecial())
	require.False(specialAddress(0x10).IsSpecial())

	a := AddressOne
	a[0] = 1
	require.False(a.IsSpecial())
}

func TestParseAddress(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  Address
		expectErr bool
	}{
		{name: "special short", input: "0x1", expected: AddressOne},
		{name: "special long", input: "0x" + strings.Repeat("0", 63) + "1", expected: AddressOne},
		{name: "long", input: longAddress, expected: MustParseAddress(longAddress)},
		{name: "missing prefix", input: strings.TrimPrefix(longAddress, "0x"), expectErr: true},
		{name: "short non-special", input: "0x10", expectErr: true},
		{name: "too long", input: longAddress + "00", expectErr: true},
		{name: "not hex", input: "0x" + strings.Repeat("z", 64), expectErr: true},
		{name: "empty", input: "0x", expectErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)

			addr, err := ParseAddress(tt.input)
			if tt.expectErr {
				require.ErrorIs(err, ErrInvalidAddress)
				return
			}
			require.NoError(err)
			require.Equal(tt.expected, addr)
		})
	}
}

func TestParseAddressRelaxed(t *testing.T) {
	require := require.New(t)

	addr, err := ParseAddressRelaxed("0x10")
	require.NoError(err)
	require.Equal(specialAddress(0x10), addr)

	addr, err = ParseAddressRelaxed("abc")
	require.NoError(err)
	require.Equal(byte(0x0a), addr[30])
	require.Equal(byte(0xbc), addr[31])

	_, err = ParseAddressRelaxed("")
	require.ErrorIs(err, ErrInvalidAddress)
}

func TestAddressJSON(t *testing.T) {
	require := require.New(t)

	addr := MustParseAddress(longAddress)
	b, err := json.Marshal(addr)
	require.NoError(err)
	require.Equal(`"`+longAddress+`"`, string(b))

	var parsed Address
	require.NoError(json.Unmarshal(b, &parsed))
	require.Equal(addr, parsed)
}

func TestAddressSerialize(t *testing.T) {
	require := require.New(t)

	b, err := codec.Marshal(AddressOne)
	require.NoError(err)
	require.Len(b, AddressLen)
	require.Equal(byte(1), b[31])

	decoded, err := codec.Unmarshal(b, DeserializeAddress)
	require.NoError(err)
	require.Equal(AddressOne, decoded)

	_, err = ToAddress(b[:31])
	require.ErrorIs(err, ErrInvalidAddressLength)
}
