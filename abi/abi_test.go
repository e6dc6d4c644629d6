// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package abi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/movesdk/typetag"
	"github.com/ava-labs/movesdk/types"
)

const coinModule = `{
	"address": "0x1",
	"name": "coin",
	"friends": ["0x1::aptos_coin"],
	"exposed_functions": [
		{
			"name": "transfer",
			"visibility": "public",
			"is_entry": true,
			"is_view": false,
			"generic_type_params": [{"constraints": []}],
			"params": ["&signer", "address", "u64"],
			"return": []
		},
		{
			"name": "balance",
			"visibility": "public",
			"is_entry": false,
			"is_view": true,
			"generic_type_params": [{"constraints": ["store"]}],
			"params": ["address"],
			"return": ["u64"]
		},
		{
			"name": "bad",
			"visibility": "public",
			"is_entry": true,
			"is_view": false,
			"generic_type_params": [{"constraints": ["fly"]}],
			"params": [],
			"return": []
		}
	],
	"structs": [
		{
			"name": "Coin",
			"is_native": false,
			"abilities": ["store"],
			"generic_type_params": [{"constraints": []}],
			"fields": [{"name": "value", "type": "u64"}]
		}
	]
}`

func testModule(t *testing.T) *MoveModule {
	var m MoveModule
	require.NoError(t, json.Unmarshal([]byte(coinModule), &m))
	return &m
}

func TestEntryFunctionABI(t *testing.T) {
	require := require.New(t)

	m := testModule(t)
	require.Len(m.Structs, 1)
	require.Equal("value", m.Structs[0].Fields[0].Name)

	fn, err := m.Function("transfer")
	require.NoError(err)

	entry, err := NewEntryFunctionABI(fn)
	require.NoError(err)
	require.Equal(1, entry.Signers)
	require.Len(entry.TypeParameters, 1)
	require.Equal([]typetag.TypeTag{typetag.Address{}, typetag.U64{}}, entry.Parameters)

	_, err = NewViewFunctionABI(fn)
	require.ErrorIs(err, ErrNotViewFunction)
}

func TestViewFunctionABI(t *testing.T) {
	require := require.New(t)

	fn, err := testModule(t).Function("balance")
	require.NoError(err)

	view, err := NewViewFunctionABI(fn)
	require.NoError(err)
	require.Equal([]typetag.TypeTag{typetag.Address{}}, view.Parameters)
	require.Equal([]typetag.TypeTag{typetag.U64{}}, view.ReturnTypes)

	_, err = NewEntryFunctionABI(fn)
	require.ErrorIs(err, ErrNotEntryFunction)
}

func TestFunctionErrors(t *testing.T) {
	require := require.New(t)

	m := testModule(t)
	_, err := m.Function("mint")
	require.ErrorIs(err, ErrFunctionNotFound)

	fn, err := m.Function("bad")
	require.NoError(err)
	_, err = NewEntryFunctionABI(fn)
	require.ErrorIs(err, ErrUnknownAbility)

	_, err = NewEntryFunctionABI(&MoveFunction{Name: "f", IsEntry: true, Params: []string{"vector<"}})
	require.ErrorIs(err, ErrInvalidParameter)
}

func TestCountSigners(t *testing.T) {
	tests := []struct {
		params   []string
		expected int
	}{
		{nil, 0},
		{[]string{"u8"}, 0},
		{[]string{"signer", "&signer", "u8"}, 2},
		{[]string{"&signer", "u8", "signer"}, 1},
		{[]string{"&signer"}, 1},
	}
	for _, tt := range tests {
		params, err := parseTypes(tt.params)
		require.NoError(t, err)
		require.Equal(t, tt.expected, countSigners(params), tt.params)
	}
}

func TestGenericParameters(t *testing.T) {
	require := require.New(t)

	entry, err := NewEntryFunctionABI(&MoveFunction{
		Name:              "register",
		IsEntry:           true,
		GenericTypeParams: []MoveFunctionGenericTypeParam{{}, {Constraints: []string{"key"}}},
		Params:            []string{"&signer", "vector<T0>", "0x1::option::Option<T1>"},
	})
	require.NoError(err)
	require.Equal([]typetag.TypeTag{
		typetag.NewVector(typetag.Generic{Index: 0}),
		typetag.NewOptionTag(typetag.Generic{Index: 1}),
	}, entry.Parameters)
	require.Equal(types.AddressOne, entry.Parameters[1].(*typetag.StructTag).Address)
}
