// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package buildertest

import (
	"errors"

	"github.com/ava-labs/movesdk/abi"
)

var ErrModuleNotFound = errors.New("module not found")

// AptosAccountModule exposes 0x1::aptos_account::transfer and
// transfer_coins<T0>.
func AptosAccountModule() *abi.MoveModule {
	return &abi.MoveModule{
		Address: "0x1",
		Name:    "aptos_account",
		ExposedFunctions: []abi.MoveFunction{
			{
				Name:       "transfer",
				Visibility: "public",
				IsEntry:    true,
				Params:     []string{"&signer", "address", "u64"},
			},
			{
				Name:              "transfer_coins",
				Visibility:        "public",
				IsEntry:           true,
				GenericTypeParams: []abi.MoveFunctionGenericTypeParam{{}},
				Params:            []string{"&signer", "address", "u64"},
			},
			{
				Name:       "batch_transfer",
				Visibility: "public",
				IsEntry:    true,
				Params:     []string{"&signer", "vector<address>", "vector<u64>"},
			},
		},
	}
}

// CoinModule exposes the view function 0x1::coin::balance<T0>.
func CoinModule() *abi.MoveModule {
	return &abi.MoveModule{
		Address: "0x1",
		Name:    "coin",
		ExposedFunctions: []abi.MoveFunction{
			{
				Name:              "balance",
				Visibility:        "public",
				IsView:            true,
				GenericTypeParams: []abi.MoveFunctionGenericTypeParam{{}},
				Params:            []string{"address"},
				Return:            []string{"u64"},
			},
		},
	}
}
