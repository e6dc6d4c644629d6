// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package builder

import (
	"context"

	"github.com/ava-labs/movesdk/abi"
	"github.com/ava-labs/movesdk/types"
)

// Ledger is the node a builder reads defaults and ABIs from and submits to.
type Ledger interface {
	// Endpoint identifies the node. It is part of the ABI cache key so
	// builders sharing a cache never mix modules from different networks.
	Endpoint() string
	LedgerInfo(ctx context.Context) (*LedgerInfo, error)
	AccountSequenceNumber(ctx context.Context, address types.Address) (uint64, error)
	EstimateGasPrice(ctx context.Context) (uint64, error)
	AccountModule(ctx context.Context, address types.Address, module string) (*abi.MoveModule, error)
	SubmitTransaction(ctx context.Context, signed []byte) (*PendingTransaction, error)
}

type LedgerInfo struct {
	ChainID       uint8  `json:"chain_id"`
	Epoch         string `json:"epoch"`
	LedgerVersion string `json:"ledger_version"`
	BlockHeight   string `json:"block_height"`
}

// PendingTransaction is the node's acknowledgement of a submission.
type PendingTransaction struct {
	Hash                    string `json:"hash"`
	Sender                  string `json:"sender"`
	SequenceNumber          string `json:"sequence_number"`
	MaxGasAmount            string `json:"max_gas_amount"`
	GasUnitPrice            string `json:"gas_unit_price"`
	ExpirationTimestampSecs string `json:"expiration_timestamp_secs"`
}
