// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package buildertest provides an in-memory ledger for builder tests.
package buildertest

import (
	"context"

	"go.uber.org/atomic"

	"github.com/ava-labs/movesdk/abi"
	"github.com/ava-labs/movesdk/builder"
	"github.com/ava-labs/movesdk/types"
)

var _ builder.Ledger = (*Ledger)(nil)

// Ledger answers each call with its On* function and counts the calls. A
// call without a function panics.
type Ledger struct {
	EndpointValue string

	OnLedgerInfo            func(context.Context) (*builder.LedgerInfo, error)
	OnAccountSequenceNumber func(context.Context, types.Address) (uint64, error)
	OnEstimateGasPrice      func(context.Context) (uint64, error)
	OnAccountModule         func(context.Context, types.Address, string) (*abi.MoveModule, error)
	OnSubmitTransaction     func(context.Context, []byte) (*builder.PendingTransaction, error)

	LedgerInfoCalls        atomic.Int64
	SequenceNumberCalls    atomic.Int64
	GasPriceCalls          atomic.Int64
	AccountModuleCalls     atomic.Int64
	SubmitTransactionCalls atomic.Int64
}

// New returns a ledger serving a fixed chain id, gas price and sequence
// number and the given modules keyed by name.
func New(chainID uint8, gasPrice uint64, sequenceNumber uint64, modules ...*abi.MoveModule) *Ledger {
	byName := make(map[string]*abi.MoveModule, len(modules))
	for _, m := range modules {
		byName[m.Name] = m
	}
	return &Ledger{
		EndpointValue: "memory",
		OnLedgerInfo: func(context.Context) (*builder.LedgerInfo, error) {
			return &builder.LedgerInfo{ChainID: chainID}, nil
		},
		OnAccountSequenceNumber: func(context.Context, types.Address) (uint64, error) {
			return sequenceNumber, nil
		},
		OnEstimateGasPrice: func(context.Context) (uint64, error) {
			return gasPrice, nil
		},
		OnAccountModule: func(_ context.Context, _ types.Address, name string) (*abi.MoveModule, error) {
			m, ok := byName[name]
			if !ok {
				return nil, ErrModuleNotFound
			}
			return m, nil
		},
	}
}

func (l *Ledger) Endpoint() string { return l.EndpointValue }

func (l *Ledger) LedgerInfo(ctx context.Context) (*builder.LedgerInfo, error) {
	l.LedgerInfoCalls.Inc()
	if l.OnLedgerInfo == nil {
		panic("unimplemented")
	}
	return l.OnLedgerInfo(ctx)
}

func (l *Ledger) AccountSequenceNumber(ctx context.Context, address types.Address) (uint64, error) {
	l.SequenceNumberCalls.Inc()
	if l.OnAccountSequenceNumber == nil {
		panic("unimplemented")
	}
	return l.OnAccountSequenceNumber(ctx, address)
}

func (l *Ledger) EstimateGasPrice(ctx context.Context) (uint64, error) {
	l.GasPriceCalls.Inc()
	if l.OnEstimateGasPrice == nil {
		panic("unimplemented")
	}
	return l.OnEstimateGasPrice(ctx)
}

func (l *Ledger) AccountModule(ctx context.Context, address types.Address, module string) (*abi.MoveModule, error) {
	l.AccountModuleCalls.Inc()
	if l.OnAccountModule == nil {
		panic("unimplemented")
	}
	return l.OnAccountModule(ctx, address, module)
}

func (l *Ledger) SubmitTransaction(ctx context.Context, signed []byte) (*builder.PendingTransaction, error) {
	l.SubmitTransactionCalls.Inc()
	if l.OnSubmitTransaction == nil {
		panic("unimplemented")
	}
	return l.OnSubmitTransaction(ctx, signed)
}
