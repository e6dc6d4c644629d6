// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"fmt"

	"github.com/ava-labs/movesdk/codec"
	"github.com/ava-labs/movesdk/types"
)

// RawTransaction is the unsigned body every signer approves.
type RawTransaction struct {
	Sender                  types.Address
	SequenceNumber          uint64
	Payload                 TransactionPayload
	MaxGasAmount            uint64
	GasUnitPrice            uint64
	ExpirationTimestampSecs uint64
	ChainID                 uint8
}

func (r *RawTransaction) Serialize(e codec.Encoder) {
	r.Sender.Serialize(e)
	e.SerializeU64(r.SequenceNumber)
	SerializePayload(e, r.Payload)
	e.SerializeU64(r.MaxGasAmount)
	e.SerializeU64(r.GasUnitPrice)
	e.SerializeU64(r.ExpirationTimestampSecs)
	e.SerializeU8(r.ChainID)
}

func DeserializeRawTransaction(d codec.Decoder) *RawTransaction {
	r := &RawTransaction{
		Sender:                  types.DeserializeAddress(d),
		SequenceNumber:          d.DeserializeU64(),
		Payload:                 DeserializePayload(d),
		MaxGasAmount:            d.DeserializeU64(),
		GasUnitPrice:            d.DeserializeU64(),
		ExpirationTimestampSecs: d.DeserializeU64(),
		ChainID:                 d.DeserializeU8(),
	}
	if d.Err() != nil {
		return nil
	}
	return r
}

// Transaction is a raw transaction together with the accounts, other than
// the sender, that must sign it.
type Transaction interface {
	codec.Serializable

	Raw() *RawTransaction
	SecondarySigners() []types.Address
	// FeePayer is nil unless a fee payer was set.
	FeePayer() *types.Address
	SetFeePayer(types.Address)
}

var (
	_ Transaction = (*SimpleTransaction)(nil)
	_ Transaction = (*MultiAgentTransaction)(nil)
)

// SimpleTransaction has a single sender and an optional fee payer.
type SimpleTransaction struct {
	RawTransaction  *RawTransaction
	FeePayerAddress *types.Address
}

func NewSimpleTransaction(raw *RawTransaction) *SimpleTransaction {
	return &SimpleTransaction{RawTransaction: raw}
}

func (t *SimpleTransaction) Raw() *RawTransaction { return t.RawTransaction }

func (*SimpleTransaction) SecondarySigners() []types.Address { return nil }

func (t *SimpleTransaction) FeePayer() *types.Address { return t.FeePayerAddress }

func (t *SimpleTransaction) SetFeePayer(a types.Address) { t.FeePayerAddress = &a }

func (t *SimpleTransaction) Serialize(e codec.Encoder) {
	t.RawTransaction.Serialize(e)
	codec.SerializeOption(e, t.FeePayerAddress, serializeAddress)
}

func DeserializeSimpleTransaction(d codec.Decoder) *SimpleTransaction {
	t := &SimpleTransaction{
		RawTransaction:  DeserializeRawTransaction(d),
		FeePayerAddress: codec.DeserializeOption(d, types.DeserializeAddress),
	}
	if d.Err() != nil {
		return nil
	}
	return t
}

// MultiAgentTransaction carries the addresses of secondary signers that
// approve the transaction alongside the sender.
type MultiAgentTransaction struct {
	RawTransaction           *RawTransaction
	SecondarySignerAddresses []types.Address
	FeePayerAddress          *types.Address
}

func NewMultiAgentTransaction(raw *RawTransaction, secondaries []types.Address) *MultiAgentTransaction {
	return &MultiAgentTransaction{RawTransaction: raw, SecondarySignerAddresses: secondaries}
}

func (t *MultiAgentTransaction) Raw() *RawTransaction { return t.RawTransaction }

func (t *MultiAgentTransaction) SecondarySigners() []types.Address {
	return t.SecondarySignerAddresses
}

func (t *MultiAgentTransaction) FeePayer() *types.Address { return t.FeePayerAddress }

func (t *MultiAgentTransaction) SetFeePayer(a types.Address) { t.FeePayerAddress = &a }

func (t *MultiAgentTransaction) Serialize(e codec.Encoder) {
	t.RawTransaction.Serialize(e)
	codec.SerializeSequence(e, t.SecondarySignerAddresses)
	codec.SerializeOption(e, t.FeePayerAddress, serializeAddress)
}

func DeserializeMultiAgentTransaction(d codec.Decoder) *MultiAgentTransaction {
	t := &MultiAgentTransaction{
		RawTransaction:           DeserializeRawTransaction(d),
		SecondarySignerAddresses: codec.DeserializeSequence(d, types.DeserializeAddress),
		FeePayerAddress:          codec.DeserializeOption(d, types.DeserializeAddress),
	}
	if d.Err() != nil {
		return nil
	}
	return t
}

// RawTransactionWithDataVariant selects the shape signed by multi-agent and
// fee payer transactions.
type RawTransactionWithDataVariant uint32

const (
	WithDataMultiAgent RawTransactionWithDataVariant = 0
	WithDataFeePayer   RawTransactionWithDataVariant = 1
)

// RawTransactionWithData is the structure signed when a transaction has
// secondary signers or a fee payer. FeePayerAddress is only written for
// [WithDataFeePayer].
type RawTransactionWithData struct {
	Variant                  RawTransactionWithDataVariant
	RawTransaction           *RawTransaction
	SecondarySignerAddresses []types.Address
	FeePayerAddress          types.Address
}

func NewMultiAgentWithData(raw *RawTransaction, secondaries []types.Address) *RawTransactionWithData {
	return &RawTransactionWithData{
		Variant:                  WithDataMultiAgent,
		RawTransaction:           raw,
		SecondarySignerAddresses: secondaries,
	}
}

func NewFeePayerWithData(raw *RawTransaction, secondaries []types.Address, feePayer types.Address) *RawTransactionWithData {
	return &RawTransactionWithData{
		Variant:                  WithDataFeePayer,
		RawTransaction:           raw,
		SecondarySignerAddresses: secondaries,
		FeePayerAddress:          feePayer,
	}
}

func (r *RawTransactionWithData) Serialize(e codec.Encoder) {
	e.SerializeVariantIndex(uint32(r.Variant))
	r.RawTransaction.Serialize(e)
	codec.SerializeSequence(e, r.SecondarySignerAddresses)
	if r.Variant == WithDataFeePayer {
		r.FeePayerAddress.Serialize(e)
	}
}

func DeserializeRawTransactionWithData(d codec.Decoder) *RawTransactionWithData {
	variant := RawTransactionWithDataVariant(d.DeserializeVariantIndex())
	if d.Err() != nil {
		return nil
	}
	if variant != WithDataMultiAgent && variant != WithDataFeePayer {
		d.AddErr(fmt.Errorf("%w: %d", ErrUnknownRawTransactionShape, variant))
		return nil
	}
	r := &RawTransactionWithData{
		Variant:                  variant,
		RawTransaction:           DeserializeRawTransaction(d),
		SecondarySignerAddresses: codec.DeserializeSequence(d, types.DeserializeAddress),
	}
	if variant == WithDataFeePayer {
		r.FeePayerAddress = types.DeserializeAddress(d)
	}
	if d.Err() != nil {
		return nil
	}
	return r
}

func serializeAddress(e codec.Encoder, a types.Address) {
	a.Serialize(e)
}
