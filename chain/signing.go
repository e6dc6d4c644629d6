// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"golang.org/x/crypto/sha3"

	"github.com/ava-labs/movesdk/codec"
)

const (
	RawTransactionPrefix         = "APTOS::RawTransaction"
	RawTransactionWithDataPrefix = "APTOS::RawTransactionWithData"
	TransactionPrefix            = "APTOS::Transaction"
)

var (
	rawTransactionSalt         = sha3.Sum256([]byte(RawTransactionPrefix))
	rawTransactionWithDataSalt = sha3.Sum256([]byte(RawTransactionWithDataPrefix))
	transactionSalt            = sha3.Sum256([]byte(TransactionPrefix))
)

// SigningShape returns the structure signers approve for tx. A transaction
// with a fee payer signs the fee payer shape, a multi-agent transaction
// signs the multi-agent shape and anything else signs the raw transaction.
func SigningShape(tx Transaction) codec.Serializable {
	feePayer := tx.FeePayer()
	switch {
	case feePayer != nil:
		return NewFeePayerWithData(tx.Raw(), tx.SecondarySigners(), *feePayer)
	case IsMultiAgent(tx):
		return NewMultiAgentWithData(tx.Raw(), tx.SecondarySigners())
	default:
		return tx.Raw()
	}
}

// IsMultiAgent reports whether tx signs the multi-agent shape, even when it
// lists no secondary signers.
func IsMultiAgent(tx Transaction) bool {
	_, ok := tx.(*MultiAgentTransaction)
	return ok
}

// SigningMessage returns SHA3-256(domain separator) followed by the BCS
// encoding of the signing shape of tx.
func SigningMessage(tx Transaction) ([]byte, error) {
	shape := SigningShape(tx)
	if _, ok := shape.(*RawTransaction); ok {
		return signingMessage(rawTransactionSalt, shape)
	}
	return signingMessage(rawTransactionWithDataSalt, shape)
}

// RawSigningMessage returns the message of a plain raw transaction.
func RawSigningMessage(raw *RawTransaction) ([]byte, error) {
	return signingMessage(rawTransactionSalt, raw)
}

// WithDataSigningMessage returns the message of a multi-agent or fee payer
// shape.
func WithDataSigningMessage(r *RawTransactionWithData) ([]byte, error) {
	return signingMessage(rawTransactionWithDataSalt, r)
}

func signingMessage(salt [32]byte, v codec.Serializable) ([]byte, error) {
	b, err := codec.Marshal(v)
	if err != nil {
		return nil, err
	}
	msg := make([]byte, 0, len(salt)+len(b))
	msg = append(msg, salt[:]...)
	return append(msg, b...), nil
}
