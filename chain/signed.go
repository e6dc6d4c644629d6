// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"golang.org/x/crypto/sha3"

	"github.com/ava-labs/movesdk/codec"
	"github.com/ava-labs/movesdk/consts"
)

// SubmitContentType is the media type of a BCS encoded [SignedTransaction].
const SubmitContentType = "application/x.aptos.signed_transaction+bcs"

// SignedTransaction is a raw transaction with its authenticator, ready to be
// submitted.
type SignedTransaction struct {
	RawTransaction *RawTransaction
	Authenticator  *TransactionAuthenticator

	bytes []byte
	hash  [consts.HashLen]byte
}

// NewSignedTransaction encodes the transaction once and caches its bytes
// and hash.
func NewSignedTransaction(raw *RawTransaction, a *TransactionAuthenticator) (*SignedTransaction, error) {
	tx := &SignedTransaction{RawTransaction: raw, Authenticator: a}
	b, err := codec.Marshal(tx)
	if err != nil {
		return nil, err
	}
	tx.init(b)
	return tx, nil
}

// ParseSignedTransaction decodes b, which must be a complete canonical
// encoding.
func ParseSignedTransaction(b []byte) (*SignedTransaction, error) {
	tx, err := codec.Unmarshal(b, DeserializeSignedTransaction)
	if err != nil {
		return nil, err
	}
	tx.init(b)
	return tx, nil
}

func (t *SignedTransaction) init(b []byte) {
	t.bytes = b
	t.hash = TransactionHash(b)
}

// Bytes returns the canonical encoding. It is nil for a transaction that
// was built as a literal rather than through [NewSignedTransaction] or
// [ParseSignedTransaction].
func (t *SignedTransaction) Bytes() []byte { return t.bytes }

// Hash is the identifier the chain assigns the transaction.
func (t *SignedTransaction) Hash() [consts.HashLen]byte { return t.hash }

// Verify checks every signature against the raw transaction.
func (t *SignedTransaction) Verify() error {
	return t.Authenticator.Verify(t.RawTransaction)
}

func (t *SignedTransaction) Serialize(e codec.Encoder) {
	t.RawTransaction.Serialize(e)
	t.Authenticator.Serialize(e)
}

func DeserializeSignedTransaction(d codec.Decoder) *SignedTransaction {
	t := &SignedTransaction{
		RawTransaction: DeserializeRawTransaction(d),
		Authenticator:  DeserializeTransactionAuthenticator(d),
	}
	if d.Err() != nil {
		return nil
	}
	return t
}

const userTransactionVariant = 0

// TransactionHash hashes an encoded signed transaction the way the chain
// does: SHA3-256 of the transaction salt, the user transaction variant and
// the bytes.
func TransactionHash(signed []byte) [consts.HashLen]byte {
	h := sha3.New256()
	h.Write(transactionSalt[:])
	h.Write([]byte{userTransactionVariant})
	h.Write(signed)
	var out [consts.HashLen]byte
	copy(out[:], h.Sum(nil))
	return out
}
