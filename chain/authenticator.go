// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"fmt"

	"github.com/ava-labs/movesdk/auth"
	"github.com/ava-labs/movesdk/codec"
	"github.com/ava-labs/movesdk/types"
)

// TransactionAuthenticatorVariant is the discriminant of a
// [TransactionAuthenticator].
type TransactionAuthenticatorVariant uint32

const (
	TransactionAuthenticatorEd25519      TransactionAuthenticatorVariant = 0
	TransactionAuthenticatorMultiEd25519 TransactionAuthenticatorVariant = 1
	TransactionAuthenticatorMultiAgent   TransactionAuthenticatorVariant = 2
	TransactionAuthenticatorFeePayer     TransactionAuthenticatorVariant = 3
	TransactionAuthenticatorSingleSender TransactionAuthenticatorVariant = 4
)

// TransactionAuthenticator holds every account authenticator a signed
// transaction carries.
//
// The Ed25519 and MultiEd25519 variants inline the sender's key and
// signature. SingleSender wraps any sender authenticator. MultiAgent adds
// secondary signers and FeePayer adds a fee payer on top of that.
type TransactionAuthenticator struct {
	Variant TransactionAuthenticatorVariant

	Sender                   *auth.AccountAuthenticator
	SecondarySignerAddresses []types.Address
	SecondarySigners         []*auth.AccountAuthenticator
	FeePayerAddress          types.Address
	FeePayer                 *auth.AccountAuthenticator
}

// NewSenderAuthenticator authenticates a transaction that only the sender
// signs. Legacy single and multi ed25519 authenticators are written bare,
// everything else as SingleSender.
func NewSenderAuthenticator(sender *auth.AccountAuthenticator) *TransactionAuthenticator {
	variant := TransactionAuthenticatorSingleSender
	switch sender.Variant {
	case auth.AccountAuthenticatorEd25519:
		variant = TransactionAuthenticatorEd25519
	case auth.AccountAuthenticatorMultiEd25519:
		variant = TransactionAuthenticatorMultiEd25519
	}
	return &TransactionAuthenticator{Variant: variant, Sender: sender}
}

func NewSingleSenderAuthenticator(sender *auth.AccountAuthenticator) *TransactionAuthenticator {
	return &TransactionAuthenticator{Variant: TransactionAuthenticatorSingleSender, Sender: sender}
}

func NewMultiAgentAuthenticator(
	sender *auth.AccountAuthenticator,
	secondaryAddresses []types.Address,
	secondaries []*auth.AccountAuthenticator,
) (*TransactionAuthenticator, error) {
	if len(secondaryAddresses) != len(secondaries) {
		return nil, fmt.Errorf("%w: %d addresses, %d authenticators", ErrSecondarySignerMismatch, len(secondaryAddresses), len(secondaries))
	}
	return &TransactionAuthenticator{
		Variant:                  TransactionAuthenticatorMultiAgent,
		Sender:                   sender,
		SecondarySignerAddresses: secondaryAddresses,
		SecondarySigners:         secondaries,
	}, nil
}

func NewFeePayerAuthenticator(
	sender *auth.AccountAuthenticator,
	secondaryAddresses []types.Address,
	secondaries []*auth.AccountAuthenticator,
	feePayerAddress types.Address,
	feePayer *auth.AccountAuthenticator,
) (*TransactionAuthenticator, error) {
	if len(secondaryAddresses) != len(secondaries) {
		return nil, fmt.Errorf("%w: %d addresses, %d authenticators", ErrSecondarySignerMismatch, len(secondaryAddresses), len(secondaries))
	}
	return &TransactionAuthenticator{
		Variant:                  TransactionAuthenticatorFeePayer,
		Sender:                   sender,
		SecondarySignerAddresses: secondaryAddresses,
		SecondarySigners:         secondaries,
		FeePayerAddress:          feePayerAddress,
		FeePayer:                 feePayer,
	}, nil
}

// SigningMessage rebuilds the message every signer of raw approved under a.
func (a *TransactionAuthenticator) SigningMessage(raw *RawTransaction) ([]byte, error) {
	switch a.Variant {
	case TransactionAuthenticatorMultiAgent:
		return WithDataSigningMessage(NewMultiAgentWithData(raw, a.SecondarySignerAddresses))
	case TransactionAuthenticatorFeePayer:
		return WithDataSigningMessage(NewFeePayerWithData(raw, a.SecondarySignerAddresses, a.FeePayerAddress))
	default:
		return RawSigningMessage(raw)
	}
}

// Verify checks every signature a carries against raw. It does not check
// that the keys belong to the named accounts; only the chain knows that.
func (a *TransactionAuthenticator) Verify(raw *RawTransaction) error {
	msg, err := a.SigningMessage(raw)
	if err != nil {
		return err
	}
	if err := a.Sender.Verify(msg); err != nil {
		return fmt.Errorf("sender: %w", err)
	}
	if len(a.SecondarySignerAddresses) != len(a.SecondarySigners) {
		return ErrSecondarySignerMismatch
	}
	for i, s := range a.SecondarySigners {
		if err := s.Verify(msg); err != nil {
			return fmt.Errorf("secondary signer %s: %w", a.SecondarySignerAddresses[i], err)
		}
	}
	if a.Variant == TransactionAuthenticatorFeePayer {
		if err := a.FeePayer.Verify(msg); err != nil {
			return fmt.Errorf("fee payer: %w", err)
		}
	}
	return nil
}

func (a *TransactionAuthenticator) Serialize(e codec.Encoder) {
	e.SerializeVariantIndex(uint32(a.Variant))
	switch a.Variant {
	case TransactionAuthenticatorEd25519, TransactionAuthenticatorMultiEd25519:
		a.Sender.PublicKey.Serialize(e)
		a.Sender.Signature.Serialize(e)
	case TransactionAuthenticatorSingleSender:
		a.Sender.Serialize(e)
	case TransactionAuthenticatorMultiAgent:
		a.Sender.Serialize(e)
		codec.SerializeSequence(e, a.SecondarySignerAddresses)
		codec.SerializeSequence(e, a.SecondarySigners)
	case TransactionAuthenticatorFeePayer:
		a.Sender.Serialize(e)
		codec.SerializeSequence(e, a.SecondarySignerAddresses)
		codec.SerializeSequence(e, a.SecondarySigners)
		a.FeePayerAddress.Serialize(e)
		a.FeePayer.Serialize(e)
	default:
		e.AddErr(fmt.Errorf("%w: %d", ErrUnknownTransactionAuthenticator, a.Variant))
	}
}

func DeserializeTransactionAuthenticator(d codec.Decoder) *TransactionAuthenticator {
	variant := TransactionAuthenticatorVariant(d.DeserializeVariantIndex())
	if d.Err() != nil {
		return nil
	}
	a := &TransactionAuthenticator{Variant: variant}
	switch variant {
	case TransactionAuthenticatorEd25519:
		a.Sender = auth.NewEd25519Authenticator(auth.DeserializeEd25519PublicKey(d), auth.DeserializeEd25519Signature(d))
	case TransactionAuthenticatorMultiEd25519:
		a.Sender = auth.NewMultiEd25519Authenticator(auth.DeserializeMultiEd25519PublicKey(d), auth.DeserializeMultiEd25519Signature(d))
	case TransactionAuthenticatorSingleSender:
		a.Sender = auth.DeserializeAccountAuthenticator(d)
	case TransactionAuthenticatorMultiAgent:
		a.Sender = auth.DeserializeAccountAuthenticator(d)
		a.SecondarySignerAddresses = codec.DeserializeSequence(d, types.DeserializeAddress)
		a.SecondarySigners = codec.DeserializeSequence(d, auth.DeserializeAccountAuthenticator)
	case TransactionAuthenticatorFeePayer:
		a.Sender = auth.DeserializeAccountAuthenticator(d)
		a.SecondarySignerAddresses = codec.DeserializeSequence(d, types.DeserializeAddress)
		a.SecondarySigners = codec.DeserializeSequence(d, auth.DeserializeAccountAuthenticator)
		a.FeePayerAddress = types.DeserializeAddress(d)
		a.FeePayer = auth.DeserializeAccountAuthenticator(d)
	default:
		d.AddErr(fmt.Errorf("%w: %d", ErrUnknownTransactionAuthenticator, variant))
		return nil
	}
	if d.Err() != nil {
		return nil
	}
	if len(a.SecondarySignerAddresses) != len(a.SecondarySigners) {
		d.AddErr(ErrSecondarySignerMismatch)
		return nil
	}
	return a
}
