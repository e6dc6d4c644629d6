// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package builder

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/ava-labs/movesdk/auth"
	"github.com/ava-labs/movesdk/chain"
	"github.com/ava-labs/movesdk/codec"

	oteltrace "go.opentelemetry.io/otel/trace"
)

// Sign approves the signing message of tx. The sender and every secondary
// signer call it on the same transaction.
func Sign(signer auth.Signer, tx chain.Transaction) (*auth.AccountAuthenticator, error) {
	msg, err := chain.SigningMessage(tx)
	if err != nil {
		return nil, err
	}
	return signer.SignWithAuthenticator(msg)
}

// SignAsFeePayer records signer as the fee payer of tx and signs it. The
// other parties must sign after this call since the fee payer address is
// part of what they approve.
func SignAsFeePayer(signer auth.Signer, tx chain.Transaction) (*auth.AccountAuthenticator, error) {
	tx.SetFeePayer(signer.Address())
	return Sign(signer, tx)
}

// GenerateSignedTransaction assembles the authenticator matching the shape
// of tx. feePayer must be set exactly when tx has a fee payer and
// secondaries must line up with tx.SecondarySigners().
func (b *Builder) GenerateSignedTransaction(
	tx chain.Transaction,
	sender *auth.AccountAuthenticator,
	feePayer *auth.AccountAuthenticator,
	secondaries []*auth.AccountAuthenticator,
) (*chain.SignedTransaction, error) {
	var (
		authenticator *chain.TransactionAuthenticator
		err           error
		addresses     = tx.SecondarySigners()
	)
	if len(secondaries) != len(addresses) {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrMissingSecondaryAuthenticators, len(addresses), len(secondaries))
	}
	switch feePayerAddress := tx.FeePayer(); {
	case feePayerAddress != nil:
		if feePayer == nil {
			return nil, ErrMissingFeePayerAuthenticator
		}
		authenticator, err = chain.NewFeePayerAuthenticator(sender, addresses, secondaries, *feePayerAddress, feePayer)
	case feePayer != nil:
		return nil, ErrUnexpectedFeePayer
	case chain.IsMultiAgent(tx):
		authenticator, err = chain.NewMultiAgentAuthenticator(sender, addresses, secondaries)
	default:
		authenticator = chain.NewSenderAuthenticator(sender)
	}
	if err != nil {
		return nil, err
	}
	signed, err := chain.NewSignedTransaction(tx.Raw(), authenticator)
	if err != nil {
		return nil, err
	}
	b.metrics.transactionsSigned.Inc()
	hash := signed.Hash()
	b.log.Debug("assembled signed transaction",
		zap.Stringer("sender", tx.Raw().Sender),
		zap.Uint32("authenticator", uint32(authenticator.Variant)),
		zap.String("hash", codec.ToHex(hash[:])),
	)
	return signed, nil
}

// SignTransaction signs tx as its only signer.
func (b *Builder) SignTransaction(signer auth.Signer, tx chain.Transaction) (*chain.SignedTransaction, error) {
	sender, err := Sign(signer, tx)
	if err != nil {
		return nil, err
	}
	return b.GenerateSignedTransaction(tx, sender, nil, nil)
}

// Submit sends signed to the ledger.
func (b *Builder) Submit(ctx context.Context, signed *chain.SignedTransaction) (*PendingTransaction, error) {
	if b.ledger == nil {
		return nil, ErrNoLedger
	}
	hash := signed.Hash()
	ctx, span := b.tracer.Start(ctx, "Builder.Submit",
		oteltrace.WithAttributes(
			attribute.String("hash", codec.ToHex(hash[:])),
			attribute.Int("size", len(signed.Bytes())),
		),
	)
	defer span.End()

	pending, err := b.ledger.SubmitTransaction(ctx, signed.Bytes())
	if err != nil {
		b.log.Warn("failed to submit transaction",
			zap.String("hash", codec.ToHex(hash[:])),
			zap.Error(err),
		)
		return nil, err
	}
	b.metrics.submitted.Inc()
	return pending, nil
}
