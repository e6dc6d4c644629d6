// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package builder

import "errors"

var (
	// ABI resolution
	ErrNoLedger                  = errors.New("builder has no ledger")
	ErrInvalidTypeArgument       = errors.New("invalid type argument")
	ErrTypeArgumentCountMismatch = errors.New("type argument count mismatch")

	// Argument conversion
	ErrTooManyArguments = errors.New("too many arguments")
	ErrTooFewArguments  = errors.New("too few arguments")
	ErrTypeMismatch     = errors.New("argument type mismatch")

	// Defaults
	ErrMissingSequenceNumber = errors.New("missing sequence number")
	ErrMissingGasUnitPrice   = errors.New("missing gas unit price")
	ErrMissingChainID        = errors.New("missing chain id")

	// Signing
	ErrMissingFeePayerAuthenticator   = errors.New("missing fee payer authenticator")
	ErrMissingSecondaryAuthenticators = errors.New("missing additional signer authenticators")
	ErrUnexpectedFeePayer             = errors.New("fee payer authenticator supplied for a transaction without a fee payer")
)
