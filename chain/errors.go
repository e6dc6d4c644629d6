// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import "errors"

var (
	// Payloads
	ErrReservedPayloadVariant     = errors.New("payload variant 1 is reserved")
	ErrUnknownPayloadVariant      = errors.New("unknown payload variant")
	ErrUnknownMultisigPayload     = errors.New("unknown multisig payload variant")
	ErrInvalidFunctionID          = errors.New("function id must be of the form address::module::function")
	ErrInvalidModuleID            = errors.New("module id must be of the form address::module")
	ErrUnsupportedEntryArgument   = errors.New("unsupported entry function argument")
	ErrUnknownRawTransactionShape = errors.New("unknown raw transaction with data variant")

	// Authenticators
	ErrUnknownTransactionAuthenticator = errors.New("unknown transaction authenticator")
	ErrSecondarySignerMismatch         = errors.New("secondary signer addresses and authenticators differ in length")
)
