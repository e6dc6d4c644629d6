// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import "errors"

var (
	ErrInvalidAddress        = errors.New("invalid address")
	ErrInvalidAddressLength  = errors.New("invalid address length")
	ErrInvalidOptionLength   = errors.New("option must hold zero or one value")
	ErrInvalidIdentifier     = errors.New("invalid identifier")
	ErrOutOfRange            = errors.New("value out of range")
	ErrUnknownScriptArgument = errors.New("unknown script argument variant")
)
