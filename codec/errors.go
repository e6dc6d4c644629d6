// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import "errors"

var (
	ErrInsufficientLength = errors.New("insufficient length")
	ErrTrailingBytes      = errors.New("trailing bytes")
	ErrInvalidSize        = errors.New("invalid size")
	ErrUleb128Overflow    = errors.New("uleb128 overflows u32")
	ErrUleb128NotMinimal  = errors.New("uleb128 is not minimally encoded")
	ErrLengthTooLarge     = errors.New("length exceeds maximum")
	ErrNegativeLength     = errors.New("negative length")
	ErrInvalidBool        = errors.New("invalid bool byte")
	ErrInvalidOptionTag   = errors.New("invalid option tag")
	ErrInvalidUTF8        = errors.New("invalid utf-8 string")
	ErrMaxDepthExceeded   = errors.New("container depth exceeded")
	ErrValueOverflow      = errors.New("value overflows integer width")
	ErrNilValue           = errors.New("nil value")
)
