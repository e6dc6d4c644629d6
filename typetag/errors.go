// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package typetag

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownVariant = errors.New("unknown type tag variant")

	ErrInvalidTypeTag                    = errors.New("unknown type")
	ErrUnexpectedGenericType             = errors.New("generic type found where generics are not allowed")
	ErrUnexpectedTypeArgumentClose       = errors.New("unexpected '>'")
	ErrUnexpectedWhitespaceCharacter     = errors.New("unexpected whitespace character")
	ErrUnexpectedComma                   = errors.New("unexpected ','")
	ErrTypeArgumentCountMismatch         = errors.New("type argument count does not match")
	ErrMissingTypeArgumentClose          = errors.New("no matching '>' for '<'")
	ErrUnexpectedPrimitiveTypeArguments  = errors.New("primitive types do not take type arguments")
	ErrUnexpectedVectorTypeArgumentCount = errors.New("vector takes exactly one type argument")
	ErrUnexpectedStructFormat            = errors.New("struct must be of the form address::module::name")
	ErrInvalidModuleNameCharacter        = errors.New("module name must only contain alphanumerics or '_'")
	ErrInvalidStructNameCharacter        = errors.New("struct name must only contain alphanumerics or '_'")
)

// ParseError is returned by [Parse]. Err is one of the parse sentinels above.
type ParseError struct {
	Input    string
	Fragment string
	Err      error
}

func newParseError(input, fragment string, err error) *ParseError {
	return &ParseError{Input: input, Fragment: fragment, Err: err}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse type tag %q at %q: %s", e.Input, e.Fragment, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
