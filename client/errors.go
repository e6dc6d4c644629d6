// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnexpectedStatus  = errors.New("unexpected status")
	ErrTransactionFailed = errors.New("transaction failed")
	ErrInvalidResponse   = errors.New("invalid response")
)

// APIError is an error body returned by the node.
type APIError struct {
	StatusCode  int    `json:"-"`
	Message     string `json:"message"`
	ErrorCode   string `json:"error_code"`
	VMErrorCode uint64 `json:"vm_error_code"`
}

func (e *APIError) Error() string {
	if e.ErrorCode == "" {
		return fmt.Sprintf("%s %d: %s", ErrUnexpectedStatus, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %d: %s: %s", ErrUnexpectedStatus, e.StatusCode, e.ErrorCode, e.Message)
}

func (*APIError) Unwrap() error { return ErrUnexpectedStatus }
