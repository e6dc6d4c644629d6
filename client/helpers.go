// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ava-labs/movesdk/chain"
	"github.com/ava-labs/movesdk/codec"
)

// Wait calls check every interval until it reports done, fails or ctx ends.
func Wait(ctx context.Context, interval time.Duration, check func(ctx context.Context) (bool, error)) error {
	for ctx.Err() == nil {
		exit, err := check(ctx)
		if err != nil {
			return err
		}
		if exit {
			return nil
		}
		select {
		case <-time.After(interval):
		case <-ctx.Done():
		}
	}
	return ctx.Err()
}

// WaitForTransaction polls until the node has executed hash. A transaction
// the node does not know yet is treated as pending. An executed transaction
// that aborted returns [ErrTransactionFailed] along with it.
func (cli *Client) WaitForTransaction(ctx context.Context, hash string) (*Transaction, error) {
	var tx *Transaction
	err := Wait(ctx, cli.config.PollInterval, func(ctx context.Context) (bool, error) {
		resp, err := cli.TransactionByHash(ctx, hash)
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		if resp.Pending() {
			return false, nil
		}
		tx = resp
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	if !tx.Success {
		return tx, fmt.Errorf("%w: %s", ErrTransactionFailed, tx.VMStatus)
	}
	cli.log.Debug("transaction executed",
		zap.String("hash", tx.Hash),
		zap.String("version", tx.Version),
		zap.String("gasUsed", tx.GasUsed),
	)
	return tx, nil
}

// SubmitAndWait submits signed and waits for it to execute.
func (cli *Client) SubmitAndWait(ctx context.Context, signed *chain.SignedTransaction) (*Transaction, error) {
	if _, err := cli.SubmitTransaction(ctx, signed.Bytes()); err != nil {
		return nil, err
	}
	hash := signed.Hash()
	return cli.WaitForTransaction(ctx, codec.ToHex(hash[:]))
}
