// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package client talks to the REST API of a full node.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/ava-labs/avalanchego/utils/logging"
	"go.uber.org/zap"

	"github.com/ava-labs/movesdk/abi"
	"github.com/ava-labs/movesdk/builder"
	"github.com/ava-labs/movesdk/chain"
	"github.com/ava-labs/movesdk/codec"
	"github.com/ava-labs/movesdk/types"
)

// ViewContentType is the media type of a BCS encoded view request.
const ViewContentType = "application/x.aptos.view_function+bcs"

var _ builder.Ledger = (*Client)(nil)

type Client struct {
	config Config
	http   *http.Client
	log    logging.Logger
}

// New creates a new client object.
func New(config Config, log logging.Logger) *Client {
	return &Client{
		config: config,
		http:   &http.Client{Timeout: config.Timeout},
		log:    log,
	}
}

func (cli *Client) Endpoint() string { return cli.config.URL }

func (cli *Client) LedgerInfo(ctx context.Context) (*builder.LedgerInfo, error) {
	resp := new(builder.LedgerInfo)
	err := cli.get(ctx, "", resp)
	return resp, err
}

type accountReply struct {
	SequenceNumber    string `json:"sequence_number"`
	AuthenticationKey string `json:"authentication_key"`
}

func (cli *Client) AccountSequenceNumber(ctx context.Context, address types.Address) (uint64, error) {
	resp := new(accountReply)
	if err := cli.get(ctx, "/accounts/"+address.StringLong(), resp); err != nil {
		return 0, err
	}
	seq, err := strconv.ParseUint(resp.SequenceNumber, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: sequence number %q", ErrInvalidResponse, resp.SequenceNumber)
	}
	return seq, nil
}

type gasEstimateReply struct {
	GasEstimate              uint64 `json:"gas_estimate"`
	DeprioritizedGasEstimate uint64 `json:"deprioritized_gas_estimate"`
	PrioritizedGasEstimate   uint64 `json:"prioritized_gas_estimate"`
}

func (cli *Client) EstimateGasPrice(ctx context.Context) (uint64, error) {
	resp := new(gasEstimateReply)
	err := cli.get(ctx, "/estimate_gas_price", resp)
	return resp.GasEstimate, err
}

type moduleReply struct {
	Bytecode string          `json:"bytecode"`
	ABI      *abi.MoveModule `json:"abi"`
}

func (cli *Client) AccountModule(ctx context.Context, address types.Address, module string) (*abi.MoveModule, error) {
	resp := new(moduleReply)
	if err := cli.get(ctx, "/accounts/"+address.StringLong()+"/module/"+module, resp); err != nil {
		return nil, err
	}
	if resp.ABI == nil {
		return nil, fmt.Errorf("%w: module %s::%s has no abi", ErrInvalidResponse, address, module)
	}
	return resp.ABI, nil
}

func (cli *Client) SubmitTransaction(ctx context.Context, signed []byte) (*builder.PendingTransaction, error) {
	resp := new(builder.PendingTransaction)
	if err := cli.post(ctx, "/transactions", chain.SubmitContentType, signed, resp); err != nil {
		return nil, err
	}
	cli.log.Debug("submitted transaction",
		zap.String("hash", resp.Hash),
		zap.String("sender", resp.Sender),
		zap.String("sequenceNumber", resp.SequenceNumber),
	)
	return resp, nil
}

// View calls a view function and returns its JSON encoded results.
func (cli *Client) View(ctx context.Context, payload *chain.EntryFunction) ([]json.RawMessage, error) {
	body, err := codec.Marshal(payload)
	if err != nil {
		return nil, err
	}
	var resp []json.RawMessage
	err = cli.post(ctx, "/view", ViewContentType, body, &resp)
	return resp, err
}

// Transaction is the subset of a committed or pending transaction the
// client inspects.
type Transaction struct {
	Type     string `json:"type"`
	Hash     string `json:"hash"`
	Version  string `json:"version"`
	Success  bool   `json:"success"`
	VMStatus string `json:"vm_status"`
	GasUsed  string `json:"gas_used"`
}

// Pending reports whether the node has yet to execute the transaction.
func (t *Transaction) Pending() bool { return t.Type == "pending_transaction" }

func (cli *Client) TransactionByHash(ctx context.Context, hash string) (*Transaction, error) {
	resp := new(Transaction)
	err := cli.get(ctx, "/transactions/by_hash/"+hash, resp)
	return resp, err
}

func (cli *Client) get(ctx context.Context, path string, resp any) error {
	return cli.do(ctx, http.MethodGet, path, "", nil, resp)
}

func (cli *Client) post(ctx context.Context, path string, contentType string, body []byte, resp any) error {
	return cli.do(ctx, http.MethodPost, path, contentType, body, resp)
}

func (cli *Client) do(ctx context.Context, method string, path string, contentType string, body []byte, resp any) error {
	url := strings.TrimSuffix(cli.config.URL, "/") + path
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	res, err := cli.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	cli.log.Debug("node request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", res.StatusCode),
		zap.Int("size", len(b)),
	)
	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		apiErr := &APIError{StatusCode: res.StatusCode}
		if err := json.Unmarshal(b, apiErr); err != nil {
			apiErr.Message = string(b)
		}
		return apiErr
	}
	if err := json.Unmarshal(b, resp); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	return nil
}
