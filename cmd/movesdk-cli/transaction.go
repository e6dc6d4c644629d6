// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ava-labs/movesdk/builder"
	"github.com/ava-labs/movesdk/chain"
	"github.com/ava-labs/movesdk/cli/prompt"
	"github.com/ava-labs/movesdk/client"
	"github.com/ava-labs/movesdk/codec"
)

var errAborted = errors.New("aborted")

var txCmd = &cobra.Command{
	Use:   "tx [address::module::function]",
	Short: "Execute an entry function on the chain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		signer, err := loadSigner(cmd)
		if err != nil {
			return err
		}
		b, cli, err := newBuilder(cmd)
		if err != nil {
			return err
		}

		module, function, err := chain.ParseFunctionID(args[0])
		if err != nil {
			return err
		}
		entryABI, err := b.FetchEntryFunctionABI(ctx, module, function)
		if err != nil {
			return fmt.Errorf("failed to get abi: %w", err)
		}
		rawTypeArgs, typeArgs, err := typeArguments(cmd)
		if err != nil {
			return err
		}
		fnArgs, prompted, err := fillArguments(cmd, entryABI.Parameters, typeArgs)
		if err != nil {
			return err
		}

		maxGas, err := cmd.Flags().GetUint64("max-gas")
		if err != nil {
			return err
		}
		tx, err := b.BuildSimpleTransaction(ctx, signer.Address(), builder.InputData{
			Function:          args[0],
			TypeArguments:     rawTypeArgs,
			FunctionArguments: fnArgs,
			ABI:               entryABI,
		}, builder.Options{MaxGasAmount: maxGas})
		if err != nil {
			return fmt.Errorf("failed to build transaction: %w", err)
		}

		if prompted {
			ok, err := prompt.Continue()
			if err != nil {
				return err
			}
			if !ok {
				return errAborted
			}
		}

		signed, err := b.SignTransaction(signer, tx)
		if err != nil {
			return fmt.Errorf("failed to sign transaction: %w", err)
		}
		hash := signed.Hash()
		result, err := cli.SubmitAndWait(ctx, signed)
		if err != nil && !errors.Is(err, client.ErrTransactionFailed) {
			return fmt.Errorf("failed to submit transaction: %w", err)
		}

		return printValue(cmd, txResponse{
			Hash:     codec.ToHex(hash[:]),
			Success:  result.Success,
			Version:  result.Version,
			GasUsed:  result.GasUsed,
			VMStatus: result.VMStatus,
		})
	},
}

type txResponse struct {
	Hash     string `json:"hash"`
	Success  bool   `json:"success"`
	Version  string `json:"version"`
	GasUsed  string `json:"gasUsed"`
	VMStatus string `json:"vmStatus"`
}

func (r txResponse) String() string {
	if r.Success {
		return fmt.Sprintf("✅ Transaction successful (hash: %s)\nversion: %s\ngas used: %s", r.Hash, r.Version, r.GasUsed)
	}
	return fmt.Sprintf("❌ Transaction failed (hash: %s): %s", r.Hash, r.VMStatus)
}

func init() {
	rootCmd.AddCommand(txCmd)
	addArgumentFlags(txCmd)
	txCmd.Flags().Uint64("max-gas", 0, "Maximum gas units, 0 for the builder default")
}
