// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ava-labs/movesdk/types"
)

var accountCmd = &cobra.Command{
	Use:   "account [address]",
	Short: "Print the sequence number of an account",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		address, err := accountAddress(cmd, args)
		if err != nil {
			return err
		}
		cli, _, err := newClient(cmd)
		if err != nil {
			return err
		}
		seq, err := cli.AccountSequenceNumber(ctx, address)
		if err != nil {
			return fmt.Errorf("failed to get account: %w", err)
		}
		return printValue(cmd, accountCmdResponse{
			Address:        address.StringLong(),
			SequenceNumber: seq,
		})
	},
}

// accountAddress returns the address given as the first argument, or the
// address of the configured key.
func accountAddress(cmd *cobra.Command, args []string) (types.Address, error) {
	if len(args) > 0 {
		return types.ParseAddressRelaxed(args[0])
	}
	signer, err := loadSigner(cmd)
	if err != nil {
		return types.Address{}, err
	}
	return signer.Address(), nil
}

type accountCmdResponse struct {
	Address        string `json:"address"`
	SequenceNumber uint64 `json:"sequenceNumber"`
}

func (r accountCmdResponse) String() string {
	return fmt.Sprintf("%s: sequence number %d", r.Address, r.SequenceNumber)
}

func init() {
	rootCmd.AddCommand(accountCmd)
}
