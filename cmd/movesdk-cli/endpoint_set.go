// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
)

var endpointSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the REST endpoint URL, including its version prefix",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cli, _, err := newClient(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		info, err := cli.LedgerInfo(ctx)
		if err != nil {
			return fmt.Errorf("failed to reach %s: %w", cli.Endpoint(), err)
		}

		if err := setConfigValue("endpoint", cli.Endpoint()); err != nil {
			return fmt.Errorf("failed to update config: %w", err)
		}

		return printValue(cmd, endpointSetCmdResponse{
			Endpoint: cli.Endpoint(),
			ChainID:  info.ChainID,
		})
	},
}

type endpointSetCmdResponse struct {
	Endpoint string `json:"endpoint"`
	ChainID  uint8  `json:"chainId"`
}

func (r endpointSetCmdResponse) String() string {
	return fmt.Sprintf("Endpoint set to: %s (chain %d)", r.Endpoint, r.ChainID)
}

func init() {
	endpointCmd.AddCommand(endpointSetCmd)
	endpointSetCmd.Flags().String("endpoint", "", "Endpoint URL to set")

	err := endpointSetCmd.MarkFlagRequired("endpoint")
	if err != nil {
		log.Fatalf("failed to mark endpoint flag as required: %s", err)
	}
}
