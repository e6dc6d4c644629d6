// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"github.com/spf13/cobra"
)

var addressCmd = &cobra.Command{
	Use:   "address",
	Short: "Print current key address",
	RunE: func(cmd *cobra.Command, _ []string) error {
		signer, err := loadSigner(cmd)
		if err != nil {
			return err
		}
		return printValue(cmd, keyAddressCmdResponse{
			Address: signer.Address().StringLong(),
			Scheme:  uint8(signer.SigningScheme()),
		})
	},
}

type keyAddressCmdResponse struct {
	Address string `json:"address"`
	Scheme  uint8  `json:"scheme"`
}

func (r keyAddressCmdResponse) String() string {
	return r.Address
}

func init() {
	rootCmd.AddCommand(addressCmd)
}
