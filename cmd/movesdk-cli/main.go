// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "movesdk-cli",
	Short: "CLI for building and submitting Move transactions",
	Long:  `A CLI application for reading from and submitting transactions to Move chains over the node REST API.`,
	PersistentPostRunE: func(*cobra.Command, []string) error {
		var errs []error
		for _, closeFn := range closers {
			errs = append(errs, closeFn())
		}
		return errors.Join(errs...)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(0)
}

func init() {
	rootCmd.PersistentFlags().StringP("output", "o", "text", "Output format (text or json)")
	rootCmd.PersistentFlags().String("endpoint", "", "Override the default endpoint")
	rootCmd.PersistentFlags().String("key", "", "Private key as hex string")
	rootCmd.PersistentFlags().String("key-type", "", "Key type (ed25519 or secp256k1)")
	rootCmd.PersistentFlags().Bool("single-key", false, "Sign ed25519 keys with the single-key scheme")
	rootCmd.PersistentFlags().Bool("verbose", false, "Log requests to stderr")
	rootCmd.PersistentFlags().String("zipkin", "", "Export builder spans to this zipkin endpoint")
}

func main() {
	Execute()
}
