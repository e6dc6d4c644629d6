// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ava-labs/movesdk/abi"
	"github.com/ava-labs/movesdk/chain"
)

var abiCmd = &cobra.Command{
	Use:   "abi [address::module]",
	Short: "Print the entry and view functions of a module",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		module, err := chain.ParseModuleID(args[0])
		if err != nil {
			return err
		}
		cli, _, err := newClient(cmd)
		if err != nil {
			return err
		}
		m, err := cli.AccountModule(ctx, module.Address, string(module.Name))
		if err != nil {
			return fmt.Errorf("failed to get abi: %w", err)
		}

		resp := abiCmdResponse{Module: module.String()}
		for _, fn := range m.ExposedFunctions {
			switch {
			case fn.IsEntry:
				resp.Entry = append(resp.Entry, signature(fn))
			case fn.IsView:
				resp.View = append(resp.View, signature(fn))
			}
		}
		return printValue(cmd, resp)
	},
}

func signature(fn abi.MoveFunction) string {
	var sb strings.Builder
	sb.WriteString(fn.Name)
	if len(fn.GenericTypeParams) > 0 {
		params := make([]string, len(fn.GenericTypeParams))
		for i, p := range fn.GenericTypeParams {
			params[i] = fmt.Sprintf("T%d", i)
			if len(p.Constraints) > 0 {
				params[i] += ": " + strings.Join(p.Constraints, " + ")
			}
		}
		sb.WriteString("<" + strings.Join(params, ", ") + ">")
	}
	sb.WriteString("(" + strings.Join(fn.Params, ", ") + ")")
	if len(fn.Return) > 0 {
		sb.WriteString(": " + strings.Join(fn.Return, ", "))
	}
	return sb.String()
}

type abiCmdResponse struct {
	Module string   `json:"module"`
	Entry  []string `json:"entry"`
	View   []string `json:"view"`
}

func (r abiCmdResponse) String() string {
	var sb strings.Builder
	sb.WriteString(r.Module + "\n")
	sb.WriteString("\nentry functions:\n")
	for _, s := range r.Entry {
		sb.WriteString("  " + s + "\n")
	}
	sb.WriteString("\nview functions:\n")
	for _, s := range r.View {
		sb.WriteString("  " + s + "\n")
	}
	return strings.TrimSpace(sb.String())
}

func init() {
	rootCmd.AddCommand(abiCmd)
}
