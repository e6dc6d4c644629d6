// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ava-labs/movesdk/chain"
)

var viewCmd = &cobra.Command{
	Use:   "view [address::module::function]",
	Short: "Call a view function",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		b, cli, err := newBuilder(cmd)
		if err != nil {
			return err
		}
		module, function, err := chain.ParseFunctionID(args[0])
		if err != nil {
			return err
		}
		viewABI, err := b.FetchViewFunctionABI(ctx, module, function)
		if err != nil {
			return fmt.Errorf("failed to get abi: %w", err)
		}
		rawTypeArgs, typeArgs, err := typeArguments(cmd)
		if err != nil {
			return err
		}
		fnArgs, _, err := fillArguments(cmd, viewABI.Parameters, typeArgs)
		if err != nil {
			return err
		}

		payload, err := b.BuildViewPayload(ctx, args[0], rawTypeArgs, fnArgs)
		if err != nil {
			return fmt.Errorf("failed to build view payload: %w", err)
		}
		values, err := cli.View(ctx, payload)
		if err != nil {
			return fmt.Errorf("failed to call view function: %w", err)
		}

		resp := viewCmdResponse{Values: values}
		for _, tag := range viewABI.ReturnTypes {
			resp.Types = append(resp.Types, tag.String())
		}
		return printValue(cmd, resp)
	},
}

type viewCmdResponse struct {
	Types  []string          `json:"types"`
	Values []json.RawMessage `json:"values"`
}

func (r viewCmdResponse) String() string {
	var sb strings.Builder
	for i, v := range r.Values {
		typ := "?"
		if i < len(r.Types) {
			typ = r.Types[i]
		}
		sb.WriteString(fmt.Sprintf("%s: %s\n", typ, v))
	}
	return strings.TrimSpace(sb.String())
}

func init() {
	rootCmd.AddCommand(viewCmd)
	addArgumentFlags(viewCmd)
}
