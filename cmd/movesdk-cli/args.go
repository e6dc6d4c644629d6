// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ava-labs/movesdk/builder"
	"github.com/ava-labs/movesdk/cli/prompt"
	"github.com/ava-labs/movesdk/typetag"
)

func addArgumentFlags(cmd *cobra.Command) {
	cmd.Flags().StringArray("type-args", nil, "Type argument, repeated in order (e.g. 0x1::aptos_coin::AptosCoin)")
	cmd.Flags().StringArray("args", nil, "Function argument, repeated in order. Vectors and options take JSON")
}

func typeArguments(cmd *cobra.Command) ([]any, []typetag.TypeTag, error) {
	inputs, err := cmd.Flags().GetStringArray("type-args")
	if err != nil {
		return nil, nil, err
	}
	raw := make([]any, len(inputs))
	for i, s := range inputs {
		raw[i] = s
	}
	tags, err := builder.ParseTypeArguments(raw)
	if err != nil {
		return nil, nil, err
	}
	return raw, tags, nil
}

// fillArguments reads one value per parameter, from --args when given and
// interactively otherwise. It reports whether it prompted.
func fillArguments(cmd *cobra.Command, params []typetag.TypeTag, typeArgs []typetag.TypeTag) ([]any, bool, error) {
	inputs, err := cmd.Flags().GetStringArray("args")
	if err != nil {
		return nil, false, fmt.Errorf("failed to get arguments: %w", err)
	}

	isJSONOutput, err := isJSONOutputRequested(cmd)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get output format: %w", err)
	}

	isInteractive := len(inputs) == 0 && len(params) > 0 && !isJSONOutput
	args := make([]any, 0, len(params))
	if isInteractive {
		for i, param := range params {
			v, err := prompt.Argument(i, param, typeArgs)
			if err != nil {
				return nil, false, fmt.Errorf("failed to read arg%d: %w", i, err)
			}
			args = append(args, v)
		}
		return args, true, nil
	}

	if len(inputs) != len(params) {
		return nil, false, fmt.Errorf("function takes %d arguments, got %d", len(params), len(inputs))
	}
	for i, s := range inputs {
		v, err := prompt.ParseInput(s)
		if err != nil {
			return nil, false, fmt.Errorf("failed to parse arg%d: %w", i, err)
		}
		args = append(args, v)
	}
	return args, false, nil
}
