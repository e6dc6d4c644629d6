// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package prompt reads entry function arguments from a terminal.
package prompt

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/ava-labs/movesdk/builder"
	"github.com/ava-labs/movesdk/typetag"
	"github.com/ava-labs/movesdk/types"
)

var (
	ErrInputEmpty    = errors.New("input is empty")
	ErrInvalidChoice = errors.New("invalid choice")
)

// ParseInput turns command line text into a value [builder.ConvertArgument]
// accepts. JSON arrays and null are decoded, numbers inside them kept exact.
// Anything else stays a string.
func ParseInput(s string) (any, error) {
	s = strings.TrimSpace(s)
	if s != "null" && !strings.HasPrefix(s, "[") {
		return s, nil
	}
	d := json.NewDecoder(strings.NewReader(s))
	d.UseNumber()
	var v any
	if err := d.Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to decode %q: %w", s, err)
	}
	return v, nil
}

// ParseArgument parses s and checks it converts to param.
func ParseArgument(s string, position int, param typetag.TypeTag, typeArgs []typetag.TypeTag) (types.EntryFunctionArgument, error) {
	if len(strings.TrimSpace(s)) == 0 {
		if _, ok := param.(*typetag.StructTag); !ok {
			return nil, ErrInputEmpty
		}
	}
	v, err := ParseInput(s)
	if err != nil {
		return nil, err
	}
	return builder.ConvertArgument(position, param, v, typeArgs)
}

// Argument asks for the value of parameter position until it converts.
func Argument(position int, param typetag.TypeTag, typeArgs []typetag.TypeTag) (any, error) {
	promptText := promptui.Prompt{
		Label: fmt.Sprintf("arg%d (%s)", position, param),
		Validate: func(input string) error {
			_, err := ParseArgument(input, position, param, typeArgs)
			return err
		},
	}
	text, err := promptText.Run()
	if err != nil {
		return nil, err
	}
	return ParseInput(text)
}

// Choice asks for one of items and returns its index.
func Choice(label string, items []string) (int, error) {
	promptText := promptui.Select{
		Label: label,
		Items: items,
	}
	index, _, err := promptText.Run()
	if err != nil {
		return -1, err
	}
	if index < 0 || index >= len(items) {
		return -1, ErrInvalidChoice
	}
	return index, nil
}

func Continue() (bool, error) {
	promptText := promptui.Prompt{
		Label:     "continue",
		IsConfirm: true,
	}
	_, err := promptText.Run()
	if errors.Is(err, promptui.ErrAbort) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
