// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package abi describes published Move modules as the node reports them and
// turns function descriptions into typed parameter lists.
package abi

import (
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/utils/set"

	"github.com/ava-labs/movesdk/typetag"
)

var (
	ErrFunctionNotFound = errors.New("function not found in module")
	ErrNotEntryFunction = errors.New("function is not an entry function")
	ErrNotViewFunction  = errors.New("function is not a view function")
	ErrUnknownAbility   = errors.New("unknown ability")
	ErrInvalidParameter = errors.New("invalid parameter type")
)

// Abilities a generic type parameter may be constrained by.
var abilities = set.Of("copy", "drop", "store", "key")

// MoveModule is the ABI of a published module.
type MoveModule struct {
	Address          string         `json:"address"`
	Name             string         `json:"name"`
	Friends          []string       `json:"friends"`
	ExposedFunctions []MoveFunction `json:"exposed_functions"`
	Structs          []MoveStruct   `json:"structs"`
}

// Function returns the exposed function called name.
func (m *MoveModule) Function(name string) (*MoveFunction, error) {
	for i := range m.ExposedFunctions {
		if m.ExposedFunctions[i].Name == name {
			return &m.ExposedFunctions[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s::%s::%s", ErrFunctionNotFound, m.Address, m.Name, name)
}

type MoveFunctionGenericTypeParam struct {
	Constraints []string `json:"constraints"`
}

// MoveFunction describes one exposed function. Params and Return hold Move
// type strings such as "&signer" or "vector<T0>".
type MoveFunction struct {
	Name              string                         `json:"name"`
	Visibility        string                         `json:"visibility"`
	IsEntry           bool                           `json:"is_entry"`
	IsView            bool                           `json:"is_view"`
	GenericTypeParams []MoveFunctionGenericTypeParam `json:"generic_type_params"`
	Params            []string                       `json:"params"`
	Return            []string                       `json:"return"`
}

type MoveStructField struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type MoveStruct struct {
	Name              string                         `json:"name"`
	IsNative          bool                           `json:"is_native"`
	Abilities         []string                       `json:"abilities"`
	GenericTypeParams []MoveFunctionGenericTypeParam `json:"generic_type_params"`
	Fields            []MoveStructField              `json:"fields"`
}

// EntryFunctionABI is what the builder needs to type-check a call. Leading
// signer parameters are counted in Signers and left out of Parameters since
// callers never supply them.
type EntryFunctionABI struct {
	Signers        int
	TypeParameters []MoveFunctionGenericTypeParam
	Parameters     []typetag.TypeTag
}

// ViewFunctionABI describes a read-only function.
type ViewFunctionABI struct {
	TypeParameters []MoveFunctionGenericTypeParam
	Parameters     []typetag.TypeTag
	ReturnTypes    []typetag.TypeTag
}

// NewEntryFunctionABI parses the parameters of fn, which must be an entry
// function.
func NewEntryFunctionABI(fn *MoveFunction) (*EntryFunctionABI, error) {
	if !fn.IsEntry {
		return nil, fmt.Errorf("%w: %s", ErrNotEntryFunction, fn.Name)
	}
	if err := checkConstraints(fn.GenericTypeParams); err != nil {
		return nil, err
	}
	params, err := parseTypes(fn.Params)
	if err != nil {
		return nil, err
	}
	signers := countSigners(params)
	return &EntryFunctionABI{
		Signers:        signers,
		TypeParameters: fn.GenericTypeParams,
		Parameters:     params[signers:],
	}, nil
}

// NewViewFunctionABI parses the parameters and return types of fn, which
// must be a view function.
func NewViewFunctionABI(fn *MoveFunction) (*ViewFunctionABI, error) {
	if !fn.IsView {
		return nil, fmt.Errorf("%w: %s", ErrNotViewFunction, fn.Name)
	}
	if err := checkConstraints(fn.GenericTypeParams); err != nil {
		return nil, err
	}
	params, err := parseTypes(fn.Params)
	if err != nil {
		return nil, err
	}
	returns, err := parseTypes(fn.Return)
	if err != nil {
		return nil, err
	}
	return &ViewFunctionABI{
		TypeParameters: fn.GenericTypeParams,
		Parameters:     params,
		ReturnTypes:    returns,
	}, nil
}

func parseTypes(in []string) ([]typetag.TypeTag, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make([]typetag.TypeTag, len(in))
	for i, s := range in {
		tag, err := typetag.Parse(s, true)
		if err != nil {
			return nil, fmt.Errorf("%w %d %q: %w", ErrInvalidParameter, i, s, err)
		}
		out[i] = tag
	}
	return out, nil
}

// countSigners returns the number of leading signer or &signer parameters.
func countSigners(params []typetag.TypeTag) int {
	for i, p := range params {
		if !isSigner(p) {
			return i
		}
	}
	return len(params)
}

func isSigner(tag typetag.TypeTag) bool {
	switch t := tag.(type) {
	case typetag.Signer:
		return true
	case *typetag.Reference:
		return isSigner(t.Elem)
	default:
		return false
	}
}

func checkConstraints(params []MoveFunctionGenericTypeParam) error {
	for i, p := range params {
		for _, c := range p.Constraints {
			if !abilities.Contains(c) {
				return fmt.Errorf("%w %q on type parameter %d", ErrUnknownAbility, c, i)
			}
		}
	}
	return nil
}
