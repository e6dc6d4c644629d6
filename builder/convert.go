// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package builder

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/holiman/uint256"

	"github.com/ava-labs/movesdk/typetag"
	"github.com/ava-labs/movesdk/types"
)

// errNoMatch marks a value whose Go type cannot represent the parameter.
var errNoMatch = errors.New("no conversion")

// ArgumentError reports an argument that does not fit its parameter type.
// It unwraps to [ErrTypeMismatch] and, when there is one, the cause.
type ArgumentError struct {
	Position int
	Expected typetag.TypeTag
	Value    any
	Err      error
}

func (e *ArgumentError) Error() string {
	msg := fmt.Sprintf("%s: argument %d: expected %s, got %T(%v)", ErrTypeMismatch, e.Position, e.Expected, e.Value, e.Value)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ArgumentError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrTypeMismatch}
	}
	return []error{ErrTypeMismatch, e.Err}
}

// ConvertArguments converts args against the parameter types of a function.
// Generic parameters are resolved against typeArgs.
func ConvertArguments(params []typetag.TypeTag, args []any, typeArgs []typetag.TypeTag) ([]types.EntryFunctionArgument, error) {
	switch {
	case len(args) > len(params):
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrTooManyArguments, len(params), len(args))
	case len(args) < len(params):
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrTooFewArguments, len(params), len(args))
	}
	var out []types.EntryFunctionArgument
	for i, arg := range args {
		v, err := ConvertArgument(i, params[i], arg, typeArgs)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// ConvertArgument converts a loosely typed value into the Move value param
// expects. Accepted inputs per parameter type:
//
//   - bool: bool, "true", "false"
//   - u8 to u256: Go integers, *big.Int, *uint256.Int, decimal or 0x-prefixed
//     strings, json.Number, whole float64 values and the matching types
//     values, bounds checked
//   - address and Object<T>: types.Address or an address string
//   - vector<u8>: string (as UTF-8), []byte, types.Bytes or []any
//   - vector<T>: []any, []string or any types.Vector, converted element by
//     element
//   - 0x1::string::String: string or types.MoveString
//   - 0x1::option::Option<T>: nil or an empty types.Option for none, anything
//     T accepts for some
func ConvertArgument(position int, param typetag.TypeTag, arg any, typeArgs []typetag.TypeTag) (types.EntryFunctionArgument, error) {
	v, err := convert(param, arg, typeArgs)
	if err != nil {
		if errors.Is(err, ErrTypeArgumentCountMismatch) {
			return nil, err
		}
		argErr := &ArgumentError{Position: position, Expected: param, Value: arg}
		if !errors.Is(err, errNoMatch) {
			argErr.Err = err
		}
		return nil, argErr
	}
	return v, nil
}

func resolve(tag typetag.TypeTag, typeArgs []typetag.TypeTag) (typetag.TypeTag, error) {
	g, ok := tag.(typetag.Generic)
	if !ok {
		return tag, nil
	}
	if int(g.Index) >= len(typeArgs) {
		return nil, fmt.Errorf("%w: T%d with %d type arguments", ErrTypeArgumentCountMismatch, g.Index, len(typeArgs))
	}
	return typeArgs[g.Index], nil
}

func convert(tag typetag.TypeTag, arg any, typeArgs []typetag.TypeTag) (types.EntryFunctionArgument, error) {
	tag, err := resolve(tag, typeArgs)
	if err != nil {
		return nil, err
	}
	switch tag := tag.(type) {
	case typetag.Bool:
		return convertBool(arg)
	case typetag.U8:
		return convertFixed[types.U8](arg, 8)
	case typetag.U16:
		return convertFixed[types.U16](arg, 16)
	case typetag.U32:
		return convertFixed[types.U32](arg, 32)
	case typetag.U64:
		return convertFixed[types.U64](arg, 64)
	case typetag.U128:
		u, err := convertUint(arg, 128)
		if err != nil {
			return nil, err
		}
		return types.NewU128(u)
	case typetag.U256:
		u, err := convertUint(arg, 256)
		if err != nil {
			return nil, err
		}
		return types.NewU256(u), nil
	case typetag.Address:
		return convertAddress(arg)
	case *typetag.Vector:
		return convertVector(tag, arg, typeArgs)
	case *typetag.StructTag:
		return convertStruct(tag, arg, typeArgs)
	default:
		// signer, references and generics never appear as caller arguments
		return nil, errNoMatch
	}
}

func convertBool(arg any) (types.EntryFunctionArgument, error) {
	switch v := arg.(type) {
	case bool:
		return types.Bool(v), nil
	case types.Bool:
		return v, nil
	case string:
		switch v {
		case "true":
			return types.Bool(true), nil
		case "false":
			return types.Bool(false), nil
		}
	}
	return nil, errNoMatch
}

type fixedUint interface {
	types.U8 | types.U16 | types.U32 | types.U64
	types.EntryFunctionArgument
}

func convertFixed[T fixedUint](arg any, bits int) (types.EntryFunctionArgument, error) {
	if v, ok := arg.(T); ok {
		return v, nil
	}
	u, err := convertUint(arg, bits)
	if err != nil {
		return nil, err
	}
	return T(u.Uint64()), nil
}

// convertUint returns arg as an unsigned integer of at most bits bits.
func convertUint(arg any, bits int) (*uint256.Int, error) {
	u, err := toUint256(arg)
	if err != nil {
		return nil, err
	}
	if u.BitLen() > bits {
		return nil, fmt.Errorf("%w: %s does not fit in u%d", types.ErrOutOfRange, u.Dec(), bits)
	}
	return u, nil
}

func toUint256(arg any) (*uint256.Int, error) {
	switch v := arg.(type) {
	case uint8:
		return uint256.NewInt(uint64(v)), nil
	case uint16:
		return uint256.NewInt(uint64(v)), nil
	case uint32:
		return uint256.NewInt(uint64(v)), nil
	case uint64:
		return uint256.NewInt(v), nil
	case uint:
		return uint256.NewInt(uint64(v)), nil
	case int8:
		return fromInt64(int64(v))
	case int16:
		return fromInt64(int64(v))
	case int32:
		return fromInt64(int64(v))
	case int64:
		return fromInt64(v)
	case int:
		return fromInt64(int64(v))
	case *big.Int:
		return fromBig(v)
	case *uint256.Int:
		if v == nil {
			return nil, errNoMatch
		}
		return new(uint256.Int).Set(v), nil
	case string:
		return fromString(v)
	case json.Number:
		return fromString(string(v))
	case float64:
		return fromFloat(v)
	case types.U8:
		return uint256.NewInt(uint64(v)), nil
	case types.U16:
		return uint256.NewInt(uint64(v)), nil
	case types.U32:
		return uint256.NewInt(uint64(v)), nil
	case types.U64:
		return uint256.NewInt(uint64(v)), nil
	case types.U128:
		return v.Int(), nil
	case types.U256:
		return v.Int(), nil
	default:
		return nil, errNoMatch
	}
}

func fromInt64(v int64) (*uint256.Int, error) {
	if v < 0 {
		return nil, fmt.Errorf("%w: %d is negative", types.ErrOutOfRange, v)
	}
	return uint256.NewInt(uint64(v)), nil
}

func fromBig(v *big.Int) (*uint256.Int, error) {
	if v == nil {
		return nil, errNoMatch
	}
	if v.Sign() < 0 {
		return nil, fmt.Errorf("%w: %s is negative", types.ErrOutOfRange, v)
	}
	u, overflow := uint256.FromBig(v)
	if overflow {
		return nil, fmt.Errorf("%w: %s does not fit in u256", types.ErrOutOfRange, v)
	}
	return u, nil
}

// fromFloat accepts whole numbers only.
func fromFloat(v float64) (*uint256.Int, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return nil, errNoMatch
	}
	b, _ := big.NewFloat(v).Int(nil)
	return fromBig(b)
}

func fromString(s string) (*uint256.Int, error) {
	base := 10
	digits := s
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		base = 16
		digits = s[2:]
	}
	v, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not an integer", errNoMatch, s)
	}
	return fromBig(v)
}

func convertAddress(arg any) (types.EntryFunctionArgument, error) {
	switch v := arg.(type) {
	case types.Address:
		return v, nil
	case string:
		a, err := types.ParseAddressRelaxed(v)
		if err != nil {
			return nil, err
		}
		return a, nil
	}
	return nil, errNoMatch
}

// typedVector and typedOption match every instantiation of [types.Vector]
// and [types.Option]. Their elements are converted again against the
// parameter so a typed value of the wrong element type is rejected.
type typedVector interface {
	Items() []any
}

type typedOption interface {
	Item() (any, bool)
}

func convertVector(tag *typetag.Vector, arg any, typeArgs []typetag.TypeTag) (types.EntryFunctionArgument, error) {
	elem, err := resolve(tag.Elem, typeArgs)
	if err != nil {
		return nil, err
	}
	if _, ok := elem.(typetag.U8); ok {
		switch v := arg.(type) {
		case string:
			return types.Bytes(v), nil
		case []byte:
			return types.Bytes(v), nil
		case types.Bytes:
			return v, nil
		}
	}

	var items []any
	switch v := arg.(type) {
	case []any:
		items = v
	case []string:
		items = make([]any, len(v))
		for i, s := range v {
			items[i] = s
		}
	case typedVector:
		items = v.Items()
	default:
		return nil, errNoMatch
	}
	values := make([]types.EntryFunctionArgument, len(items))
	for i, item := range items {
		value, err := convert(elem, item, typeArgs)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		values[i] = value
	}
	return types.NewVector(values...), nil
}

func convertStruct(tag *typetag.StructTag, arg any, typeArgs []typetag.TypeTag) (types.EntryFunctionArgument, error) {
	switch {
	case tag.IsString():
		switch v := arg.(type) {
		case string:
			return types.MoveString(v), nil
		case types.MoveString:
			return v, nil
		}
	case tag.IsObject():
		return convertAddress(arg)
	case tag.IsOption():
		if len(tag.TypeArgs) != 1 {
			return nil, errNoMatch
		}
		if arg == nil {
			return types.None[types.EntryFunctionArgument](), nil
		}
		if o, ok := arg.(typedOption); ok {
			inner, some := o.Item()
			if !some {
				return types.None[types.EntryFunctionArgument](), nil
			}
			arg = inner
		}
		v, err := convert(tag.TypeArgs[0], arg, typeArgs)
		if err != nil {
			return nil, err
		}
		return types.Some(v), nil
	}
	return nil, errNoMatch
}
