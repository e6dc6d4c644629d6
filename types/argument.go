// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import (
	"fmt"

	"github.com/ava-labs/movesdk/codec"
)

// EntryFunctionArgument is a value that can be passed to an entry function.
// Entry function arguments travel as opaque, length-prefixed BCS blobs.
type EntryFunctionArgument interface {
	codec.Serializable
	SerializeForEntryFunction(codec.Encoder)
}

// ScriptFunctionArgument is a value that can be passed to a script. Script
// arguments are a tagged union written directly into the payload.
type ScriptFunctionArgument interface {
	codec.Serializable
	SerializeForScriptFunction(codec.Encoder)
}

// ScriptArgumentVariant is the on-chain discriminant of a script argument.
type ScriptArgumentVariant uint32

const (
	ScriptArgumentU8       ScriptArgumentVariant = 0
	ScriptArgumentU64      ScriptArgumentVariant = 1
	ScriptArgumentU128     ScriptArgumentVariant = 2
	ScriptArgumentAddress  ScriptArgumentVariant = 3
	ScriptArgumentU8Vector ScriptArgumentVariant = 4
	ScriptArgumentBool     ScriptArgumentVariant = 5
	ScriptArgumentU16      ScriptArgumentVariant = 6
	ScriptArgumentU32      ScriptArgumentVariant = 7
	ScriptArgumentU256     ScriptArgumentVariant = 8
)

// serializeEntryArgument BCS-encodes v on its own and writes the result as a
// length-prefixed byte blob.
func serializeEntryArgument(e codec.Encoder, v codec.Serializable) {
	b, err := codec.Marshal(v)
	if err != nil {
		e.AddErr(err)
		return
	}
	e.SerializeBytes(b)
}

// DeserializeScriptArgument reads one tagged script argument.
func DeserializeScriptArgument(d codec.Decoder) ScriptFunctionArgument {
	variant := ScriptArgumentVariant(d.DeserializeVariantIndex())
	if d.Err() != nil {
		return nil
	}
	switch variant {
	case ScriptArgumentU8:
		return DeserializeU8(d)
	case ScriptArgumentU64:
		return DeserializeU64(d)
	case ScriptArgumentU128:
		return DeserializeU128(d)
	case ScriptArgumentAddress:
		return DeserializeAddress(d)
	case ScriptArgumentU8Vector:
		return DeserializeBytes(d)
	case ScriptArgumentBool:
		return DeserializeBool(d)
	case ScriptArgumentU16:
		return DeserializeU16(d)
	case ScriptArgumentU32:
		return DeserializeU32(d)
	case ScriptArgumentU256:
		return DeserializeU256(d)
	default:
		d.AddErr(fmt.Errorf("%w: %d", ErrUnknownScriptArgument, variant))
		return nil
	}
}
