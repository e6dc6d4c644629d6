// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import (
	"fmt"
	"math/big"

	"github.com/holiman/uint256"

	"github.com/ava-labs/movesdk/codec"
)

var (
	_ EntryFunctionArgument  = Bool(false)
	_ ScriptFunctionArgument = Bool(false)
	_ EntryFunctionArgument  = U8(0)
	_ ScriptFunctionArgument = U8(0)
	_ EntryFunctionArgument  = U16(0)
	_ ScriptFunctionArgument = U16(0)
	_ EntryFunctionArgument  = U32(0)
	_ ScriptFunctionArgument = U32(0)
	_ EntryFunctionArgument  = U64(0)
	_ ScriptFunctionArgument = U64(0)
	_ EntryFunctionArgument  = U128{}
	_ ScriptFunctionArgument = U128{}
	_ EntryFunctionArgument  = U256{}
	_ ScriptFunctionArgument = U256{}
	_ EntryFunctionArgument  = I8(0)
	_ EntryFunctionArgument  = I16(0)
	_ EntryFunctionArgument  = I32(0)
	_ EntryFunctionArgument  = I64(0)

	maxU128 = new(uint256.Int).Sub(new(uint256.Int).Lsh(uint256.NewInt(1), 128), uint256.NewInt(1))
)

type Bool bool

func (b Bool) Serialize(e codec.Encoder) { e.SerializeBool(bool(b)) }

func (b Bool) SerializeForEntryFunction(e codec.Encoder) { serializeEntryArgument(e, b) }

func (b Bool) SerializeForScriptFunction(e codec.Encoder) {
	e.SerializeVariantIndex(uint32(ScriptArgumentBool))
	b.Serialize(e)
}

func DeserializeBool(d codec.Decoder) Bool { return Bool(d.DeserializeBool()) }

type U8 uint8

func (u U8) Serialize(e codec.Encoder) { e.SerializeU8(uint8(u)) }

func (u U8) SerializeForEntryFunction(e codec.Encoder) { serializeEntryArgument(e, u) }

func (u U8) SerializeForScriptFunction(e codec.Encoder) {
	e.SerializeVariantIndex(uint32(ScriptArgumentU8))
	u.Serialize(e)
}

func DeserializeU8(d codec.Decoder) U8 { return U8(d.DeserializeU8()) }

type U16 uint16

func (u U16) Serialize(e codec.Encoder) { e.SerializeU16(uint16(u)) }

func (u U16) SerializeForEntryFunction(e codec.Encoder) { serializeEntryArgument(e, u) }

func (u U16) SerializeForScriptFunction(e codec.Encoder) {
	e.SerializeVariantIndex(uint32(ScriptArgumentU16))
	u.Serialize(e)
}

func DeserializeU16(d codec.Decoder) U16 { return U16(d.DeserializeU16()) }

type U32 uint32

func (u U32) Serialize(e codec.Encoder) { e.SerializeU32(uint32(u)) }

func (u U32) SerializeForEntryFunction(e codec.Encoder) { serializeEntryArgument(e, u) }

func (u U32) SerializeForScriptFunction(e codec.Encoder) {
	e.SerializeVariantIndex(uint32(ScriptArgumentU32))
	u.Serialize(e)
}

func DeserializeU32(d codec.Decoder) U32 { return U32(d.DeserializeU32()) }

type U64 uint64

func (u U64) Serialize(e codec.Encoder) { e.SerializeU64(uint64(u)) }

func (u U64) SerializeForEntryFunction(e codec.Encoder) { serializeEntryArgument(e, u) }

func (u U64) SerializeForScriptFunction(e codec.Encoder) {
	e.SerializeVariantIndex(uint32(ScriptArgumentU64))
	u.Serialize(e)
}

func DeserializeU64(d codec.Decoder) U64 { return U64(d.DeserializeU64()) }

// U128 is an unsigned 128-bit integer. The upper two limbs are always zero.
type U128 uint256.Int

// NewU128 returns v as a U128 if it fits in 128 bits.
func NewU128(v *uint256.Int) (U128, error) {
	if v.Gt(maxU128) {
		return U128{}, fmt.Errorf("%w: %s exceeds u128", ErrOutOfRange, v.ToBig())
	}
	return U128(*v), nil
}

func U128FromUint64(v uint64) U128 {
	return U128(*uint256.NewInt(v))
}

// U128FromBig returns v as a U128 if it is non-negative and fits in 128 bits.
func U128FromBig(v *big.Int) (U128, error) {
	u, err := uint256FromBig(v)
	if err != nil {
		return U128{}, err
	}
	return NewU128(u)
}

func (u U128) Int() *uint256.Int {
	v := uint256.Int(u)
	return &v
}

func (u U128) String() string { return u.Int().ToBig().String() }

func (u U128) Serialize(e codec.Encoder) { e.SerializeU128(u.Int()) }

func (u U128) SerializeForEntryFunction(e codec.Encoder) { serializeEntryArgument(e, u) }

func (u U128) SerializeForScriptFunction(e codec.Encoder) {
	e.SerializeVariantIndex(uint32(ScriptArgumentU128))
	u.Serialize(e)
}

func DeserializeU128(d codec.Decoder) U128 {
	v := d.DeserializeU128()
	if v == nil {
		return U128{}
	}
	return U128(*v)
}

// U256 is an unsigned 256-bit integer.
type U256 uint256.Int

func NewU256(v *uint256.Int) U256 {
	return U256(*v)
}

func U256FromUint64(v uint64) U256 {
	return U256(*uint256.NewInt(v))
}

// U256FromBig returns v as a U256 if it is non-negative and fits in 256 bits.
func U256FromBig(v *big.Int) (U256, error) {
	u, err := uint256FromBig(v)
	if err != nil {
		return U256{}, err
	}
	return U256(*u), nil
}

func (u U256) Int() *uint256.Int {
	v := uint256.Int(u)
	return &v
}

func (u U256) String() string { return u.Int().ToBig().String() }

func (u U256) Serialize(e codec.Encoder) { e.SerializeU256(u.Int()) }

func (u U256) SerializeForEntryFunction(e codec.Encoder) { serializeEntryArgument(e, u) }

func (u U256) SerializeForScriptFunction(e codec.Encoder) {
	e.SerializeVariantIndex(uint32(ScriptArgumentU256))
	u.Serialize(e)
}

func DeserializeU256(d codec.Decoder) U256 {
	v := d.DeserializeU256()
	if v == nil {
		return U256{}
	}
	return U256(*v)
}

func uint256FromBig(v *big.Int) (*uint256.Int, error) {
	if v == nil {
		return nil, codec.ErrNilValue
	}
	if v.Sign() < 0 {
		return nil, fmt.Errorf("%w: %s is negative", ErrOutOfRange, v)
	}
	u, overflow := uint256.FromBig(v)
	if overflow {
		return nil, fmt.Errorf("%w: %s exceeds u256", ErrOutOfRange, v)
	}
	return u, nil
}

// Signed integers can only be entry function arguments.

type I8 int8

func (i I8) Serialize(e codec.Encoder) { e.SerializeI8(int8(i)) }

func (i I8) SerializeForEntryFunction(e codec.Encoder) { serializeEntryArgument(e, i) }

func DeserializeI8(d codec.Decoder) I8 { return I8(d.DeserializeI8()) }

type I16 int16

func (i I16) Serialize(e codec.Encoder) { e.SerializeI16(int16(i)) }

func (i I16) SerializeForEntryFunction(e codec.Encoder) { serializeEntryArgument(e, i) }

func DeserializeI16(d codec.Decoder) I16 { return I16(d.DeserializeI16()) }

type I32 int32

func (i I32) Serialize(e codec.Encoder) { e.SerializeI32(int32(i)) }

func (i I32) SerializeForEntryFunction(e codec.Encoder) { serializeEntryArgument(e, i) }

func DeserializeI32(d codec.Decoder) I32 { return I32(d.DeserializeI32()) }

type I64 int64

func (i I64) Serialize(e codec.Encoder) { e.SerializeI64(int64(i)) }

func (i I64) SerializeForEntryFunction(e codec.Encoder) { serializeEntryArgument(e, i) }

func DeserializeI64(d codec.Decoder) I64 { return I64(d.DeserializeI64()) }
