// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"fmt"
	"strings"

	"github.com/ava-labs/movesdk/codec"
	"github.com/ava-labs/movesdk/typetag"
	"github.com/ava-labs/movesdk/types"
)

// PayloadVariant is the discriminant of a [TransactionPayload].
type PayloadVariant uint32

const (
	PayloadScript PayloadVariant = 0
	// PayloadModuleBundle is a retired variant. It is never written and is
	// rejected on decode.
	PayloadModuleBundle  PayloadVariant = 1
	PayloadEntryFunction PayloadVariant = 2
	PayloadMultisig      PayloadVariant = 3
)

// TransactionPayload is what a transaction executes. Serialize writes the
// payload body only; [SerializePayload] adds the variant index.
type TransactionPayload interface {
	codec.Serializable
	PayloadVariant() PayloadVariant
}

var (
	_ TransactionPayload = (*Script)(nil)
	_ TransactionPayload = (*EntryFunction)(nil)
	_ TransactionPayload = (*Multisig)(nil)
)

// SerializePayload writes p with its variant index.
func SerializePayload(e codec.Encoder, p TransactionPayload) {
	e.SerializeVariantIndex(uint32(p.PayloadVariant()))
	p.Serialize(e)
}

// DeserializePayload reads a payload with its variant index.
func DeserializePayload(d codec.Decoder) TransactionPayload {
	variant := PayloadVariant(d.DeserializeVariantIndex())
	if d.Err() != nil {
		return nil
	}
	var p TransactionPayload
	switch variant {
	case PayloadScript:
		p = DeserializeScript(d)
	case PayloadEntryFunction:
		p = DeserializeEntryFunction(d)
	case PayloadMultisig:
		p = DeserializeMultisig(d)
	case PayloadModuleBundle:
		d.AddErr(ErrReservedPayloadVariant)
		return nil
	default:
		d.AddErr(fmt.Errorf("%w: %d", ErrUnknownPayloadVariant, variant))
		return nil
	}
	if d.Err() != nil {
		return nil
	}
	return p
}

// ModuleID names a published module.
type ModuleID struct {
	Address types.Address
	Name    types.Identifier
}

// ParseModuleID parses "address::module".
func ParseModuleID(s string) (ModuleID, error) {
	parts := strings.Split(s, "::")
	if len(parts) != 2 {
		return ModuleID{}, fmt.Errorf("%w: %q", ErrInvalidModuleID, s)
	}
	address, err := types.ParseAddressRelaxed(parts[0])
	if err != nil {
		return ModuleID{}, fmt.Errorf("%w: %w", ErrInvalidModuleID, err)
	}
	name, err := types.NewIdentifier(parts[1])
	if err != nil {
		return ModuleID{}, fmt.Errorf("%w: %w", ErrInvalidModuleID, err)
	}
	return ModuleID{Address: address, Name: name}, nil
}

func (m ModuleID) String() string {
	return m.Address.String() + "::" + string(m.Name)
}

func (m ModuleID) Serialize(e codec.Encoder) {
	m.Address.Serialize(e)
	m.Name.Serialize(e)
}

func DeserializeModuleID(d codec.Decoder) ModuleID {
	return ModuleID{
		Address: types.DeserializeAddress(d),
		Name:    types.DeserializeIdentifier(d),
	}
}

// ParseFunctionID splits "address::module::function".
func ParseFunctionID(s string) (ModuleID, types.Identifier, error) {
	parts := strings.Split(s, "::")
	if len(parts) != 3 {
		return ModuleID{}, "", fmt.Errorf("%w: %q", ErrInvalidFunctionID, s)
	}
	module, err := ParseModuleID(parts[0] + "::" + parts[1])
	if err != nil {
		return ModuleID{}, "", fmt.Errorf("%w: %w", ErrInvalidFunctionID, err)
	}
	function, err := types.NewIdentifier(parts[2])
	if err != nil {
		return ModuleID{}, "", fmt.Errorf("%w: %w", ErrInvalidFunctionID, err)
	}
	return module, function, nil
}

// EntryFunction calls a public entry function. Args holds the BCS encoding
// of every argument.
type EntryFunction struct {
	Module   ModuleID
	Function types.Identifier
	TypeArgs []typetag.TypeTag
	Args     [][]byte
}

// NewEntryFunction encodes args and returns the call.
func NewEntryFunction(
	module ModuleID,
	function types.Identifier,
	typeArgs []typetag.TypeTag,
	args []types.EntryFunctionArgument,
) (*EntryFunction, error) {
	var encoded [][]byte
	for i, arg := range args {
		if arg == nil {
			return nil, fmt.Errorf("%w: argument %d is nil", ErrUnsupportedEntryArgument, i)
		}
		b, err := codec.Marshal(arg)
		if err != nil {
			return nil, fmt.Errorf("%w: argument %d: %w", ErrUnsupportedEntryArgument, i, err)
		}
		encoded = append(encoded, b)
	}
	return &EntryFunction{
		Module:   module,
		Function: function,
		TypeArgs: typeArgs,
		Args:     encoded,
	}, nil
}

func (*EntryFunction) PayloadVariant() PayloadVariant { return PayloadEntryFunction }

// Serialize writes every argument as a length-prefixed byte string.
func (f *EntryFunction) Serialize(e codec.Encoder) {
	f.Module.Serialize(e)
	f.Function.Serialize(e)
	codec.SerializeSequence(e, f.TypeArgs)
	codec.SerializeSequenceWith(e, f.Args, func(e codec.Encoder, arg []byte) {
		e.SerializeBytes(arg)
	})
}

func DeserializeEntryFunction(d codec.Decoder) *EntryFunction {
	f := &EntryFunction{
		Module:   DeserializeModuleID(d),
		Function: types.DeserializeIdentifier(d),
		TypeArgs: codec.DeserializeSequence(d, typetag.DeserializeTypeTag),
		Args: codec.DeserializeSequence(d, func(d codec.Decoder) []byte {
			return d.DeserializeBytes()
		}),
	}
	if d.Err() != nil {
		return nil
	}
	return f
}

// Script runs bytecode. Its arguments are tagged and written directly.
type Script struct {
	Code     []byte
	TypeArgs []typetag.TypeTag
	Args     []types.ScriptFunctionArgument
}

func (*Script) PayloadVariant() PayloadVariant { return PayloadScript }

func (s *Script) Serialize(e codec.Encoder) {
	e.SerializeBytes(s.Code)
	codec.SerializeSequence(e, s.TypeArgs)
	codec.SerializeSequenceWith(e, s.Args, func(e codec.Encoder, arg types.ScriptFunctionArgument) {
		arg.SerializeForScriptFunction(e)
	})
}

func DeserializeScript(d codec.Decoder) *Script {
	s := &Script{
		Code:     d.DeserializeBytes(),
		TypeArgs: codec.DeserializeSequence(d, typetag.DeserializeTypeTag),
		Args:     codec.DeserializeSequence(d, types.DeserializeScriptArgument),
	}
	if d.Err() != nil {
		return nil
	}
	return s
}

// MultisigTransactionPayload is the call a multisig account executes. Entry
// functions are the only variant.
type MultisigTransactionPayload struct {
	EntryFunction *EntryFunction
}

const multisigEntryFunction = 0

func (p MultisigTransactionPayload) Serialize(e codec.Encoder) {
	e.SerializeVariantIndex(multisigEntryFunction)
	p.EntryFunction.Serialize(e)
}

func DeserializeMultisigTransactionPayload(d codec.Decoder) MultisigTransactionPayload {
	if variant := d.DeserializeVariantIndex(); d.Err() == nil && variant != multisigEntryFunction {
		d.AddErr(fmt.Errorf("%w: %d", ErrUnknownMultisigPayload, variant))
	}
	return MultisigTransactionPayload{EntryFunction: DeserializeEntryFunction(d)}
}

// Multisig executes a payload on behalf of a multisig account. A nil
// Payload executes the payload already stored on chain.
type Multisig struct {
	MultisigAddress types.Address
	Payload         *MultisigTransactionPayload
}

func (*Multisig) PayloadVariant() PayloadVariant { return PayloadMultisig }

func (m *Multisig) Serialize(e codec.Encoder) {
	m.MultisigAddress.Serialize(e)
	codec.SerializeOption(e, m.Payload, func(e codec.Encoder, p MultisigTransactionPayload) {
		p.Serialize(e)
	})
}

func DeserializeMultisig(d codec.Decoder) *Multisig {
	m := &Multisig{
		MultisigAddress: types.DeserializeAddress(d),
		Payload:         codec.DeserializeOption(d, DeserializeMultisigTransactionPayload),
	}
	if d.Err() != nil {
		return nil
	}
	return m
}
