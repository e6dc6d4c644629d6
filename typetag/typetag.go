// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package typetag models Move types and parses their textual form.
package typetag

import (
	"fmt"
	"strings"

	"github.com/ava-labs/movesdk/codec"
	"github.com/ava-labs/movesdk/types"
)

// Variant is the BCS discriminant of a [TypeTag].
type Variant uint32

const (
	VariantBool      Variant = 0
	VariantU8        Variant = 1
	VariantU64       Variant = 2
	VariantU128      Variant = 3
	VariantAddress   Variant = 4
	VariantSigner    Variant = 5
	VariantVector    Variant = 6
	VariantStruct    Variant = 7
	VariantU16       Variant = 8
	VariantU32       Variant = 9
	VariantU256      Variant = 10
	VariantReference Variant = 254
	VariantGeneric   Variant = 255
)

// TypeTag is a closed union over Move types.
type TypeTag interface {
	codec.Serializable
	fmt.Stringer

	Variant() Variant
	// serializeBody writes everything after the variant index.
	serializeBody(codec.Encoder)
}

var (
	_ TypeTag = Bool{}
	_ TypeTag = U8{}
	_ TypeTag = U16{}
	_ TypeTag = U32{}
	_ TypeTag = U64{}
	_ TypeTag = U128{}
	_ TypeTag = U256{}
	_ TypeTag = Address{}
	_ TypeTag = Signer{}
	_ TypeTag = (*Vector)(nil)
	_ TypeTag = (*Reference)(nil)
	_ TypeTag = (*StructTag)(nil)
	_ TypeTag = Generic{}
)

func serialize(e codec.Encoder, t TypeTag) {
	e.EnterContainer()
	defer e.ExitContainer()

	e.SerializeVariantIndex(uint32(t.Variant()))
	t.serializeBody(e)
}

type primitive struct{}

func (primitive) serializeBody(codec.Encoder) {}

type Bool struct{ primitive }

func (Bool) Variant() Variant { return VariantBool }
func (Bool) String() string { return "bool" }
func (t Bool) Serialize(e codec.Encoder) { serialize(e, t) }

type U8 struct{ primitive }

func (U8) Variant() Variant { return VariantU8 }
func (U8) String() string { return "u8" }
func (t U8) Serialize(e codec.Encoder) { serialize(e, t) }

type U16 struct{ primitive }

func (U16) Variant() Variant { return VariantU16 }
func (U16) String() string { return "u16" }
func (t U16) Serialize(e codec.Encoder) { serialize(e, t) }

type U32 struct{ primitive }

func (U32) Variant() Variant { return VariantU32 }
func (U32) String() string { return "u32" }
func (t U32) Serialize(e codec.Encoder) { serialize(e, t) }

type U64 struct{ primitive }

func (U64) Variant() Variant { return VariantU64 }
func (U64) String() string { return "u64" }
func (t U64) Serialize(e codec.Encoder) { serialize(e, t) }

type U128 struct{ primitive }

func (U128) Variant() Variant { return VariantU128 }
func (U128) String() string { return "u128" }
func (t U128) Serialize(e codec.Encoder) { serialize(e, t) }

type U256 struct{ primitive }

func (U256) Variant() Variant { return VariantU256 }
func (U256) String() string { return "u256" }
func (t U256) Serialize(e codec.Encoder) { serialize(e, t) }

type Address struct{ primitive }

func (Address) Variant() Variant { return VariantAddress }
func (Address) String() string { return "address" }
func (t Address) Serialize(e codec.Encoder) { serialize(e, t) }

type Signer struct{ primitive }

func (Signer) Variant() Variant { return VariantSigner }
func (Signer) String() string { return "signer" }
func (t Signer) Serialize(e codec.Encoder) { serialize(e, t) }

// Vector is vector<Elem>.
type Vector struct {
	Elem TypeTag
}

func NewVector(elem TypeTag) *Vector { return &Vector{Elem: elem} }

func (*Vector) Variant() Variant { return VariantVector }
func (t *Vector) String() string { return "vector<" + t.Elem.String() + ">" }
func (t *Vector) Serialize(e codec.Encoder) { serialize(e, t) }
func (t *Vector) serializeBody(e codec.Encoder) { t.Elem.Serialize(e) }

// Reference is &Elem. It only shows up in function signatures.
type Reference struct {
	Elem TypeTag
}

func NewReference(elem TypeTag) *Reference { return &Reference{Elem: elem} }

func (*Reference) Variant() Variant { return VariantReference }
func (t *Reference) String() string { return "&" + t.Elem.String() }
func (t *Reference) Serialize(e codec.Encoder) { serialize(e, t) }
func (t *Reference) serializeBody(e codec.Encoder) { t.Elem.Serialize(e) }

// Generic is the Index-th type parameter of the enclosing function.
type Generic struct {
	Index uint32
}

func (Generic) Variant() Variant { return VariantGeneric }
func (t Generic) String() string { return fmt.Sprintf("T%d", t.Index) }
func (t Generic) Serialize(e codec.Encoder) { serialize(e, t) }
func (t Generic) serializeBody(e codec.Encoder) { e.SerializeU32(t.Index) }

// StructTag is address::module::name<type_args>.
type StructTag struct {
	Address    types.Address
	ModuleName types.Identifier
	Name       types.Identifier
	TypeArgs   []TypeTag
}

func NewStructTag(address types.Address, module, name string, typeArgs ...TypeTag) *StructTag {
	return &StructTag{
		Address:    address,
		ModuleName: types.Identifier(module),
		Name:       types.Identifier(name),
		TypeArgs:   typeArgs,
	}
}

// NewStringTag returns 0x1::string::String.
func NewStringTag() *StructTag {
	return NewStructTag(types.AddressOne, "string", "String")
}

// NewObjectTag returns 0x1::object::Object<inner>.
func NewObjectTag(inner TypeTag) *StructTag {
	return NewStructTag(types.AddressOne, "object", "Object", inner)
}

// NewOptionTag returns 0x1::option::Option<inner>.
func NewOptionTag(inner TypeTag) *StructTag {
	return NewStructTag(types.AddressOne, "option", "Option", inner)
}

func (*StructTag) Variant() Variant { return VariantStruct }

func (t *StructTag) String() string {
	var sb strings.Builder
	sb.WriteString(t.Address.String())
	sb.WriteString("::")
	sb.WriteString(string(t.ModuleName))
	sb.WriteString("::")
	sb.WriteString(string(t.Name))
	if len(t.TypeArgs) > 0 {
		sb.WriteByte('<')
		for i, arg := range t.TypeArgs {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(arg.String())
		}
		sb.WriteByte('>')
	}
	return sb.String()
}

func (t *StructTag) Serialize(e codec.Encoder) { serialize(e, t) }

func (t *StructTag) serializeBody(e codec.Encoder) {
	t.Address.Serialize(e)
	t.ModuleName.Serialize(e)
	t.Name.Serialize(e)
	codec.SerializeSequence(e, t.TypeArgs)
}

func (t *StructTag) is(module, name string) bool {
	return t.Address == types.AddressOne &&
		string(t.ModuleName) == module &&
		string(t.Name) == name
}

// IsString reports whether t is 0x1::string::String.
func (t *StructTag) IsString() bool { return t.is("string", "String") }

// IsObject reports whether t is 0x1::object::Object.
func (t *StructTag) IsObject() bool { return t.is("object", "Object") }

// IsOption reports whether t is 0x1::option::Option.
func (t *StructTag) IsOption() bool { return t.is("option", "Option") }

// DeserializeTypeTag reads a TypeTag, spending one unit of container depth
// per nesting level.
func DeserializeTypeTag(d codec.Decoder) TypeTag {
	d.EnterContainer()
	defer d.ExitContainer()

	variant := Variant(d.DeserializeVariantIndex())
	if d.Err() != nil {
		return nil
	}
	switch variant {
	case VariantBool:
		return Bool{}
	case VariantU8:
		return U8{}
	case VariantU16:
		return U16{}
	case VariantU32:
		return U32{}
	case VariantU64:
		return U64{}
	case VariantU128:
		return U128{}
	case VariantU256:
		return U256{}
	case VariantAddress:
		return Address{}
	case VariantSigner:
		return Signer{}
	case VariantVector:
		elem := DeserializeTypeTag(d)
		if d.Err() != nil {
			return nil
		}
		return NewVector(elem)
	case VariantReference:
		elem := DeserializeTypeTag(d)
		if d.Err() != nil {
			return nil
		}
		return NewReference(elem)
	case VariantGeneric:
		return Generic{Index: d.DeserializeU32()}
	case VariantStruct:
		return DeserializeStructTag(d)
	default:
		d.AddErr(fmt.Errorf("%w: %d", ErrUnknownVariant, variant))
		return nil
	}
}

// DeserializeStructTag reads the body of a struct TypeTag.
func DeserializeStructTag(d codec.Decoder) *StructTag {
	t := &StructTag{
		Address:    types.DeserializeAddress(d),
		ModuleName: types.DeserializeIdentifier(d),
		Name:       types.DeserializeIdentifier(d),
		TypeArgs:   codec.DeserializeSequence(d, DeserializeTypeTag),
	}
	if d.Err() != nil {
		return nil
	}
	return t
}
