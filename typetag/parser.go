// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package typetag

import (
	"strconv"
	"strings"

	"github.com/ava-labs/movesdk/types"
)

var primitives = map[string]TypeTag{
	"bool":    Bool{},
	"u8":      U8{},
	"u16":     U16{},
	"u32":     U32{},
	"u64":     U64{},
	"u128":    U128{},
	"u256":    U256{},
	"address": Address{},
	"signer":  Signer{},
}

// frame is the state saved when the parser descends into a '<'.
type frame struct {
	name     string
	types    []TypeTag
	expected int
}

type parser struct {
	input         string
	allowGenerics bool

	stack []frame
	// name is the identifier being accumulated.
	name string
	// types holds the completed siblings at the current level.
	types []TypeTag
	// inner holds the type arguments of the last closed '<...>', waiting to
	// be attached to name.
	inner    []TypeTag
	expected int
}

// Parse parses the textual form of a Move type, such as
// "0x1::coin::CoinStore<0x1::aptos_coin::AptosCoin>". Generic placeholders
// (T0, T1, ...) are only accepted when allowGenerics is set.
//
// Every failure is a [*ParseError] wrapping one of the parse sentinels.
func Parse(s string, allowGenerics bool) (TypeTag, error) {
	p := &parser{
		input:         s,
		allowGenerics: allowGenerics,
		expected:      1,
	}
	return p.parse()
}

// MustParse is Parse without generics that panics on error.
func MustParse(s string) TypeTag {
	t, err := Parse(s, false)
	if err != nil {
		panic(err)
	}
	return t
}

// flush turns the accumulated name into a type and appends it to the current
// level.
func (p *parser) flush() error {
	t, err := p.parseName(p.name, p.inner)
	if err != nil {
		return err
	}
	p.types = append(p.types, t)
	p.inner = nil
	p.name = ""
	return nil
}

func (p *parser) parse() (TypeTag, error) {
	s := p.input
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == '<':
			p.stack = append(p.stack, frame{name: p.name, types: p.types, expected: p.expected})
			p.name = ""
			p.types = nil
			p.expected = 1
		case c == '>':
			if p.name != "" {
				if err := p.flush(); err != nil {
					return nil, err
				}
			}
			if len(p.stack) == 0 {
				return nil, newParseError(s, s[:i+1], ErrUnexpectedTypeArgumentClose)
			}
			if p.expected != len(p.types) {
				return nil, newParseError(s, s[:i+1], ErrTypeArgumentCountMismatch)
			}
			top := p.stack[len(p.stack)-1]
			p.stack = p.stack[:len(p.stack)-1]
			p.inner = p.types
			p.name = top.name
			p.types = top.types
			p.expected = top.expected
		case c == ',':
			if len(p.stack) == 0 {
				return nil, newParseError(s, s[:i+1], ErrUnexpectedComma)
			}
			if p.name != "" {
				if err := p.flush(); err != nil {
					return nil, err
				}
			}
			p.expected++
		case isWhitespace(c):
			flushed := false
			if p.name != "" {
				if err := p.flush(); err != nil {
					return nil, err
				}
				flushed = true
			}
			for i < len(s) && isWhitespace(s[i]) {
				i++
			}
			// A completed type may only be followed by ',' or '>'.
			if flushed && i < len(s) && s[i] != ',' && s[i] != '>' {
				return nil, newParseError(s, s[:i+1], ErrUnexpectedWhitespaceCharacter)
			}
			continue
		default:
			p.name += string(c)
		}
		i++
	}

	if len(p.stack) > 0 {
		return nil, newParseError(s, s, ErrMissingTypeArgumentClose)
	}
	switch len(p.types) {
	case 0:
		return p.parseName(p.name, p.inner)
	case 1:
		if p.name == "" {
			return p.types[0], nil
		}
		return nil, newParseError(s, p.name, ErrUnexpectedComma)
	default:
		return nil, newParseError(s, s, ErrUnexpectedWhitespaceCharacter)
	}
}

// parseName resolves a single identifier, with its already parsed type
// arguments, into a TypeTag.
func (p *parser) parseName(name string, typeArgs []TypeTag) (TypeTag, error) {
	name = strings.TrimSpace(name)
	lower := strings.ToLower(name)

	if t, ok := primitives[lower]; ok {
		if len(typeArgs) > 0 {
			return nil, newParseError(p.input, name, ErrUnexpectedPrimitiveTypeArguments)
		}
		return t, nil
	}
	if lower == "vector" {
		if len(typeArgs) != 1 {
			return nil, newParseError(p.input, name, ErrUnexpectedVectorTypeArgumentCount)
		}
		return NewVector(typeArgs[0]), nil
	}
	if strings.HasPrefix(name, "&") {
		elem, err := p.parseName(name[1:], typeArgs)
		if err != nil {
			return nil, err
		}
		return NewReference(elem), nil
	}
	if index, ok := genericIndex(name); ok {
		if !p.allowGenerics {
			return nil, newParseError(p.input, name, ErrUnexpectedGenericType)
		}
		return Generic{Index: index}, nil
	}
	if !strings.Contains(name, ":") {
		return nil, newParseError(p.input, name, ErrInvalidTypeTag)
	}

	parts := strings.Split(name, "::")
	if len(parts) != 3 {
		return nil, newParseError(p.input, name, ErrUnexpectedStructFormat)
	}
	address, err := types.ParseAddressRelaxed(parts[0])
	if err != nil {
		return nil, newParseError(p.input, parts[0], ErrInvalidTypeTag)
	}
	if !types.IsValidIdentifier(parts[1]) {
		return nil, newParseError(p.input, parts[1], ErrInvalidModuleNameCharacter)
	}
	if !types.IsValidIdentifier(parts[2]) {
		return nil, newParseError(p.input, parts[2], ErrInvalidStructNameCharacter)
	}
	return &StructTag{
		Address:    address,
		ModuleName: types.Identifier(parts[1]),
		Name:       types.Identifier(parts[2]),
		TypeArgs:   typeArgs,
	}, nil
}

// genericIndex matches T followed by one or more digits.
func genericIndex(name string) (uint32, bool) {
	if len(name) < 2 || name[0] != 'T' {
		return 0, false
	}
	for i := 1; i < len(name); i++ {
		if name[i] < '0' || name[i] > '9' {
			return 0, false
		}
	}
	index, err := strconv.ParseUint(name[1:], 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(index), true
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
