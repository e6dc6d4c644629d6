// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import (
	"fmt"

	"github.com/ava-labs/movesdk/codec"
)

var (
	_ EntryFunctionArgument  = FixedBytes(nil)
	_ ScriptFunctionArgument = FixedBytes(nil)
	_ EntryFunctionArgument  = Bytes(nil)
	_ ScriptFunctionArgument = Bytes(nil)
	_ EntryFunctionArgument  = MoveString("")
	_ codec.Serializable     = Identifier("")
)

// FixedBytes is written without a length prefix. It is used for values whose
// size is implied by their type and for arguments that are already encoded.
type FixedBytes []byte

func (b FixedBytes) Serialize(e codec.Encoder) { e.SerializeFixedBytes(b) }

func (b FixedBytes) SerializeForEntryFunction(e codec.Encoder) { e.SerializeBytes(b) }

func (b FixedBytes) SerializeForScriptFunction(e codec.Encoder) { b.Serialize(e) }

func DeserializeFixedBytes(d codec.Decoder, n int) FixedBytes {
	return d.DeserializeFixedBytes(n)
}

// Bytes is a Move vector<u8>.
type Bytes []byte

func (b Bytes) Serialize(e codec.Encoder) { e.SerializeBytes(b) }

func (b Bytes) SerializeForEntryFunction(e codec.Encoder) { serializeEntryArgument(e, b) }

func (b Bytes) SerializeForScriptFunction(e codec.Encoder) {
	e.SerializeVariantIndex(uint32(ScriptArgumentU8Vector))
	b.Serialize(e)
}

func (b Bytes) String() string { return codec.ToHex(b) }

func DeserializeBytes(d codec.Decoder) Bytes { return d.DeserializeBytes() }

// MoveString is a 0x1::string::String.
type MoveString string

func (s MoveString) Serialize(e codec.Encoder) { e.SerializeStr(string(s)) }

func (s MoveString) SerializeForEntryFunction(e codec.Encoder) { serializeEntryArgument(e, s) }

func DeserializeMoveString(d codec.Decoder) MoveString { return MoveString(d.DeserializeStr()) }

// Identifier is a Move module, struct or function name.
type Identifier string

// NewIdentifier checks that s is a valid Move identifier.
func NewIdentifier(s string) (Identifier, error) {
	if !IsValidIdentifier(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidIdentifier, s)
	}
	return Identifier(s), nil
}

// IsValidIdentifier reports whether s is non-empty and only holds ASCII
// letters, digits and underscores.
func IsValidIdentifier(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !IsIdentifierChar(s[i]) {
			return false
		}
	}
	return true
}

func IsIdentifierChar(c byte) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}

func (i Identifier) Serialize(e codec.Encoder) { e.SerializeStr(string(i)) }

func (i Identifier) String() string { return string(i) }

func DeserializeIdentifier(d codec.Decoder) Identifier { return Identifier(d.DeserializeStr()) }
