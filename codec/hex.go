// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"encoding/hex"
	"strings"
)

// ToHex returns the 0x-prefixed hex encoding of b.
func ToHex(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}

// LoadHex decodes a hex string with an optional 0x prefix. expectedSize of -1
// accepts any length.
func LoadHex(s string, expectedSize int) ([]byte, error) {
	s = strings.TrimPrefix(s, "0x")
	bytes, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	if expectedSize != -1 && len(bytes) != expectedSize {
		return nil, ErrInvalidSize
	}
	return bytes, nil
}

// Bytes is a byte slice that renders as hex in text formats.
type Bytes []byte

func (b Bytes) String() string {
	return ToHex(b)
}

// MarshalText returns the hex representation of b.
func (b Bytes) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText sets b to the bytes represented by text.
func (b *Bytes) UnmarshalText(text []byte) error {
	bytes, err := LoadHex(string(text), -1)
	if err != nil {
		return err
	}
	*b = bytes
	return nil
}
