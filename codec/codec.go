// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package codec implements Binary Canonical Serialization (BCS).
//
// Two codec families share the [Encoder] and [Decoder] interfaces. The
// canonical family ([Serializer], [Deserializer]) produces the byte layout
// validators hash and sign: ULEB128 lengths and variant indices, sorted map
// entries and a bounded container depth. The legacy family
// ([LegacySerializer], [LegacyDeserializer]) uses fixed 32-bit lengths and
// variant indices, supports floats and performs no sorting or depth
// accounting. It is only meant for local fixtures.
//
// Cursors record the first error they hit. Every call after a failure is a
// no-op, so callers can encode or decode a whole structure and check Err once.
package codec

import "github.com/holiman/uint256"

const (
	// DefaultMaxDepth is the nested container budget of a canonical cursor.
	DefaultMaxDepth = 500
	// MaxSequenceLength is the largest length a canonical cursor accepts.
	MaxSequenceLength = 1<<31 - 1
)

// Encoder is implemented by both codec families.
type Encoder interface {
	SerializeU8(uint8)
	SerializeU16(uint16)
	SerializeU32(uint32)
	SerializeU64(uint64)
	SerializeU128(*uint256.Int)
	SerializeU256(*uint256.Int)
	SerializeI8(int8)
	SerializeI16(int16)
	SerializeI32(int32)
	SerializeI64(int64)
	SerializeBool(bool)
	SerializeOptionTag(present bool)
	SerializeBytes([]byte)
	SerializeFixedBytes([]byte)
	SerializeStr(string)
	SerializeLength(int)
	SerializeVariantIndex(uint32)
	// SerializeMap writes a length followed by n entries emitted by f.
	SerializeMap(n int, f func(e Encoder, i int))

	EnterContainer()
	ExitContainer()

	AddErr(error)
	Bytes() []byte
	Err() error
}

// Decoder is implemented by both codec families.
type Decoder interface {
	DeserializeU8() uint8
	DeserializeU16() uint16
	DeserializeU32() uint32
	DeserializeU64() uint64
	DeserializeU128() *uint256.Int
	DeserializeU256() *uint256.Int
	DeserializeI8() int8
	DeserializeI16() int16
	DeserializeI32() int32
	DeserializeI64() int64
	DeserializeBool() bool
	DeserializeOptionTag() bool
	DeserializeBytes() []byte
	DeserializeFixedBytes(n int) []byte
	DeserializeStr() string
	DeserializeLength() int
	DeserializeVariantIndex() uint32
	DeserializeMap(f func(d Decoder, i int)) int

	EnterContainer()
	ExitContainer()

	AddErr(error)
	Remaining() int
	Err() error
}

// Serializable values know how to write themselves to an [Encoder].
type Serializable interface {
	Serialize(Encoder)
}

// Marshal encodes v with a canonical [Serializer].
func Marshal(v Serializable) ([]byte, error) {
	s := NewSerializer()
	v.Serialize(s)
	return s.Bytes(), s.Err()
}

// MarshalLegacy encodes v with a [LegacySerializer].
func MarshalLegacy(v Serializable) ([]byte, error) {
	s := NewLegacySerializer()
	v.Serialize(s)
	return s.Bytes(), s.Err()
}

// Unmarshal decodes b with a canonical [Deserializer] and requires f to
// consume every byte.
func Unmarshal[T any](b []byte, f func(Decoder) T) (T, error) {
	return finish(NewDeserializer(b), f)
}

// UnmarshalLegacy decodes b with a [LegacyDeserializer] and requires f to
// consume every byte.
func UnmarshalLegacy[T any](b []byte, f func(Decoder) T) (T, error) {
	return finish(NewLegacyDeserializer(b), f)
}

func finish[T any](d Decoder, f func(Decoder) T) (T, error) {
	v := f(d)
	if err := d.Err(); err != nil {
		var empty T
		return empty, err
	}
	if d.Remaining() != 0 {
		var empty T
		return empty, ErrTrailingBytes
	}
	return v, nil
}

// SerializeSequence writes a length-prefixed sequence of serializable items.
func SerializeSequence[T Serializable](e Encoder, items []T) {
	SerializeSequenceWith(e, items, func(e Encoder, item T) {
		item.Serialize(e)
	})
}

// SerializeSequenceWith writes a length-prefixed sequence using f for every
// item.
func SerializeSequenceWith[T any](e Encoder, items []T, f func(Encoder, T)) {
	e.EnterContainer()
	defer e.ExitContainer()

	e.SerializeLength(len(items))
	for _, item := range items {
		f(e, item)
	}
}

// DeserializeSequence reads a length-prefixed sequence using f for every
// item. It stops at the first error. An empty sequence decodes to nil.
func DeserializeSequence[T any](d Decoder, f func(Decoder) T) []T {
	d.EnterContainer()
	defer d.ExitContainer()

	n := d.DeserializeLength()
	if d.Err() != nil || n == 0 {
		return nil
	}
	// Every item takes at least one byte, so a length larger than the input
	// can't be honest. Don't let it drive the allocation.
	items := make([]T, 0, min(n, d.Remaining()))
	for i := 0; i < n; i++ {
		item := f(d)
		if d.Err() != nil {
			return nil
		}
		items = append(items, item)
	}
	return items
}

// SerializeOption writes an option tag followed by v when v is non-nil.
func SerializeOption[T any](e Encoder, v *T, f func(Encoder, T)) {
	e.EnterContainer()
	defer e.ExitContainer()

	e.SerializeOptionTag(v != nil)
	if v != nil {
		f(e, *v)
	}
}

// DeserializeOption reads an option tag and, when present, the value.
func DeserializeOption[T any](d Decoder, f func(Decoder) T) *T {
	d.EnterContainer()
	defer d.ExitContainer()

	if !d.DeserializeOptionTag() {
		return nil
	}
	v := f(d)
	if d.Err() != nil {
		return nil
	}
	return &v
}
