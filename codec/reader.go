// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"encoding/binary"

	"github.com/holiman/uint256"

	"github.com/ava-labs/movesdk/consts"
)

// reader holds the fixed-width decoding shared by both codec families.
type reader struct {
	buf    []byte
	offset int
	err    error
}

func (r *reader) AddErr(err error) {
	if r.err == nil && err != nil {
		r.err = err
	}
}

// Err returns the first error encountered by the reader.
func (r *reader) Err() error {
	return r.err
}

// Remaining returns the number of unread bytes.
func (r *reader) Remaining() int {
	return len(r.buf) - r.offset
}

// read returns the next n bytes without copying them.
func (r *reader) read(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || r.Remaining() < n {
		r.AddErr(ErrInsufficientLength)
		return nil
	}
	b := r.buf[r.offset : r.offset+n]
	r.offset += n
	return b
}

func (r *reader) DeserializeU8() uint8 {
	b := r.read(consts.ByteLen)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *reader) DeserializeU16() uint16 {
	b := r.read(consts.Uint16Len)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

func (r *reader) DeserializeU32() uint32 {
	b := r.read(consts.Uint32Len)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (r *reader) DeserializeU64() uint64 {
	b := r.read(consts.Uint64Len)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

func (r *reader) DeserializeU128() *uint256.Int {
	low := r.DeserializeU64()
	high := r.DeserializeU64()
	if r.err != nil {
		return nil
	}
	return &uint256.Int{low, high, 0, 0}
}

func (r *reader) DeserializeU256() *uint256.Int {
	var v uint256.Int
	for i := range v {
		v[i] = r.DeserializeU64()
	}
	if r.err != nil {
		return nil
	}
	return &v
}

func (r *reader) DeserializeI8() int8 {
	return int8(r.DeserializeU8())
}

func (r *reader) DeserializeI16() int16 {
	return int16(r.DeserializeU16())
}

func (r *reader) DeserializeI32() int32 {
	return int32(r.DeserializeU32())
}

func (r *reader) DeserializeI64() int64 {
	return int64(r.DeserializeU64())
}

func (r *reader) DeserializeBool() bool {
	return r.deserializeBinary(ErrInvalidBool)
}

func (r *reader) DeserializeOptionTag() bool {
	return r.deserializeBinary(ErrInvalidOptionTag)
}

func (r *reader) deserializeBinary(invalid error) bool {
	b := r.DeserializeU8()
	switch {
	case r.err != nil:
		return false
	case b == 0:
		return false
	case b == 1:
		return true
	default:
		r.AddErr(invalid)
		return false
	}
}

// DeserializeFixedBytes returns a copy of the next n bytes.
func (r *reader) DeserializeFixedBytes(n int) []byte {
	b := r.read(n)
	if b == nil {
		return nil
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}
