// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"encoding/binary"

	"github.com/holiman/uint256"
)

// writer holds the fixed-width encoding shared by both codec families.
// Integers are little-endian. Signed integers reuse the unsigned encoder over
// their two's-complement bit pattern.
type writer struct {
	buf []byte
	err error
}

func (w *writer) AddErr(err error) {
	if w.err == nil && err != nil {
		w.err = err
	}
}

// Bytes returns the encoded buffer.
func (w *writer) Bytes() []byte {
	return w.buf
}

// Err returns the first error encountered by the writer.
func (w *writer) Err() error {
	return w.err
}

func (w *writer) SerializeU8(v uint8) {
	if w.err != nil {
		return
	}
	w.buf = append(w.buf, v)
}

func (w *writer) SerializeU16(v uint16) {
	if w.err != nil {
		return
	}
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
}

func (w *writer) SerializeU32(v uint32) {
	if w.err != nil {
		return
	}
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

func (w *writer) SerializeU64(v uint64) {
	if w.err != nil {
		return
	}
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
}

// SerializeU128 writes the low then the high u64 half of v.
func (w *writer) SerializeU128(v *uint256.Int) {
	if w.err != nil {
		return
	}
	if v == nil {
		w.AddErr(ErrNilValue)
		return
	}
	if v.BitLen() > 128 {
		w.AddErr(ErrValueOverflow)
		return
	}
	w.SerializeU64(v[0])
	w.SerializeU64(v[1])
}

// SerializeU256 writes the four u64 limbs of v, least significant first.
func (w *writer) SerializeU256(v *uint256.Int) {
	if w.err != nil {
		return
	}
	if v == nil {
		w.AddErr(ErrNilValue)
		return
	}
	for _, limb := range v {
		w.SerializeU64(limb)
	}
}

func (w *writer) SerializeI8(v int8) {
	w.SerializeU8(uint8(v))
}

func (w *writer) SerializeI16(v int16) {
	w.SerializeU16(uint16(v))
}

func (w *writer) SerializeI32(v int32) {
	w.SerializeU32(uint32(v))
}

func (w *writer) SerializeI64(v int64) {
	w.SerializeU64(uint64(v))
}

func (w *writer) SerializeBool(v bool) {
	if v {
		w.SerializeU8(1)
	} else {
		w.SerializeU8(0)
	}
}

func (w *writer) SerializeOptionTag(present bool) {
	w.SerializeBool(present)
}

// SerializeFixedBytes writes b without a length prefix.
func (w *writer) SerializeFixedBytes(b []byte) {
	if w.err != nil {
		return
	}
	w.buf = append(w.buf, b...)
}
