// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"math"
	"unicode/utf8"

	"github.com/ava-labs/movesdk/consts"
)

var (
	_ Encoder = (*LegacySerializer)(nil)
	_ Decoder = (*LegacyDeserializer)(nil)
)

// LegacySerializer writes lengths and variant indices as plain u32 values. It
// never sorts map entries and has no depth budget.
type LegacySerializer struct {
	writer
}

func NewLegacySerializer() *LegacySerializer {
	return &LegacySerializer{}
}

func (*LegacySerializer) EnterContainer() {}

func (*LegacySerializer) ExitContainer() {}

func (s *LegacySerializer) SerializeLength(n int) {
	switch {
	case n < 0:
		s.AddErr(ErrNegativeLength)
	case uint64(n) > uint64(consts.MaxUint32):
		s.AddErr(ErrLengthTooLarge)
	default:
		s.SerializeU32(uint32(n))
	}
}

func (s *LegacySerializer) SerializeVariantIndex(i uint32) {
	s.SerializeU32(i)
}

func (s *LegacySerializer) SerializeBytes(b []byte) {
	s.SerializeLength(len(b))
	s.SerializeFixedBytes(b)
}

func (s *LegacySerializer) SerializeStr(str string) {
	s.SerializeBytes([]byte(str))
}

// SerializeMap writes entries in the order f emits them.
func (s *LegacySerializer) SerializeMap(n int, f func(e Encoder, i int)) {
	s.SerializeLength(n)
	for i := 0; i < n && s.err == nil; i++ {
		f(s, i)
	}
}

// SerializeF32 writes the IEEE 754 bit pattern of v.
func (s *LegacySerializer) SerializeF32(v float32) {
	s.SerializeU32(math.Float32bits(v))
}

// SerializeF64 writes the IEEE 754 bit pattern of v.
func (s *LegacySerializer) SerializeF64(v float64) {
	s.SerializeU64(math.Float64bits(v))
}

// LegacyDeserializer reads what [LegacySerializer] writes.
type LegacyDeserializer struct {
	reader
}

func NewLegacyDeserializer(b []byte) *LegacyDeserializer {
	return &LegacyDeserializer{reader: reader{buf: b}}
}

func (*LegacyDeserializer) EnterContainer() {}

func (*LegacyDeserializer) ExitContainer() {}

func (d *LegacyDeserializer) DeserializeLength() int {
	n := d.DeserializeU32()
	if uint64(n) > uint64(consts.MaxInt) {
		d.AddErr(ErrLengthTooLarge)
		return 0
	}
	return int(n)
}

func (d *LegacyDeserializer) DeserializeVariantIndex() uint32 {
	return d.DeserializeU32()
}

func (d *LegacyDeserializer) DeserializeBytes() []byte {
	return d.DeserializeFixedBytes(d.DeserializeLength())
}

func (d *LegacyDeserializer) DeserializeStr() string {
	b := d.DeserializeBytes()
	if d.err != nil {
		return ""
	}
	if !utf8.Valid(b) {
		d.AddErr(ErrInvalidUTF8)
		return ""
	}
	return string(b)
}

func (d *LegacyDeserializer) DeserializeMap(f func(d Decoder, i int)) int {
	n := d.DeserializeLength()
	for i := 0; i < n && d.err == nil; i++ {
		f(d, i)
	}
	return n
}

func (d *LegacyDeserializer) DeserializeF32() float32 {
	return math.Float32frombits(d.DeserializeU32())
}

func (d *LegacyDeserializer) DeserializeF64() float64 {
	return math.Float64frombits(d.DeserializeU64())
}
