// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import "unicode/utf8"

var _ Decoder = (*Deserializer)(nil)

// Deserializer is the canonical BCS reader.
type Deserializer struct {
	reader

	depth int
}

// NewDeserializer returns a canonical reader over b with the default depth
// budget.
func NewDeserializer(b []byte) *Deserializer {
	return NewDeserializerWithDepth(b, DefaultMaxDepth)
}

// NewDeserializerWithDepth returns a canonical reader over b that allows at
// most maxDepth nested containers.
func NewDeserializerWithDepth(b []byte, maxDepth int) *Deserializer {
	return &Deserializer{
		reader: reader{buf: b},
		depth:  maxDepth,
	}
}

func (d *Deserializer) EnterContainer() {
	d.depth--
	if d.depth < 0 {
		d.AddErr(ErrMaxDepthExceeded)
	}
}

func (d *Deserializer) ExitContainer() {
	d.depth++
}

func (d *Deserializer) DeserializeUleb128() uint32 {
	if d.err != nil {
		return 0
	}
	v, n, err := ReadUleb128(d.buf[d.offset:])
	if err != nil {
		d.AddErr(err)
		return 0
	}
	d.offset += n
	return v
}

func (d *Deserializer) DeserializeLength() int {
	n := d.DeserializeUleb128()
	if n > MaxSequenceLength {
		d.AddErr(ErrLengthTooLarge)
		return 0
	}
	return int(n)
}

func (d *Deserializer) DeserializeVariantIndex() uint32 {
	return d.DeserializeUleb128()
}

func (d *Deserializer) DeserializeBytes() []byte {
	n := d.DeserializeLength()
	return d.DeserializeFixedBytes(n)
}

func (d *Deserializer) DeserializeStr() string {
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

// DeserializeMap reads a map length and calls f once per entry.
func (d *Deserializer) DeserializeMap(f func(d Decoder, i int)) int {
	d.EnterContainer()
	defer d.ExitContainer()

	n := d.DeserializeLength()
	for i := 0; i < n && d.err == nil; i++ {
		f(d, i)
	}
	return n
}
