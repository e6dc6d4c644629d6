// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"bytes"

	"golang.org/x/exp/slices"
)

var _ Encoder = (*Serializer)(nil)

// Serializer is the canonical BCS writer.
type Serializer struct {
	writer

	depth int
}

// NewSerializer returns a canonical writer with the default depth budget.
func NewSerializer() *Serializer {
	return NewSerializerWithDepth(DefaultMaxDepth)
}

// NewSerializerWithDepth returns a canonical writer that allows at most
// maxDepth nested containers.
func NewSerializerWithDepth(maxDepth int) *Serializer {
	return &Serializer{depth: maxDepth}
}

// EnterContainer consumes one unit of depth budget. Running out is fatal for
// the rest of the encoding.
func (s *Serializer) EnterContainer() {
	s.depth--
	if s.depth < 0 {
		s.AddErr(ErrMaxDepthExceeded)
	}
}

// ExitContainer returns the unit taken by the matching EnterContainer.
func (s *Serializer) ExitContainer() {
	s.depth++
}

func (s *Serializer) SerializeUleb128(v uint32) {
	if s.err != nil {
		return
	}
	s.buf = AppendUleb128(s.buf, v)
}

func (s *Serializer) SerializeLength(n int) {
	switch {
	case n < 0:
		s.AddErr(ErrNegativeLength)
	case n > MaxSequenceLength:
		s.AddErr(ErrLengthTooLarge)
	default:
		s.SerializeUleb128(uint32(n))
	}
}

func (s *Serializer) SerializeVariantIndex(i uint32) {
	s.SerializeUleb128(i)
}

func (s *Serializer) SerializeBytes(b []byte) {
	s.SerializeLength(len(b))
	s.SerializeFixedBytes(b)
}

func (s *Serializer) SerializeStr(str string) {
	s.SerializeBytes([]byte(str))
}

// SerializeMap writes n entries and then rewrites them in byte-lexicographic
// order, so the output doesn't depend on the order f emits entries in.
func (s *Serializer) SerializeMap(n int, f func(e Encoder, i int)) {
	s.EnterContainer()
	defer s.ExitContainer()

	s.SerializeLength(n)
	offsets := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if s.err != nil {
			return
		}
		offsets = append(offsets, len(s.buf))
		f(s, i)
	}
	s.SortMapEntries(offsets)
}

// SortMapEntries sorts the byte ranges starting at each offset (the last one
// runs to the end of the buffer) while keeping each range intact.
func (s *Serializer) SortMapEntries(offsets []int) {
	if s.err != nil || len(offsets) < 2 {
		return
	}
	entries := make([][]byte, len(offsets))
	for i, start := range offsets {
		end := len(s.buf)
		if i+1 < len(offsets) {
			end = offsets[i+1]
		}
		entries[i] = slices.Clone(s.buf[start:end])
	}
	slices.SortFunc(entries, bytes.Compare)

	pos := offsets[0]
	for _, entry := range entries {
		pos += copy(s.buf[pos:], entry)
	}
}
