// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"bytes"
	"math"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func TestUleb128Boundaries(t *testing.T) {
	tests := []struct {
		value    uint32
		expected []byte
	}{
		{0, []byte{0}},
		{1, []byte{1}},
		{127, []byte{127}},
		{128, []byte{128, 1}},
		{3000, []byte{184, 23}},
		{math.MaxUint32, []byte{0xff, 0xff, 0xff, 0xff, 0x0f}},
	}
	for _, tt := range tests {
		require := require.New(t)

		require.Equal(tt.expected, AppendUleb128(nil, tt.value))

		v, n, err := ReadUleb128(tt.expected)
		require.NoError(err)
		require.Equal(tt.value, v)
		require.Equal(len(tt.expected), n)
	}
}

func TestUleb128Invalid(t *testing.T) {
	tests := []struct {
		name        string
		input       []byte
		expectedErr error
	}{
		{
			name:        "empty",
			input:       []byte{},
			expectedErr: ErrInsufficientLength,
		},
		{
			name:        "dangling continuation",
			input:       []byte{0x80},
			expectedErr: ErrInsufficientLength,
		},
		{
			name:        "non-minimal zero digit",
			input:       []byte{0x80, 0x00},
			expectedErr: ErrUleb128NotMinimal,
		},
		{
			name:        "non-minimal padded one",
			input:       []byte{0x81, 0x80, 0x00},
			expectedErr: ErrUleb128NotMinimal,
		},
		{
			name:        "exceeds u32",
			input:       []byte{0xff, 0xff, 0xff, 0xff, 0x10},
			expectedErr: ErrUleb128Overflow,
		},
		{
			name:        "too many bytes",
			input:       []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01},
			expectedErr: ErrUleb128Overflow,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ReadUleb128(tt.input)
			require.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func TestPrimitiveLayout(t *testing.T) {
	require := require.New(t)

	s := NewSerializer()
	s.SerializeU8(0x01)
	s.SerializeU16(0x0203)
	s.SerializeU32(0x04050607)
	s.SerializeU64(0x08090a0b0c0d0e0f)
	s.SerializeBool(true)
	s.SerializeI8(-1)
	s.SerializeI16(-2)
	require.NoError(s.Err())
	require.Equal([]byte{
		0x01,
		0x03, 0x02,
		0x07, 0x06, 0x05, 0x04,
		0x0f, 0x0e, 0x0d, 0x0c, 0x0b, 0x0a, 0x09, 0x08,
		0x01,
		0xff,
		0xfe, 0xff,
	}, s.Bytes())
}

func TestU128U256Layout(t *testing.T) {
	require := require.New(t)

	v := &uint256.Int{1, 2, 0, 0}
	s := NewSerializer()
	s.SerializeU128(v)
	require.NoError(s.Err())
	require.Equal([]byte{
		1, 0, 0, 0, 0, 0, 0, 0,
		2, 0, 0, 0, 0, 0, 0, 0,
	}, s.Bytes())

	s = NewSerializer()
	s.SerializeU256(&uint256.Int{1, 2, 3, 4})
	require.NoError(s.Err())
	require.Len(s.Bytes(), 32)
	require.Equal(byte(4), s.Bytes()[24])

	s = NewSerializer()
	s.SerializeU128(&uint256.Int{0, 0, 1, 0})
	require.ErrorIs(s.Err(), ErrValueOverflow)
}

func TestRoundTrip(t *testing.T) {
	require := require.New(t)

	u128 := new(uint256.Int).Lsh(uint256.NewInt(1), 127)
	u256 := new(uint256.Int).SetAllOne()

	s := NewSerializer()
	s.SerializeU8(math.MaxUint8)
	s.SerializeU16(math.MaxUint16)
	s.SerializeU32(math.MaxUint32)
	s.SerializeU64(math.MaxUint64)
	s.SerializeU128(u128)
	s.SerializeU256(u256)
	s.SerializeI8(math.MinInt8)
	s.SerializeI16(math.MinInt16)
	s.SerializeI32(math.MinInt32)
	s.SerializeI64(math.MinInt64)
	s.SerializeBool(false)
	s.SerializeStr("héllo")
	s.SerializeBytes([]byte{1, 2, 3})
	s.SerializeFixedBytes([]byte{4, 5})
	s.SerializeVariantIndex(300)
	require.NoError(s.Err())

	d := NewDeserializer(s.Bytes())
	require.Equal(uint8(math.MaxUint8), d.DeserializeU8())
	require.Equal(uint16(math.MaxUint16), d.DeserializeU16())
	require.Equal(uint32(math.MaxUint32), d.DeserializeU32())
	require.Equal(uint64(math.MaxUint64), d.DeserializeU64())
	require.Equal(u128, d.DeserializeU128())
	require.Equal(u256, d.DeserializeU256())
	require.Equal(int8(math.MinInt8), d.DeserializeI8())
	require.Equal(int16(math.MinInt16), d.DeserializeI16())
	require.Equal(int32(math.MinInt32), d.DeserializeI32())
	require.Equal(int64(math.MinInt64), d.DeserializeI64())
	require.False(d.DeserializeBool())
	require.Equal("héllo", d.DeserializeStr())
	require.Equal([]byte{1, 2, 3}, d.DeserializeBytes())
	require.Equal([]byte{4, 5}, d.DeserializeFixedBytes(2))
	require.Equal(uint32(300), d.DeserializeVariantIndex())
	require.NoError(d.Err())
	require.Zero(d.Remaining())
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name        string
		input       []byte
		decode      func(Decoder)
		expectedErr error
	}{
		{
			name:        "truncated u64",
			input:       []byte{1, 2, 3},
			decode:      func(d Decoder) { d.DeserializeU64() },
			expectedErr: ErrInsufficientLength,
		},
		{
			name:        "invalid bool",
			input:       []byte{2},
			decode:      func(d Decoder) { d.DeserializeBool() },
			expectedErr: ErrInvalidBool,
		},
		{
			name:        "invalid option tag",
			input:       []byte{0xff},
			decode:      func(d Decoder) { d.DeserializeOptionTag() },
			expectedErr: ErrInvalidOptionTag,
		},
		{
			name:        "invalid utf-8",
			input:       []byte{2, 0xc3, 0x28},
			decode:      func(d Decoder) { d.DeserializeStr() },
			expectedErr: ErrInvalidUTF8,
		},
		{
			name:        "truncated bytes",
			input:       []byte{4, 1, 2},
			decode:      func(d Decoder) { d.DeserializeBytes() },
			expectedErr: ErrInsufficientLength,
		},
		{
			name:        "length above i32",
			input:       []byte{0x80, 0x80, 0x80, 0x80, 0x08},
			decode:      func(d Decoder) { d.DeserializeLength() },
			expectedErr: ErrLengthTooLarge,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDeserializer(tt.input)
			tt.decode(d)
			require.ErrorIs(t, d.Err(), tt.expectedErr)
		})
	}
}

func TestFirstErrorSticks(t *testing.T) {
	require := require.New(t)

	d := NewDeserializer([]byte{5})
	require.False(d.DeserializeBool())
	require.ErrorIs(d.Err(), ErrInvalidBool)

	// Later reads are no-ops and don't replace the error.
	require.Zero(d.DeserializeU64())
	require.ErrorIs(d.Err(), ErrInvalidBool)
}

func TestUnmarshalTrailingBytes(t *testing.T) {
	require := require.New(t)

	_, err := Unmarshal([]byte{1, 2}, func(d Decoder) uint8 {
		return d.DeserializeU8()
	})
	require.ErrorIs(err, ErrTrailingBytes)

	v, err := Unmarshal([]byte{7}, func(d Decoder) uint8 {
		return d.DeserializeU8()
	})
	require.NoError(err)
	require.Equal(uint8(7), v)
}

func TestSequenceAndOption(t *testing.T) {
	require := require.New(t)

	items := []uint16{1, 2, 0xffff}
	present := uint64(9)

	s := NewSerializer()
	SerializeSequenceWith(s, items, func(e Encoder, v uint16) { e.SerializeU16(v) })
	SerializeOption(s, &present, func(e Encoder, v uint64) { e.SerializeU64(v) })
	SerializeOption[uint64](s, nil, func(e Encoder, v uint64) { e.SerializeU64(v) })
	require.NoError(s.Err())
	require.Equal(byte(3), s.Bytes()[0])

	d := NewDeserializer(s.Bytes())
	require.Equal(items, DeserializeSequence(d, func(d Decoder) uint16 { return d.DeserializeU16() }))
	got := DeserializeOption(d, func(d Decoder) uint64 { return d.DeserializeU64() })
	require.NotNil(got)
	require.Equal(present, *got)
	require.Nil(DeserializeOption(d, func(d Decoder) uint64 { return d.DeserializeU64() }))
	require.NoError(d.Err())
	require.Zero(d.Remaining())
}

func TestSequenceLengthLargerThanInput(t *testing.T) {
	require := require.New(t)

	d := NewDeserializer([]byte{0xff, 0xff, 0xff, 0x07, 1})
	items := DeserializeSequence(d, func(d Decoder) uint8 { return d.DeserializeU8() })
	require.Nil(items)
	require.ErrorIs(d.Err(), ErrInsufficientLength)
}

type nested struct {
	inner *nested
}

func (n *nested) Serialize(e Encoder) {
	e.EnterContainer()
	defer e.ExitContainer()

	e.SerializeOptionTag(n.inner != nil)
	if n.inner != nil {
		n.inner.Serialize(e)
	}
}

func deserializeNested(d Decoder) *nested {
	d.EnterContainer()
	defer d.ExitContainer()

	n := &nested{}
	if d.DeserializeOptionTag() {
		n.inner = deserializeNested(d)
	}
	return n
}

func buildNested(depth int) *nested {
	n := &nested{}
	for i := 1; i < depth; i++ {
		n = &nested{inner: n}
	}
	return n
}

func TestContainerDepth(t *testing.T) {
	require := require.New(t)

	b, err := Marshal(buildNested(DefaultMaxDepth))
	require.NoError(err)
	_, err = Unmarshal(b, deserializeNested)
	require.NoError(err)

	_, err = Marshal(buildNested(DefaultMaxDepth + 1))
	require.ErrorIs(err, ErrMaxDepthExceeded)

	// Hand-craft input one level deeper than the budget allows.
	deep := append(bytes.Repeat([]byte{1}, DefaultMaxDepth), 0)
	_, err = Unmarshal(deep, deserializeNested)
	require.ErrorIs(err, ErrMaxDepthExceeded)

	// The legacy codec has no budget.
	b, err = MarshalLegacy(buildNested(DefaultMaxDepth + 10))
	require.NoError(err)
	_, err = UnmarshalLegacy(b, deserializeNested)
	require.NoError(err)
}

func TestCanonicalMapOrdering(t *testing.T) {
	require := require.New(t)

	type entry struct {
		key   string
		value uint8
	}
	encode := func(entries []entry) []byte {
		s := NewSerializer()
		s.SerializeMap(len(entries), func(e Encoder, i int) {
			e.SerializeStr(entries[i].key)
			e.SerializeU8(entries[i].value)
		})
		require.NoError(s.Err())
		return s.Bytes()
	}

	a := encode([]entry{{"b", 2}, {"a", 1}, {"ccc", 3}})
	b := encode([]entry{{"ccc", 3}, {"b", 2}, {"a", 1}})
	require.Equal(a, b)
	require.Equal([]byte{
		3,
		1, 'a', 1,
		1, 'b', 2,
		3, 'c', 'c', 'c', 3,
	}, a)

	// Legacy keeps the emitted order.
	s := NewLegacySerializer()
	s.SerializeMap(2, func(e Encoder, i int) {
		e.SerializeU8(uint8(2 - i))
	})
	require.Equal([]byte{2, 0, 0, 0, 2, 1}, s.Bytes())
}

func TestSortMapEntriesPreservesEntries(t *testing.T) {
	require := require.New(t)

	s := NewSerializer()
	s.SerializeU8(0xaa) // prefix that must stay in place
	offsets := []int{}
	for _, entry := range [][]byte{{3, 3, 3}, {1}, {2, 9}} {
		offsets = append(offsets, len(s.Bytes()))
		s.SerializeFixedBytes(entry)
	}
	s.SortMapEntries(offsets)
	require.Equal([]byte{0xaa, 1, 2, 9, 3, 3, 3}, s.Bytes())
}

func TestDeserializeMap(t *testing.T) {
	require := require.New(t)

	s := NewSerializer()
	s.SerializeMap(2, func(e Encoder, i int) {
		e.SerializeU8(uint8(10 - i))
		e.SerializeBool(i == 0)
	})
	require.NoError(s.Err())

	keys := []uint8{}
	d := NewDeserializer(s.Bytes())
	n := d.DeserializeMap(func(d Decoder, _ int) {
		keys = append(keys, d.DeserializeU8())
		d.DeserializeBool()
	})
	require.NoError(d.Err())
	require.Equal(2, n)
	require.Equal([]uint8{9, 10}, keys)
}
