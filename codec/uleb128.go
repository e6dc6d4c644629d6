// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import "github.com/ava-labs/movesdk/consts"

// AppendUleb128 appends v to buf, seven bits per byte with the high bit set on
// every byte but the last.
func AppendUleb128(buf []byte, v uint32) []byte {
	for v >= 0x80 {
		buf = append(buf, byte(v&0x7f)|0x80)
		v >>= 7
	}
	return append(buf, byte(v))
}

// ReadUleb128 decodes a ULEB128 value from the start of b and returns it
// along with the number of bytes consumed.
//
// Values that don't fit in 32 bits are rejected, as are encodings whose final
// byte is a zero digit after the first byte.
func ReadUleb128(b []byte) (uint32, int, error) {
	var value uint64
	for i, shift := 0, uint(0); shift < 32; i, shift = i+1, shift+7 {
		if i >= len(b) {
			return 0, 0, ErrInsufficientLength
		}
		digit := b[i] & 0x7f
		value |= uint64(digit) << shift
		if value > uint64(consts.MaxUint32) {
			return 0, 0, ErrUleb128Overflow
		}
		if b[i]&0x80 == 0 {
			if shift > 0 && digit == 0 {
				return 0, 0, ErrUleb128NotMinimal
			}
			return uint32(value), i + 1, nil
		}
	}
	return 0, 0, ErrUleb128Overflow
}
