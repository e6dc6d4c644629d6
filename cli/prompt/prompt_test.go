// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package prompt

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/movesdk/builder"
	"github.com/ava-labs/movesdk/typetag"
	"github.com/ava-labs/movesdk/types"
)

func TestParseInput(t *testing.T) {
	tests := []struct {
		input    string
		expected any
	}{
		{"10", "10"},
		{" 0x1 ", "0x1"},
		{"hello world", "hello world"},
		{"null", nil},
		{`["0x2", "0x3"]`, []any{"0x2", "0x3"}},
		{"[1, 18446744073709551615]", []any{json.Number("1"), json.Number("18446744073709551615")}},
	}
	for _, tt := range tests {
		v, err := ParseInput(tt.input)
		require.NoError(t, err, tt.input)
		require.Equal(t, tt.expected, v, tt.input)
	}

	_, err := ParseInput("[1,")
	require.Error(t, err)
}

func TestParseArgument(t *testing.T) {
	require := require.New(t)

	v, err := ParseArgument("[1, 2]", 0, typetag.MustParse("vector<u64>"), nil)
	require.NoError(err)
	require.Equal(types.NewVector[types.EntryFunctionArgument](types.U64(1), types.U64(2)), v)

	v, err = ParseArgument("null", 0, typetag.MustParse("0x1::option::Option<u8>"), nil)
	require.NoError(err)
	require.Equal(types.None[types.EntryFunctionArgument](), v)

	v, err = ParseArgument("", 0, typetag.NewStringTag(), nil)
	require.NoError(err)
	require.Equal(types.MoveString(""), v)

	_, err = ParseArgument("", 0, typetag.U64{}, nil)
	require.ErrorIs(err, ErrInputEmpty)

	_, err = ParseArgument("256", 2, typetag.U8{}, nil)
	require.ErrorIs(err, builder.ErrTypeMismatch)
	require.ErrorIs(err, types.ErrOutOfRange)
}
