// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/sha3"

	"github.com/ava-labs/movesdk/auth"
	"github.com/ava-labs/movesdk/codec"
	"github.com/ava-labs/movesdk/crypto"
	"github.com/ava-labs/movesdk/crypto/ed25519"
	"github.com/ava-labs/movesdk/typetag"
	"github.com/ava-labs/movesdk/types"
)

func testTransferPayload(t *testing.T) *EntryFunction {
	module, function, err := ParseFunctionID("0x1::aptos_account::transfer")
	require.NoError(t, err)
	payload, err := NewEntryFunction(module, function, nil, []types.EntryFunctionArgument{
		types.AddressTwo,
		types.U64(10),
	})
	require.NoError(t, err)
	return payload
}

func testRawTransaction(t *testing.T, sender types.Address) *RawTransaction {
	return &RawTransaction{
		Sender:                  sender,
		SequenceNumber:          7,
		Payload:                 testTransferPayload(t),
		MaxGasAmount:            200_000,
		GasUnitPrice:            100,
		ExpirationTimestampSecs: 1_700_000_000,
		ChainID:                 4,
	}
}

func testEd25519Account(t *testing.T, seed byte) *auth.Ed25519Account {
	k, err := ed25519.PrivateKeyFromSeed(bytes.Repeat([]byte{seed}, ed25519.PrivateKeySeedLen))
	require.NoError(t, err)
	return auth.NewEd25519Account(auth.Ed25519PrivateKey(k))
}

func TestParseFunctionID(t *testing.T) {
	require := require.New(t)

	module, function, err := ParseFunctionID("0x1::coin::transfer")
	require.NoError(err)
	require.Equal(types.AddressOne, module.Address)
	require.Equal(types.Identifier("coin"), module.Name)
	require.Equal(types.Identifier("transfer"), function)
	require.Equal("0x1::coin", module.String())

	for _, s := range []string{"0x1::coin", "0x1::coin::transfer::x", "zz::coin::transfer", "0x1::co-in::transfer"} {
		_, _, err := ParseFunctionID(s)
		require.ErrorIs(err, ErrInvalidFunctionID, s)
	}
}

func TestEntryFunctionDoubleEncodesArguments(t *testing.T) {
	require := require.New(t)

	payload := testTransferPayload(t)
	require.Len(payload.Args, 2)
	require.Equal(types.AddressTwo[:], payload.Args[0])
	require.Equal([]byte{10, 0, 0, 0, 0, 0, 0, 0}, payload.Args[1])

	b, err := codec.Marshal(payload)
	require.NoError(err)
	// address arg: length 32 then the address
	tail := append([]byte{2, 32}, types.AddressTwo[:]...)
	tail = append(tail, 8, 10, 0, 0, 0, 0, 0, 0, 0)
	require.True(bytes.HasSuffix(b, tail))
}

func TestPayloadRoundTrip(t *testing.T) {
	entry := testTransferPayload(t)
	entry.TypeArgs = []typetag.TypeTag{typetag.NewStringTag()}

	tests := []struct {
		name    string
		payload TransactionPayload
		variant byte
	}{
		{
			name:    "entry function",
			payload: entry,
			variant: 2,
		},
		{
			name: "script",
			payload: &Script{
				Code:     []byte{0xa1, 0x1c, 0xeb, 0x0b},
				TypeArgs: []typetag.TypeTag{typetag.U64{}},
				Args:     []types.ScriptFunctionArgument{types.U64(1), types.Bool(true), types.AddressOne},
			},
			variant: 0,
		},
		{
			name:    "multisig without payload",
			payload: &Multisig{MultisigAddress: types.AddressThree},
			variant: 3,
		},
		{
			name: "multisig with payload",
			payload: &Multisig{
				MultisigAddress: types.AddressThree,
				Payload:         &MultisigTransactionPayload{EntryFunction: testTransferPayload(t)},
			},
			variant: 3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)

			e := codec.NewSerializer()
			SerializePayload(e, tt.payload)
			require.NoError(e.Err())
			b := e.Bytes()
			require.Equal(tt.variant, b[0])

			decoded, err := codec.Unmarshal(b, DeserializePayload)
			require.NoError(err)
			require.Equal(tt.payload, decoded)
		})
	}
}

func TestPayloadReservedVariant(t *testing.T) {
	require := require.New(t)

	_, err := codec.Unmarshal([]byte{1}, DeserializePayload)
	require.ErrorIs(err, ErrReservedPayloadVariant)

	_, err = codec.Unmarshal([]byte{4}, DeserializePayload)
	require.ErrorIs(err, ErrUnknownPayloadVariant)

	// multisig with an unknown embedded payload variant
	b := append(append([]byte{3}, types.AddressThree[:]...), 1, 1)
	_, err = codec.Unmarshal(b, DeserializePayload)
	require.ErrorIs(err, ErrUnknownMultisigPayload)
}

func TestRawTransactionLayout(t *testing.T) {
	require := require.New(t)

	raw := testRawTransaction(t, types.AddressOne)
	b, err := codec.Marshal(raw)
	require.NoError(err)

	payload, err := codec.Marshal(raw.Payload)
	require.NoError(err)

	expected := append([]byte{}, types.AddressOne[:]...)
	expected = append(expected, 7, 0, 0, 0, 0, 0, 0, 0)
	expected = append(expected, 2)
	expected = append(expected, payload...)
	expected = append(expected, 0x40, 0x0d, 0x03, 0, 0, 0, 0, 0)
	expected = append(expected, 100, 0, 0, 0, 0, 0, 0, 0)
	expected = append(expected, 0x00, 0xf1, 0x53, 0x65, 0, 0, 0, 0)
	expected = append(expected, 4)
	require.Equal(expected, b)

	decoded, err := codec.Unmarshal(b, DeserializeRawTransaction)
	require.NoError(err)
	require.Equal(raw, decoded)
}

func TestTransactionFeePayerFlag(t *testing.T) {
	require := require.New(t)

	raw := testRawTransaction(t, types.AddressOne)
	rawBytes, err := codec.Marshal(raw)
	require.NoError(err)

	simple := NewSimpleTransaction(raw)
	b, err := codec.Marshal(simple)
	require.NoError(err)
	require.Equal(append(append([]byte{}, rawBytes...), 0), b)

	simple.SetFeePayer(types.AddressFour)
	b, err = codec.Marshal(simple)
	require.NoError(err)
	require.Equal(append(append(append([]byte{}, rawBytes...), 1), types.AddressFour[:]...), b)

	decoded, err := codec.Unmarshal(b, DeserializeSimpleTransaction)
	require.NoError(err)
	require.Equal(simple, decoded)

	multi := NewMultiAgentTransaction(raw, []types.Address{types.AddressTwo})
	b, err = codec.Marshal(multi)
	require.NoError(err)
	decodedMulti, err := codec.Unmarshal(b, DeserializeMultiAgentTransaction)
	require.NoError(err)
	require.Equal(multi, decodedMulti)
}

func TestSigningMessage(t *testing.T) {
	raw := testRawTransaction(t, types.AddressOne)
	rawBytes, err := codec.Marshal(raw)
	require.NoError(t, err)
	plainSalt := sha3.Sum256([]byte("APTOS::RawTransaction"))
	withDataSalt := sha3.Sum256([]byte("APTOS::RawTransactionWithData"))

	secondaries := []types.Address{types.AddressTwo, types.AddressThree}
	multiAgentShape, err := codec.Marshal(NewMultiAgentWithData(raw, secondaries))
	require.NoError(t, err)
	feePayerShape, err := codec.Marshal(NewFeePayerWithData(raw, nil, types.AddressFour))
	require.NoError(t, err)
	multiFeePayerShape, err := codec.Marshal(NewFeePayerWithData(raw, secondaries, types.AddressFour))
	require.NoError(t, err)

	simpleWithFeePayer := NewSimpleTransaction(raw)
	simpleWithFeePayer.SetFeePayer(types.AddressFour)
	multiWithFeePayer := NewMultiAgentTransaction(raw, secondaries)
	multiWithFeePayer.SetFeePayer(types.AddressFour)

	tests := []struct {
		name     string
		tx       Transaction
		salt     [32]byte
		expected []byte
	}{
		{"simple", NewSimpleTransaction(raw), plainSalt, rawBytes},
		{"multi agent", NewMultiAgentTransaction(raw, secondaries), withDataSalt, multiAgentShape},
		{"simple fee payer", simpleWithFeePayer, withDataSalt, feePayerShape},
		{"multi agent fee payer", multiWithFeePayer, withDataSalt, multiFeePayerShape},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)

			msg, err := SigningMessage(tt.tx)
			require.NoError(err)
			require.Equal(append(tt.salt[:], tt.expected...), msg)
		})
	}

	// the with-data variant index is the first byte after the salt
	require.Equal(t, byte(WithDataMultiAgent), multiAgentShape[0])
	require.Equal(t, byte(WithDataFeePayer), feePayerShape[0])
}

func TestRawTransactionWithDataRoundTrip(t *testing.T) {
	require := require.New(t)

	raw := testRawTransaction(t, types.AddressOne)
	for _, shape := range []*RawTransactionWithData{
		NewMultiAgentWithData(raw, []types.Address{types.AddressTwo}),
		NewFeePayerWithData(raw, nil, types.AddressFour),
	} {
		b, err := codec.Marshal(shape)
		require.NoError(err)
		decoded, err := codec.Unmarshal(b, DeserializeRawTransactionWithData)
		require.NoError(err)
		require.Equal(shape, decoded)
	}

	_, err := codec.Unmarshal([]byte{2}, DeserializeRawTransactionWithData)
	require.ErrorIs(err, ErrUnknownRawTransactionShape)
}

func TestSignedTransactionEd25519(t *testing.T) {
	require := require.New(t)

	sender := testEd25519Account(t, 1)
	raw := testRawTransaction(t, sender.Address())
	msg, err := SigningMessage(NewSimpleTransaction(raw))
	require.NoError(err)
	a, err := sender.SignWithAuthenticator(msg)
	require.NoError(err)

	txAuth := NewSenderAuthenticator(a)
	require.Equal(TransactionAuthenticatorEd25519, txAuth.Variant)

	signed, err := NewSignedTransaction(raw, txAuth)
	require.NoError(err)
	require.NoError(signed.Verify())

	// Ed25519 authenticators are written without the account variant.
	authBytes, err := codec.Marshal(txAuth)
	require.NoError(err)
	require.Equal(byte(TransactionAuthenticatorEd25519), authBytes[0])
	require.Equal(byte(ed25519.PublicKeyLen), authBytes[1])
	require.Len(authBytes, 1+1+ed25519.PublicKeyLen+1+ed25519.SignatureLen)

	parsed, err := ParseSignedTransaction(signed.Bytes())
	require.NoError(err)
	require.Equal(raw, parsed.RawTransaction)
	require.Equal(txAuth, parsed.Authenticator)
	require.Equal(signed.Hash(), parsed.Hash())
	require.NoError(parsed.Verify())

	salt := sha3.Sum256([]byte("APTOS::Transaction"))
	expected := sha3.Sum256(append(append(salt[:], 0), signed.Bytes()...))
	require.Equal(expected, signed.Hash())

	raw.SequenceNumber++
	require.ErrorIs(signed.Verify(), crypto.ErrInvalidSignature)
}

func TestSignedTransactionSingleSender(t *testing.T) {
	require := require.New(t)

	sender, err := auth.GenerateSingleKeyAccount(auth.Secp256k1Key)
	require.NoError(err)
	raw := testRawTransaction(t, sender.Address())
	msg, err := RawSigningMessage(raw)
	require.NoError(err)
	a, err := sender.SignWithAuthenticator(msg)
	require.NoError(err)

	txAuth := NewSenderAuthenticator(a)
	require.Equal(TransactionAuthenticatorSingleSender, txAuth.Variant)

	signed, err := NewSignedTransaction(raw, txAuth)
	require.NoError(err)
	parsed, err := ParseSignedTransaction(signed.Bytes())
	require.NoError(err)
	require.Equal(txAuth, parsed.Authenticator)
	require.NoError(parsed.Verify())
}

func TestSignedTransactionMultiAgentAndFeePayer(t *testing.T) {
	sender := testEd25519Account(t, 1)
	secondary := testEd25519Account(t, 2)
	feePayer, err := auth.GenerateSingleKeyAccount(auth.ED25519Key)
	require.NoError(t, err)

	secondaries := []types.Address{secondary.Address()}
	raw := testRawTransaction(t, sender.Address())

	sign := func(t *testing.T, tx Transaction, signers ...auth.Signer) []*auth.AccountAuthenticator {
		msg, err := SigningMessage(tx)
		require.NoError(t, err)
		out := make([]*auth.AccountAuthenticator, len(signers))
		for i, s := range signers {
			out[i], err = s.SignWithAuthenticator(msg)
			require.NoError(t, err)
		}
		return out
	}

	t.Run("multi agent", func(t *testing.T) {
		require := require.New(t)

		tx := NewMultiAgentTransaction(raw, secondaries)
		auths := sign(t, tx, sender, secondary)
		txAuth, err := NewMultiAgentAuthenticator(auths[0], secondaries, auths[1:])
		require.NoError(err)

		signed, err := NewSignedTransaction(raw, txAuth)
		require.NoError(err)
		parsed, err := ParseSignedTransaction(signed.Bytes())
		require.NoError(err)
		require.Equal(txAuth, parsed.Authenticator)
		require.NoError(parsed.Verify())

		_, err = NewMultiAgentAuthenticator(auths[0], secondaries, nil)
		require.ErrorIs(err, ErrSecondarySignerMismatch)
	})

	t.Run("fee payer", func(t *testing.T) {
		require := require.New(t)

		tx := NewMultiAgentTransaction(raw, secondaries)
		tx.SetFeePayer(feePayer.Address())
		auths := sign(t, tx, sender, secondary, feePayer)
		txAuth, err := NewFeePayerAuthenticator(auths[0], secondaries, auths[1:2], feePayer.Address(), auths[2])
		require.NoError(err)

		signed, err := NewSignedTransaction(raw, txAuth)
		require.NoError(err)
		parsed, err := ParseSignedTransaction(signed.Bytes())
		require.NoError(err)
		require.Equal(txAuth, parsed.Authenticator)
		require.NoError(parsed.Verify())

		// A different fee payer address changes the signed message.
		txAuth.FeePayerAddress = types.AddressOne
		require.ErrorIs(txAuth.Verify(raw), crypto.ErrInvalidSignature)
	})
}

func TestDeserializeTransactionAuthenticatorUnknown(t *testing.T) {
	_, err := codec.Unmarshal([]byte{5}, DeserializeTransactionAuthenticator)
	require.ErrorIs(t, err, ErrUnknownTransactionAuthenticator)
}
