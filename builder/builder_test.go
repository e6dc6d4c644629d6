// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package builder_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/trace"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/ava-labs/movesdk/abi"
	"github.com/ava-labs/movesdk/auth"
	"github.com/ava-labs/movesdk/builder"
	"github.com/ava-labs/movesdk/builder/buildertest"
	"github.com/ava-labs/movesdk/chain"
	"github.com/ava-labs/movesdk/codec"
	"github.com/ava-labs/movesdk/config"
	"github.com/ava-labs/movesdk/crypto/ed25519"
	"github.com/ava-labs/movesdk/types"
	"github.com/ava-labs/movesdk/typetag"

	movetrace "github.com/ava-labs/movesdk/trace"
)

const (
	testChainID  = 4
	testGasPrice = 100
	testSequence = 7
)

var (
	errLedgerDown = errors.New("ledger down")
	testNow       = time.Unix(1_700_000_000, 0)
)

func testAccount(t *testing.T, seed byte) *auth.Ed25519Account {
	k, err := ed25519.PrivateKeyFromSeed(bytes.Repeat([]byte{seed}, ed25519.PrivateKeySeedLen))
	require.NoError(t, err)
	return auth.NewEd25519Account(auth.Ed25519PrivateKey(k))
}

func testLedger() *buildertest.Ledger {
	return buildertest.New(testChainID, testGasPrice, testSequence, buildertest.AptosAccountModule(), buildertest.CoinModule())
}

func testBuilder(t *testing.T, ledger builder.Ledger, opts ...builder.Option) (*builder.Builder, *prometheus.Registry) {
	registry := prometheus.NewRegistry()
	opts = append([]builder.Option{builder.WithRegisterer(registry), builder.WithClock(func() time.Time { return testNow })}, opts...)
	b, err := builder.New(ledger, opts...)
	require.NoError(t, err)
	return b, registry
}

func counterValue(t *testing.T, g prometheus.Gatherer, name string) float64 {
	families, err := g.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() == name {
			return family.GetMetric()[0].GetCounter().GetValue()
		}
	}
	require.FailNow(t, "metric not found", name)
	return 0
}

func transferData() builder.InputData {
	return builder.InputData{
		Function:          "0x1::aptos_account::transfer",
		FunctionArguments: []any{"0x2", 10},
	}
}

func TestSimpleTransferEndToEnd(t *testing.T) {
	require := require.New(t)

	ctx := context.Background()
	ledger := testLedger()
	b, registry := testBuilder(t, ledger)
	sender := testAccount(t, 1)

	tx, err := b.BuildSimpleTransaction(ctx, sender.Address(), transferData(), builder.Options{})
	require.NoError(err)
	require.Nil(tx.FeePayer())

	raw := tx.RawTransaction
	require.Equal(sender.Address(), raw.Sender)
	require.Equal(uint64(testSequence), raw.SequenceNumber)
	require.Equal(uint64(builder.DefaultMaxGasAmount), raw.MaxGasAmount)
	require.Equal(uint64(testGasPrice), raw.GasUnitPrice)
	require.Equal(uint64(testNow.Unix())+builder.DefaultExpirationSeconds, raw.ExpirationTimestampSecs)
	require.Equal(uint8(testChainID), raw.ChainID)

	entry, ok := raw.Payload.(*chain.EntryFunction)
	require.True(ok)
	require.Equal("0x1::aptos_account", entry.Module.String())
	require.Equal(types.Identifier("transfer"), entry.Function)
	recipient, err := codec.Marshal(types.AddressTwo)
	require.NoError(err)
	require.Equal([][]byte{recipient, {10, 0, 0, 0, 0, 0, 0, 0}}, entry.Args)

	signed, err := b.SignTransaction(sender, tx)
	require.NoError(err)
	require.NoError(signed.Verify())

	parsed, err := chain.ParseSignedTransaction(signed.Bytes())
	require.NoError(err)
	require.Equal(raw, parsed.RawTransaction)
	require.Equal(chain.TransactionAuthenticatorEd25519, parsed.Authenticator.Variant)
	require.Equal(auth.AccountAuthenticatorEd25519, parsed.Authenticator.Sender.Variant)
	require.Equal(signed.Hash(), parsed.Hash())
	require.NoError(parsed.Verify())

	ledger.OnSubmitTransaction = func(_ context.Context, b []byte) (*builder.PendingTransaction, error) {
		require.Equal(signed.Bytes(), b)
		hash := chain.TransactionHash(b)
		return &builder.PendingTransaction{Hash: codec.ToHex(hash[:])}, nil
	}
	pending, err := b.Submit(ctx, signed)
	require.NoError(err)
	hash := signed.Hash()
	require.Equal(codec.ToHex(hash[:]), pending.Hash)

	require.Equal(float64(1), counterValue(t, registry, "movesdk_transactions_built"))
	require.Equal(float64(1), counterValue(t, registry, "movesdk_transactions_signed"))
	require.Equal(float64(1), counterValue(t, registry, "movesdk_transactions_submitted"))
}

func TestDefaultsFetchedOnce(t *testing.T) {
	require := require.New(t)

	ledger := testLedger()
	b, _ := testBuilder(t, ledger)
	_, err := b.BuildSimpleTransaction(context.Background(), testAccount(t, 1).Address(), transferData(), builder.Options{})
	require.NoError(err)

	require.Equal(int64(1), ledger.LedgerInfoCalls.Load())
	require.Equal(int64(1), ledger.GasPriceCalls.Load())
	require.Equal(int64(1), ledger.SequenceNumberCalls.Load())
}

func TestExplicitOptionsSkipLedger(t *testing.T) {
	require := require.New(t)

	ledger := testLedger()
	b, _ := testBuilder(t, ledger)
	seq := uint64(0)
	payload, err := b.BuildEntryFunctionPayload(context.Background(), transferData())
	require.NoError(err)

	raw, err := b.BuildRawTransaction(context.Background(), types.AddressOne, payload, builder.Options{
		MaxGasAmount:    1_000,
		GasUnitPrice:    150,
		ExpireTimestamp: 42,
		ChainID:         2,
		SequenceNumber:  &seq,
	})
	require.NoError(err)
	require.Equal(uint64(0), raw.SequenceNumber)
	require.Equal(uint64(1_000), raw.MaxGasAmount)
	require.Equal(uint64(150), raw.GasUnitPrice)
	require.Equal(uint64(42), raw.ExpirationTimestampSecs)
	require.Equal(uint8(2), raw.ChainID)

	require.Zero(ledger.LedgerInfoCalls.Load())
	require.Zero(ledger.GasPriceCalls.Load())
	require.Zero(ledger.SequenceNumberCalls.Load())
}

func TestDefaultsLedgerFailure(t *testing.T) {
	require := require.New(t)

	ledger := testLedger()
	ledger.OnEstimateGasPrice = func(context.Context) (uint64, error) {
		return 0, errLedgerDown
	}
	b, _ := testBuilder(t, ledger)
	_, err := b.BuildSimpleTransaction(context.Background(), types.AddressOne, transferData(), builder.Options{})
	require.ErrorIs(err, errLedgerDown)

	ledger = testLedger()
	ledger.OnAccountSequenceNumber = func(context.Context, types.Address) (uint64, error) {
		return 0, errLedgerDown
	}
	b, _ = testBuilder(t, ledger)
	_, err = b.BuildSimpleTransaction(context.Background(), types.AddressOne, transferData(), builder.Options{})
	require.ErrorIs(err, builder.ErrMissingSequenceNumber)
	require.ErrorIs(err, errLedgerDown)
}

func TestOfflineBuilder(t *testing.T) {
	require := require.New(t)

	ctx := context.Background()
	b, _ := testBuilder(t, nil)

	_, err := b.BuildSimpleTransaction(ctx, types.AddressOne, transferData(), builder.Options{})
	require.ErrorIs(err, builder.ErrNoLedger)

	transfer, err := abi.NewEntryFunctionABI(&buildertest.AptosAccountModule().ExposedFunctions[0])
	require.NoError(err)
	data := transferData()
	data.ABI = transfer

	seq := uint64(3)
	tests := []struct {
		opts     builder.Options
		expected error
	}{
		{builder.Options{GasUnitPrice: 1, ChainID: 1}, builder.ErrMissingSequenceNumber},
		{builder.Options{SequenceNumber: &seq, ChainID: 1}, builder.ErrMissingGasUnitPrice},
		{builder.Options{SequenceNumber: &seq, GasUnitPrice: 1}, builder.ErrMissingChainID},
		{builder.Options{SequenceNumber: &seq, GasUnitPrice: 1, ChainID: 1}, nil},
	}
	for _, tt := range tests {
		tx, err := b.BuildSimpleTransaction(ctx, types.AddressOne, data, tt.opts)
		require.ErrorIs(err, tt.expected)
		if tt.expected == nil {
			require.Equal(uint64(3), tx.RawTransaction.SequenceNumber)
		}
	}

	_, err = b.Submit(ctx, &chain.SignedTransaction{})
	require.ErrorIs(err, builder.ErrNoLedger)
}

func TestABICache(t *testing.T) {
	require := require.New(t)

	ctx := context.Background()
	ledger := testLedger()
	b, registry := testBuilder(t, ledger)

	for i := 0; i < 3; i++ {
		_, err := b.BuildEntryFunctionPayload(ctx, transferData())
		require.NoError(err)
	}
	require.Equal(int64(1), ledger.AccountModuleCalls.Load())
	require.Equal(float64(1), counterValue(t, registry, "movesdk_abi_cache_misses"))
	require.Equal(float64(2), counterValue(t, registry, "movesdk_abi_cache_hits"))

	// a second function of the same module is cached separately
	_, err := b.BuildEntryFunctionPayload(ctx, builder.InputData{
		Function:          "0x1::aptos_account::transfer_coins",
		TypeArguments:     []any{"0x1::aptos_coin::AptosCoin"},
		FunctionArguments: []any{"0x2", 10},
	})
	require.NoError(err)
	require.Equal(int64(2), ledger.AccountModuleCalls.Load())
}

func TestABICacheExpiry(t *testing.T) {
	require := require.New(t)

	ctx := context.Background()
	ledger := testLedger()
	cfg := builder.NewDefaultConfig()
	cfg.ABICacheTTL = 10 * time.Millisecond
	b, _ := testBuilder(t, ledger, builder.WithConfig(cfg))

	_, err := b.BuildEntryFunctionPayload(ctx, transferData())
	require.NoError(err)
	time.Sleep(50 * time.Millisecond)
	_, err = b.BuildEntryFunctionPayload(ctx, transferData())
	require.NoError(err)
	require.Equal(int64(2), ledger.AccountModuleCalls.Load())
}

func TestABIFailureNotCached(t *testing.T) {
	require := require.New(t)

	ctx := context.Background()
	ledger := testLedger()
	serve := ledger.OnAccountModule
	ledger.OnAccountModule = func(ctx context.Context, address types.Address, module string) (*abi.MoveModule, error) {
		if ledger.AccountModuleCalls.Load() == 1 {
			return nil, errLedgerDown
		}
		return serve(ctx, address, module)
	}
	b, registry := testBuilder(t, ledger)

	_, err := b.BuildEntryFunctionPayload(ctx, transferData())
	require.ErrorIs(err, errLedgerDown)
	_, err = b.BuildEntryFunctionPayload(ctx, transferData())
	require.NoError(err)
	require.Equal(int64(2), ledger.AccountModuleCalls.Load())
	require.Equal(float64(1), counterValue(t, registry, "movesdk_abi_fetch_failures"))

	_, err = b.BuildEntryFunctionPayload(ctx, builder.InputData{Function: "0x1::aptos_account::mint"})
	require.ErrorIs(err, abi.ErrFunctionNotFound)
}

func TestPrefetchABIs(t *testing.T) {
	require := require.New(t)

	ctx := context.Background()
	ledger := testLedger()
	b, _ := testBuilder(t, ledger)

	require.NoError(b.PrefetchABIs(ctx, []string{
		"0x1::aptos_account::transfer",
		"0x1::aptos_account::transfer_coins",
		"0x1::aptos_account::batch_transfer",
		"0x1::coin::balance",
	}))
	require.Equal(int64(4), ledger.AccountModuleCalls.Load())

	_, err := b.BuildEntryFunctionPayload(ctx, builder.InputData{
		Function:          "0x1::aptos_account::batch_transfer",
		FunctionArguments: []any{[]string{"0x2", "0x3"}, []any{1, 2}},
	})
	require.NoError(err)
	require.Equal(int64(4), ledger.AccountModuleCalls.Load())

	require.NoError(b.PrefetchABIs(ctx, nil))
	require.ErrorIs(b.PrefetchABIs(ctx, []string{"0x1::coin"}), chain.ErrInvalidFunctionID)
	require.ErrorIs(b.PrefetchABIs(ctx, []string{"0x1::missing::f"}), buildertest.ErrModuleNotFound)
}

func TestEntryFunctionTypeArguments(t *testing.T) {
	require := require.New(t)

	ctx := context.Background()
	b, _ := testBuilder(t, testLedger())

	data := builder.InputData{
		Function:          "0x1::aptos_account::transfer_coins",
		TypeArguments:     []any{"0x1::aptos_coin::AptosCoin"},
		FunctionArguments: []any{"0x2", 10},
	}
	entry, err := b.BuildEntryFunctionPayload(ctx, data)
	require.NoError(err)
	require.Equal([]typetag.TypeTag{typetag.MustParse("0x1::aptos_coin::AptosCoin")}, entry.TypeArgs)

	data.TypeArguments = nil
	_, err = b.BuildEntryFunctionPayload(ctx, data)
	require.ErrorIs(err, builder.ErrTypeArgumentCountMismatch)

	_, err = b.BuildEntryFunctionPayload(ctx, builder.InputData{
		Function:          "0x1::aptos_account::transfer",
		FunctionArguments: []any{"0x2", -1},
	})
	require.ErrorIs(err, builder.ErrTypeMismatch)
	var argErr *builder.ArgumentError
	require.ErrorAs(err, &argErr)
	require.Equal(1, argErr.Position)

	_, err = b.BuildEntryFunctionPayload(ctx, builder.InputData{Function: "0x1::coin::balance"})
	require.ErrorIs(err, abi.ErrNotEntryFunction)
}

func TestViewPayload(t *testing.T) {
	require := require.New(t)

	ctx := context.Background()
	b, _ := testBuilder(t, testLedger())

	view, err := b.BuildViewPayload(ctx, "0x1::coin::balance", []any{"0x1::aptos_coin::AptosCoin"}, []any{"0x1"})
	require.NoError(err)
	owner, err := codec.Marshal(types.AddressOne)
	require.NoError(err)
	require.Equal([][]byte{owner}, view.Args)

	_, err = b.BuildViewPayload(ctx, "0x1::coin::balance", nil, []any{"0x1"})
	require.ErrorIs(err, builder.ErrTypeArgumentCountMismatch)

	_, err = b.BuildViewPayload(ctx, "0x1::aptos_account::transfer", nil, []any{"0x1", 1})
	require.ErrorIs(err, abi.ErrNotViewFunction)
}

func TestScriptAndMultisigPayloads(t *testing.T) {
	require := require.New(t)

	script, err := builder.BuildScriptPayload([]byte{0xa1, 0x1c}, []any{"u8"}, []types.ScriptFunctionArgument{types.U64(3)})
	require.NoError(err)
	require.Equal([]typetag.TypeTag{typetag.U8{}}, script.TypeArgs)

	_, err = builder.BuildScriptPayload(nil, []any{"vector<"}, nil)
	require.ErrorIs(err, builder.ErrInvalidTypeArgument)

	ctx := context.Background()
	b, _ := testBuilder(t, testLedger())
	multisig := types.MustParseAddress("0xabc")

	stored, err := b.BuildMultisigPayload(ctx, multisig, nil)
	require.NoError(err)
	require.Nil(stored.Payload)

	data := transferData()
	withCall, err := b.BuildMultisigPayload(ctx, multisig, &data)
	require.NoError(err)
	require.Equal(multisig, withCall.MultisigAddress)
	require.Equal(types.Identifier("transfer"), withCall.Payload.EntryFunction.Function)
}

func TestLoadConfig(t *testing.T) {
	require := require.New(t)

	c, err := config.New([]byte(`{"builder": {"maxGasAmount": 5000, "prefetchWorkers": 8, "trace": {"enabled": true, "serviceName": "wallet"}}}`))
	require.NoError(err)
	loaded, err := builder.LoadConfig(c)
	require.NoError(err)

	expected := builder.NewDefaultConfig()
	expected.MaxGasAmount = 5_000
	expected.PrefetchWorkers = 8
	expected.Trace.Enabled = true
	expected.Trace.ServiceName = "wallet"
	require.Equal(expected, loaded)

	loaded, err = builder.LoadConfig(nil)
	require.NoError(err)
	require.Equal(builder.NewDefaultConfig(), loaded)
}

func TestDuplicateRegistration(t *testing.T) {
	require := require.New(t)

	registry := prometheus.NewRegistry()
	_, err := builder.New(nil, builder.WithRegisterer(registry))
	require.NoError(err)
	_, err = builder.New(nil, builder.WithRegisterer(registry))
	require.Error(err)
}

func TestConfiguredTracer(t *testing.T) {
	require := require.New(t)

	var exported atomic.Int32
	collector := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		exported.Inc()
		w.WriteHeader(http.StatusAccepted)
	}))
	defer collector.Close()

	cfg := builder.NewDefaultConfig()
	cfg.Trace.Enabled = true
	cfg.Trace.ZipkinEndpoint = collector.URL
	b, _ := testBuilder(t, testLedger(), builder.WithConfig(cfg))

	_, err := b.BuildSimpleTransaction(context.Background(), testAccount(t, 1).Address(), transferData(), builder.Options{})
	require.NoError(err)
	require.NoError(b.Close())
	require.Positive(exported.Load())
}

type closeCounter struct {
	trace.Tracer

	closed int
}

func (c *closeCounter) Close() error {
	c.closed++
	return nil
}

func TestCallerTracerLeftOpen(t *testing.T) {
	require := require.New(t)

	tracer := &closeCounter{Tracer: movetrace.NewNoOp("test")}
	b, _ := testBuilder(t, testLedger(), builder.WithTracer(tracer))
	_, err := b.BuildSimpleTransaction(context.Background(), testAccount(t, 1).Address(), transferData(), builder.Options{})
	require.NoError(err)
	require.NoError(b.Close())
	require.Zero(tracer.closed)
}
