// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package builder turns high level call descriptions into signed
// transactions. It resolves function ABIs from a [Ledger], converts loosely
// typed arguments, fills in defaults and assembles authenticators.
package builder

import (
	"context"
	"fmt"
	"time"

	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ava-labs/movesdk/abi"
	"github.com/ava-labs/movesdk/chain"
	"github.com/ava-labs/movesdk/typetag"
	"github.com/ava-labs/movesdk/types"

	movetrace "github.com/ava-labs/movesdk/trace"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// InputData describes an entry function call.
type InputData struct {
	// Function is "address::module::function".
	Function string
	// TypeArguments holds Move type strings or [typetag.TypeTag] values.
	TypeArguments []any
	// FunctionArguments are converted against the function's parameters;
	// see [ConvertArgument] for what each parameter type accepts.
	FunctionArguments []any
	// ABI skips the ledger lookup when set.
	ABI *abi.EntryFunctionABI
}

// Options override the defaults of a raw transaction. Zero values are
// replaced by defaults.
type Options struct {
	MaxGasAmount     uint64
	GasUnitPrice     uint64
	ExpireTimestamp  uint64
	ChainID          uint8
	SequenceNumber   *uint64
	WithFeePayer     bool
	FeePayerAddress  *types.Address
	SecondarySigners []types.Address
}

// Builder is safe for concurrent use.
type Builder struct {
	ledger  Ledger
	config  Config
	log     logging.Logger
	tracer  trace.Tracer
	metrics *metrics
	now     func() time.Time
	// ownsTracer is set when the tracer came from config.Trace.
	ownsTracer bool

	functions *expirable.LRU[string, *abi.MoveFunction]
}

// New returns a builder reading from ledger. A nil ledger gives an offline
// builder: every call must then carry an ABI, a sequence number, a gas unit
// price and a chain id.
func New(ledger Ledger, opts ...Option) (*Builder, error) {
	s := &settings{
		config:     NewDefaultConfig(),
		log:        logging.NoLog{},
		registerer: prometheus.NewRegistry(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	m, err := newMetrics(s.config.MetricsNamespace, s.registerer)
	if err != nil {
		return nil, err
	}
	ownsTracer := s.tracer == nil
	if ownsTracer {
		s.tracer, err = movetrace.New(s.config.Trace)
		if err != nil {
			return nil, fmt.Errorf("failed to create tracer: %w", err)
		}
	}
	return &Builder{
		ledger:     ledger,
		config:     s.config,
		log:        s.log,
		tracer:     s.tracer,
		metrics:    m,
		now:        s.now,
		ownsTracer: ownsTracer,
		functions:  expirable.NewLRU[string, *abi.MoveFunction](s.config.ABICacheSize, nil, s.config.ABICacheTTL),
	}, nil
}

// Close flushes the spans of a tracer the builder created from its config.
// A tracer passed with [WithTracer] is left to the caller.
func (b *Builder) Close() error {
	if !b.ownsTracer {
		return nil
	}
	return b.tracer.Close()
}

// BuildEntryFunctionPayload resolves the ABI of data.Function and converts
// its arguments.
func (b *Builder) BuildEntryFunctionPayload(ctx context.Context, data InputData) (*chain.EntryFunction, error) {
	module, function, err := chain.ParseFunctionID(data.Function)
	if err != nil {
		return nil, err
	}
	typeArgs, err := ParseTypeArguments(data.TypeArguments)
	if err != nil {
		return nil, err
	}
	entryABI := data.ABI
	if entryABI == nil {
		entryABI, err = b.FetchEntryFunctionABI(ctx, module, function)
		if err != nil {
			return nil, err
		}
	}
	if len(typeArgs) != len(entryABI.TypeParameters) {
		return nil, fmt.Errorf("%w: %s expects %d, got %d", ErrTypeArgumentCountMismatch, data.Function, len(entryABI.TypeParameters), len(typeArgs))
	}
	args, err := ConvertArguments(entryABI.Parameters, data.FunctionArguments, typeArgs)
	if err != nil {
		return nil, err
	}
	return chain.NewEntryFunction(module, function, typeArgs, args)
}

// BuildViewPayload builds the call of a view function. It has the shape of
// an entry function payload and is checked against the view ABI.
func (b *Builder) BuildViewPayload(ctx context.Context, function string, typeArguments []any, args []any) (*chain.EntryFunction, error) {
	module, name, err := chain.ParseFunctionID(function)
	if err != nil {
		return nil, err
	}
	typeArgs, err := ParseTypeArguments(typeArguments)
	if err != nil {
		return nil, err
	}
	viewABI, err := b.FetchViewFunctionABI(ctx, module, name)
	if err != nil {
		return nil, err
	}
	if len(typeArgs) != len(viewABI.TypeParameters) {
		return nil, fmt.Errorf("%w: %s expects %d, got %d", ErrTypeArgumentCountMismatch, function, len(viewABI.TypeParameters), len(typeArgs))
	}
	converted, err := ConvertArguments(viewABI.Parameters, args, typeArgs)
	if err != nil {
		return nil, err
	}
	return chain.NewEntryFunction(module, name, typeArgs, converted)
}

// BuildScriptPayload wraps compiled script bytecode. Script arguments are
// already typed so no ABI is involved.
func BuildScriptPayload(code []byte, typeArguments []any, args []types.ScriptFunctionArgument) (*chain.Script, error) {
	typeArgs, err := ParseTypeArguments(typeArguments)
	if err != nil {
		return nil, err
	}
	return &chain.Script{Code: code, TypeArgs: typeArgs, Args: args}, nil
}

// BuildMultisigPayload executes data on behalf of a multisig account. A nil
// data executes the payload already stored on chain.
func (b *Builder) BuildMultisigPayload(ctx context.Context, multisig types.Address, data *InputData) (*chain.Multisig, error) {
	payload := &chain.Multisig{MultisigAddress: multisig}
	if data == nil {
		return payload, nil
	}
	entry, err := b.BuildEntryFunctionPayload(ctx, *data)
	if err != nil {
		return nil, err
	}
	payload.Payload = &chain.MultisigTransactionPayload{EntryFunction: entry}
	return payload, nil
}

// ParseTypeArguments accepts Move type strings and [typetag.TypeTag]
// values. Strings may not name generic parameters.
func ParseTypeArguments(in []any) ([]typetag.TypeTag, error) {
	var out []typetag.TypeTag
	for i, arg := range in {
		switch v := arg.(type) {
		case string:
			tag, err := typetag.Parse(v, false)
			if err != nil {
				return nil, fmt.Errorf("%w %d: %w", ErrInvalidTypeArgument, i, err)
			}
			out = append(out, tag)
		case typetag.TypeTag:
			out = append(out, v)
		default:
			return nil, fmt.Errorf("%w %d: unsupported %T", ErrInvalidTypeArgument, i, arg)
		}
	}
	return out, nil
}

// BuildRawTransaction fills in every field opts leaves unset. Gas unit
// price, chain id and sequence number are fetched from the ledger
// concurrently.
func (b *Builder) BuildRawTransaction(
	ctx context.Context,
	sender types.Address,
	payload chain.TransactionPayload,
	opts Options,
) (*chain.RawTransaction, error) {
	ctx, span := b.tracer.Start(ctx, "Builder.BuildRawTransaction",
		oteltrace.WithAttributes(
			attribute.String("sender", sender.String()),
			attribute.Int("payload", int(payload.PayloadVariant())),
		),
	)
	defer span.End()

	raw := &chain.RawTransaction{
		Sender:                  sender,
		Payload:                 payload,
		MaxGasAmount:            opts.MaxGasAmount,
		GasUnitPrice:            opts.GasUnitPrice,
		ExpirationTimestampSecs: opts.ExpireTimestamp,
		ChainID:                 opts.ChainID,
	}
	if raw.MaxGasAmount == 0 {
		raw.MaxGasAmount = b.config.MaxGasAmount
	}
	if raw.ExpirationTimestampSecs == 0 {
		raw.ExpirationTimestampSecs = uint64(b.now().Unix()) + b.config.ExpirationSeconds
	}
	if opts.SequenceNumber != nil {
		raw.SequenceNumber = *opts.SequenceNumber
	}

	if b.ledger == nil {
		switch {
		case opts.SequenceNumber == nil:
			return nil, ErrMissingSequenceNumber
		case raw.GasUnitPrice == 0:
			return nil, ErrMissingGasUnitPrice
		case raw.ChainID == 0:
			return nil, ErrMissingChainID
		}
		b.metrics.transactionsBuilt.Inc()
		return raw, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	if raw.GasUnitPrice == 0 {
		g.Go(func() error {
			price, err := b.ledger.EstimateGasPrice(gctx)
			if err != nil {
				return fmt.Errorf("failed to estimate gas price: %w", err)
			}
			raw.GasUnitPrice = price
			return nil
		})
	}
	if raw.ChainID == 0 {
		g.Go(func() error {
			info, err := b.ledger.LedgerInfo(gctx)
			if err != nil {
				return fmt.Errorf("failed to fetch ledger info: %w", err)
			}
			raw.ChainID = info.ChainID
			return nil
		})
	}
	if opts.SequenceNumber == nil {
		g.Go(func() error {
			seq, err := b.ledger.AccountSequenceNumber(gctx, sender)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrMissingSequenceNumber, err)
			}
			raw.SequenceNumber = seq
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		b.log.Warn("failed to fill transaction defaults",
			zap.Stringer("sender", sender),
			zap.Error(err),
		)
		return nil, err
	}
	b.log.Debug("built raw transaction",
		zap.Stringer("sender", sender),
		zap.Uint64("sequenceNumber", raw.SequenceNumber),
		zap.Uint64("gasUnitPrice", raw.GasUnitPrice),
		zap.Uint8("chainID", raw.ChainID),
	)
	b.metrics.transactionsBuilt.Inc()
	return raw, nil
}

// BuildSimpleTransaction builds a single sender transaction calling
// data.Function. opts.WithFeePayer leaves room for a fee payer to be set
// when it signs.
func (b *Builder) BuildSimpleTransaction(
	ctx context.Context,
	sender types.Address,
	data InputData,
	opts Options,
) (*chain.SimpleTransaction, error) {
	payload, err := b.BuildEntryFunctionPayload(ctx, data)
	if err != nil {
		return nil, err
	}
	raw, err := b.BuildRawTransaction(ctx, sender, payload, opts)
	if err != nil {
		return nil, err
	}
	tx := chain.NewSimpleTransaction(raw)
	setFeePayer(tx, opts)
	return tx, nil
}

// BuildMultiAgentTransaction builds a transaction that opts.SecondarySigners
// sign along with the sender.
func (b *Builder) BuildMultiAgentTransaction(
	ctx context.Context,
	sender types.Address,
	data InputData,
	opts Options,
) (*chain.MultiAgentTransaction, error) {
	payload, err := b.BuildEntryFunctionPayload(ctx, data)
	if err != nil {
		return nil, err
	}
	raw, err := b.BuildRawTransaction(ctx, sender, payload, opts)
	if err != nil {
		return nil, err
	}
	tx := chain.NewMultiAgentTransaction(raw, opts.SecondarySigners)
	setFeePayer(tx, opts)
	return tx, nil
}

// setFeePayer marks tx as sponsored. Until the fee payer signs, the zero
// address stands in for it.
func setFeePayer(tx chain.Transaction, opts Options) {
	switch {
	case opts.FeePayerAddress != nil:
		tx.SetFeePayer(*opts.FeePayerAddress)
	case opts.WithFeePayer:
		tx.SetFeePayer(types.AddressZero)
	}
}
