// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package builder

import (
	"context"
	"fmt"
	"time"

	"github.com/neilotoole/errgroup"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/ava-labs/movesdk/abi"
	"github.com/ava-labs/movesdk/chain"
	"github.com/ava-labs/movesdk/types"

	oteltrace "go.opentelemetry.io/otel/trace"
)

// FetchEntryFunctionABI returns the typed parameters of an entry function.
func (b *Builder) FetchEntryFunctionABI(ctx context.Context, module chain.ModuleID, function types.Identifier) (*abi.EntryFunctionABI, error) {
	fn, err := b.fetchFunction(ctx, module, function)
	if err != nil {
		return nil, err
	}
	return abi.NewEntryFunctionABI(fn)
}

// FetchViewFunctionABI returns the typed parameters and returns of a view
// function.
func (b *Builder) FetchViewFunctionABI(ctx context.Context, module chain.ModuleID, function types.Identifier) (*abi.ViewFunctionABI, error) {
	fn, err := b.fetchFunction(ctx, module, function)
	if err != nil {
		return nil, err
	}
	return abi.NewViewFunctionABI(fn)
}

// PrefetchABIs warms the cache with "address::module::function" ids using
// at most Config.PrefetchWorkers concurrent fetches. The first failure is
// returned.
func (b *Builder) PrefetchABIs(ctx context.Context, functions []string) error {
	if len(functions) == 0 {
		return nil
	}
	ctx, span := b.tracer.Start(ctx, "Builder.PrefetchABIs",
		oteltrace.WithAttributes(
			attribute.Int("functions", len(functions)),
		),
	)
	defer span.End()

	workers := b.config.PrefetchWorkers
	if workers <= 0 {
		workers = 1
	}
	g, gctx := errgroup.WithContextN(ctx, workers, len(functions))
	for _, id := range functions {
		id := id
		g.Go(func() error {
			module, function, err := chain.ParseFunctionID(id)
			if err != nil {
				return err
			}
			_, err = b.fetchFunction(gctx, module, function)
			return err
		})
	}
	return g.Wait()
}

func (b *Builder) fetchFunction(ctx context.Context, module chain.ModuleID, function types.Identifier) (*abi.MoveFunction, error) {
	if b.ledger == nil {
		return nil, fmt.Errorf("%w: cannot resolve %s::%s", ErrNoLedger, module, function)
	}
	key := b.ledger.Endpoint() + "/" + module.String() + "::" + function.String()
	if fn, ok := b.functions.Get(key); ok {
		b.metrics.abiCacheHits.Inc()
		return fn, nil
	}
	b.metrics.abiCacheMisses.Inc()

	ctx, span := b.tracer.Start(ctx, "Builder.fetchFunction",
		oteltrace.WithAttributes(
			attribute.String("module", module.String()),
			attribute.String("function", function.String()),
		),
	)
	defer span.End()

	start := time.Now()
	m, err := b.ledger.AccountModule(ctx, module.Address, module.Name.String())
	b.metrics.abiFetch.Observe(float64(time.Since(start)))
	if err != nil {
		b.metrics.abiFetchFailures.Inc()
		b.log.Warn("failed to fetch module",
			zap.Stringer("module", module),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to fetch module %s: %w", module, err)
	}
	fn, err := m.Function(function.String())
	if err != nil {
		b.metrics.abiFetchFailures.Inc()
		return nil, err
	}
	b.functions.Add(key, fn)
	b.log.Debug("cached function ABI",
		zap.String("key", key),
		zap.Bool("entry", fn.IsEntry),
		zap.Bool("view", fn.IsView),
	)
	return fn, nil
}
