// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package trace

import (
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/ava-labs/avalanchego/trace"

	oteltrace "go.opentelemetry.io/otel/trace"
)

var _ trace.Tracer = (*noOpTracer)(nil)

// noOpTracer starts spans that record nothing.
type noOpTracer struct {
	oteltrace.Tracer
}

// NewNoOp is the tracer a builder uses unless one is configured.
func NewNoOp(name string) trace.Tracer {
	return &noOpTracer{Tracer: noop.NewTracerProvider().Tracer(name)}
}

func (*noOpTracer) Close() error {
	return nil
}
