// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package trace

import (
	"context"
	"time"

	"github.com/ava-labs/avalanchego/trace"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/sdk/resource"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const (
	exportTimeout = 10 * time.Second
	// shutdownTimeout leaves room for an in-flight export to finish.
	shutdownTimeout = 15 * time.Second

	DefaultZipkinEndpoint = "http://localhost:9411/api/v2/spans"
	DefaultServiceName    = "movesdk"
)

// Config is the "trace" section of a builder config. Spans are named after
// the builder operation that opened them ("Builder.Submit").
type Config struct {
	Enabled bool `json:"enabled"`

	// SampleRate is the fraction of builder operations traced. Values >= 1
	// trace everything, values <= 0 nothing.
	SampleRate float64 `json:"sampleRate"`

	// ServiceName identifies the process in zipkin, e.g. "movesdk-cli".
	ServiceName string `json:"serviceName"`
	Version     string `json:"version"`

	ZipkinEndpoint string `json:"zipkinEndpoint"`
}

func NewDefaultConfig() Config {
	return Config{
		SampleRate:     1,
		ServiceName:    DefaultServiceName,
		ZipkinEndpoint: DefaultZipkinEndpoint,
	}
}

type tracer struct {
	oteltrace.Tracer

	tp *sdktrace.TracerProvider
}

// Close flushes buffered spans to the collector.
func (t *tracer) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return t.tp.Shutdown(ctx)
}

// New returns a tracer exporting to config.ZipkinEndpoint, or a tracer that
// records nothing when tracing is disabled.
func New(config Config) (trace.Tracer, error) {
	name := config.ServiceName
	if name == "" {
		name = DefaultServiceName
	}
	if !config.Enabled {
		return NewNoOp(name), nil
	}

	endpoint := config.ZipkinEndpoint
	if endpoint == "" {
		endpoint = DefaultZipkinEndpoint
	}
	exporter, err := zipkin.New(endpoint)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithExportTimeout(exportTimeout)),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(name),
			attribute.String("version", config.Version),
		)),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(config.SampleRate)),
	)
	return &tracer{
		Tracer: tp.Tracer(name),
		tp:     tp,
	}, nil
}
