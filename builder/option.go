// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package builder

import (
	"time"

	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
)

type settings struct {
	config     Config
	log        logging.Logger
	tracer     trace.Tracer
	registerer prometheus.Registerer
	now        func() time.Time
}

type Option func(*settings)

func WithConfig(config Config) Option {
	return func(s *settings) {
		s.config = config
	}
}

func WithLogger(log logging.Logger) Option {
	return func(s *settings) {
		s.log = log
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *settings) {
		s.tracer = tracer
	}
}

// WithRegisterer registers the builder's metrics on r instead of a private
// registry.
func WithRegisterer(r prometheus.Registerer) Option {
	return func(s *settings) {
		s.registerer = r
	}
}

// WithClock replaces the clock used for default expirations.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		s.now = now
	}
}
