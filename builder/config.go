// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package builder

import (
	"time"

	"github.com/ava-labs/movesdk/config"
	"github.com/ava-labs/movesdk/trace"
)

const (
	Namespace = "builder"

	DefaultMaxGasAmount      = 200_000
	DefaultExpirationSeconds = 20
	DefaultABICacheTTL       = 5 * time.Minute
	DefaultABICacheSize      = 1_024
	DefaultPrefetchWorkers   = 4
)

type Config struct {
	MaxGasAmount      uint64        `json:"maxGasAmount"`
	ExpirationSeconds uint64        `json:"expirationSeconds"`
	ABICacheTTL       time.Duration `json:"abiCacheTTL"`
	ABICacheSize      int           `json:"abiCacheSize"`
	PrefetchWorkers   int           `json:"prefetchWorkers"`
	MetricsNamespace  string        `json:"metricsNamespace"`

	// Trace configures the tracer a builder creates when none is passed
	// with [WithTracer].
	Trace trace.Config `json:"trace"`
}

func NewDefaultConfig() Config {
	return Config{
		MaxGasAmount:      DefaultMaxGasAmount,
		ExpirationSeconds: DefaultExpirationSeconds,
		ABICacheTTL:       DefaultABICacheTTL,
		ABICacheSize:      DefaultABICacheSize,
		PrefetchWorkers:   DefaultPrefetchWorkers,
		MetricsNamespace:  "movesdk",
		Trace:             trace.NewDefaultConfig(),
	}
}

// LoadConfig reads the "builder" section of c over the defaults.
func LoadConfig(c config.Config) (Config, error) {
	return config.GetConfig(c, Namespace, NewDefaultConfig())
}
