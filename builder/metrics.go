// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package builder

import (
	"github.com/ava-labs/avalanchego/utils/metric"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	abiCacheHits       prometheus.Counter
	abiCacheMisses     prometheus.Counter
	abiFetchFailures   prometheus.Counter
	transactionsBuilt  prometheus.Counter
	transactionsSigned prometheus.Counter
	submitted          prometheus.Counter

	abiFetch metric.Averager
}

func newMetrics(namespace string, r prometheus.Registerer) (*metrics, error) {
	abiFetch, err := metric.NewAverager(
		"",
		namespace+"_builder_abi_fetch",
		"time spent fetching module ABIs",
		r,
	)
	if err != nil {
		return nil, err
	}

	m := &metrics{
		abiCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "abi_cache_hits",
			Help:      "number of ABI lookups served from the cache",
		}),
		abiCacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "abi_cache_misses",
			Help:      "number of ABI lookups that went to the ledger",
		}),
		abiFetchFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "abi_fetch_failures",
			Help:      "number of failed ABI fetches",
		}),
		transactionsBuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_built",
			Help:      "number of raw transactions built",
		}),
		transactionsSigned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_signed",
			Help:      "number of signed transactions assembled",
		}),
		submitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_submitted",
			Help:      "number of transactions accepted by the ledger",
		}),
		abiFetch: abiFetch,
	}

	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.abiCacheHits),
		r.Register(m.abiCacheMisses),
		r.Register(m.abiFetchFailures),
		r.Register(m.transactionsBuilt),
		r.Register(m.transactionsSigned),
		r.Register(m.submitted),
	)
	return m, errs.Err
}
