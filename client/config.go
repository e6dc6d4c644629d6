// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package client

import (
	"time"

	"github.com/ava-labs/movesdk/config"
)

const (
	Namespace = "client"

	DefaultURL          = "http://127.0.0.1:8080/v1"
	DefaultTimeout      = 10 * time.Second
	DefaultPollInterval = 500 * time.Millisecond
)

type Config struct {
	// URL is the REST root of a full node, including its version prefix.
	URL          string        `json:"url"`
	Timeout      time.Duration `json:"timeout"`
	PollInterval time.Duration `json:"pollInterval"`
}

func NewDefaultConfig() Config {
	return Config{
		URL:          DefaultURL,
		Timeout:      DefaultTimeout,
		PollInterval: DefaultPollInterval,
	}
}

// LoadConfig reads the "client" section of c over the defaults.
func LoadConfig(c config.Config) (Config, error) {
	return config.GetConfig(c, Namespace, NewDefaultConfig())
}
