// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config provides a generic map-based configuration for storing
// multiple configurations in a single value.
//
// The builder, client and tracer each read their own section of one
// [Config], so a single JSON document can configure all of them.
package config

import (
	"encoding/json"
	"fmt"
)

// Config maps a section name to its raw JSON.
type Config map[string]json.RawMessage

// New decodes a [Config] from b. Empty input yields an empty Config.
func New(b []byte) (Config, error) {
	c := make(Config)
	if len(b) == 0 {
		return c, nil
	}
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return c, nil
}

// GetConfig decodes the section named key over defaultConfig. A missing
// section returns defaultConfig unchanged.
func GetConfig[T any](c Config, key string, defaultConfig T) (T, error) {
	raw, ok := c[key]
	if !ok {
		return defaultConfig, nil
	}
	if err := json.Unmarshal(raw, &defaultConfig); err != nil {
		return defaultConfig, fmt.Errorf("failed to unmarshal %q config: %w", key, err)
	}
	return defaultConfig, nil
}

// SetConfig stores value as the section named key.
func SetConfig[T any](c Config, key string, value T) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c[key] = b
	return nil
}
