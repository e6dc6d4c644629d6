// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ava-labs/movesdk/auth"
	"github.com/ava-labs/movesdk/builder"
	"github.com/ava-labs/movesdk/client"
	"github.com/ava-labs/movesdk/codec"
)

// closers run after the command finishes.
var closers []func() error

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error getting home directory:", err)
		os.Exit(1)
	}

	configDir := filepath.Join(homeDir, ".movesdk-cli")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, "Error creating config directory:", err)
		os.Exit(1)
	}

	configFile := filepath.Join(configDir, "config.yaml")
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if _, err := os.Create(configFile); err != nil {
			fmt.Fprintln(os.Stderr, "Error creating config file:", err)
			os.Exit(1)
		}
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintln(os.Stderr, "Error reading config:", err)
			os.Exit(1)
		}
	}
}

func isJSONOutputRequested(cmd *cobra.Command) (bool, error) {
	output, err := getConfigValue(cmd, "output", false)
	if err != nil {
		return false, fmt.Errorf("failed to get output format: %w", err)
	}
	return strings.ToLower(output) == "json", nil
}

func printValue(cmd *cobra.Command, v fmt.Stringer) error {
	isJSON, err := isJSONOutputRequested(cmd)
	if err != nil {
		return err
	}

	if isJSON {
		jsonBytes, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(jsonBytes))
		return nil
	}
	fmt.Println(v.String())
	return nil
}

func getConfigValue(cmd *cobra.Command, key string, required bool) (string, error) {
	// flags win over the config file
	if value, err := cmd.Flags().GetString(key); err == nil && value != "" {
		return value, nil
	}

	if value := viper.GetString(key); value != "" {
		return value, nil
	}

	if required {
		return "", fmt.Errorf("required value for %s not found", key)
	}

	return "", nil
}

func setConfigValue(key, value string) error {
	viper.Set(key, value)
	return viper.WriteConfig()
}

func newLogger(cmd *cobra.Command) (logging.Logger, error) {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return nil, err
	}
	if !verbose {
		return logging.NoLog{}, nil
	}
	return logging.NewLogger(
		"movesdk-cli",
		logging.NewWrappedCore(
			logging.Debug,
			os.Stderr,
			logging.Plain.ConsoleEncoder(),
		),
	), nil
}

func newClient(cmd *cobra.Command) (*client.Client, logging.Logger, error) {
	endpoint, err := getConfigValue(cmd, "endpoint", true)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get endpoint: %w", err)
	}
	log, err := newLogger(cmd)
	if err != nil {
		return nil, nil, err
	}
	cfg := client.NewDefaultConfig()
	cfg.URL = endpoint
	return client.New(cfg, log), log, nil
}

func newBuilder(cmd *cobra.Command) (*builder.Builder, *client.Client, error) {
	cli, log, err := newClient(cmd)
	if err != nil {
		return nil, nil, err
	}
	zipkinEndpoint, err := getConfigValue(cmd, "zipkin", false)
	if err != nil {
		return nil, nil, err
	}
	cfg := builder.NewDefaultConfig()
	cfg.Trace.Enabled = zipkinEndpoint != ""
	cfg.Trace.ServiceName = "movesdk-cli"
	cfg.Trace.ZipkinEndpoint = zipkinEndpoint

	b, err := builder.New(cli, builder.WithConfig(cfg), builder.WithLogger(log))
	if err != nil {
		return nil, nil, err
	}
	closers = append(closers, b.Close)
	return b, cli, nil
}

func loadSigner(cmd *cobra.Command) (auth.Signer, error) {
	keyString, err := getConfigValue(cmd, "key", true)
	if err != nil {
		return nil, fmt.Errorf("failed to get key: %w", err)
	}
	keyType, err := getConfigValue(cmd, "key-type", false)
	if err != nil {
		return nil, err
	}
	if keyType == "" {
		keyType = auth.ED25519Key
	}
	singleKey, err := cmd.Flags().GetBool("single-key")
	if err != nil {
		return nil, err
	}
	key, err := codec.LoadHex(keyString, -1)
	if err != nil {
		return nil, fmt.Errorf("failed to decode key: %w", err)
	}
	return auth.LoadSigner(keyType, key, singleKey || viper.GetBool("single-key"))
}
