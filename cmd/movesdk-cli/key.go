// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ava-labs/movesdk/auth"
	"github.com/ava-labs/movesdk/cli/prompt"
	"github.com/ava-labs/movesdk/codec"
)

var keyTypes = []string{auth.ED25519Key, auth.Secp256k1Key}

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage keys",
}

var keyGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new key and store it in the config",
	RunE: func(cmd *cobra.Command, _ []string) error {
		keyType, err := cmd.Flags().GetString("type")
		if err != nil {
			return err
		}
		if keyType == "" {
			isJSON, err := isJSONOutputRequested(cmd)
			if err != nil {
				return err
			}
			if isJSON {
				return errors.New("--type is required with json output")
			}
			index, err := prompt.Choice("key type", keyTypes)
			if err != nil {
				return err
			}
			keyType = keyTypes[index]
		}

		var key auth.PrivateKey
		switch keyType {
		case auth.ED25519Key:
			key, err = auth.GenerateEd25519PrivateKey()
		case auth.Secp256k1Key:
			key, err = auth.GenerateSecp256k1PrivateKey()
		default:
			return fmt.Errorf("%w: %s", auth.ErrInvalidKeyType, keyType)
		}
		if err != nil {
			return fmt.Errorf("failed to generate key: %w", err)
		}
		return storeKey(cmd, keyType, key.Bytes())
	},
}

var keySetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store an existing private key in the config",
	RunE: func(cmd *cobra.Command, _ []string) error {
		keyString, err := cmd.Flags().GetString("key")
		if err != nil {
			return err
		}
		keyType, err := cmd.Flags().GetString("key-type")
		if err != nil {
			return err
		}
		if keyType == "" {
			keyType = auth.ED25519Key
		}
		key, err := codec.LoadHex(keyString, -1)
		if err != nil {
			return fmt.Errorf("failed to decode key: %w", err)
		}
		return storeKey(cmd, keyType, key)
	},
}

func storeKey(cmd *cobra.Command, keyType string, key []byte) error {
	singleKey, err := cmd.Flags().GetBool("single-key")
	if err != nil {
		return err
	}
	signer, err := auth.LoadSigner(keyType, key, singleKey)
	if err != nil {
		return err
	}
	if err := setConfigValue("key", codec.ToHex(key)); err != nil {
		return fmt.Errorf("failed to store key: %w", err)
	}
	if err := setConfigValue("key-type", keyType); err != nil {
		return fmt.Errorf("failed to store key type: %w", err)
	}
	return printValue(cmd, keyCmdResponse{
		Address:   signer.Address().String(),
		PublicKey: signer.PublicKey().String(),
		KeyType:   keyType,
	})
}

type keyCmdResponse struct {
	Address   string `json:"address"`
	PublicKey string `json:"publicKey"`
	KeyType   string `json:"keyType"`
}

func (r keyCmdResponse) String() string {
	return fmt.Sprintf("✅ Stored %s key\naddress: %s\npublic key: %s", r.KeyType, r.Address, r.PublicKey)
}

func init() {
	rootCmd.AddCommand(keyCmd)
	keyCmd.AddCommand(keyGenerateCmd, keySetCmd)
	keyGenerateCmd.Flags().String("type", "", "Key type (ed25519 or secp256k1)")
}
