package config

import (
	"errors"
)

type WalletConfig struct {
	// KeypairPath points at a solana-keygen JSON keypair file. The wallet
	// capability is unavailable when the file is missing or unreadable.
	KeypairPath string `mapstructure:"keypair-path"`
}

func (cfg *WalletConfig) Validate() error {
	if cfg.KeypairPath == "" {
		return errors.New("wallet keypair-path is required")
	}
	return nil
}
