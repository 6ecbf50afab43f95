package config

import (
	"errors"
	"time"
)

type LedgerConfig struct {
	// RPCAddr specifies the full URL of the ledger RPC endpoint.
	RPCAddr             string        `mapstructure:"rpc-addr"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRetryTimes       uint          `mapstructure:"max-retry-times"`
	RetryInterval       time.Duration `mapstructure:"retry-interval"`
	ConfirmMaxAttempts  uint          `mapstructure:"confirm-max-attempts"`
	ConfirmPollInterval time.Duration `mapstructure:"confirm-poll-interval"`
}

func (cfg *LedgerConfig) Validate() error {
	if cfg.RPCAddr == "" {
		return errors.New("ledger rpc-addr is required")
	}
	if cfg.Timeout <= 0 {
		return errors.New("ledger timeout must be positive")
	}
	if cfg.MaxRetryTimes == 0 {
		return errors.New("ledger max-retry-times is required")
	}
	if cfg.RetryInterval <= 0 {
		return errors.New("ledger retry-interval must be positive")
	}
	if cfg.ConfirmMaxAttempts == 0 {
		return errors.New("ledger confirm-max-attempts is required")
	}
	if cfg.ConfirmPollInterval <= 0 {
		return errors.New("ledger confirm-poll-interval must be positive")
	}
	return nil
}
