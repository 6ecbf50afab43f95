package config

import (
	"errors"
	"time"
)

type PollerConfig struct {
	// RefreshPollingInterval drives the optional background reconciliation
	// of the stake record. Zero disables the poller entirely.
	RefreshPollingInterval time.Duration `mapstructure:"refresh-polling-interval"`
}

func (cfg *PollerConfig) Validate() error {
	if cfg.RefreshPollingInterval < 0 {
		return errors.New("refresh-polling-interval must not be negative")
	}
	return nil
}

// Enabled reports whether background reconciliation should run.
func (cfg *PollerConfig) Enabled() bool {
	return cfg.RefreshPollingInterval > 0
}
