package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Ledger        LedgerConfig        `mapstructure:"ledger"`
	Wallet        WalletConfig        `mapstructure:"wallet"`
	Server        ServerConfig        `mapstructure:"server"`
	Metrics       MetricsConfig       `mapstructure:"metrics"`
	Poller        PollerConfig        `mapstructure:"poller"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
}

func (cfg *Config) Validate() error {
	if err := cfg.Ledger.Validate(); err != nil {
		return err
	}
	if err := cfg.Wallet.Validate(); err != nil {
		return err
	}
	if err := cfg.Server.Validate(); err != nil {
		return err
	}
	if err := cfg.Metrics.Validate(); err != nil {
		return err
	}
	if err := cfg.Poller.Validate(); err != nil {
		return err
	}
	if err := cfg.Notifications.Validate(); err != nil {
		return err
	}
	return nil
}

// New returns a fully parsed configuration from the given file path.
func New(cfgFile string) (*Config, error) {
	viper.SetConfigFile(cfgFile)
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", cfgFile, err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config file %s: %w", cfgFile, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
