package config

import (
	"errors"
)

type MetricsConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

func (cfg *MetricsConfig) Validate() error {
	if cfg.Host == "" {
		return errors.New("metrics host is required")
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return errors.New("metrics port must be between 1 and 65535")
	}
	return nil
}

func (cfg *MetricsConfig) GetMetricsPort() int {
	return cfg.Port
}
