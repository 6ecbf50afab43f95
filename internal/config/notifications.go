package config

import (
	"errors"
	"time"
)

const defaultNotificationTTL = 3 * time.Second

type NotificationsConfig struct {
	// TTL is how long a posted message stays visible before it self-expires.
	TTL time.Duration `mapstructure:"ttl"`
}

func (cfg *NotificationsConfig) Validate() error {
	if cfg.TTL < 0 {
		return errors.New("notifications ttl must not be negative")
	}
	if cfg.TTL == 0 {
		cfg.TTL = defaultNotificationTTL
	}
	return nil
}
