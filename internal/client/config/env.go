package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// envConfig is a DTO for the environment layer. Tags carry no defaults:
// an unset variable leaves the zero value, which parseEnv skips so
// earlier layers survive.
type envConfig struct {
	ServiceURL     string        `env:"CIRRUS_SERVICE_URL"`
	FeedLimit      int           `env:"CIRRUS_FEED_LIMIT"`
	SyncInterval   time.Duration `env:"CIRRUS_SYNC_INTERVAL"`
	RequestTimeout time.Duration `env:"CIRRUS_REQUEST_TIMEOUT"`
	LogLevel       string        `env:"CIRRUS_LOG_LEVEL"`
}

// parseEnv overlays cfg with values from CIRRUS_* environment variables.
func parseEnv(cfg *Config) {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		panic(err)
	}

	if ec.ServiceURL != "" {
		cfg.ServiceURL = ec.ServiceURL
	}
	if ec.FeedLimit != 0 {
		cfg.FeedLimit = ec.FeedLimit
	}
	if ec.SyncInterval != 0 {
		cfg.SyncInterval = ec.SyncInterval
	}
	if ec.RequestTimeout != 0 {
		cfg.RequestTimeout = ec.RequestTimeout
	}
	if ec.LogLevel != "" {
		cfg.LogLevel = ec.LogLevel
	}
}
