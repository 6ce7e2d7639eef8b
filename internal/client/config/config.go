// Package config loads runtime settings for the cirrus client.
//
// Sources are layered, later ones overriding earlier ones:
// built-in defaults, then a JSON file (-c/-config), then CIRRUS_*
// environment variables, then command-line flags.
package config

import "time"

const defaultSyncInterval = 10 * time.Second

// Config holds runtime settings for the cirrus client.
type Config struct {
	// ServiceURL is the base URL of the Bluesky-compatible service.
	ServiceURL string

	// FeedLimit is the page size requested per synchronization cycle.
	FeedLimit int

	// SyncInterval is the cadence of the watch loop.
	SyncInterval time.Duration

	// RequestTimeout bounds every network call.
	RequestTimeout time.Duration

	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServiceURL = "https://bsky.social"
	c.FeedLimit = 50
	c.SyncInterval = defaultSyncInterval
	c.RequestTimeout = 30 * time.Second
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present), environment variables, and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseEnv(cfg)
	parseFlags(cfg)

	// time.NewTicker panics on non-positive intervals.
	if cfg.SyncInterval <= 0 {
		cfg.SyncInterval = defaultSyncInterval
	}

	return cfg
}
