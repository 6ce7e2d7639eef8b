package config

import (
	"encoding/json"
	"os"

	"github.com/gaulatti/cirrus/internal/flagx"
	"github.com/gaulatti/cirrus/internal/timex"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. It relies
// on timex.Duration so intervals can be written either as strings like
// "10s" or as integer nanoseconds. Absent fields leave the current value
// in place.
type jsonConfig struct {
	ServiceURL     string          `json:"service_url"`
	FeedLimit      *int            `json:"feed_limit"`
	SyncInterval   *timex.Duration `json:"sync_interval"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	LogLevel       string          `json:"log_level"`
}

// parseJSON overlays cfg with values loaded from the JSON file named by
// the -c/-config flag. No flag means no JSON layer. Read or unmarshal
// errors panic (caller may recover); a missing config was asked for
// explicitly, so silence would hide a user mistake.
func parseJSON(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServiceURL != "" {
		cfg.ServiceURL = jc.ServiceURL
	}
	if jc.FeedLimit != nil {
		cfg.FeedLimit = *jc.FeedLimit
	}
	if jc.SyncInterval != nil {
		cfg.SyncInterval = jc.SyncInterval.Duration
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
