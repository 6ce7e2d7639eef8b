package config

import (
	"flag"
	"os"
	"time"

	"github.com/gaulatti/cirrus/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-s, --service string   base URL of the service (default from Config)
//	-l, --limit int        feed page limit (default from Config)
//	-i, --interval int     sync interval in seconds (default from Config)
//
// The function filters os.Args to only the flags it knows about, using
// flagx.FilterArgs, to avoid interference with other components. The
// long forms must stay in the allow-list: cobra advertises them, and
// anything FilterArgs drops is silently ignored here.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-s", "--service",
		"-l", "--limit",
		"-i", "--interval",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServiceURL, "s", cfg.ServiceURL, "base URL of the Bluesky-compatible service")
	fs.StringVar(&cfg.ServiceURL, "service", cfg.ServiceURL, "base URL of the Bluesky-compatible service")
	fs.IntVar(&cfg.FeedLimit, "l", cfg.FeedLimit, "feed page limit")
	fs.IntVar(&cfg.FeedLimit, "limit", cfg.FeedLimit, "feed page limit")

	syncInterval := int(cfg.SyncInterval.Seconds())
	fs.IntVar(&syncInterval, "i", syncInterval, "sync interval (in seconds)")
	fs.IntVar(&syncInterval, "interval", syncInterval, "sync interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.SyncInterval = time.Duration(syncInterval) * time.Second
}
