// Root command and shared wiring for the cirrus CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/gaulatti/cirrus/internal/buildinfo"
	"github.com/gaulatti/cirrus/internal/client/api"
	"github.com/gaulatti/cirrus/internal/client/config"
	"github.com/gaulatti/cirrus/internal/client/feed"
	"github.com/gaulatti/cirrus/internal/client/keyring"
	"github.com/gaulatti/cirrus/internal/client/session"
	"github.com/gaulatti/cirrus/internal/logging"
)

var (
	globalConfig  *config.Config
	globalLogger  logging.Logger
	globalGateway *api.HTTPGateway
	globalSession *session.Manager
	globalFeed    *feed.Synchronizer
)

var rootCmd = &cobra.Command{
	Use:   "cirrus",
	Short: "A Bluesky timeline client for the terminal",
	Long: `cirrus follows your Bluesky timeline from the terminal.

It keeps the session in the system keyring, refreshes tokens
transparently, and merges feed pages into a deduplicated timeline.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		// The flags below are declared for cobra's benefit; the actual
		// layering (defaults -> JSON -> env -> flags) happens in
		// config.LoadConfig, which reads os.Args itself.
		cfg := config.LoadConfig()
		globalConfig = cfg

		globalLogger = logging.New(os.Stderr, cfg.LogLevel)
		globalGateway = api.NewHTTPGateway(cfg.ServiceURL, cfg.RequestTimeout)
		globalSession = session.New(globalGateway, keyring.NewSystemStore(), globalLogger)
		globalFeed = feed.New(globalSession, globalGateway, globalLogger, feed.WithLimit(cfg.FeedLimit))

		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		buildinfo.Print(cmd.OutOrStdout())
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringP("config", "c", "", "path to JSON config file")
	pf.StringP("service", "s", "https://bsky.social", "base URL of the Bluesky-compatible service")
	pf.IntP("limit", "l", 50, "feed page limit")
	pf.IntP("interval", "i", 10, "sync interval in seconds")

	rootCmd.AddCommand(versionCmd)
}
