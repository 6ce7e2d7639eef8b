// Continuous timeline watch command.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gaulatti/cirrus/internal/client/cli"
	"github.com/gaulatti/cirrus/internal/client/feed"
	"github.com/gaulatti/cirrus/internal/common"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow the timeline, printing new posts as they arrive",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()

	// A dedicated synchronizer so new items stream to the terminal the
	// moment a cycle merges them.
	watcher := feed.New(globalSession, globalGateway, globalLogger,
		feed.WithLimit(globalConfig.FeedLimit),
		feed.WithOnNewItems(func(items []feed.Item) {
			fmt.Fprint(out, cli.RenderTimeline(items))
		}))

	if _, err := watcher.SynchronizeOnce(ctx); err != nil {
		if errors.Is(err, common.ErrUnauthenticated) {
			return errors.New(`not logged in, run "cirrus login" first`)
		}
		globalLogger.Warn(ctx, "timeline sync failed", "err", err)
		fmt.Fprintln(out, cli.RenderStatus("sync failed, will retry"))
	}

	fmt.Fprintln(out, cli.RenderStatus(fmt.Sprintf("watching every %s, Ctrl-C to stop", globalConfig.SyncInterval)))

	ticker := time.NewTicker(globalConfig.SyncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := watcher.SynchronizeOnce(ctx); err != nil {
				// Already-displayed items stay put; the next tick retries.
				globalLogger.Warn(ctx, "timeline sync failed", "err", err)
				fmt.Fprintln(out, cli.RenderStatus("sync failed, will retry"))
			}
		case <-ctx.Done():
			fmt.Fprintln(out, cli.RenderStatus("stopped"))
			return nil
		}
	}
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
