// One-shot timeline command.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gaulatti/cirrus/internal/client/cli"
	"github.com/gaulatti/cirrus/internal/common"
)

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Fetch one page of the timeline and print it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		n, err := globalFeed.SynchronizeOnce(ctx)
		if err != nil {
			if errors.Is(err, common.ErrUnauthenticated) {
				return errors.New(`not logged in, run "cirrus login" first`)
			}
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprint(out, cli.RenderTimeline(globalFeed.Timeline()))
		fmt.Fprintln(out, cli.RenderStatus(fmt.Sprintf("%d new item(s)", n)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(timelineCmd)
}
