package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"discauthor/internal/logs"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var lines int
	var follow bool
	var buildID string
	var match string

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the discauthor log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := cfg.LogPath()
			filter := logs.Containing(buildID, match)

			recent, offset, err := logs.Last(path, lines, filter)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, line := range recent {
				fmt.Fprintln(out, line)
			}
			if !follow {
				return nil
			}
			return logs.Follow(cmd.Context(), path, offset, 250*time.Millisecond, filter, func(line string) {
				fmt.Fprintln(out, line)
			})
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of trailing lines to show")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing new lines until interrupted")
	cmd.Flags().StringVar(&buildID, "build", "", "Only show lines for this build ID")
	cmd.Flags().StringVar(&match, "grep", "", "Only show lines containing this text")
	return cmd
}
