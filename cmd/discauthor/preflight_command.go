package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"discauthor/internal/preflight"
	"discauthor/internal/services"
)

func newPreflightCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "preflight",
		Short: "Check authoring binaries and output directories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			results := preflight.RunAll(cmd.Context(), cfg)
			failures := preflight.Failures(results)

			if jsonOutput {
				if err := writeJSON(cmd, results); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				writeLines(out, preflightLines(results, ctx.configPath, shouldColorize(out)))
			}
			if len(failures) > 0 {
				return services.Wrap(services.ErrConfiguration, "preflight", "",
					fmt.Sprintf("%d required checks failed", len(failures)), nil)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func preflightLines(results []preflight.Result, configPath string, colorize bool) []string {
	lines := renderSectionHeader("Configuration", colorize)
	if configPath != "" {
		lines = append(lines, renderStatusLine("Config file", statusInfo, configPath, colorize))
	}
	lines = append(lines, "")
	lines = append(lines, renderSectionHeader("Preflight", colorize)...)

	failed := 0
	for _, r := range results {
		kind := statusOK
		switch {
		case !r.Passed && r.Optional:
			kind = statusWarn
		case !r.Passed:
			kind = statusError
			failed++
		}
		lines = append(lines, renderStatusLine(r.Name, kind, r.Detail, colorize))
	}

	summaryKind := statusOK
	summary := "All required checks passed"
	if failed > 0 {
		summaryKind = statusError
		summary = fmt.Sprintf("%d required checks failed", failed)
	}
	lines = append(lines, renderStatusLine("Summary", summaryKind, summary, colorize))
	return lines
}

func writeLines(out io.Writer, lines []string) {
	for _, line := range lines {
		fmt.Fprintln(out, line)
	}
}
