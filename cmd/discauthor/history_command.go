package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"discauthor/internal/history"
	"discauthor/internal/services"
)

type buildJSON struct {
	ID          string  `json:"id"`
	Project     string  `json:"project"`
	ProjectPath string  `json:"project_path"`
	Operation   string  `json:"operation"`
	Status      string  `json:"status"`
	OutputPath  string  `json:"output_path,omitempty"`
	Digest      string  `json:"digest,omitempty"`
	Titlesets   int     `json:"titlesets"`
	Menus       int     `json:"menus"`
	Titles      int     `json:"titles"`
	Faults      int     `json:"faults"`
	Error       string  `json:"error,omitempty"`
	StartedAt   string  `json:"started_at"`
	FinishedAt  string  `json:"finished_at"`
	Seconds     float64 `json:"duration_seconds"`
}

var errHistoryDisabled = services.Wrap(services.ErrConfiguration, "history", "", "build history is disabled ([history] enabled = false)", nil)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded builds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withHistory(func(store *history.Store) error {
				builds, err := store.List(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if jsonOutput {
					rows := make([]buildJSON, 0, len(builds))
					for _, b := range builds {
						rows = append(rows, toBuildJSON(b))
					}
					return writeJSON(cmd, rows)
				}
				out := cmd.OutOrStdout()
				if len(builds) == 0 {
					fmt.Fprintln(out, "No builds recorded")
					return nil
				}
				fmt.Fprintln(out, tableSpec{
					Headers: []string{"ID", "Finished", "Operation", "Project", "Status", "Titles", "Faults", "Digest"},
					Aligns:  []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight},
				}.render(buildRows(builds, time.Now())))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of builds to show (0 for all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	cmd.AddCommand(newHistoryShowCommand(ctx))
	cmd.AddCommand(newHistoryPruneCommand(ctx))
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one recorded build (accepts an ID prefix)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withHistory(func(store *history.Store) error {
				build, err := findBuild(cmd, store, args[0])
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, toBuildJSON(*build))
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "ID:          %s\n", build.ID)
				fmt.Fprintf(out, "Project:     %s\n", build.Project)
				fmt.Fprintf(out, "Path:        %s\n", build.ProjectPath)
				fmt.Fprintf(out, "Operation:   %s\n", build.Operation)
				fmt.Fprintf(out, "Status:      %s\n", build.Status)
				fmt.Fprintf(out, "Finished:    %s (%s)\n", build.FinishedAt.Local().Format(time.DateTime), humanize.Time(build.FinishedAt))
				fmt.Fprintf(out, "Duration:    %s\n", build.Duration().Round(time.Millisecond))
				if build.OutputPath != "" {
					fmt.Fprintf(out, "Output:      %s\n", build.OutputPath)
				}
				if build.Digest != "" {
					fmt.Fprintf(out, "Digest:      %s\n", build.Digest)
				}
				fmt.Fprintf(out, "Counts:      %d titlesets, %d menus, %d titles\n", build.Titlesets, build.Menus, build.Titles)
				if build.Faults > 0 {
					fmt.Fprintf(out, "Faults:      %d\n", build.Faults)
				}
				if build.ErrorMessage != "" {
					fmt.Fprintf(out, "Error:       %s\n", build.ErrorMessage)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newHistoryPruneCommand(ctx *commandContext) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete builds older than the given number of days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 0 {
				return services.Wrap(services.ErrValidation, "history", "prune", "--days must not be negative", nil)
			}
			return ctx.withHistory(func(store *history.Store) error {
				removed, err := store.Prune(cmd.Context(), time.Now().AddDate(0, 0, -days))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d builds older than %d days\n", removed, days)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&days, "days", 90, "Keep builds newer than this many days")
	return cmd
}

func (c *commandContext) withHistory(fn func(*history.Store) error) error {
	store, err := c.openHistory()
	if err != nil {
		return err
	}
	if store == nil {
		return errHistoryDisabled
	}
	defer store.Close()
	return fn(store)
}

func findBuild(cmd *cobra.Command, store *history.Store, id string) (*history.Build, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, services.Wrap(services.ErrValidation, "history", "show", "build id required", nil)
	}
	build, err := store.Get(cmd.Context(), id)
	if err != nil {
		return nil, err
	}
	if build != nil {
		return build, nil
	}
	builds, err := store.List(cmd.Context(), 0)
	if err != nil {
		return nil, err
	}
	var match *history.Build
	for i := range builds {
		if !strings.HasPrefix(builds[i].ID, id) {
			continue
		}
		if match != nil {
			return nil, services.Wrap(services.ErrValidation, "history", "show", fmt.Sprintf("id prefix %q is ambiguous", id), nil)
		}
		match = &builds[i]
	}
	if match == nil {
		return nil, services.Wrap(services.ErrNotFound, "history", "show", fmt.Sprintf("no build %q", id), errors.New("build not found"))
	}
	return match, nil
}

func buildRows(builds []history.Build, now time.Time) [][]string {
	rows := make([][]string, 0, len(builds))
	for _, b := range builds {
		digest := b.Digest
		if len(digest) > 12 {
			digest = digest[:12]
		}
		rows = append(rows, []string{
			shortID(b.ID),
			humanize.RelTime(b.FinishedAt, now, "ago", "from now"),
			string(b.Operation),
			b.Project,
			string(b.Status),
			fmt.Sprintf("%d", b.Titles),
			fmt.Sprintf("%d", b.Faults),
			digest,
		})
	}
	return rows
}

func toBuildJSON(b history.Build) buildJSON {
	return buildJSON{
		ID:          b.ID,
		Project:     b.Project,
		ProjectPath: b.ProjectPath,
		Operation:   string(b.Operation),
		Status:      string(b.Status),
		OutputPath:  b.OutputPath,
		Digest:      b.Digest,
		Titlesets:   b.Titlesets,
		Menus:       b.Menus,
		Titles:      b.Titles,
		Faults:      b.Faults,
		Error:       b.ErrorMessage,
		StartedAt:   b.StartedAt.UTC().Format(time.RFC3339Nano),
		FinishedAt:  b.FinishedAt.UTC().Format(time.RFC3339Nano),
		Seconds:     b.Duration().Seconds(),
	}
}
