package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"discauthor/internal/authoring"
	"discauthor/internal/history"
	"discauthor/internal/linker"
)

type faultJSON struct {
	Kind    string `json:"kind"`
	Node    string `json:"node"`
	Label   string `json:"label"`
	Address string `json:"address,omitempty"`
	Field   string `json:"field,omitempty"`
	Token   string `json:"token,omitempty"`
}

type checkJSON struct {
	Project   string      `json:"project"`
	OK        bool        `json:"ok"`
	Titlesets int         `json:"titlesets"`
	Menus     int         `json:"menus"`
	Titles    int         `json:"titles"`
	Faults    []faultJSON `json:"faults,omitempty"`
	Error     string      `json:"error,omitempty"`
}

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "check <project>",
		Short: "Render a project in memory and report every fault",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := ctx.loadProject(cmd.Context(), args[0], history.OperationCheck)
			if err != nil {
				return ctx.finish(r, err)
			}
			_, dest, err := ctx.outputPaths(r.project.Name, "", "")
			if err != nil {
				return ctx.finish(r, err)
			}
			renderErr := r.render(authoring.OptionsFromConfig(ctx.configValue(), dest), "")

			out := cmd.OutOrStdout()
			if jsonOutput {
				if err := writeJSON(cmd, checkReport(r, renderErr)); err != nil {
					return ctx.finish(r, err)
				}
				return ctx.finish(r, renderErr)
			}
			printCheck(out, r, renderErr)
			return ctx.finish(r, renderErr)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func checkReport(r *run, renderErr error) checkJSON {
	report := checkJSON{Project: r.project.Name, OK: renderErr == nil}
	if r.result != nil {
		report.Titlesets = r.result.Titlesets
		report.Menus = r.result.Menus
		report.Titles = r.result.Titles
	}
	var faults *linker.FaultError
	if errors.As(renderErr, &faults) {
		for _, f := range faults.Faults {
			report.Faults = append(report.Faults, faultJSON{
				Kind:    f.Kind.String(),
				Node:    f.Node.String(),
				Label:   f.Label,
				Address: f.Address.Location(),
				Field:   f.Field,
				Token:   f.Token,
			})
		}
	} else if renderErr != nil {
		report.Error = renderErr.Error()
	}
	return report
}

func printCheck(out io.Writer, r *run, renderErr error) {
	if renderErr == nil {
		fmt.Fprintf(out, "%s: no faults (%d titlesets, %d menus, %d titles)\n",
			r.project.Name, r.result.Titlesets, r.result.Menus, r.result.Titles)
		return
	}

	var faults *linker.FaultError
	if !errors.As(renderErr, &faults) {
		return
	}
	rows := make([][]string, 0, len(faults.Faults))
	for i, f := range faults.Faults {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			f.Kind.String(),
			f.Label,
			f.Address.Location(),
			f.Field,
			f.Token,
		})
	}
	fmt.Fprintf(out, "%s: %d content missing, %d unresolved references\n",
		r.project.Name, len(faults.ContentMissing()), len(faults.UnresolvedReferences()))
	fmt.Fprintln(out, tableSpec{
		Headers:  []string{"#", "Fault", "Node", "Address", "Field", "Token"},
		Aligns:   []columnAlignment{alignRight},
		WidthMax: map[int]int{2: 40},
	}.render(rows))
}
