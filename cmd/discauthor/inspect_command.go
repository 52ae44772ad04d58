package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"discauthor/internal/authoring"
	"discauthor/internal/discgraph"
	"discauthor/internal/textutil"
)

type addressJSON struct {
	ID       string `json:"id"`
	Key      string `json:"key,omitempty"`
	Kind     string `json:"kind"`
	Name     string `json:"name,omitempty"`
	Location string `json:"location"`
	Jump     string `json:"jump"`
}

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "inspect <project>",
		Short: "Print the address assigned to every attached node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := ctx.loadProject(cmd.Context(), args[0], "")
			if err != nil {
				return err
			}
			_, dest, err := ctx.outputPaths(r.project.Name, "", "")
			if err != nil {
				return err
			}
			result, err := authoring.NewCompiler(r.logger).Render(r.project.Disc, authoring.OptionsFromConfig(ctx.configValue(), dest))
			if err != nil {
				return err
			}

			keys := keysByID(r.project.Keys)
			if jsonOutput {
				rows := make([]addressJSON, 0, len(result.Addresses))
				for _, row := range result.Addresses {
					rows = append(rows, addressJSON{
						ID:       row.ID.String(),
						Key:      keys[row.ID],
						Kind:     string(row.Kind),
						Name:     row.Name,
						Location: row.Address.Location(),
						Jump:     row.Address.Full(),
					})
				}
				return writeJSON(cmd, rows)
			}
			printAddresses(cmd.OutOrStdout(), r.project.Name, result, keys)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func keysByID(keys map[string]discgraph.ID) map[discgraph.ID]string {
	out := make(map[discgraph.ID]string, len(keys))
	for key, id := range keys {
		out[id] = key
	}
	return out
}

func printAddresses(out io.Writer, name string, result *authoring.Result, keys map[discgraph.ID]string) {
	rows := make([][]string, 0, len(result.Addresses))
	for _, row := range result.Addresses {
		rows = append(rows, []string{
			row.ID.String(),
			keys[row.ID],
			textutil.DisplayLabel(string(row.Kind)),
			row.Name,
			row.Address.Location(),
			row.Address.Full(),
		})
	}
	fmt.Fprintf(out, "%s: %d titlesets, %d menus, %d titles\n", name, result.Titlesets, result.Menus, result.Titles)
	fmt.Fprintln(out, tableSpec{
		Title:    "Address map",
		Headers:  []string{"ID", "Key", "Kind", "Name", "Location", "Jump"},
		WidthMax: map[int]int{3: 32},
	}.render(rows))
}
