package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"discauthor/internal/authoring"
	"discauthor/internal/history"
)

func newBuildCommand(ctx *commandContext) *cobra.Command {
	var outputFlag string
	var destFlag string

	cmd := &cobra.Command{
		Use:   "build <project>",
		Short: "Render a project file to a dvdauthor document",
		Long: "Render a project file to a dvdauthor document.\n\n" +
			"The document is written to the output directory unless --output is given.\n" +
			"Use --output - to write the document to stdout.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := ctx.loadProject(cmd.Context(), args[0], history.OperationBuild)
			if err != nil {
				return ctx.finish(r, err)
			}
			output, dest, err := ctx.outputPaths(r.project.Name, outputFlag, destFlag)
			if err != nil {
				return ctx.finish(r, err)
			}
			opts := authoring.OptionsFromConfig(ctx.configValue(), dest)

			out := cmd.OutOrStdout()
			if output == "-" {
				if err := r.render(opts, ""); err != nil {
					return ctx.finish(r, err)
				}
				if _, err := out.Write(r.result.Document); err != nil {
					return ctx.finish(r, fmt.Errorf("write document: %w", err))
				}
				return ctx.finish(r, nil)
			}

			prev := ctx.previousBuild(r)
			if err := r.render(opts, output); err != nil {
				return ctx.finish(r, err)
			}
			fmt.Fprintf(out, "Wrote %s (%s)\n", output, humanize.IBytes(uint64(len(r.result.Document))))
			fmt.Fprintf(out, "Digest: %s\n", r.result.Digest)
			fmt.Fprintf(out, "Titlesets: %d  Menus: %d  Titles: %d\n", r.result.Titlesets, r.result.Menus, r.result.Titles)
			if prev != nil {
				if prev.Digest == r.result.Digest {
					fmt.Fprintf(out, "Unchanged since build %s\n", shortID(prev.ID))
				} else {
					fmt.Fprintf(out, "Changed since build %s\n", shortID(prev.ID))
				}
			}
			return ctx.finish(r, nil)
		},
	}

	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Document path (default <output_dir>/<project>.xml, - for stdout)")
	cmd.Flags().StringVar(&destFlag, "dest", "", "dvdauthor destination directory written into the document")
	return cmd
}
