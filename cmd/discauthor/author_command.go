package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"discauthor/internal/authoring"
	"discauthor/internal/history"
	"discauthor/internal/logging"
	"discauthor/internal/preflight"
	"discauthor/internal/services"
	"discauthor/internal/services/dvdauthor"
)

const destLockName = ".discauthor.lock"

func newAuthorCommand(ctx *commandContext) *cobra.Command {
	var outputFlag string
	var destFlag string

	cmd := &cobra.Command{
		Use:   "author <project>",
		Short: "Build a project and run dvdauthor on the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := ctx.loadProject(cmd.Context(), args[0], history.OperationAuthor)
			if err != nil {
				return ctx.finish(r, err)
			}
			return ctx.finish(r, ctx.author(cmd, r, outputFlag, destFlag))
		},
	}

	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Document path (default <output_dir>/<project>.xml)")
	cmd.Flags().StringVar(&destFlag, "dest", "", "dvdauthor destination directory (default <output_dir>/<project>)")
	return cmd
}

func (c *commandContext) author(cmd *cobra.Command, r *run, outputFlag, destFlag string) error {
	cfg := c.configValue()
	if strings.TrimSpace(outputFlag) == "-" {
		return services.Wrap(services.ErrValidation, "author", "output", "authoring needs a document file, not stdout", nil)
	}
	output, dest, err := c.outputPaths(r.project.Name, outputFlag, destFlag)
	if err != nil {
		return err
	}

	for _, check := range preflight.RunAll(r.ctx, cfg) {
		if check.Passed {
			continue
		}
		if check.Optional {
			r.logger.Info("preflight advisory",
				logging.String("check", check.Name),
				logging.String("detail", check.Detail),
			)
			continue
		}
		return services.Wrap(services.ErrConfiguration, "preflight", check.Name, check.Detail, nil)
	}

	if err := r.render(authoring.OptionsFromConfig(cfg, dest), output); err != nil {
		return err
	}

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return services.Wrap(services.ErrConfiguration, "author", "prepare", "create destination", err)
	}
	lock := flock.New(filepath.Join(dest, destLockName))
	locked, err := lock.TryLock()
	if err != nil {
		return services.Wrap(services.ErrTransient, "author", "lock", dest, err)
	}
	if !locked {
		return services.Wrap(services.ErrTransient, "author", "lock", "destination is being authored by another process", nil)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	client, err := dvdauthor.New(cfg.DVDAuthor.Binary, cfg.DVDAuthor.Timeout,
		dvdauthor.WithVideoFormat(cfg.DVDAuthor.VideoFormat))
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "author", "dvdauthor", "", err)
	}

	r.logger.Info("dvdauthor started",
		logging.String("document", output),
		logging.String("dest", dest),
	)
	result, err := client.Author(r.ctx, output, func(event dvdauthor.Event) {
		logDVDAuthorEvent(r, event)
	})
	if err != nil {
		return err
	}
	r.logger.Info("dvdauthor finished",
		logging.Duration("duration", result.Duration),
		logging.Int("warnings", len(result.Warnings)),
	)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Authored %s into %s\n", r.project.Name, dest)
	fmt.Fprintf(out, "Document: %s\n", output)
	fmt.Fprintf(out, "Digest: %s\n", r.result.Digest)
	if len(result.Warnings) > 0 {
		fmt.Fprintf(out, "Warnings (%d):\n", len(result.Warnings))
		for _, warning := range result.Warnings {
			fmt.Fprintf(out, "  - %s\n", warning)
		}
	}
	return nil
}

func logDVDAuthorEvent(r *run, event dvdauthor.Event) {
	attrs := []logging.Attr{
		logging.String(logging.FieldComponent, "dvdauthor"),
		logging.String("line", event.Message),
	}
	switch event.Kind {
	case dvdauthor.EventWarning:
		r.logger.WarnContext(r.ctx, "dvdauthor warning", logging.Args(attrs...)...)
	case dvdauthor.EventError:
		r.logger.ErrorContext(r.ctx, "dvdauthor error", logging.Args(attrs...)...)
	default:
		r.logger.DebugContext(r.ctx, "dvdauthor output", logging.Args(attrs...)...)
	}
}
