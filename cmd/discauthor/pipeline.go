package main

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"discauthor/internal/authoring"
	"discauthor/internal/history"
	"discauthor/internal/linker"
	"discauthor/internal/logging"
	"discauthor/internal/project"
	"discauthor/internal/services"
	"discauthor/internal/textutil"
)

// run carries one command invocation from project load to history record.
type run struct {
	ctx     context.Context
	logger  *slog.Logger
	project *project.Project
	result  *authoring.Result
	build   history.Build
}

func documentName(projectName string) string {
	return textutil.DocumentFileName(projectName)
}

func destName(projectName string) string {
	return textutil.SanitizeToken(projectName)
}

// loadProject starts a run for the project at path. The returned run is
// non-nil even when loading fails so the failure can be recorded.
func (c *commandContext) loadProject(ctx context.Context, path string, op history.Operation) (*run, error) {
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	abs, absErr := filepath.Abs(path)
	if absErr != nil {
		abs = path
	}
	r := &run{
		ctx:    ctx,
		logger: logger,
		build: history.Build{
			ID:          uuid.NewString(),
			ProjectPath: abs,
			Operation:   op,
			StartedAt:   time.Now().UTC(),
		},
	}
	r.ctx = services.WithBuildID(services.WithStage(ctx, string(op)), r.build.ID)

	proj, err := project.Load(path)
	if err != nil {
		r.logger = logging.WithContext(r.ctx, logger)
		return r, err
	}
	r.project = proj
	r.build.Project = proj.Name
	r.build.ProjectPath = proj.Path
	r.ctx = services.WithProject(r.ctx, proj.Name)
	r.logger = logging.WithContext(r.ctx, logger)
	r.logger.Debug("project loaded",
		logging.String("path", proj.Path),
		logging.Int("keys", len(proj.Keys)),
		logging.Int("detached", len(proj.Detached)),
	)
	return r, nil
}

// render compiles the loaded project. An empty output renders in memory;
// otherwise the document is written to output.
func (r *run) render(opts authoring.Options, output string) error {
	compiler := authoring.NewCompiler(r.logger)
	var (
		result *authoring.Result
		err    error
	)
	if output == "" {
		result, err = compiler.Render(r.project.Disc, opts)
	} else {
		result, err = compiler.WriteFile(r.ctx, r.project.Disc, output, opts)
		r.build.OutputPath = output
	}
	if err != nil {
		var faults *linker.FaultError
		if errors.As(err, &faults) {
			r.build.Faults = len(faults.Faults)
		}
		var dup *linker.DuplicateIdentifierError
		if errors.As(err, &dup) {
			r.build.Faults = 1
		}
		return err
	}
	r.result = result
	r.build.Digest = result.Digest
	r.build.Titlesets = result.Titlesets
	r.build.Menus = result.Menus
	r.build.Titles = result.Titles
	return nil
}

// finish records the run in build history and returns err unchanged.
// Recording failures are logged and never replace the run's own outcome.
func (c *commandContext) finish(r *run, err error) error {
	if r == nil {
		return err
	}
	r.build.FinishedAt = time.Now().UTC()
	r.build.Status = history.StatusFor(err)
	if err != nil {
		r.build.ErrorMessage = err.Error()
	}

	store, openErr := c.openHistory()
	if openErr != nil {
		logging.WarnWithContext(r.logger, "build history unavailable", "history_open_failed",
			logging.Error(openErr),
			logging.String(logging.FieldImpact, "this run is not recorded"),
		)
		return err
	}
	if store == nil {
		return err
	}
	defer store.Close()

	if _, recErr := store.Record(r.ctx, r.build); recErr != nil {
		logging.WarnWithContext(r.logger, "build history record failed", "history_record_failed",
			logging.Error(recErr),
			logging.String(logging.FieldImpact, "this run is not recorded"),
		)
		return err
	}
	r.logger.Debug("build recorded",
		logging.String("status", string(r.build.Status)),
		logging.Duration("duration", r.build.Duration()),
	)
	return err
}

// previousBuild returns the last successful recorded build of the run's
// project, or nil when history is disabled or empty.
func (c *commandContext) previousBuild(r *run) *history.Build {
	store, err := c.openHistory()
	if err != nil || store == nil {
		return nil
	}
	defer store.Close()
	prev, err := store.LastSuccessful(r.ctx, r.build.ProjectPath)
	if err != nil {
		r.logger.Debug("previous build lookup failed", logging.Error(err))
		return nil
	}
	return prev
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
