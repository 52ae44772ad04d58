package preflight

import (
	"context"
	"fmt"

	"discauthor/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name     string
	Passed   bool
	Optional bool
	Detail   string
}

// RunAll executes the filesystem and binary checks for the given config.
// Missing optional binaries and a disk smaller than a full DVD are reported
// but do not block authoring.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	space := CheckFreeSpace("Output free space", cfg.Paths.OutputDir, DVDCapacityBytes)
	space.Optional = true
	results := []Result{
		CheckCreatableDirectory("Output directory", cfg.Paths.OutputDir),
		space,
		CheckCreatableDirectory("State directory", cfg.Paths.StateDir),
	}

	for _, status := range CheckSystemDeps(ctx, cfg) {
		result := Result{Name: status.Name, Passed: status.Available, Optional: status.Optional}
		switch {
		case status.Available && status.Version != "":
			result.Detail = fmt.Sprintf("%s (%s)", status.Path, status.Version)
		case status.Available:
			result.Detail = status.Path
		default:
			result.Detail = status.Detail
		}
		results = append(results, result)
	}
	return results
}

// Failures returns the results that block authoring.
func Failures(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed && !r.Optional {
			failed = append(failed, r)
		}
	}
	return failed
}
