package services

import "context"

type contextKey string

const (
	projectKey contextKey = "project"
	stageKey   contextKey = "stage"
	buildIDKey contextKey = "build_id"
)

// WithProject annotates context with the project being authored.
func WithProject(ctx context.Context, project string) context.Context {
	if project == "" {
		return ctx
	}
	return context.WithValue(ctx, projectKey, project)
}

// ProjectFromContext returns the project name if present.
func ProjectFromContext(ctx context.Context) (string, bool) {
	return stringValue(ctx, projectKey)
}

// WithStage annotates context with the pipeline stage name.
func WithStage(ctx context.Context, stage string) context.Context {
	if stage == "" {
		return ctx
	}
	return context.WithValue(ctx, stageKey, stage)
}

// StageFromContext returns the stage name if present.
func StageFromContext(ctx context.Context) (string, bool) {
	return stringValue(ctx, stageKey)
}

// WithBuildID annotates context with a build history identifier.
func WithBuildID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, buildIDKey, id)
}

// BuildIDFromContext extracts the build identifier if present.
func BuildIDFromContext(ctx context.Context) (string, bool) {
	return stringValue(ctx, buildIDKey)
}

func stringValue(ctx context.Context, key contextKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(key).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
