package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrExternalTool  = errors.New("external tool error")
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrNotFound      = errors.New("not found")
	ErrTimeout       = errors.New("timeout")
	ErrTransient     = errors.New("transient failure")
)

// Outcome classifies a failed operation for build history and exit codes.
type Outcome string

const (
	// OutcomeRejected means the input was wrong; rerunning without changes fails again.
	OutcomeRejected Outcome = "rejected"
	// OutcomeFailed means the environment or an external tool failed.
	OutcomeFailed Outcome = "failed"
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// FailureOutcome maps an error to the outcome recorded for it.
func FailureOutcome(err error) Outcome {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrConfiguration), errors.Is(err, ErrNotFound):
		return OutcomeRejected
	default:
		return OutcomeFailed
	}
}

// ExitCode maps an error to a process exit status: 0 for success, 2 for
// rejected input and 1 for everything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if FailureOutcome(err) == OutcomeRejected {
		return 2
	}
	return 1
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	for _, part := range []string{stage, operation, message} {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
