package history

import (
	"time"

	"discauthor/internal/services"
)

// Status is the outcome of a recorded build.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusRejected  Status = Status(services.OutcomeRejected)
	StatusFailed    Status = Status(services.OutcomeFailed)
)

// StatusFor maps a run error to the status recorded for it.
func StatusFor(err error) Status {
	if err == nil {
		return StatusSucceeded
	}
	return Status(services.FailureOutcome(err))
}

// Operation names the command that produced a build.
type Operation string

const (
	OperationBuild  Operation = "build"
	OperationCheck  Operation = "check"
	OperationAuthor Operation = "author"
)

// Build is one recorded run.
type Build struct {
	ID           string
	Project      string
	ProjectPath  string
	Operation    Operation
	Status       Status
	OutputPath   string
	Digest       string
	Titlesets    int
	Menus        int
	Titles       int
	Faults       int
	ErrorMessage string
	StartedAt    time.Time
	FinishedAt   time.Time
}

// Duration returns how long the run took.
func (b Build) Duration() time.Duration {
	if b.StartedAt.IsZero() || b.FinishedAt.IsZero() {
		return 0
	}
	return b.FinishedAt.Sub(b.StartedAt)
}
