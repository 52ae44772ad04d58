package discgraph

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConstraintViolation marks mutations rejected by a structural rule.
var ErrConstraintViolation = errors.New("constraint violation")

// ConstraintViolation describes a rejected mutation. The graph is unchanged
// when one is returned.
type ConstraintViolation struct {
	Container ID
	Node      ID
	Field     string
	Value     string
	Allowed   []string
	Reason    string
}

func (e *ConstraintViolation) Error() string {
	var b strings.Builder
	b.WriteString(ErrConstraintViolation.Error())
	if e.Container != "" {
		fmt.Fprintf(&b, ": %s", e.Container)
	}
	if e.Node != "" {
		fmt.Fprintf(&b, ": %s", e.Node)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, ": %s=%q", e.Field, e.Value)
	}
	if len(e.Allowed) > 0 {
		fmt.Fprintf(&b, " (allowed: %s)", strings.Join(e.Allowed, ", "))
	}
	if e.Reason != "" {
		fmt.Fprintf(&b, ": %s", e.Reason)
	}
	return b.String()
}

// Is lets errors.Is match ErrConstraintViolation.
func (e *ConstraintViolation) Is(target error) bool {
	return target == ErrConstraintViolation
}
