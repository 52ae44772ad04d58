package discgraph

import (
	"fmt"
	"strings"

	"discauthor/internal/reference"
)

// Node is the capability shared by every element of the graph.
type Node interface {
	ID() ID
	Kind() reference.Kind
	Name() string
}

// Label returns a human-readable description of n for diagnostics.
func Label(n Node) string {
	if n == nil {
		return "<nil>"
	}
	name := strings.TrimSpace(n.Name())
	if name == "" {
		return fmt.Sprintf("%s %s", n.Kind(), n.ID())
	}
	return fmt.Sprintf("%s %q (%s)", n.Kind(), name, n.ID())
}
