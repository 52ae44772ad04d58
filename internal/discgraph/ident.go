package discgraph

import (
	"sync/atomic"

	"discauthor/internal/reference"
)

// ID identifies a node. It is comparable and safe to embed in command text.
type ID string

func (id ID) String() string { return string(id) }

// Kind returns the node kind encoded in the identifier, or "" when malformed.
func (id ID) Kind() reference.Kind {
	kind, _, err := reference.Parse(string(id))
	if err != nil {
		return ""
	}
	return kind
}

// Full returns the identifier prefixed for full-address substitution, as used
// in commands like "jump " + menu.ID().Full().
func (id ID) Full() string { return reference.FullPrefix + string(id) }

// Allocator issues identifiers from a monotonically increasing counter.
// Uniqueness holds for the lifetime of the allocator.
type Allocator struct {
	next atomic.Uint64
}

// Issue returns a fresh identifier tagged with kind.
func (a *Allocator) Issue(kind reference.Kind) ID {
	return ID(reference.Format(kind, a.next.Add(1)))
}

// Issued reports how many identifiers the allocator has handed out.
func (a *Allocator) Issued() uint64 {
	return a.next.Load()
}

var ids Allocator

func issue(kind reference.Kind) ID {
	return ids.Issue(kind)
}
