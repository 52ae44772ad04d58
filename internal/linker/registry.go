package linker

import (
	"discauthor/internal/discgraph"
)

// Entry is one attached node and where it lives.
type Entry struct {
	Node    discgraph.Node
	Address Address
}

// Registry maps identifiers of attached nodes to their addresses. It only
// knows nodes reached by the walk in Link.
type Registry struct {
	entries map[discgraph.ID]Entry
	order   []discgraph.ID
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[discgraph.ID]Entry)}
}

// Insert records n at addr. A second insert for the same identifier returns
// a *DuplicateIdentifierError and leaves the first entry in place.
func (r *Registry) Insert(n discgraph.Node, addr Address) error {
	id := n.ID()
	if existing, ok := r.entries[id]; ok {
		return &DuplicateIdentifierError{ID: id, First: existing.Address, Second: addr}
	}
	r.entries[id] = Entry{Node: n, Address: addr}
	r.order = append(r.order, id)
	return nil
}

// Lookup returns the entry for id.
func (r *Registry) Lookup(id discgraph.ID) (Entry, bool) {
	entry, ok := r.entries[id]
	return entry, ok
}

// Len reports the number of registered nodes.
func (r *Registry) Len() int { return len(r.order) }

// Entries returns all entries in walk order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.entries[id])
	}
	return out
}
