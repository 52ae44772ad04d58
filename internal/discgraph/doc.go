// Package discgraph models the structure of a DVD being authored: the disc,
// its optional VMGM menu domain, its titlesets, and the menus and titles they
// own.
//
// Nodes receive a unique identifier when constructed. Callers embed those
// identifiers in navigation command strings to refer to other nodes; the
// linker package later rewrites them into ordinal addresses. Ownership is a
// strict tree: cross references live only inside command text, so cycles in
// navigation never become ownership cycles.
//
// Mutations that would break a structural rule (a menu entry point that is not
// allowed in its container) are rejected immediately and leave the graph
// unchanged. Content and reference checks are deferred to render time.
//
// The graph has no internal locking. Serialize mutation and rendering when a
// Disc is shared between goroutines.
package discgraph
