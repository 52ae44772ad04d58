// Package project loads disc layouts from TOML or YAML project files and
// builds them through the discgraph API.
//
// Nodes may carry a key. Command strings refer to other nodes as @key for the
// ordinal address or f:@key for the full jump target; the loader replaces
// these with node identifiers before attaching, so the linker resolves them
// exactly like hand-built graphs. Nodes listed under detached are built but
// never attached.
package project
