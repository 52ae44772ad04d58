// Package services defines shared utilities consumed by the authoring
// pipeline and its external tool integrations.
//
// It provides context helpers that stamp project names, stage names and
// build identifiers for logging, plus structured error markers and the Wrap
// helper that classify failures for exit codes and build history.
package services
