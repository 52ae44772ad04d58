// Package reference defines the textual shape of node identifiers and scans
// free-form navigation command strings for embedded identifier tokens.
//
// Identifiers look like `ID:<kind>:<n>`. A token may carry the `f:` prefix to
// request a full jump target instead of a bare ordinal. Scanning is a needle
// search for that fixed shape; the navigation command grammar itself is never
// parsed. Resolved command syntax never contains the `ID:` sentinel, so
// scanning already-resolved text yields no tokens.
package reference
