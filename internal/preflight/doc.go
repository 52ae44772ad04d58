// Package preflight provides readiness checks for the filesystem paths and
// authoring binaries discauthor depends on.
//
// The "preflight" command prints every result. The "author" command runs the
// same checks first and refuses to invoke dvdauthor when a required check
// fails, so a missing binary or a full disk is reported before any work.
package preflight
