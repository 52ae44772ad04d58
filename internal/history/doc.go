// Package history records authoring builds in a SQLite database.
//
// Every build, check or author run that reaches the render stage appends one
// row with its outcome, document digest and node counts. The CLI lists the
// rows and compares digests to tell whether a rebuild changed the document.
// Schema changes ship as embedded, ordered migrations.
package history
