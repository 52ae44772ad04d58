// Package authoring turns a disc graph into a dvdauthor descriptor document.
//
// Compiler runs the two render phases in order: the linker assigns addresses,
// validates content and resolves every identifier token, then the dvdxml
// encoder emits the document. Faults from the first phase stop rendering, so
// a returned document never contains an unresolved token. WriteFile persists
// the document atomically under a file lock.
package authoring
