// Package main hosts the discauthor CLI entrypoint and command graph.
//
// Commands load a project file into a disc graph, render it to a dvdauthor
// document, and optionally hand the document to dvdauthor. The command
// context resolves configuration once, builds the logger, and opens the build
// history store so subcommands only deal with presentation.
//
// Exit status is 0 on success, 2 when the project or configuration is
// rejected, and 1 when the environment or dvdauthor fails.
package main
