// Package logs reads the discauthor log file for the "logs" command.
//
// Last returns the final lines with bounded memory and the offset to resume
// from; Follow polls from that offset until the context ends, starting over
// when the file is truncated.
package logs
