// Package dvdauthor wraps the dvdauthor command line tool. It feeds a rendered
// descriptor document to `dvdauthor -x`, streams the tool's STAT/WARN/ERR
// output as events, and classifies failures with the services error markers.
package dvdauthor
