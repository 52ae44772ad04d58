// Package textutil normalizes project names into file names and display
// labels.
package textutil
