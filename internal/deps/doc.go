// Package deps checks that external binaries are installed and reads their
// version banners.
package deps
