// Package core holds the small abstractions shared by every stamper package:
// the FileSystem used for all descriptor I/O, its in-memory test double and
// common constants.
package core
