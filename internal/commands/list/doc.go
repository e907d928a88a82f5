// Package list implements the "list" command, which shows every descriptor
// a stamp pass would touch together with the values currently stamped in it.
package list
