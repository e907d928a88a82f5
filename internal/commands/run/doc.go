// Package run implements the "run" command, which checks the project
// settings and stamps every descriptor of the build.
package run
