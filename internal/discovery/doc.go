// Package discovery enumerates the descriptor files a stamp pass touches.
// For every module it checks the resource output and the class output for a
// plugin descriptor and the application-info descriptor, and applies the
// organization and build-number gate.
package discovery
