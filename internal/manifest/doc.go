// Package manifest patches build metadata into plugin descriptors
// (root <idea-plugin>) and application-info descriptors (root <component>).
//
// The root tag decides which fields may be touched: a descriptor whose root
// does not match the expected kind is reported as skipped and never mutated.
package manifest
