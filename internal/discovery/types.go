package discovery

import "github.com/indaco/stamper/internal/manifest"

// Output roots a candidate can be found under.
const (
	RootResourceOutput = "resource-output"
	RootOutput         = "output"
)

// Gate tells why a project is or is not eligible for stamping.
type Gate int

const (
	// GateOpen means candidates are enumerated.
	GateOpen Gate = iota

	// GateOutsideOrganization means the project name lacks the organization prefix.
	GateOutsideOrganization

	// GateNoBuildNumber means the build number property is not set.
	GateNoBuildNumber
)

// String returns a human-readable representation of the gate.
func (g Gate) String() string {
	switch g {
	case GateOpen:
		return "open"
	case GateOutsideOrganization:
		return "project outside organization"
	case GateNoBuildNumber:
		return "build number not set"
	default:
		return "unknown"
	}
}

// Candidate is one descriptor file found in a module output.
type Candidate struct {
	// Module is the module the file belongs to.
	Module string

	// Path is the absolute path to the file.
	Path string

	// RelPath is the path relative to the project directory.
	RelPath string

	// Kind is the descriptor kind the file is expected to be.
	Kind manifest.Kind

	// Root is the output root the file was found under.
	Root string
}

// Result is the outcome of one enumeration.
type Result struct {
	Gate       Gate
	Candidates []Candidate
}

// IsEmpty returns true if nothing will be stamped.
func (r *Result) IsEmpty() bool {
	return len(r.Candidates) == 0
}

// Entry pairs a candidate with what is currently stamped in it.
type Entry struct {
	Candidate

	// Info is nil when the file could not be read or parsed.
	Info *manifest.Info

	// Err holds the read or parse failure.
	Err error
}

// Mismatch is a descriptor whose stamped build number differs from the
// expected one.
type Mismatch struct {
	// Source is the relative path of the descriptor.
	Source string

	// ExpectedVersion is the build number about to be stamped.
	ExpectedVersion string

	// ActualVersion is the value found in the file.
	ActualVersion string
}
