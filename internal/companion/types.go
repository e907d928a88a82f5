package companion

// Format is the layout of a companion manifest.
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTOML  Format = "toml"
	FormatRaw   Format = "raw"
	FormatRegex Format = "regex"
)

func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is known.
func (f Format) IsValid() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatTOML, FormatRaw, FormatRegex:
		return true
	default:
		return false
	}
}

// needsField reports whether f addresses a dot-notation field.
func (f Format) needsField() bool {
	return f == FormatJSON || f == FormatYAML || f == FormatTOML
}

// Target describes one companion manifest.
type Target struct {
	// Path is the file path, absolute or relative to the working directory.
	Path string

	Format Format

	// Field is the dot-notation path of the version field,
	// e.g. "version" or "project.version".
	Field string

	// Pattern must contain one capturing group around the version.
	Pattern string
}
