package list

import "github.com/indaco/stamper/internal/discovery"

// OutputFormat controls how listings are displayed.
type OutputFormat string

const (
	// FormatText outputs human-readable text.
	FormatText OutputFormat = "text"

	// FormatJSON outputs machine-readable JSON.
	FormatJSON OutputFormat = "json"

	// FormatTable outputs tabular data.
	FormatTable OutputFormat = "table"
)

// ParseOutputFormat converts a string to OutputFormat.
func ParseOutputFormat(s string) OutputFormat {
	switch s {
	case "json":
		return FormatJSON
	case "table":
		return FormatTable
	default:
		return FormatText
	}
}

// Listing is what the list command displays.
type Listing struct {
	Project     string
	Gate        discovery.Gate
	BuildNumber string
	Entries     []discovery.Entry
	Mismatches  []discovery.Mismatch
}
