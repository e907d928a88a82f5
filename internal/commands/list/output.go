package list

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/indaco/stamper/internal/discovery"
	"github.com/indaco/stamper/internal/printer"
)

// Formatter handles display of listings.
type Formatter struct {
	format OutputFormat
}

// NewFormatter creates a new Formatter with the specified output format.
func NewFormatter(format OutputFormat) *Formatter {
	return &Formatter{format: format}
}

// Format renders l.
func (f *Formatter) Format(l *Listing) string {
	switch f.format {
	case FormatJSON:
		return f.formatJSON(l)
	case FormatTable:
		return f.formatTable(l)
	default:
		return f.formatText(l)
	}
}

// Print writes the rendered listing to stdout.
func (f *Formatter) Print(l *Listing) {
	fmt.Print(f.Format(l))
}

func (f *Formatter) formatText(l *Listing) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString(printer.Info("Descriptors of " + l.Project))
	sb.WriteString("\n")
	sb.WriteString(printer.Rule(70))
	sb.WriteString("\n")

	for _, e := range l.Entries {
		switch {
		case e.Err != nil:
			sb.WriteString(printer.Item(printer.MarkFail, fmt.Sprintf("%s: %v", e.RelPath, e.Err)) + "\n")
		case !e.Info.Matches(e.Kind):
			sb.WriteString(printer.Item(printer.MarkSkip, e.RelPath+" "+
				printer.Faint(fmt.Sprintf("(<%s> is not a %s descriptor)", e.Info.RootTag, e.Kind))) + "\n")
		default:
			sb.WriteString(printer.Item(printer.MarkPass, e.RelPath+" "+printer.Faint(describe(e))) + "\n")
		}
	}
	if len(l.Entries) > 0 {
		sb.WriteString("\n")
	}

	if len(l.Mismatches) > 0 {
		sb.WriteString(printer.Warning("Not stamped with the current build:"))
		sb.WriteString("\n")
		for _, m := range l.Mismatches {
			actual := m.ActualVersion
			if actual == "" {
				actual = "nothing"
			}
			sb.WriteString(printer.Item(printer.MarkWarn,
				fmt.Sprintf("%s: expected %s, found %s", m.Source, m.ExpectedVersion, actual)) + "\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString(printer.Rule(70))
	sb.WriteString("\n")
	sb.WriteString(f.formatSummary(l))
	sb.WriteString("\n")

	return sb.String()
}

func (f *Formatter) formatTable(l *Listing) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString(printer.Info("Descriptors of " + l.Project))
	sb.WriteString("\n\n")

	if len(l.Entries) > 0 {
		fmt.Fprintf(&sb, "%-50s %-18s %-20s %-12s\n", "PATH", "KIND", "MODULE", "BUILD")
		sb.WriteString(strings.Repeat("-", 100) + "\n")
		for _, e := range l.Entries {
			build := "-"
			if e.Err != nil {
				build = "error"
			} else if v := e.Info.StampedBuild(e.Kind); v != "" {
				build = v
			}
			fmt.Fprintf(&sb, "%-50s %-18s %-20s %-12s\n", e.RelPath, e.Kind, e.Module, build)
		}
		sb.WriteString("\n")
	}

	sb.WriteString(f.formatSummary(l))
	sb.WriteString("\n")

	return sb.String()
}

func (f *Formatter) formatJSON(l *Listing) string {
	type jsonDescriptor struct {
		Module          string `json:"module"`
		Path            string `json:"path"`
		Kind            string `json:"kind"`
		Root            string `json:"root"`
		RootTag         string `json:"root_tag,omitempty"`
		Version         string `json:"version,omitempty"`
		PlatformVersion string `json:"platform_version,omitempty"`
		SinceBuild      string `json:"since_build,omitempty"`
		BuildNumber     string `json:"build_number,omitempty"`
		BuildDate       string `json:"build_date,omitempty"`
		Error           string `json:"error,omitempty"`
	}

	type jsonMismatch struct {
		Source   string `json:"source"`
		Expected string `json:"expected"`
		Actual   string `json:"actual"`
	}

	output := struct {
		Project     string           `json:"project"`
		Gate        string           `json:"gate"`
		BuildNumber string           `json:"build_number,omitempty"`
		Descriptors []jsonDescriptor `json:"descriptors"`
		Mismatches  []jsonMismatch   `json:"mismatches"`
	}{
		Project:     l.Project,
		Gate:        l.Gate.String(),
		BuildNumber: l.BuildNumber,
		Descriptors: make([]jsonDescriptor, len(l.Entries)),
		Mismatches:  make([]jsonMismatch, len(l.Mismatches)),
	}

	for i, e := range l.Entries {
		d := jsonDescriptor{
			Module: e.Module,
			Path:   e.RelPath,
			Kind:   e.Kind.String(),
			Root:   e.Root,
		}
		if e.Err != nil {
			d.Error = e.Err.Error()
		}
		if e.Info != nil {
			d.RootTag = e.Info.RootTag
			d.Version = e.Info.Version
			d.PlatformVersion = e.Info.PlatformVersion
			d.SinceBuild = e.Info.SinceBuild
			d.BuildNumber = e.Info.BuildNumber
			d.BuildDate = e.Info.BuildDate
		}
		output.Descriptors[i] = d
	}

	for i, m := range l.Mismatches {
		output.Mismatches[i] = jsonMismatch{
			Source:   m.Source,
			Expected: m.ExpectedVersion,
			Actual:   m.ActualVersion,
		}
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting JSON: %v\n", err)
		return ""
	}

	return string(data) + "\n"
}

func (f *Formatter) formatSummary(l *Listing) string {
	if len(l.Entries) == 0 {
		if l.Gate != discovery.GateOpen {
			return printer.Faint(fmt.Sprintf("No descriptors to stamp: %s", l.Gate))
		}
		return printer.Faint("No descriptors found in module outputs")
	}

	summary := fmt.Sprintf("Found: %d descriptor(s)", len(l.Entries))
	if n := len(l.Mismatches); n > 0 {
		summary += ", " + printer.Warning(fmt.Sprintf("%d not stamped with build %s", n, l.BuildNumber))
	}
	if l.Gate != discovery.GateOpen {
		summary += " | " + printer.Warning("gate: "+l.Gate.String())
	}
	return summary
}

// describe summarizes the values stamped in an entry.
func describe(e discovery.Entry) string {
	var parts []string
	add := func(label, value string) {
		if value != "" {
			parts = append(parts, label+" "+value)
		}
	}
	add("version", e.Info.Version)
	add("platform", e.Info.PlatformVersion)
	add("since-build", e.Info.SinceBuild)
	add("build", e.Info.BuildNumber)
	add("date", e.Info.BuildDate)

	if len(parts) == 0 {
		return fmt.Sprintf("(%s, not stamped)", e.Kind)
	}
	return fmt.Sprintf("(%s: %s)", e.Kind, strings.Join(parts, ", "))
}
