// Package printer renders the user-facing console output of stamper. Log
// lines go through zap; everything a user reads at the end of a command goes
// through here.
package printer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// defaultProfile is the color profile detected at startup.
var defaultProfile = lipgloss.ColorProfile()

// SetNoColor switches every style to plain ASCII output, or back to the
// detected profile.
func SetNoColor(disabled bool) {
	if disabled {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(defaultProfile)
}

var (
	faintStyle   = lipgloss.NewStyle().Faint(true)
	boldStyle    = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")) // Green
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")) // Red
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")) // Yellow
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6")) // Cyan
)

// Mark is the status marker in front of a per-file or per-check line.
type Mark string

const (
	MarkPass Mark = "✓"
	MarkFail Mark = "✗"
	MarkWarn Mark = "⚠"
	MarkSkip Mark = "-"
)

// Render returns the marker in its status color.
func (m Mark) Render() string {
	switch m {
	case MarkPass:
		return successStyle.Render(string(m))
	case MarkFail:
		return errorStyle.Render(string(m))
	case MarkWarn:
		return warningStyle.Render(string(m))
	default:
		return faintStyle.Render(string(m))
	}
}

// Item formats an indented result line, without trailing newline.
func Item(m Mark, text string) string {
	return "  " + m.Render() + " " + text
}

// PrintItem prints an indented result line.
func PrintItem(m Mark, text string) {
	fmt.Println(Item(m, text))
}

// Rule returns a faint horizontal separator of the given width.
func Rule(width int) string {
	return faintStyle.Render(strings.Repeat("-", width))
}

func Faint(text string) string   { return faintStyle.Render(text) }
func Bold(text string) string    { return boldStyle.Render(text) }
func Success(text string) string { return successStyle.Render(text) }
func Error(text string) string   { return errorStyle.Render(text) }
func Warning(text string) string { return warningStyle.Render(text) }
func Info(text string) string    { return infoStyle.Render(text) }

func PrintFaint(text string)   { fmt.Println(Faint(text)) }
func PrintBold(text string)    { fmt.Println(Bold(text)) }
func PrintSuccess(text string) { fmt.Println(Success(text)) }
func PrintError(text string)   { fmt.Println(Error(text)) }
func PrintWarning(text string) { fmt.Println(Warning(text)) }
func PrintInfo(text string)    { fmt.Println(Info(text)) }
