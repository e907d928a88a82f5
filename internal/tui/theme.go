package tui

import (
	"slices"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// ValidThemes is the list of supported theme names.
var ValidThemes = []string{"stamper", "base", "charm", "dracula"}

// currentTheme is nil until SetTheme picks one; prompts then use stamperTheme.
var currentTheme *huh.Theme

// IsValidTheme returns true if the given theme name is valid.
func IsValidTheme(name string) bool {
	return slices.Contains(ValidThemes, name)
}

// GetTheme returns the huh.Theme for the given theme name, or nil.
func GetTheme(name string) *huh.Theme {
	switch name {
	case "stamper":
		return stamperTheme()
	case "base":
		return huh.ThemeBase()
	case "charm":
		return huh.ThemeCharm()
	case "dracula":
		return huh.ThemeDracula()
	default:
		return nil
	}
}

// SetTheme sets the current theme by name. Unknown names reset to the
// stamper theme.
func SetTheme(name string) {
	currentTheme = GetTheme(name)
}

func currentThemeOrDefault() *huh.Theme {
	if currentTheme == nil {
		return stamperTheme()
	}
	return currentTheme
}

func stamperTheme() *huh.Theme {
	t := huh.ThemeBase()

	accent := lipgloss.Color("6")
	muted := lipgloss.Color("8")

	t.Focused.Base = t.Focused.Base.BorderStyle(lipgloss.RoundedBorder()).BorderForeground(accent)
	t.Focused.Title = t.Focused.Title.Foreground(accent).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(muted)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(accent)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(accent)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Bold(true).Padding(0, 1).
		Foreground(lipgloss.Color("0")).Background(accent)
	t.Focused.BlurredButton = t.Focused.BlurredButton.Padding(0, 1).Foreground(muted)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())

	t.Help.ShortKey = t.Help.ShortKey.Foreground(muted)
	t.Help.ShortDesc = t.Help.ShortDesc.Foreground(muted)
	return t
}
