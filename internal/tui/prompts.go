package tui

import "github.com/charmbracelet/huh"

// Confirm shows a yes/no prompt.
func Confirm(title, description string) (bool, error) {
	var confirmed bool
	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Description(description).
			Affirmative("Yes").
			Negative("No").
			Value(&confirmed),
	)).WithTheme(currentThemeOrDefault()).Run()
	return confirmed, err
}

// Select shows a single-select prompt and returns the chosen value.
func Select(title, description string, options []huh.Option[string]) (string, error) {
	var selected string
	err := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(title).
			Description(description).
			Options(options...).
			Value(&selected),
	)).WithTheme(currentThemeOrDefault()).Run()
	return selected, err
}
