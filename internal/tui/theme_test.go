package tui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestStamperTheme(t *testing.T) {
	theme := stamperTheme()
	if theme == nil {
		t.Fatal("stamperTheme() returned nil")
	}

	if !theme.Focused.Title.GetBold() {
		t.Error("Focused.Title should be bold")
	}
	if theme.Focused.Base.GetBorderStyle() != lipgloss.RoundedBorder() {
		t.Error("Focused.Base should have rounded border")
	}
	_, right, _, left := theme.Focused.FocusedButton.GetPadding()
	if left != 1 || right != 1 {
		t.Errorf("FocusedButton padding = %d/%d, want 1/1", left, right)
	}
	if theme.Blurred.Base.GetBorderStyle() != lipgloss.HiddenBorder() {
		t.Error("Blurred.Base should hide its border")
	}
}

func TestGetTheme(t *testing.T) {
	for _, name := range ValidThemes {
		if !IsValidTheme(name) {
			t.Errorf("IsValidTheme(%q) = false", name)
		}
		if GetTheme(name) == nil {
			t.Errorf("GetTheme(%q) returned nil", name)
		}
	}

	if IsValidTheme("solarized") || GetTheme("solarized") != nil {
		t.Error("unknown theme should be rejected")
	}
}

func TestSetTheme(t *testing.T) {
	t.Cleanup(func() { currentTheme = nil })

	SetTheme("dracula")
	if currentTheme == nil {
		t.Fatal("SetTheme(dracula) left no theme")
	}

	SetTheme("unknown")
	if currentTheme != nil {
		t.Error("unknown theme should reset to default")
	}
	if currentThemeOrDefault() == nil {
		t.Error("currentThemeOrDefault returned nil")
	}
}

func TestInCI(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want bool
	}{
		{"clean", nil, false},
		{"generic", map[string]string{"CI": "true"}, true},
		{"teamcity", map[string]string{"TEAMCITY_VERSION": "2017.1"}, true},
		{"empty value", map[string]string{"CI": ""}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := inCI(func(k string) string { return tt.env[k] })
			if got != tt.want {
				t.Errorf("inCI = %v, want %v", got, tt.want)
			}
		})
	}
}
