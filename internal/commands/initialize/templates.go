package initialize

import (
	"fmt"
	"slices"
	"strings"

	"github.com/indaco/stamper/internal/config"
)

// Template is a starting configuration for a family of builds.
type Template struct {
	Name        string
	Description string

	configure func(*config.Config)
}

// Config returns the template's configuration with defaults applied.
func (t Template) Config() *config.Config {
	cfg := &config.Config{}
	if t.configure != nil {
		t.configure(cfg)
	}
	cfg.ApplyDefaults()
	return cfg
}

// AllTemplates returns all available templates.
func AllTemplates() []Template {
	return []Template{
		{
			Name:        "cold",
			Description: "cold.build.number, platformVersion from the Consulo SDK, bytecode 1.6 or 1.8",
		},
		{
			Name:        "vulcan",
			Description: "vulcan.build.number, idea-version since-build from vulcan.consulo.build.number, bytecode 1.6",
			configure: func(c *config.Config) {
				c.Stamp.BuildNumberProperty = "vulcan.build.number"
				c.Stamp.Platform = &config.PlatformConfig{
					Mode:     config.PlatformSince,
					Property: "vulcan.consulo.build.number",
				}
				c.Preflight = &config.PreflightConfig{BytecodeTargets: []string{"1.6"}}
			},
		},
		{
			Name:        "minimal",
			Description: "Version only: no platform field, no application info, no pre-flight checks",
			configure: func(c *config.Config) {
				disabled := false
				c.Stamp.ApplicationInfo = config.PlatformNone
				c.Stamp.Platform = &config.PlatformConfig{Mode: config.PlatformNone}
				c.Preflight = &config.PreflightConfig{Enabled: &disabled}
			},
		},
	}
}

// TemplateNames returns the names of all available templates.
func TemplateNames() []string {
	templates := AllTemplates()
	names := make([]string, len(templates))
	for i, t := range templates {
		names[i] = t.Name
	}
	return names
}

// GetTemplate returns the template with the given name, or an error if not found.
func GetTemplate(name string) (*Template, error) {
	for _, t := range AllTemplates() {
		if t.Name == name {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unknown template %q (available: %s)", name, strings.Join(TemplateNames(), ", "))
}

// IsValidTemplate checks if the given name is a valid template.
func IsValidTemplate(name string) bool {
	return slices.Contains(TemplateNames(), name)
}
