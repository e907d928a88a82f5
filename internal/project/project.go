// Package project models the build being stamped: its name and organization
// gate, the IDE compiler settings checked before stamping, and the modules
// whose compiled output holds descriptors.
package project

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/indaco/stamper/internal/config"
	"github.com/indaco/stamper/internal/core"
)

// Project is one loaded build layout.
type Project struct {
	// Name is the display name checked against Organization.
	Name string

	// Dir is the absolute project directory.
	Dir string

	// Organization is the required name prefix.
	Organization string

	Settings Settings
	Modules  []Module
}

// InOrganization reports whether the project belongs to the organization.
func (p *Project) InOrganization() bool {
	return p.Organization != "" && strings.HasPrefix(p.Name, p.Organization)
}

// Module returns the module named name.
func (p *Project) Module(name string) (Module, bool) {
	for _, m := range p.Modules {
		if m.Name == name {
			return m, true
		}
	}
	return Module{}, false
}

// Load reads the project rooted at dir.
func Load(ctx context.Context, fsys core.FileSystem, dir string, cfg *config.Config) (*Project, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project dir %q: %w", dir, err)
	}

	settingsDir := resolve(absDir, cfg.Project.SettingsDir)

	name, err := resolveName(ctx, fsys, absDir, settingsDir, cfg.Project.Name)
	if err != nil {
		return nil, err
	}

	settings, err := LoadSettings(ctx, fsys, settingsDir, cfg.Project.Settings)
	if err != nil {
		return nil, err
	}

	modules, err := loadModules(ctx, fsys, absDir, cfg)
	if err != nil {
		return nil, err
	}

	return &Project{
		Name:         name,
		Dir:          absDir,
		Organization: cfg.Project.Organization,
		Settings:     *settings,
		Modules:      modules,
	}, nil
}

// resolveName picks the project name: config, then <settings>/.name, then
// the directory base name.
func resolveName(ctx context.Context, fsys core.FileSystem, dir, settingsDir, configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}

	data, err := fsys.ReadFile(ctx, filepath.Join(settingsDir, ".name"))
	switch {
	case err == nil:
		if name := strings.TrimSpace(string(data)); name != "" {
			return name, nil
		}
	case !errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("failed to read project name: %w", err)
	}

	return filepath.Base(dir), nil
}

// resolve joins relative paths onto base.
func resolve(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
