package project

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/indaco/stamper/internal/config"
	"github.com/indaco/stamper/internal/core"
)

// Module is a compiled module and its output roots.
type Module struct {
	Name string

	// OutputDir holds compiled production classes.
	OutputDir string

	// ResourceOutputDir holds compiled production resources.
	ResourceOutputDir string

	// SDKName is the SDK bound to the module's plugin extension, if any.
	SDKName string

	// Discovered is true for modules found below the discovery output root.
	Discovered bool
}

// skipDirs are never treated as modules.
var skipDirs = []string{"node_modules", "vendor", "__pycache__"}

func loadModules(ctx context.Context, fsys core.FileSystem, dir string, cfg *config.Config) ([]Module, error) {
	modules := make([]Module, 0, len(cfg.Modules))
	declared := make(map[string]bool, len(cfg.Modules))

	for _, mc := range cfg.Modules {
		declared[mc.Name] = true
		modules = append(modules, Module{
			Name:              mc.Name,
			OutputDir:         resolve(dir, mc.Output),
			ResourceOutputDir: resolve(dir, mc.ResourceOutput),
			SDKName:           mc.SDK,
		})
	}

	if cfg.DiscoveryEnabled() {
		found, err := discoverModules(ctx, fsys, dir, cfg.Discovery)
		if err != nil {
			return nil, err
		}
		for _, m := range found {
			if !declared[m.Name] {
				modules = append(modules, m)
			}
		}
	}

	imlByName := make(map[string]string, len(cfg.Modules))
	for _, mc := range cfg.Modules {
		if mc.Iml != "" {
			imlByName[mc.Name] = resolve(dir, mc.Iml)
		}
	}

	for i := range modules {
		if modules[i].SDKName != "" {
			continue
		}
		sdkName, err := moduleSDK(ctx, fsys, dir, modules[i].Name, imlByName[modules[i].Name], cfg.Preflight.PluginExtension)
		if err != nil {
			return nil, err
		}
		modules[i].SDKName = sdkName
	}

	return modules, nil
}

// discoverModules treats every directory directly below the output root as a
// module. Resource outputs live at the same name below the resource root, or
// in the output directory itself when no resource root is configured.
func discoverModules(ctx context.Context, fsys core.FileSystem, dir string, dc *config.DiscoveryConfig) ([]Module, error) {
	if dc == nil || dc.OutputRoot == "" {
		return nil, nil
	}

	root := resolve(dir, dc.OutputRoot)
	entries, err := fsys.ReadDir(ctx, root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read output root %q: %w", root, err)
	}

	var resourceRoot string
	if dc.ResourceRoot != "" {
		resourceRoot = resolve(dir, dc.ResourceRoot)
	}

	var modules []Module
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !e.IsDir() {
			continue
		}
		name := e.Name()
		path := filepath.Join(root, name)
		if shouldExclude(name, path, dc.Exclude) {
			continue
		}

		resources := path
		if resourceRoot != "" {
			resources = filepath.Join(resourceRoot, name)
		}
		modules = append(modules, Module{
			Name:              name,
			OutputDir:         path,
			ResourceOutputDir: resources,
			Discovered:        true,
		})
	}
	return modules, nil
}

// shouldExclude checks if a directory should be skipped during discovery.
func shouldExclude(name, path string, excludes []string) bool {
	if strings.HasPrefix(name, ".") || slices.Contains(skipDirs, name) {
		return true
	}
	for _, pattern := range excludes {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
		if matched, _ := filepath.Match(pattern, path); matched {
			return true
		}
	}
	return false
}

// moduleSDK reads the SDK name of the plugin extension from the module's
// .iml file. Candidates are the configured path, <dir>/<name>/<name>.iml and
// <dir>/<name>.iml; a module without an .iml has no SDK.
func moduleSDK(ctx context.Context, fsys core.FileSystem, dir, name, iml, extension string) (string, error) {
	candidates := []string{
		filepath.Join(dir, name, name+".iml"),
		filepath.Join(dir, name+".iml"),
	}
	if iml != "" {
		candidates = []string{iml}
	}

	for _, path := range candidates {
		data, err := fsys.ReadFile(ctx, path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to read module file %q: %w", path, err)
		}

		doc, err := xmlquery.Parse(bytes.NewReader(data))
		if err != nil {
			return "", fmt.Errorf("failed to parse module file %q: %w", path, err)
		}
		for _, n := range xmlquery.Find(doc, "//extension") {
			if n.SelectAttr("id") == extension {
				return n.SelectAttr("sdk-name"), nil
			}
		}
		return "", nil
	}
	return "", nil
}
