// Package workspace loads what every command needs about the project being
// stamped: build properties, the project layout, the SDK table and the
// metadata of the current pass.
package workspace

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/indaco/stamper/internal/buildinfo"
	"github.com/indaco/stamper/internal/config"
	"github.com/indaco/stamper/internal/core"
	"github.com/indaco/stamper/internal/logging"
	"github.com/indaco/stamper/internal/project"
	"github.com/indaco/stamper/internal/sdk"
	"go.uber.org/zap"
)

// Options control how a workspace is loaded.
type Options struct {
	// Dir is the project directory.
	Dir string

	// Defines are key=value build property definitions.
	Defines []string

	// Getenv overrides the environment lookup.
	Getenv func(string) string

	// Now overrides the clock used for the stamp date.
	Now func() time.Time
}

// Workspace is a fully loaded project.
type Workspace struct {
	Config   *config.Config
	Props    *config.Properties
	Project  *project.Project
	SDKs     *sdk.Table
	Metadata *buildinfo.Metadata
}

// Load resolves properties, reads the project and computes the metadata.
func Load(ctx context.Context, fs core.FileSystem, cfg *config.Config, opts Options) (*Workspace, error) {
	logger := logging.FromContext(ctx)

	if opts.Dir == "" {
		opts.Dir = "."
	}

	props, err := config.NewProperties(opts.Defines, cfg.Properties)
	if err != nil {
		return nil, err
	}
	if opts.Getenv != nil {
		props.WithEnv(opts.Getenv)
	}

	proj, err := project.Load(ctx, fs, opts.Dir, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	logger.Debug("project loaded",
		zap.String("name", proj.Name),
		zap.String("dir", proj.Dir),
		zap.Int("modules", len(proj.Modules)),
		zap.Strings("settings", proj.Settings.Sources))

	var tablePath string
	if cfg.SDKs != nil && cfg.SDKs.Table != "" {
		tablePath = cfg.SDKs.Table
		if !filepath.IsAbs(tablePath) {
			tablePath = filepath.Join(proj.Dir, tablePath)
		}
	}
	var entries []config.SDKEntry
	if cfg.SDKs != nil {
		entries = cfg.SDKs.Entries
	}
	sdks, err := sdk.Load(ctx, fs, tablePath, entries)
	if err != nil {
		return nil, err
	}
	logger.Debug("sdk table loaded", zap.String("path", tablePath), zap.Int("entries", sdks.Len()))

	md, err := buildinfo.NewResolver(props, sdks, opts.Now).Resolve(cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug("build metadata resolved",
		zap.String("build", md.BuildNumber),
		zap.String("platform", md.PlatformValue),
		zap.String("platformSource", md.PlatformSource))

	return &Workspace{
		Config:   cfg,
		Props:    props,
		Project:  proj,
		SDKs:     sdks,
		Metadata: md,
	}, nil
}
