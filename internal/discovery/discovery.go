package discovery

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/indaco/stamper/internal/config"
	"github.com/indaco/stamper/internal/core"
	"github.com/indaco/stamper/internal/manifest"
	"github.com/indaco/stamper/internal/project"
)

// Service enumerates descriptor candidates.
type Service struct {
	fs  core.FileSystem
	cfg *config.Config
}

// NewService creates a new discovery Service.
func NewService(fs core.FileSystem, cfg *config.Config) *Service {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Service{fs: fs, cfg: cfg}
}

// location is one place checked per module.
type location struct {
	root string
	rel  string
	kind manifest.Kind
}

func (s *Service) locations() []location {
	locs := []location{{RootResourceOutput, s.cfg.Stamp.PluginDescriptor, manifest.PluginDescriptor}}
	if appInfo := s.cfg.ApplicationInfoPath(); appInfo != "" {
		locs = append(locs, location{RootResourceOutput, appInfo, manifest.ApplicationInfo})
	}
	return append(locs, location{RootOutput, s.cfg.Stamp.PluginDescriptor, manifest.PluginDescriptor})
}

// Enumerate lists every existing descriptor of proj's modules, in module
// order and location order. The result is empty when the project is outside the
// organization or buildNumber is empty.
func (s *Service) Enumerate(ctx context.Context, proj *project.Project, buildNumber string) (*Result, error) {
	result := &Result{Gate: GateOpen, Candidates: make([]Candidate, 0)}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch {
	case !proj.InOrganization():
		result.Gate = GateOutsideOrganization
		return result, nil
	case buildNumber == "":
		result.Gate = GateNoBuildNumber
		return result, nil
	}

	candidates, err := s.EnumerateAll(ctx, proj)
	if err != nil {
		return nil, err
	}
	result.Candidates = candidates
	return result, nil
}

// EnumerateAll lists every existing descriptor of proj's modules without
// applying the gate.
func (s *Service) EnumerateAll(ctx context.Context, proj *project.Project) ([]Candidate, error) {
	candidates := make([]Candidate, 0)
	seen := make(map[string]bool)
	for _, m := range proj.Modules {
		for _, p := range s.locations() {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			dir := m.ResourceOutputDir
			if p.root == RootOutput {
				dir = m.OutputDir
			}
			if dir == "" {
				continue
			}

			path := filepath.Clean(filepath.Join(dir, p.rel))
			if seen[path] || !s.isFile(ctx, path) {
				continue
			}
			seen[path] = true

			candidates = append(candidates, Candidate{
				Module:  m.Name,
				Path:    path,
				RelPath: relPath(proj.Dir, path),
				Kind:    p.kind,
				Root:    p.root,
			})
		}
	}

	return candidates, nil
}

// Inspect reads the current stamped values of each candidate. Read and parse
// failures are stored in the entry.
func (s *Service) Inspect(ctx context.Context, candidates []Candidate) ([]Entry, error) {
	entries := make([]Entry, 0, len(candidates))
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		entry := Entry{Candidate: c}
		data, err := s.fs.ReadFile(ctx, c.Path)
		if err != nil {
			entry.Err = fmt.Errorf("failed to read %s: %w", c.RelPath, err)
		} else if entry.Info, err = manifest.Inspect(data); err != nil {
			entry.Err = fmt.Errorf("failed to parse %s: %w", c.RelPath, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *Service) isFile(ctx context.Context, path string) bool {
	info, err := s.fs.Stat(ctx, path)
	return err == nil && !info.IsDir()
}

func relPath(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return rel
	}
	return path
}
