// Package operations provides the stamp pass over a loaded project.
package operations

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/indaco/stamper/internal/buildinfo"
	"github.com/indaco/stamper/internal/companion"
	"github.com/indaco/stamper/internal/config"
	"github.com/indaco/stamper/internal/core"
	"github.com/indaco/stamper/internal/discovery"
	"github.com/indaco/stamper/internal/logging"
	"github.com/indaco/stamper/internal/manifest"
	"github.com/indaco/stamper/internal/project"
	"go.uber.org/zap"
)

// Status is the outcome of stamping one file.
type Status string

const (
	StatusPatched Status = "patched"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Entry records what happened to one file.
type Entry struct {
	Module  string
	Path    string
	RelPath string
	Kind    string
	Status  Status
	Err     error
}

// Report summarizes a stamp pass.
type Report struct {
	Gate       discovery.Gate
	DryRun     bool
	Metadata   buildinfo.Metadata
	Entries    []Entry
	Companions []Entry
}

// Count returns how many descriptor and companion entries have status s.
func (r *Report) Count(s Status) int {
	n := 0
	for _, e := range r.Entries {
		if e.Status == s {
			n++
		}
	}
	for _, e := range r.Companions {
		if e.Status == s {
			n++
		}
	}
	return n
}

// StampOperation writes build metadata into every descriptor of a project.
type StampOperation struct {
	fs     core.FileSystem
	cfg    *config.Config
	dryRun bool
}

// NewStampOperation creates a new stamp operation. With dryRun set the
// report is computed but nothing is written.
func NewStampOperation(fs core.FileSystem, cfg *config.Config, dryRun bool) *StampOperation {
	return &StampOperation{fs: fs, cfg: cfg, dryRun: dryRun}
}

// Name returns the name of this operation.
func (op *StampOperation) Name() string {
	if op.dryRun {
		return "stamp (dry run)"
	}
	return "stamp"
}

// Execute runs the pass. Per-file failures are logged and recorded in the
// report; only cancellation and enumeration failures are returned.
func (op *StampOperation) Execute(ctx context.Context, proj *project.Project, md *buildinfo.Metadata) (*Report, error) {
	logger := logging.FromContext(ctx)
	report := &Report{DryRun: op.dryRun, Metadata: *md}

	if !proj.InOrganization() {
		report.Gate = discovery.GateOutsideOrganization
		logger.Debug("project outside organization", zap.String("project", proj.Name))
		return report, nil
	}

	result, err := discovery.NewService(op.fs, op.cfg).Enumerate(ctx, proj, md.BuildNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate descriptors: %w", err)
	}
	report.Gate = result.Gate
	if result.Gate != discovery.GateOpen {
		logger.Debug("nothing to stamp", zap.String("project", proj.Name), zap.Stringer("gate", result.Gate))
		return report, nil
	}
	if result.IsEmpty() {
		logger.Debug("no descriptors found", zap.String("project", proj.Name), zap.Int("modules", len(proj.Modules)))
	}

	patcher := manifest.NewPatcher(md.Fields())
	for _, c := range result.Candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		entry := op.stampDescriptor(ctx, patcher, c)
		if entry.Err != nil {
			logger.Warn("failed to stamp descriptor", zap.String("path", c.RelPath), zap.Error(entry.Err))
		} else {
			logger.Debug("descriptor processed", zap.String("path", c.RelPath), zap.String("status", string(entry.Status)))
		}
		report.Entries = append(report.Entries, entry)
	}

	companions := companion.NewStamper(op.fs)
	for _, cc := range op.cfg.Companions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		entry := op.stampCompanion(ctx, companions, proj.Dir, cc, md.BuildNumber)
		if entry.Err != nil {
			logger.Warn("failed to stamp companion", zap.String("path", cc.Path), zap.Error(entry.Err))
		}
		report.Companions = append(report.Companions, entry)
	}

	return report, nil
}

func (op *StampOperation) stampDescriptor(ctx context.Context, patcher *manifest.Patcher, c discovery.Candidate) Entry {
	entry := Entry{Module: c.Module, Path: c.Path, RelPath: c.RelPath, Kind: c.Kind.String()}

	data, err := op.fs.ReadFile(ctx, c.Path)
	if err != nil {
		entry.Status, entry.Err = StatusFailed, fmt.Errorf("failed to read %s: %w", c.RelPath, err)
		return entry
	}

	out, outcome, err := patcher.Patch(data, c.Kind)
	if err != nil {
		entry.Status, entry.Err = StatusFailed, fmt.Errorf("failed to patch %s: %w", c.RelPath, err)
		return entry
	}
	if outcome == manifest.Skipped {
		entry.Status = StatusSkipped
		return entry
	}

	if !op.dryRun {
		if err := op.fs.WriteFile(ctx, c.Path, out, core.PermDefaultFile); err != nil {
			entry.Status, entry.Err = StatusFailed, fmt.Errorf("failed to write %s: %w", c.RelPath, err)
			return entry
		}
	}
	entry.Status = StatusPatched
	return entry
}

func (op *StampOperation) stampCompanion(ctx context.Context, s *companion.Stamper, dir string, cc config.CompanionConfig, value string) Entry {
	path := cc.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	entry := Entry{Path: path, RelPath: cc.Path, Kind: cc.Format, Status: StatusPatched}

	target := companion.Target{
		Path:    path,
		Format:  companion.Format(cc.Format),
		Field:   cc.Field,
		Pattern: cc.Pattern,
	}

	var err error
	if op.dryRun {
		_, err = s.Current(ctx, target)
	} else {
		err = s.Stamp(ctx, target, value)
	}
	if err != nil {
		entry.Status, entry.Err = StatusFailed, err
	}
	return entry
}
