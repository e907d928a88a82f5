// Package preflight checks the project toolchain settings that must hold
// before descriptors are stamped.
package preflight

import (
	"fmt"
	"slices"
	"sort"

	"github.com/indaco/stamper/internal/config"
	"github.com/indaco/stamper/internal/project"
)

// Category is the validation category of every pre-flight result.
const Category = "Pre-flight"

// Checker validates a project against the configured policy.
type Checker struct {
	cfg *config.PreflightConfig
}

// NewChecker creates a Checker. A nil policy uses the defaults.
func NewChecker(cfg *config.PreflightConfig) *Checker {
	if cfg == nil {
		defaults := config.Default()
		cfg = defaults.Preflight
	}
	return &Checker{cfg: cfg}
}

// Check runs every check. Projects outside the organization pass without
// being inspected.
func (c *Checker) Check(proj *project.Project) []config.ValidationResult {
	if !proj.InOrganization() {
		return []config.ValidationResult{
			pass(fmt.Sprintf("Skipped: %q is outside organization %q", proj.Name, proj.Organization)),
		}
	}

	var results []config.ValidationResult
	s := proj.Settings

	if slices.Contains(c.cfg.BytecodeTargets, s.BytecodeTarget) {
		results = append(results, pass(fmt.Sprintf("Bytecode target %s", s.BytecodeTarget)))
	} else {
		results = append(results, fail(fmt.Sprintf("Bytecode target is not specified or wrong. Need %v", c.cfg.BytecodeTargets)))
	}

	if c.cfg.RequireNotNull() {
		if s.NotNullAssertions {
			results = append(results, pass("'@NotNull' asserting is enabled"))
		} else {
			results = append(results, fail("'@NotNull' asserting is disabled. Enable it"))
		}
	}

	if c.cfg.ForbidRuntimeCopy() {
		if s.CopyFormsRuntime {
			results = append(results, fail("Copying forms runtime to output is enabled. Disable it"))
		} else {
			results = append(results, pass("Forms runtime is not copied to output"))
		}
	}

	if c.cfg.RequireCopy() {
		if s.CopyForms {
			results = append(results, pass("Forms are copied to output"))
		} else {
			results = append(results, fail("Copying forms to output is disabled. Enable it"))
		}
	}

	results = append(results, c.checkSDKs(proj)...)
	return results
}

// checkSDKs reports every module whose plugin extension uses an obsolete SDK.
func (c *Checker) checkSDKs(proj *project.Project) []config.ValidationResult {
	var results []config.ValidationResult
	for _, m := range proj.Modules {
		replacement, obsolete := c.cfg.ObsoleteSDKs[m.SDKName]
		if m.SDKName == "" || !obsolete {
			continue
		}
		results = append(results, fail(fmt.Sprintf(
			"ConsuloDevKit: '%s' is obsolete and not used, migrate to '%s' instead (module %s)",
			m.SDKName, replacement, m.Name)))
	}

	if len(results) == 0 {
		names := make([]string, 0, len(c.cfg.ObsoleteSDKs))
		for name := range c.cfg.ObsoleteSDKs {
			names = append(names, name)
		}
		sort.Strings(names)
		return []config.ValidationResult{pass(fmt.Sprintf("No module uses an obsolete SDK %v", names))}
	}
	return results
}

func pass(msg string) config.ValidationResult {
	return config.ValidationResult{Category: Category, Passed: true, Message: msg}
}

func fail(msg string) config.ValidationResult {
	return config.ValidationResult{Category: Category, Passed: false, Message: msg}
}

// Error summarizes failed results. It returns nil when none failed.
func Error(results []config.ValidationResult) error {
	if !config.HasErrors(results) {
		return nil
	}
	for _, r := range results {
		if !r.Passed && !r.Warning {
			if n := config.ErrorCount(results); n > 1 {
				return fmt.Errorf("pre-flight check failed: %s (and %d more)", r.Message, n-1)
			}
			return fmt.Errorf("pre-flight check failed: %s", r.Message)
		}
	}
	return nil
}
