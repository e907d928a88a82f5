package config

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/indaco/stamper/internal/companion"
	"github.com/indaco/stamper/internal/core"
)

// ValidationResult represents the result of a validation check.
type ValidationResult struct {
	// Category is the validation category (e.g., "Stamp", "Modules", "Java").
	Category string

	// Passed indicates if the check passed.
	Passed bool

	// Message provides details about the validation result.
	Message string

	// Warning indicates if this is a warning rather than an error.
	Warning bool
}

// Validator checks a loaded configuration for inconsistencies that would make
// a stamp pass misbehave.
type Validator struct {
	fs          core.FileSystem
	cfg         *Config
	rootDir     string
	validations []ValidationResult
}

// NewValidator creates a new configuration validator.
// rootDir is the project directory relative paths are resolved against.
func NewValidator(fs core.FileSystem, cfg *Config, rootDir string) *Validator {
	return &Validator{
		fs:          fs,
		cfg:         cfg,
		rootDir:     rootDir,
		validations: make([]ValidationResult, 0),
	}
}

// Validate runs all validation checks and returns the results.
func (v *Validator) Validate(ctx context.Context) ([]ValidationResult, error) {
	v.validations = make([]ValidationResult, 0)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	v.validateStamp()
	v.validateModules()
	v.validateDiscovery()
	v.validateSDKTable(ctx)
	v.validateCompanions()

	return v.validations, nil
}

func (v *Validator) validateStamp() {
	if v.cfg.Stamp.BuildNumberProperty == "" {
		v.addValidation("Stamp", false, "build-number-property must not be empty", false)
	} else {
		v.addValidation("Stamp", true, fmt.Sprintf("Build number read from %q", v.cfg.Stamp.BuildNumberProperty), false)
	}

	mode := v.cfg.PlatformMode()
	switch mode {
	case PlatformNone:
		v.addValidation("Stamp", true, "Platform field not stamped", false)
	case PlatformVersion, PlatformSince:
		p := v.cfg.Stamp.Platform
		if p.Property == "" && p.SDK == "" {
			v.addValidation("Stamp", false,
				fmt.Sprintf("Platform mode %q has no property or sdk source, %q will always be used", mode, p.Fallback), true)
		} else {
			v.addValidation("Stamp", true, fmt.Sprintf("Platform field stamped as %s", mode), false)
		}
	default:
		v.addValidation("Stamp", false,
			fmt.Sprintf("unknown platform mode %q (want %s, %s or %s)", mode, PlatformNone, PlatformVersion, PlatformSince), false)
	}
}

func (v *Validator) validateModules() {
	seen := make(map[string]bool, len(v.cfg.Modules))
	for i, m := range v.cfg.Modules {
		if m.Name == "" {
			v.addValidation("Modules", false, fmt.Sprintf("module #%d has no name", i+1), false)
			continue
		}
		if seen[m.Name] {
			v.addValidation("Modules", false, fmt.Sprintf("module %q declared more than once", m.Name), false)
			continue
		}
		seen[m.Name] = true

		if m.Output == "" && m.ResourceOutput == "" {
			v.addValidation("Modules", false, fmt.Sprintf("module %q has neither output nor resource-output", m.Name), false)
		}
	}

	if len(v.cfg.Modules) == 0 && !v.cfg.DiscoveryEnabled() {
		v.addValidation("Modules", false, "no modules declared and discovery disabled: nothing will be stamped", true)
	}
}

func (v *Validator) validateDiscovery() {
	if v.cfg.Discovery == nil {
		return
	}
	for _, pattern := range v.cfg.Discovery.Exclude {
		if _, err := filepath.Match(pattern, ""); err != nil {
			v.addValidation("Discovery", false, fmt.Sprintf("invalid exclude pattern %q: %v", pattern, err), false)
		}
	}
}

func (v *Validator) validateSDKTable(ctx context.Context) {
	if v.cfg.SDKs == nil || v.cfg.SDKs.Table == "" {
		return
	}
	path := v.resolve(v.cfg.SDKs.Table)
	if _, err := v.fs.Stat(ctx, path); err != nil {
		v.addValidation("SDKs", false, fmt.Sprintf("SDK table %s not readable: %v", path, err), true)
		return
	}
	v.addValidation("SDKs", true, fmt.Sprintf("SDK table %s found", path), false)
}

func (v *Validator) validateCompanions() {
	for _, c := range v.cfg.Companions {
		if c.Path == "" {
			v.addValidation("Companions", false, "companion entry without path", false)
			continue
		}

		format := companion.Format(c.Format)
		if !format.IsValid() {
			v.addValidation("Companions", false, fmt.Sprintf("%s: invalid format %q", c.Path, c.Format), false)
			continue
		}

		switch format {
		case companion.FormatJSON, companion.FormatYAML, companion.FormatTOML:
			if c.Field == "" {
				v.addValidation("Companions", false, fmt.Sprintf("%s: field is required for %s format", c.Path, format), false)
				continue
			}
		case companion.FormatRegex:
			re, err := regexp.Compile(c.Pattern)
			if err != nil {
				v.addValidation("Companions", false, fmt.Sprintf("%s: invalid pattern: %v", c.Path, err), false)
				continue
			}
			if re.NumSubexp() < 1 {
				v.addValidation("Companions", false, fmt.Sprintf("%s: pattern needs a capturing group", c.Path), false)
				continue
			}
		}

		v.addValidation("Companions", true, fmt.Sprintf("%s (%s)", c.Path, format), false)
	}
}

func (v *Validator) resolve(path string) string {
	if filepath.IsAbs(path) || v.rootDir == "" {
		return path
	}
	return filepath.Join(v.rootDir, path)
}

// addValidation adds a validation result to the list.
func (v *Validator) addValidation(category string, passed bool, message string, warning bool) {
	v.validations = append(v.validations, ValidationResult{
		Category: category,
		Passed:   passed,
		Message:  message,
		Warning:  warning,
	})
}

// HasErrors returns true if any validation failed.
func HasErrors(results []ValidationResult) bool {
	for _, r := range results {
		if !r.Passed && !r.Warning {
			return true
		}
	}
	return false
}

// ErrorCount returns the number of failed validations.
func ErrorCount(results []ValidationResult) int {
	count := 0
	for _, r := range results {
		if !r.Passed && !r.Warning {
			count++
		}
	}
	return count
}

// WarningCount returns the number of warnings.
func WarningCount(results []ValidationResult) int {
	count := 0
	for _, r := range results {
		if r.Warning {
			count++
		}
	}
	return count
}
