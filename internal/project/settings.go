package project

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/indaco/stamper/internal/config"
	"github.com/indaco/stamper/internal/core"
)

// Settings are the IDE project settings the pre-flight checks inspect.
type Settings struct {
	// BytecodeTarget is the project-wide javac target, "" when unset.
	BytecodeTarget string

	// NotNullAssertions is true when @NotNull runtime assertions are generated.
	NotNullAssertions bool

	// CopyFormsRuntime is true when the UI forms runtime is copied to output.
	CopyFormsRuntime bool

	// CopyForms is true when .form files are copied to output.
	CopyForms bool

	// Sources lists the settings files that contributed values.
	Sources []string
}

// DefaultSettings returns the IDE defaults used when a value is not stored.
func DefaultSettings() Settings {
	return Settings{
		NotNullAssertions: true,
		CopyFormsRuntime:  true,
		CopyForms:         true,
	}
}

const (
	compilerComponent = `//component[@name='CompilerConfiguration']`
	designerComponent = `//component[@name='uidesigner-configuration']`
)

// LoadSettings reads every *.xml file directly inside dir and applies
// overrides on top. A missing dir yields the defaults.
func LoadSettings(ctx context.Context, fsys core.FileSystem, dir string, overrides *config.SettingsConfig) (*Settings, error) {
	s := DefaultSettings()

	entries, err := fsys.ReadDir(ctx, dir)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read settings dir %q: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".xml") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := fsys.ReadFile(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %q: %w", path, err)
		}
		doc, err := xmlquery.Parse(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to parse %q: %w", path, err)
		}
		if s.apply(doc) {
			s.Sources = append(s.Sources, path)
		}
	}

	s.override(overrides)
	return &s, nil
}

// apply copies the values stored in doc and reports whether any was found.
func (s *Settings) apply(doc *xmlquery.Node) bool {
	found := false

	if n := xmlquery.FindOne(doc, compilerComponent+"/bytecodeTargetLevel"); n != nil {
		s.BytecodeTarget = n.SelectAttr("target")
		found = true
	}
	if n := xmlquery.FindOne(doc, compilerComponent+"/addNotNullAssertions"); n != nil {
		s.NotNullAssertions = n.SelectAttr("enabled") != "false"
		found = true
	}
	if v, ok := designerOption(doc, "COPY_FORMS_RUNTIME_TO_OUTPUT"); ok {
		s.CopyFormsRuntime = v
		found = true
	}
	if v, ok := designerOption(doc, "COPY_FORMS_TO_OUTPUT"); ok {
		s.CopyForms = v
		found = true
	}
	return found
}

func designerOption(doc *xmlquery.Node, name string) (bool, bool) {
	for _, n := range xmlquery.Find(doc, designerComponent+"/option") {
		if n.SelectAttr("name") == name {
			return n.SelectAttr("value") == "true", true
		}
	}
	return false, false
}

func (s *Settings) override(o *config.SettingsConfig) {
	if o == nil {
		return
	}
	if o.BytecodeTarget != nil {
		s.BytecodeTarget = *o.BytecodeTarget
	}
	if o.NotNullAssertions != nil {
		s.NotNullAssertions = *o.NotNullAssertions
	}
	if o.CopyFormsRuntime != nil {
		s.CopyFormsRuntime = *o.CopyFormsRuntime
	}
	if o.CopyForms != nil {
		s.CopyForms = *o.CopyForms
	}
}
