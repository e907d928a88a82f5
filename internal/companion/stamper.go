package companion

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/indaco/stamper/internal/core"
	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/sjson"
)

// Stamper reads and writes build numbers in companion manifests.
type Stamper struct {
	fs core.FileSystem
}

// NewStamper creates a Stamper over fs.
func NewStamper(fs core.FileSystem) *Stamper {
	return &Stamper{fs: fs}
}

// Current returns the value stored in t.
func (s *Stamper) Current(ctx context.Context, t Target) (string, error) {
	if err := check(t); err != nil {
		return "", err
	}
	data, err := s.fs.ReadFile(ctx, t.Path)
	if err != nil {
		return "", fmt.Errorf("failed to read file %q: %w", t.Path, err)
	}
	return current(t, data)
}

// Stamp sets the version field of t to value and writes the file back.
// The file is left untouched when the update fails.
func (s *Stamper) Stamp(ctx context.Context, t Target, value string) error {
	if err := check(t); err != nil {
		return err
	}

	var data []byte
	if t.Format != FormatRaw {
		var err error
		if data, err = s.fs.ReadFile(ctx, t.Path); err != nil {
			return fmt.Errorf("failed to read file %q: %w", t.Path, err)
		}
	}

	updated, err := render(t, data, value)
	if err != nil {
		return err
	}

	if err := s.fs.WriteFile(ctx, t.Path, updated, core.PermDefaultFile); err != nil {
		return fmt.Errorf("failed to write file %q: %w", t.Path, err)
	}
	return nil
}

func check(t Target) error {
	if t.Path == "" {
		return fmt.Errorf("file path is required")
	}
	if !t.Format.IsValid() {
		return fmt.Errorf("invalid format: %s", t.Format)
	}
	if t.Format.needsField() && t.Field == "" {
		return fmt.Errorf("field is required for %s format", t.Format)
	}
	return nil
}

// render produces the new file content for t.
func render(t Target, data []byte, value string) ([]byte, error) {
	switch t.Format {
	case FormatJSON:
		updated, err := sjson.SetBytes(data, t.Field, value)
		if err != nil {
			return nil, fmt.Errorf("failed to set %q in %q: %w", t.Field, t.Path, err)
		}
		return withNewline(updated), nil

	case FormatYAML:
		return remarshal(t, data, value, yaml.Unmarshal, yaml.Marshal)

	case FormatTOML:
		return remarshal(t, data, value, toml.Unmarshal, toml.Marshal)

	case FormatRaw:
		return withNewline([]byte(value)), nil

	case FormatRegex:
		re, err := compilePattern(t.Pattern)
		if err != nil {
			return nil, err
		}
		loc := re.FindSubmatchIndex(data)
		if loc == nil || loc[2] < 0 {
			return nil, fmt.Errorf("pattern %q does not match contents of %q", t.Pattern, t.Path)
		}
		out := make([]byte, 0, len(data)+len(value))
		out = append(out, data[:loc[2]]...)
		out = append(out, value...)
		out = append(out, data[loc[3]:]...)
		return out, nil

	default:
		return nil, fmt.Errorf("unsupported format: %s", t.Format)
	}
}

func remarshal(t Target, data []byte, value string, unmarshal func([]byte, any) error, marshal func(any) ([]byte, error)) ([]byte, error) {
	var obj map[string]any
	if err := unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("failed to parse %s in %q: %w", t.Format, t.Path, err)
	}
	if obj == nil {
		obj = make(map[string]any)
	}
	if err := assign(obj, t.Field, value); err != nil {
		return nil, fmt.Errorf("in file %q: %w", t.Path, err)
	}
	out, err := marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s for %q: %w", t.Format, t.Path, err)
	}
	return out, nil
}

// assign sets field (dot notation) in obj, creating intermediate maps.
func assign(obj map[string]any, field string, value any) error {
	parts := strings.Split(field, ".")
	node := obj
	for i, part := range parts[:len(parts)-1] {
		next, ok := node[part]
		if !ok {
			child := make(map[string]any)
			node[part] = child
			node = child
			continue
		}
		child, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("field %q is not an object", strings.Join(parts[:i+1], "."))
		}
		node = child
	}
	node[parts[len(parts)-1]] = value
	return nil
}

func withNewline(b []byte) []byte {
	if len(b) > 0 && b[len(b)-1] != '\n' {
		return append(b, '\n')
	}
	return b
}
