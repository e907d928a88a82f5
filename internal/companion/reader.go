package companion

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// current extracts the version currently stored in data.
func current(t Target, data []byte) (string, error) {
	switch t.Format {
	case FormatJSON:
		return decodeField(data, t, json.Unmarshal)
	case FormatYAML:
		return decodeField(data, t, yaml.Unmarshal)
	case FormatTOML:
		return decodeField(data, t, toml.Unmarshal)
	case FormatRaw:
		return strings.TrimSpace(string(data)), nil
	case FormatRegex:
		re, err := compilePattern(t.Pattern)
		if err != nil {
			return "", err
		}
		m := re.FindSubmatch(data)
		if len(m) < 2 {
			return "", fmt.Errorf("pattern %q does not match %q", t.Pattern, t.Path)
		}
		return string(m[1]), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", t.Format)
	}
}

func decodeField(data []byte, t Target, unmarshal func([]byte, any) error) (string, error) {
	var obj map[string]any
	if err := unmarshal(data, &obj); err != nil {
		return "", fmt.Errorf("failed to parse %s in %q: %w", t.Format, t.Path, err)
	}

	value, err := lookup(obj, t.Field)
	if err != nil {
		return "", fmt.Errorf("in file %q: %w", t.Path, err)
	}

	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("field %q in %q is not a string", t.Field, t.Path)
	}
	return s, nil
}

// lookup walks obj along a dot-notation field path.
func lookup(obj map[string]any, field string) (any, error) {
	parts := strings.Split(field, ".")
	var node any = obj
	for i, part := range parts {
		m, ok := node.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("field %q is not an object at %q", strings.Join(parts[:i], "."), part)
		}
		if node, ok = m[part]; !ok {
			return nil, fmt.Errorf("field %q not found", field)
		}
	}
	return node, nil
}

func compilePattern(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, fmt.Errorf("pattern is required for regex format")
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid regex pattern %q: %w", pattern, err)
	}
	if re.NumSubexp() < 1 {
		return nil, fmt.Errorf("regex pattern %q has no capturing group", pattern)
	}
	return re, nil
}
