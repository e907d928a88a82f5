package config

import (
	"fmt"
	"os"
	"strings"
	"unicode"
)

// Properties resolves build properties the way JVM system properties were
// passed to the build: explicit definitions first, then the environment, then
// the config file.
type Properties struct {
	defines map[string]string
	file    map[string]string
	getenv  func(string) string
}

// NewProperties builds a Properties from `key=value` definitions and the
// config file's properties block.
func NewProperties(defines []string, file map[string]string) (*Properties, error) {
	parsed := make(map[string]string, len(defines))
	for _, d := range defines {
		key, value, ok := strings.Cut(d, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid property definition %q: expected key=value", d)
		}
		parsed[key] = value
	}
	return &Properties{defines: parsed, file: file, getenv: os.Getenv}, nil
}

// WithEnv replaces the environment lookup. Used by tests.
func (p *Properties) WithEnv(getenv func(string) string) *Properties {
	p.getenv = getenv
	return p
}

// Get returns the value of name and whether it is set. Empty values count as unset.
func (p *Properties) Get(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	if v := p.defines[name]; v != "" {
		return v, true
	}
	if p.getenv != nil {
		if v := p.getenv(EnvName(name)); v != "" {
			return v, true
		}
	}
	if v := p.file[name]; v != "" {
		return v, true
	}
	return "", false
}

// EnvName maps a property name to its environment variable,
// e.g. "cold.build.number" becomes "COLD_BUILD_NUMBER".
func EnvName(name string) string {
	return strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return unicode.ToUpper(r)
		}
		return '_'
	}, name)
}
