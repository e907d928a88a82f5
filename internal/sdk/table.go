// Package sdk resolves named SDKs to their version strings, from config
// entries and from an IDE SDK table file.
package sdk

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/antchfx/xmlquery"
	"github.com/indaco/stamper/internal/config"
	"github.com/indaco/stamper/internal/core"
)

// SDK is a named SDK registered in the table.
type SDK struct {
	Name    string
	Version string
	Source  string
}

// Table is a name-indexed set of SDKs.
type Table struct {
	entries map[string]SDK
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{entries: make(map[string]SDK)}
}

// Add registers s. Later additions win.
func (t *Table) Add(s SDK) {
	t.entries[s.Name] = s
}

// Find returns the SDK named name.
func (t *Table) Find(name string) (SDK, bool) {
	s, ok := t.entries[name]
	return s, ok
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// VersionOf returns the version string of name, or fallback when the SDK is
// unknown or has no version.
func (t *Table) VersionOf(name, fallback string) string {
	if s, ok := t.Find(name); ok && s.Version != "" {
		return s.Version
	}
	return fallback
}

// Load builds a table from an optional SDK table file (path, may be empty)
// and config entries. A missing table file is not an error.
func Load(ctx context.Context, fsys core.FileSystem, path string, entries []config.SDKEntry) (*Table, error) {
	t := NewTable()

	if path != "" {
		data, err := fsys.ReadFile(ctx, path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read SDK table %q: %w", path, err)
		default:
			if err := t.readTableXML(data, path); err != nil {
				return nil, err
			}
		}
	}

	for _, e := range entries {
		t.Add(SDK{Name: e.Name, Version: e.Version, Source: "config"})
	}
	return t, nil
}

// readTableXML adds every <jdk>/<sdk> entry of an IDE SDK table:
//
//	<component name="ProjectJdkTable">
//	  <jdk version="2">
//	    <name value="Consulo SNAPSHOT" />
//	    <version value="2.0.1234" />
func (t *Table) readTableXML(data []byte, path string) error {
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to parse SDK table %q: %w", path, err)
	}

	for _, n := range xmlquery.Find(doc, "//jdk | //sdk") {
		nameNode := xmlquery.FindOne(n, "name")
		if nameNode == nil {
			continue
		}
		name := nameNode.SelectAttr("value")
		if name == "" {
			continue
		}
		var version string
		if v := xmlquery.FindOne(n, "version"); v != nil {
			version = v.SelectAttr("value")
		}
		t.Add(SDK{Name: name, Version: version, Source: path})
	}
	return nil
}
