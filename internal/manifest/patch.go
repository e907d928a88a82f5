package manifest

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"
)

// ErrNoRoot is returned for documents without a root element.
var ErrNoRoot = errors.New("document has no root element")

// Patcher stamps Fields into descriptors.
type Patcher struct {
	fields Fields
}

// NewPatcher creates a Patcher for one pass.
func NewPatcher(fields Fields) *Patcher {
	return &Patcher{fields: fields}
}

// Patch parses data, stamps the fields legal for kind and returns the
// re-serialized document. When the root tag does not match kind the input is
// returned unchanged with outcome Skipped.
func (p *Patcher) Patch(data []byte, kind Kind) ([]byte, Outcome, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.PreserveCData = true
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, Skipped, fmt.Errorf("failed to parse XML: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, Skipped, ErrNoRoot
	}

	if root.Tag != kind.RootTag() {
		return data, Skipped, nil
	}

	switch kind {
	case ApplicationInfo:
		p.patchApplicationInfo(root)
	default:
		p.patchPlugin(root)
	}

	out, err := serialize(doc)
	if err != nil {
		return nil, Skipped, err
	}
	if out, err = encode(out, declaredEncoding(doc)); err != nil {
		return nil, Skipped, err
	}
	return out, Patched, nil
}

func (p *Patcher) patchPlugin(root *etree.Element) {
	child(root, "version").SetText(p.fields.BuildNumber)

	switch p.fields.Platform {
	case PlatformVersionElement:
		child(root, "platformVersion").SetText(p.fields.PlatformValue)
	case SinceBuildAttribute:
		child(root, "idea-version").CreateAttr("since-build", p.fields.PlatformValue)
	}
}

func (p *Patcher) patchApplicationInfo(root *etree.Element) {
	build := child(root, "build")
	build.CreateAttr("number", p.fields.BuildNumber)
	build.CreateAttr("date", p.fields.Date)
}

// child returns the first direct child named tag, appending one if absent.
func child(parent *etree.Element, tag string) *etree.Element {
	if el := parent.SelectElement(tag); el != nil {
		return el
	}
	return parent.CreateElement(tag)
}

// serialize pretty-prints doc with two-space indentation, "\n" line
// separators and a trailing newline.
func serialize(doc *etree.Document) ([]byte, error) {
	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize XML: %w", err)
	}
	if len(out) == 0 || out[len(out)-1] != '\n' {
		out = append(out, '\n')
	}
	return out, nil
}

var encodingAttr = regexp.MustCompile(`encoding\s*=\s*["']([^"']+)["']`)

// declaredEncoding returns the encoding named in the XML declaration, or "".
func declaredEncoding(doc *etree.Document) string {
	for _, t := range doc.Child {
		if pi, ok := t.(*etree.ProcInst); ok && pi.Target == "xml" {
			if m := encodingAttr.FindStringSubmatch(pi.Inst); m != nil {
				return m[1]
			}
			return ""
		}
	}
	return ""
}

// encode converts UTF-8 output back to the document's declared encoding so
// the declaration stays truthful.
func encode(out []byte, label string) ([]byte, error) {
	if label == "" {
		return out, nil
	}
	enc, name := charset.Lookup(label)
	if enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", label)
	}
	if name == "utf-8" {
		return out, nil
	}
	converted, err := enc.NewEncoder().Bytes(out)
	if err != nil {
		return nil, fmt.Errorf("failed to encode as %s: %w", name, err)
	}
	return converted, nil
}
