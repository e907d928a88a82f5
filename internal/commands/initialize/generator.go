package initialize

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-yaml"
)

// commentedMarshaler renders a config as YAML below a header describing the
// template it came from.
type commentedMarshaler struct {
	template Template
}

func (m *commentedMarshaler) Marshal(v any) ([]byte, error) {
	body, err := yaml.Marshal(v)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString("# stamper configuration file\n")
	fmt.Fprintf(&buf, "# Template: %s (%s)\n", m.template.Name, m.template.Description)
	buf.WriteString("#\n")
	buf.WriteString("# Build properties are read from -D flags, then the environment\n")
	buf.WriteString("# (cold.build.number -> COLD_BUILD_NUMBER), then the properties block.\n")
	buf.WriteString("# Run 'stamper validate' after editing.\n\n")
	buf.Write(body)
	return buf.Bytes(), nil
}

// GenerateConfigWithComments renders the template's config file.
func GenerateConfigWithComments(t Template) ([]byte, error) {
	return (&commentedMarshaler{template: t}).Marshal(t.Config())
}
