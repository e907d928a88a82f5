package manifest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
)

// Info holds the values currently stamped in a descriptor.
type Info struct {
	RootTag         string `json:"root"`
	Version         string `json:"version,omitempty"`
	PlatformVersion string `json:"platformVersion,omitempty"`
	SinceBuild      string `json:"sinceBuild,omitempty"`
	BuildNumber     string `json:"buildNumber,omitempty"`
	BuildDate       string `json:"buildDate,omitempty"`
}

// Matches reports whether the root tag is legal for kind.
func (i *Info) Matches(kind Kind) bool {
	return i.RootTag == kind.RootTag()
}

// StampedBuild returns the build number stamped for kind: the plugin
// version or the application-info build number.
func (i *Info) StampedBuild(kind Kind) string {
	if kind == ApplicationInfo {
		return i.BuildNumber
	}
	return i.Version
}

// Inspect reads the root tag and stamped values of a descriptor without
// modifying it.
func Inspect(data []byte) (*Info, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}

	root := xmlquery.FindOne(doc, "/*")
	if root == nil {
		return nil, ErrNoRoot
	}

	info := &Info{RootTag: root.Data}
	switch root.Data {
	case PluginRootTag:
		info.Version = text(root, "version")
		info.PlatformVersion = text(root, "platformVersion")
		if n := xmlquery.FindOne(root, "idea-version"); n != nil {
			info.SinceBuild = n.SelectAttr("since-build")
		}
	case ApplicationInfoRootTag:
		if n := xmlquery.FindOne(root, "build"); n != nil {
			info.BuildNumber = n.SelectAttr("number")
			info.BuildDate = n.SelectAttr("date")
		}
	}
	return info, nil
}

func text(n *xmlquery.Node, expr string) string {
	if c := xmlquery.FindOne(n, expr); c != nil {
		return strings.TrimSpace(c.InnerText())
	}
	return ""
}
